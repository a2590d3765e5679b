// Package slots queries upstream slot availability, normalizes the hourly
// availability map into display-ready slots, and retains the latest
// successful query so a booking can fall back to its context.
package slots

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// slotKeyPrefix is the fixed prefix on upstream availability keys, e.g.
// "slot_available_9-10".
const slotKeyPrefix = "slot_available_"

// availableMarker is the only value that surfaces a slot.
const availableMarker = "available"

// Slot is one bookable hour window.
type Slot struct {
	// TimeRange is the raw upstream hour range, e.g. "9-10".
	TimeRange string `json:"timeRange"`
	// StartTime is the 12-hour start label, e.g. "9:00 AM".
	StartTime string `json:"start_time"`
	// Formatted is the full display range, e.g. "9:00 AM - 10:00 AM".
	Formatted string `json:"formatted"`
}

// CanonicalDay lowercases and truncates a day name to the 3-letter code the
// upstream expects ("Monday" -> "mon").
func CanonicalDay(day string) string {
	day = strings.ToLower(strings.TrimSpace(day))
	if len(day) > 3 {
		day = day[:3]
	}
	return day
}

// formatHour renders a 24-hour slot boundary as a 12-hour label. Hour 12
// stays 12 (noon is "12:00 PM", not "0:00 PM"); hours above 12 drop 12.
func formatHour(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour
	if hour > 12 {
		display = hour - 12
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}

// parseSlots filters the upstream availability map down to available slots,
// sorted by start hour. Go map iteration is unordered, so ascending start
// hour is the canonical presentation order. Malformed keys are skipped.
func parseSlots(hourlySlots map[string]string) []Slot {
	type rawSlot struct {
		start int
		slot  Slot
	}
	var parsed []rawSlot

	for key, availability := range hourlySlots {
		if availability != availableMarker {
			continue
		}
		timeRange := strings.TrimPrefix(key, slotKeyPrefix)
		startStr, endStr, ok := strings.Cut(timeRange, "-")
		if !ok {
			continue
		}
		start, err := strconv.Atoi(strings.TrimSpace(startStr))
		if err != nil {
			continue
		}
		end, err := strconv.Atoi(strings.TrimSpace(endStr))
		if err != nil {
			continue
		}
		parsed = append(parsed, rawSlot{
			start: start,
			slot: Slot{
				TimeRange: timeRange,
				StartTime: formatHour(start),
				Formatted: formatHour(start) + " - " + formatHour(end),
			},
		})
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].start < parsed[j].start })

	out := make([]Slot, 0, len(parsed))
	for _, p := range parsed {
		out = append(out, p.slot)
	}
	return out
}
