package slots

import "sync"

// QueryContext is the full detail of the most recent successful slot query.
// The booking orchestrator reads it to reconstruct defaults when the agent
// books without repeating the slot parameters.
type QueryContext struct {
	Date             string `json:"date"`
	ConsultationType string `json:"consultation_type"`
	CampusID         string `json:"campus_id"`
	WeekSelection    string `json:"week_selection"`
	SelectedDay      string `json:"selected_day"`
	AvailableSlots   []Slot `json:"available_slots"`
}

// Cache retains the latest successful query context. A failed refresh clears
// it so stale slots are never treated as current.
type Cache struct {
	mu      sync.RWMutex
	current *QueryContext
}

// NewCache creates an empty slot cache.
func NewCache() *Cache {
	return &Cache{}
}

// Set replaces the cached context.
func (c *Cache) Set(ctx QueryContext) {
	c.mu.Lock()
	c.current = &ctx
	c.mu.Unlock()
}

// Get returns a copy of the cached context, if any.
func (c *Cache) Get() (QueryContext, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return QueryContext{}, false
	}
	return *c.current, true
}

// Clear drops the cached context.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}
