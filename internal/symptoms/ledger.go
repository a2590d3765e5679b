package symptoms

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vsvipul11/ai-test-bot/internal/events"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// EventPublisher broadcasts domain events to UI observers.
type EventPublisher interface {
	Publish(eventType, sessionID string, payload any)
}

// Ledger is the append-only per-session symptom record. It validates input,
// delegates storage to the repository, and announces each successful append.
type Ledger struct {
	repo   Repository
	bus    EventPublisher
	logger *logging.Logger
}

// NewLedger creates a symptom ledger.
func NewLedger(repo Repository, bus EventPublisher, logger *logging.Logger) *Ledger {
	if logger == nil {
		logger = logging.Default()
	}
	return &Ledger{repo: repo, bus: bus, logger: logger}
}

// Record validates and appends one symptom, then publishes symptom.recorded.
func (l *Ledger) Record(ctx context.Context, req RecordRequest) (*Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec := Record{
		Symptom:   req.Symptom,
		Severity:  req.Severity,
		Duration:  req.Duration,
		Location:  req.Location,
		Triggers:  req.Triggers,
		Timestamp: time.Now().UTC(),
		SessionID: req.SessionID,
	}
	if err := l.repo.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("symptoms: append: %w", err)
	}

	l.logger.Info("symptom recorded",
		"session_id", rec.SessionID,
		"symptom", rec.Symptom,
		"severity", rec.Severity,
	)
	l.publishRecorded(rec)
	return &rec, nil
}

// List returns the session's symptoms oldest first. Unknown sessions yield an
// empty slice.
func (l *Ledger) List(ctx context.Context, sessionID string) ([]Record, error) {
	return l.repo.List(ctx, sessionID)
}

// Merge bulk-appends records, skipping any whose symptom text already exists
// in the session. Existing records are never overwritten. The whole batch is
// validated before anything is written, so a bad record rejects the merge
// without committing a prefix of it. Returns the records actually appended.
func (l *Ledger) Merge(ctx context.Context, sessionID string, reqs []RecordRequest) ([]Record, error) {
	for i := range reqs {
		reqs[i].SessionID = sessionID
		if err := reqs[i].Validate(); err != nil {
			return nil, err
		}
	}

	existing, err := l.repo.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("symptoms: merge list: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		seen[rec.Symptom] = struct{}{}
	}

	var appended []Record
	for _, req := range reqs {
		if _, dup := seen[req.Symptom]; dup {
			continue
		}
		rec, err := l.Record(ctx, req)
		if err != nil {
			return appended, err
		}
		seen[rec.Symptom] = struct{}{}
		appended = append(appended, *rec)
	}
	return appended, nil
}

func (l *Ledger) publishRecorded(rec Record) {
	if l.bus == nil {
		return
	}
	l.bus.Publish(events.TypeSymptomRecorded, rec.SessionID, events.SymptomRecordedV1{
		EventID:    uuid.NewString(),
		SessionID:  rec.SessionID,
		Symptom:    rec.Symptom,
		Severity:   rec.Severity,
		Duration:   rec.Duration,
		Location:   rec.Location,
		Triggers:   rec.Triggers,
		RecordedAt: rec.Timestamp,
	})
}
