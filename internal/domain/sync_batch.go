package domain

import "time"

// SyncOutcome is the terminal outcome of a reconciliation tick
type SyncOutcome string

const (
	OutcomeRunning SyncOutcome = "running"
	OutcomeSuccess SyncOutcome = "success"
	OutcomePartial SyncOutcome = "partial"
	OutcomeFailed  SyncOutcome = "failed"
)

// SyncBatch records one reconciliation tick. Observability only.
type SyncBatch struct {
	ID         string
	Trigger    string
	StartedAt  time.Time
	FinishedAt *time.Time
	Outcome    SyncOutcome
	Error      *string
	Resources  []ResourceSyncStats
}

// ResourceSyncStats per-resource counts of a tick
type ResourceSyncStats struct {
	ResourceID string
	Created    int
	Updated    int
	Deleted    int
	Failed     int
	Skipped    bool // another tick held the resource lease
	Error      *string
}

// Totals sums per-resource counts
func (b *SyncBatch) Totals() ResourceSyncStats {
	var t ResourceSyncStats
	for _, r := range b.Resources {
		t.Created += r.Created
		t.Updated += r.Updated
		t.Deleted += r.Deleted
		t.Failed += r.Failed
	}
	return t
}

// IsCompleted returns true once the tick has finished
func (b *SyncBatch) IsCompleted() bool {
	return b.FinishedAt != nil
}
