package scheduler

import (
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

// Options параметры планировщика
type Options struct {
	Enabled    bool
	Schedule   string // cron-выражение, например "@every 15m"
	RunOnStart bool
}

// ResourceTick последний завершенный тик по ресурсу
type ResourceTick struct {
	ResourceID string             `json:"resource_id"`
	BatchID    string             `json:"batch_id"`
	At         time.Time          `json:"at"`
	Outcome    domain.SyncOutcome `json:"outcome"`
	Created    int                `json:"created"`
	Updated    int                `json:"updated"`
	Deleted    int                `json:"deleted"`
	Failed     int                `json:"failed"`
	Error      *string            `json:"error,omitempty"`
}

// Status состояние планировщика
type Status struct {
	Enabled     bool                `json:"enabled"`
	Schedule    string              `json:"schedule"`
	Running     bool                `json:"running"`
	NextRun     *time.Time          `json:"next_run,omitempty"`
	LastBatchID *string             `json:"last_batch_id,omitempty"`
	LastOutcome *domain.SyncOutcome `json:"last_outcome,omitempty"`
	LastRunAt   *time.Time          `json:"last_run_at,omitempty"`
	Resources   []ResourceTick      `json:"resources"`
}
