package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

// SyncBatchRepository журнал тиков синхронизации в памяти
type SyncBatchRepository struct {
	mu      sync.RWMutex
	batches map[string]*domain.SyncBatch
}

func NewSyncBatchRepository() *SyncBatchRepository {
	return &SyncBatchRepository{batches: make(map[string]*domain.SyncBatch)}
}

func (r *SyncBatchRepository) Create(_ context.Context, b *domain.SyncBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.batches[b.ID] = cloneBatch(b)
	return nil
}

// Complete закрывает тик; закрытый тик больше не меняется
func (r *SyncBatchRepository) Complete(_ context.Context, b *domain.SyncBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.batches[b.ID]
	if !ok {
		return ErrBatchNotFound
	}
	if current.IsCompleted() {
		return ErrBatchCompleted
	}
	r.batches[b.ID] = cloneBatch(b)
	return nil
}

func (r *SyncBatchRepository) GetByID(_ context.Context, id string) (*domain.SyncBatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.batches[id]
	if !ok {
		return nil, ErrBatchNotFound
	}
	return cloneBatch(b), nil
}

// List последние тики, новые первыми
func (r *SyncBatchRepository) List(_ context.Context, limit int) ([]*domain.SyncBatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.SyncBatch, 0, len(r.batches))
	for _, b := range r.batches {
		out = append(out, cloneBatch(b))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneBatch(b *domain.SyncBatch) *domain.SyncBatch {
	c := *b
	c.FinishedAt = copyPtr(b.FinishedAt)
	c.Error = copyPtr(b.Error)
	c.Resources = make([]domain.ResourceSyncStats, len(b.Resources))
	for i, rs := range b.Resources {
		rs.Error = copyPtr(rs.Error)
		c.Resources[i] = rs
	}
	return &c
}
