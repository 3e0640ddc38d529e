package models

import (
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

// ResourceStatsResponse изменения по одному ресурсу за тик
type ResourceStatsResponse struct {
	ResourceID string  `json:"resourceId"`
	Created    int     `json:"created"`
	Updated    int     `json:"updated"`
	Deleted    int     `json:"deleted"`
	Failed     int     `json:"failed"`
	Skipped    bool    `json:"skipped,omitempty"`
	Error      *string `json:"error,omitempty"`
}

// SyncBatchResponse ответ с данными тика
type SyncBatchResponse struct {
	ID         string                  `json:"id"`
	Trigger    string                  `json:"trigger"`
	StartedAt  time.Time               `json:"startedAt"`
	FinishedAt *time.Time              `json:"finishedAt,omitempty"`
	DurationMs *int64                  `json:"durationMs,omitempty"`
	Outcome    string                  `json:"outcome"`
	Error      *string                 `json:"error,omitempty"`
	Totals     ResourceStatsResponse   `json:"totals"`
	Resources  []ResourceStatsResponse `json:"resources"`
}

// SyncBatchListResponse ответ со списком тиков
type SyncBatchListResponse struct {
	Batches []SyncBatchResponse `json:"batches"`
}

func fromStats(s domain.ResourceSyncStats) ResourceStatsResponse {
	return ResourceStatsResponse{
		ResourceID: s.ResourceID,
		Created:    s.Created,
		Updated:    s.Updated,
		Deleted:    s.Deleted,
		Failed:     s.Failed,
		Skipped:    s.Skipped,
		Error:      s.Error,
	}
}

// FromDomainBatch конвертирует domain модель в DTO
func FromDomainBatch(b *domain.SyncBatch) *SyncBatchResponse {
	if b == nil {
		return nil
	}

	resp := &SyncBatchResponse{
		ID:         b.ID,
		Trigger:    b.Trigger,
		StartedAt:  b.StartedAt,
		FinishedAt: b.FinishedAt,
		Outcome:    string(b.Outcome),
		Error:      b.Error,
		Totals:     fromStats(b.Totals()),
		Resources:  make([]ResourceStatsResponse, 0, len(b.Resources)),
	}
	if b.FinishedAt != nil {
		ms := b.FinishedAt.Sub(b.StartedAt).Milliseconds()
		resp.DurationMs = &ms
	}
	for _, r := range b.Resources {
		resp.Resources = append(resp.Resources, fromStats(r))
	}
	return resp
}

// FromDomainBatchList конвертирует список domain моделей в DTO
func FromDomainBatchList(list []*domain.SyncBatch) *SyncBatchListResponse {
	resp := &SyncBatchListResponse{Batches: make([]SyncBatchResponse, 0, len(list))}
	for _, b := range list {
		resp.Batches = append(resp.Batches, *FromDomainBatch(b))
	}
	return resp
}
