package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-BayBookingService/internal/integrations/calendar"
)

// UseCase один тик синхронизации броней с внешними календарями.
// Ресурсы обрабатываются последовательно, брони внутри ресурса - по одной,
// каждая не более одного раза за тик.
type UseCase struct {
	repo     ReservationRepository
	batches  SyncBatchRepository
	registry ResourceRegistry
	calendar CalendarClient
	locker   ResourceLocker
	opts     Options
	metrics  Metrics
	now      func() time.Time
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo ReservationRepository,
	batches SyncBatchRepository,
	registry ResourceRegistry,
	calendarClient CalendarClient,
	locker ResourceLocker,
	opts Options,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 10 * time.Second
	}
	if opts.ResourceTimeout <= 0 {
		opts.ResourceTimeout = 5 * time.Minute
	}
	return &UseCase{
		repo:     repo,
		batches:  batches,
		registry: registry,
		calendar: calendarClient,
		locker:   locker,
		opts:     opts,
		metrics:  metrics,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock подменяет источник времени
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Execute выполняет один тик и возвращает закрытый SyncBatch.
// Ошибка возвращается только если журнал тика не удалось сохранить.
func (uc *UseCase) Execute(ctx context.Context, trigger string) (*domain.SyncBatch, error) {
	started := uc.now()
	batch := &domain.SyncBatch{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		StartedAt: started,
		Outcome:   domain.OutcomeRunning,
	}

	uc.logger.Info("Reconcile: tick %s started (trigger=%s)", batch.ID, trigger)

	if err := uc.batches.Create(ctx, batch); err != nil {
		uc.logger.Error("Reconcile: failed to create sync batch: %v", err)
		return nil, fmt.Errorf("%w: create sync batch: %v", ErrInternal, err)
	}

	batch.Outcome, batch.Error = uc.run(ctx, batch)

	finished := uc.now()
	batch.FinishedAt = &finished
	uc.metrics.RecordTick(trigger, string(batch.Outcome), finished.Sub(started))

	// Журнал закрывается даже при отмене тика
	if err := uc.batches.Complete(context.WithoutCancel(ctx), batch); err != nil {
		uc.logger.Error("Reconcile: failed to complete sync batch %s: %v", batch.ID, err)
		return batch, fmt.Errorf("%w: complete sync batch: %v", ErrInternal, err)
	}

	totals := batch.Totals()
	uc.logger.Info("Reconcile: tick %s finished with %s: created=%d updated=%d deleted=%d failed=%d",
		batch.ID, batch.Outcome, totals.Created, totals.Updated, totals.Deleted, totals.Failed)
	return batch, nil
}

func (uc *UseCase) run(ctx context.Context, batch *domain.SyncBatch) (domain.SyncOutcome, *string) {
	authCtx, cancel := context.WithTimeout(ctx, uc.opts.CallTimeout)
	err := uc.calendar.Authenticate(authCtx)
	cancel()
	if err != nil {
		uc.logger.Error("Reconcile: authentication failed, tick aborted: %v", err)
		return domain.OutcomeFailed, errString(err)
	}

	partial := false
	for _, res := range uc.registry.All() {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("Reconcile: tick cancelled before %s: %v", res.ID, err)
			if len(batch.Resources) == 0 {
				return domain.OutcomeFailed, errString(err)
			}
			return domain.OutcomePartial, errString(err)
		}

		stats, authErr := uc.syncResource(ctx, &res)
		batch.Resources = append(batch.Resources, stats)

		if authErr != nil {
			uc.logger.Error("Reconcile: authentication lost on %s, tick aborted: %v", res.ID, authErr)
			return domain.OutcomeFailed, errString(authErr)
		}
		if stats.Failed > 0 || stats.Error != nil {
			partial = true
		}
	}

	if partial {
		return domain.OutcomePartial, nil
	}
	return domain.OutcomeSuccess, nil
}

// syncResource обрабатывает брони одного ресурса под арендой ресурса.
// Возвращает ошибку только при отказе аутентификации.
func (uc *UseCase) syncResource(ctx context.Context, res *domain.Resource) (domain.ResourceSyncStats, error) {
	stats := domain.ResourceSyncStats{ResourceID: res.ID}

	release, err := uc.locker.Acquire(ctx, "sync:"+res.ID, 0)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			uc.logger.Warn("Reconcile: %s is being synced by another tick, skipped", res.ID)
			stats.Skipped = true
			return stats, nil
		}
		uc.logger.Error("Reconcile: failed to lease %s: %v", res.ID, err)
		stats.Error = errString(err)
		return stats, nil
	}
	defer release()

	rctx, cancel := context.WithTimeout(ctx, uc.opts.ResourceTimeout)
	defer cancel()

	items, err := uc.repo.ListPendingSync(rctx, res.ID)
	if err != nil {
		uc.logger.Error("Reconcile: failed to list pending reservations of %s: %v", res.ID, err)
		stats.Error = errString(err)
		return stats, nil
	}

	for _, item := range items {
		if err := rctx.Err(); err != nil {
			uc.logger.Warn("Reconcile: %s interrupted with %d items left: %v", res.ID, len(items), err)
			stats.Error = errString(fmt.Errorf("interrupted: %w", err))
			break
		}

		result, err := uc.syncItem(rctx, res, item)
		outcome := calendar.Classify(err)
		uc.metrics.RecordSyncItem(res.ID, result.action, string(outcome))

		if outcome == calendar.OutcomeAuth {
			if result.setRef {
				uc.record(ctx, item, domain.SyncSyncFailed, result, err)
			}
			return stats, err
		}
		if err != nil {
			uc.logger.Warn("Reconcile: %s %s failed (%s): %v", result.action, item.ID, outcome, err)
			stats.Failed++
			uc.record(ctx, item, domain.SyncSyncFailed, result, err)
			continue
		}

		if !uc.record(ctx, item, domain.SyncSynced, result, nil) {
			stats.Failed++
			continue
		}
		if result.created {
			stats.Created++
		}
		if result.updated {
			stats.Updated++
		}
		if result.deleted {
			stats.Deleted++
		}
	}

	uc.metrics.SetLastTick(res.ID, uc.now())
	return stats, nil
}

// syncItem применяет одно корректирующее действие во внешнем календаре
func (uc *UseCase) syncItem(ctx context.Context, res *domain.Resource, item *domain.Reservation) (itemResult, error) {
	if item.IsCancelled() {
		if !item.HasExternalEvent() {
			return itemResult{action: actionMark}, nil
		}
		result := itemResult{action: actionDelete}
		err := uc.deleteEvent(ctx, calendarOf(item, res), *item.ExternalEventID)
		if err != nil {
			return result, err
		}
		result.deleted = true
		result.setRef = true
		return result, nil
	}

	result := itemResult{action: actionCreate}
	ref := item.ExternalEventID
	if !item.HasExternalEvent() {
		ref = nil
	}

	// Бронь перенесена на другой ресурс: событие удаляется из прежнего календаря
	if ref != nil && calendarOf(item, res) != res.CalendarID {
		if err := uc.deleteEvent(ctx, calendarOf(item, res), *ref); err != nil {
			return itemResult{action: actionDelete}, err
		}
		ref = nil
		result.deleted = true
		result.setRef = true
	}

	event := calendar.NewEvent(item, res)

	if ref != nil {
		result.action = actionUpdate
		newRef, err := uc.upsert(ctx, res.CalendarID, ref, event)
		if err == nil {
			result.updated = true
			return result.withRef(newRef, res.CalendarID), nil
		}
		if !errors.Is(err, calendar.ErrNotFound) {
			return result, err
		}
		// Событие удалено во внешнем календаре вручную: создаем заново
		uc.logger.Warn("Reconcile: event %s of %s not found, recreating", *ref, item.ID)
		result.action = actionCreate
		result.setRef = true
	}

	newRef, err := uc.upsert(ctx, res.CalendarID, nil, event)
	if err != nil {
		return result, err
	}
	result.created = true
	return result.withRef(newRef, res.CalendarID), nil
}

func (r itemResult) withRef(ref, calendarID string) itemResult {
	r.ref = &ref
	r.calendarID = &calendarID
	r.setRef = true
	return r
}

func (uc *UseCase) upsert(ctx context.Context, calendarID string, ref *string, event calendar.Event) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, uc.opts.CallTimeout)
	defer cancel()
	return uc.calendar.UpsertEvent(callCtx, calendarID, ref, event)
}

// deleteEvent отсутствующее событие считается удаленным
func (uc *UseCase) deleteEvent(ctx context.Context, calendarID, ref string) error {
	callCtx, cancel := context.WithTimeout(ctx, uc.opts.CallTimeout)
	defer cancel()

	err := uc.calendar.DeleteEvent(callCtx, calendarID, ref)
	if errors.Is(err, calendar.ErrNotFound) {
		return nil
	}
	return err
}

// record сохраняет результат с проверкой версии; false - запись не удалась
func (uc *UseCase) record(ctx context.Context, item *domain.Reservation, status domain.SyncStatus, result itemResult, callErr error) bool {
	sr := domain.SyncResult{
		ReservationID: item.ID,
		Version:       item.UpdatedAt,
		Status:        status,
		SetRef:        result.setRef,
		ExternalRef:   result.ref,
		CalendarID:    result.calendarID,
		At:            uc.now(),
	}
	if callErr != nil {
		sr.Error = errString(callErr)
	}

	applied, err := uc.repo.RecordSyncResult(context.WithoutCancel(ctx), sr)
	if err != nil {
		uc.logger.Error("Reconcile: failed to record sync result of %s: %v", item.ID, err)
		return false
	}
	if !applied {
		uc.logger.Info("Reconcile: %s changed during sync, will be pushed on the next tick", item.ID)
	}
	return true
}

// calendarOf календарь, в котором сейчас живет событие брони
func calendarOf(item *domain.Reservation, res *domain.Resource) string {
	if item.ExternalCalendarID != nil && *item.ExternalCalendarID != "" {
		return *item.ExternalCalendarID
	}
	return res.CalendarID
}

func errString(err error) *string {
	if err == nil {
		return nil
	}
	s := err.Error()
	return &s
}
