// Package scheduler запускает тики синхронизации по расписанию и вручную,
// хранит последний тик по каждому ресурсу.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

type Scheduler struct {
	cron       *cron.Cron
	entryID    cron.EntryID
	reconciler Reconciler
	opts       Options
	logger     Logger
	now        func() time.Time

	// контекст тиков, отменяется в Stop
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	running atomic.Int32
	started atomic.Bool
	stopped atomic.Bool

	mu        sync.RWMutex
	lastBatch *domain.SyncBatch
	lastTick  map[string]ResourceTick
}

// New создает планировщик. Расписание проверяется сразу.
func New(reconciler Reconciler, opts Options, logger Logger) (*Scheduler, error) {
	cronLog := cronLogger{logger}
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		reconciler: reconciler,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
		ctx:        ctx,
		cancel:     cancel,
		lastTick:   make(map[string]ResourceTick),
	}

	if opts.Enabled {
		id, err := s.cron.AddFunc(opts.Schedule, func() {
			s.run(s.ctx, domain.TriggerSchedule)
		})
		if err != nil {
			cancel()
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, opts.Schedule, err)
		}
		s.entryID = id
	}

	return s, nil
}

// Start запускает расписание; при RunOnStart первый тик выполняется сразу в фоне
func (s *Scheduler) Start() {
	if !s.opts.Enabled {
		s.logger.Info("Scheduler: sync schedule disabled, manual triggers only")
		return
	}
	if !s.started.CompareAndSwap(false, true) {
		return
	}

	s.cron.Start()
	s.logger.Info("Scheduler: started with schedule %q", s.opts.Schedule)

	if s.opts.RunOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.run(s.ctx, domain.TriggerSchedule)
		}()
	}
}

// Stop останавливает расписание, отменяет текущие тики и ждет их завершения
// (не дольше ctx)
func (s *Scheduler) Stop(ctx context.Context) error {
	if !s.stopped.CompareAndSwap(false, true) {
		return nil
	}
	s.logger.Info("Scheduler: stopping...")

	cronDone := s.cron.Stop().Done()
	s.cancel()

	done := make(chan struct{})
	go func() {
		<-cronDone
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler: stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler: stop timed out with %d ticks in flight", s.running.Load())
		return ctx.Err()
	}
}

// Trigger выполняет один тик синхронно и возвращает его журнал
func (s *Scheduler) Trigger(ctx context.Context, trigger string) (*domain.SyncBatch, error) {
	if s.stopped.Load() {
		return nil, ErrStopped
	}
	s.wg.Add(1)
	defer s.wg.Done()

	// Тик прерывается и при отмене запроса, и при остановке планировщика
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	return s.run(ctx, trigger)
}

func (s *Scheduler) run(ctx context.Context, trigger string) (*domain.SyncBatch, error) {
	s.running.Add(1)
	defer s.running.Add(-1)

	batch, err := s.reconciler.Execute(ctx, trigger)
	if err != nil {
		s.logger.Error("Scheduler: %s tick failed: %v", trigger, err)
		return batch, err
	}
	s.remember(batch)
	return batch, nil
}

// remember обновляет последний тик по ресурсам; пропущенные ресурсы не трогаются
func (s *Scheduler) remember(batch *domain.SyncBatch) {
	if batch == nil {
		return
	}
	at := batch.StartedAt
	if batch.FinishedAt != nil {
		at = *batch.FinishedAt
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastBatch == nil || !at.Before(finishedAt(s.lastBatch)) {
		s.lastBatch = batch
	}
	for _, r := range batch.Resources {
		if r.Skipped {
			continue
		}
		if prev, ok := s.lastTick[r.ResourceID]; ok && prev.At.After(at) {
			continue
		}
		s.lastTick[r.ResourceID] = ResourceTick{
			ResourceID: r.ResourceID,
			BatchID:    batch.ID,
			At:         at,
			Outcome:    batch.Outcome,
			Created:    r.Created,
			Updated:    r.Updated,
			Deleted:    r.Deleted,
			Failed:     r.Failed,
			Error:      r.Error,
		}
	}
}

// Status текущее состояние: следующий запуск и последний тик по ресурсам
func (s *Scheduler) Status() Status {
	st := Status{
		Enabled:   s.opts.Enabled,
		Schedule:  s.opts.Schedule,
		Running:   s.running.Load() > 0,
		Resources: []ResourceTick{},
	}

	if s.opts.Enabled && !s.stopped.Load() {
		entry := s.cron.Entry(s.entryID)
		next := entry.Next
		if next.IsZero() && entry.Schedule != nil {
			next = entry.Schedule.Next(s.now())
		}
		if !next.IsZero() {
			st.NextRun = &next
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastBatch != nil {
		id, outcome, at := s.lastBatch.ID, s.lastBatch.Outcome, finishedAt(s.lastBatch)
		st.LastBatchID = &id
		st.LastOutcome = &outcome
		st.LastRunAt = &at
	}
	for _, t := range s.lastTick {
		st.Resources = append(st.Resources, t)
	}
	sort.Slice(st.Resources, func(i, j int) bool {
		return st.Resources[i].ResourceID < st.Resources[j].ResourceID
	})
	return st
}

func finishedAt(b *domain.SyncBatch) time.Time {
	if b.FinishedAt != nil {
		return *b.FinishedAt
	}
	return b.StartedAt
}

// cronLogger адаптер cron.Logger поверх логгера сервиса
type cronLogger struct {
	log Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info("Scheduler: cron %s%s", msg, formatKV(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("Scheduler: cron %s: %v%s", msg, err, formatKV(keysAndValues))
}

func formatKV(kv []interface{}) string {
	if len(kv) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(kv); i += 2 {
		b.WriteString(" ")
		if i+1 < len(kv) {
			fmt.Fprintf(&b, "%v=%v", kv[i], kv[i+1])
		} else {
			fmt.Fprintf(&b, "%v", kv[i])
		}
	}
	return b.String()
}
