package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BayBookingService/internal/config"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/SMC-BayBookingService/internal/infra/storage/reservation"
	syncBatchRepo "github.com/m04kA/SMC-BayBookingService/internal/infra/storage/syncbatch"
	"github.com/m04kA/SMC-BayBookingService/internal/integrations/calendar"
	"github.com/m04kA/SMC-BayBookingService/internal/integrations/calendar/google"
	"github.com/m04kA/SMC-BayBookingService/internal/integrations/calendar/memcal"
	"github.com/m04kA/SMC-BayBookingService/internal/registry"
	"github.com/m04kA/SMC-BayBookingService/internal/usecase/reconcile"
	"github.com/m04kA/SMC-BayBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BayBookingService/pkg/logger"
	"github.com/m04kA/SMC-BayBookingService/pkg/metrics"
	"github.com/m04kA/SMC-BayBookingService/pkg/txmanager"
)

const redisKeyPrefix = "bay-booking:"

// reservationStore общий набор методов postgres и in-memory репозиториев броней
type reservationStore interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	LockResource(ctx context.Context, resourceID string) error
	ListByResourceAndDate(ctx context.Context, resourceID string, date time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
	ListPendingSync(ctx context.Context, resourceID string) ([]*domain.Reservation, error)
	RecordSyncResult(ctx context.Context, sr domain.SyncResult) (bool, error)
}

type batchStore interface {
	Create(ctx context.Context, b *domain.SyncBatch) error
	Complete(ctx context.Context, b *domain.SyncBatch) error
	GetByID(ctx context.Context, id string) (*domain.SyncBatch, error)
	List(ctx context.Context, limit int) ([]*domain.SyncBatch, error)
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type calendarClient interface {
	Authenticate(ctx context.Context) error
	UpsertEvent(ctx context.Context, calendarID string, externalRef *string, event calendar.Event) (string, error)
	DeleteEvent(ctx context.Context, calendarID, externalRef string) error
}

// app собранные зависимости процесса
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	metrics  *metrics.Metrics
	registry *registry.Registry

	reservations reservationStore
	batches      batchStore
	tx           txManager
	locker       lock.Locker
	calendar     calendarClient

	db      *dbmetrics.DB // nil для in-memory хранилища
	stopCh  chan struct{}
	closers []func() error
}

func loadApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		log:    log,
		stopCh: make(chan struct{}),
	}
	a.closers = append(a.closers, log.Close)

	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
	}

	a.registry, err = registry.FromConfig(cfg.Resources)
	if err != nil {
		a.Close()
		return nil, err
	}
	log.Info("Loaded %d resources: %v", len(a.registry.IDs()), a.registry.IDs())

	steps := []func(context.Context) error{a.openStorage, a.openLocker, a.openCalendar}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}

	return a, nil
}

func (a *app) openStorage(ctx context.Context) error {
	if a.cfg.Database.Driver == config.DriverMemory {
		a.reservations = memory.NewReservationRepository()
		a.batches = memory.NewSyncBatchRepository()
		a.tx = memory.NewTxManager()
		a.log.Warn("Using in-memory storage, data is lost on restart")
		return nil
	}

	db, err := openDB(ctx, a.cfg.Database)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, db.Close)
	a.log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		a.cfg.Database.Host, a.cfg.Database.Port, a.cfg.Database.DBName)

	var wrapped *dbmetrics.DB
	if a.metrics != nil {
		wrapped = dbmetrics.WrapWithDefault(db, a.metrics, a.stopCh)
		a.log.Info("Database metrics collection started")
	} else {
		wrapped = dbmetrics.Wrap(db, nil)
	}

	a.db = wrapped
	tx := txmanager.NewTransactionManager(wrapped)
	a.tx = tx
	a.reservations = reservationRepo.NewRepository(wrapped, a.cfg.Reservations.LockWait())
	a.batches = syncBatchRepo.NewRepository(wrapped, tx)
	return nil
}

func (a *app) openLocker(ctx context.Context) error {
	if a.cfg.Lock.Driver != config.DriverRedis {
		a.locker = lock.NewKeyedMutex()
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Lock.RedisAddr,
		Password: a.cfg.Lock.RedisPassword,
		DB:       a.cfg.Lock.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("redis ping %s: %w", a.cfg.Lock.RedisAddr, err)
	}
	a.closers = append(a.closers, rdb.Close)
	a.locker = lock.NewRedisLocker(rdb, a.cfg.Lock.LeaseTTL(), redisKeyPrefix, a.log)
	a.log.Info("Using redis locks at %s", a.cfg.Lock.RedisAddr)
	return nil
}

func (a *app) openCalendar(ctx context.Context) error {
	if a.cfg.Calendar.Provider != config.ProviderGoogle {
		a.calendar = memcal.New()
		a.log.Warn("Using in-memory calendar, events are not published")
		return nil
	}

	client, err := google.NewClient(ctx, google.Config{
		CredentialsFile:    a.cfg.Calendar.CredentialsFile,
		RateLimitPerSecond: a.cfg.Calendar.RateLimitPerSecond,
		Burst:              a.cfg.Calendar.Burst,
	}, a.log)
	if err != nil {
		return err
	}
	a.calendar = client
	a.log.Info("Google Calendar client initialized (rate=%.1f/s burst=%d)",
		a.cfg.Calendar.RateLimitPerSecond, a.cfg.Calendar.Burst)
	return nil
}

func (a *app) reconciler() *reconcile.UseCase {
	return reconcile.NewUseCase(
		a.reservations,
		a.batches,
		a.registry,
		a.calendar,
		a.locker,
		reconcile.Options{
			CallTimeout:     a.cfg.Sync.CallTimeout(),
			ResourceTimeout: a.cfg.Sync.ResourceTimeout(),
		},
		a.metrics,
		a.log,
	)
}

// Close закрывает ресурсы в обратном порядке
func (a *app) Close() {
	close(a.stopCh)
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			fmt.Printf("close: %v\n", err)
		}
	}
}

func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.Driver != config.DriverPostgres {
		return nil, errors.New("database.driver must be postgres")
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
