package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-BayBookingService/internal/api/handlers"
	cancelReservationHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/check_availability"
	confirmReservationHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/create_reservation"
	getAvailableBaysHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/get_available_bays"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/get_reservation"
	getSyncBatchHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/get_sync_batch"
	getSyncStatusHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/get_sync_status"
	listReservationsHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/list_reservations"
	listResourcesHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/list_resources"
	listSyncBatchesHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/list_sync_batches"
	modifyReservationHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/modify_reservation"
	triggerSyncHandler "github.com/m04kA/SMC-BayBookingService/internal/api/handlers/trigger_sync"
	"github.com/m04kA/SMC-BayBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-BayBookingService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-BayBookingService/internal/scheduler"
	"github.com/m04kA/SMC-BayBookingService/internal/service/availability"
	reservationsService "github.com/m04kA/SMC-BayBookingService/internal/service/reservations"
	syncBatchesService "github.com/m04kA/SMC-BayBookingService/internal/service/syncbatches"
	confirmReservationUC "github.com/m04kA/SMC-BayBookingService/internal/usecase/confirm_reservation"
	createReservationUC "github.com/m04kA/SMC-BayBookingService/internal/usecase/create_reservation"
	modifyReservationUC "github.com/m04kA/SMC-BayBookingService/internal/usecase/modify_reservation"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reconciliation scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := loadApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if migrateUp && a.db != nil {
				if _, err := migrations.Up(ctx, a.db, a.log); err != nil {
					return err
				}
			}

			return serve(ctx, a)
		},
	}
	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply pending migrations before start")

	return cmd
}

func serve(ctx context.Context, a *app) error {
	cfg, log := a.cfg, a.log
	log.Info("Starting bay booking service...")

	lockWait := cfg.Reservations.LockWait()

	// Движок доступности
	availabilitySvc := availability.NewService(a.registry, a.reservations, availability.Limits{
		MinDurationMinutes: cfg.Reservations.MinDurationMinutes,
		MaxDurationMinutes: cfg.Reservations.MaxDurationMinutes,
		SlotStepMinutes:    cfg.Reservations.SlotStepMinutes,
	}, log)

	// Сервисы
	reservationSvc := reservationsService.NewService(a.reservations, a.registry, a.tx, a.locker, lockWait, a.metrics, log)
	syncBatchSvc := syncBatchesService.NewService(a.batches, log)

	// Use cases жизненного цикла
	createReservationUseCase := createReservationUC.NewUseCase(a.reservations, availabilitySvc, a.tx, a.locker, lockWait, a.metrics, log)
	modifyReservationUseCase := modifyReservationUC.NewUseCase(a.reservations, availabilitySvc, a.tx, a.locker, lockWait, a.metrics, log)
	confirmReservationUseCase := confirmReservationUC.NewUseCase(a.reservations, availabilitySvc, a.tx, a.locker, lockWait, a.metrics, log)

	// Планировщик синхронизации
	sched, err := scheduler.New(a.reconciler(), scheduler.Options{
		Enabled:    cfg.Sync.Enabled,
		Schedule:   cfg.Sync.Schedule,
		RunOnStart: cfg.Sync.RunOnStart,
	}, log)
	if err != nil {
		return err
	}

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(cfg.Metrics.Path, a.metrics.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r.Use(middleware.Logging(log))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Ресурсы и доступность ---
	api.HandleFunc("/resources", listResourcesHandler.NewHandler(a.registry, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/availability",
		getAvailableSlotsHandler.NewHandler(availabilitySvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/check",
		checkAvailabilityHandler.NewHandler(availabilitySvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/bays",
		getAvailableBaysHandler.NewHandler(availabilitySvc, log).Handle).Methods(http.MethodGet)

	// --- Брони ---
	api.HandleFunc("/reservations",
		createReservationHandler.NewHandler(createReservationUseCase, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations",
		listReservationsHandler.NewHandler(reservationSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}",
		getReservationHandler.NewHandler(reservationSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}",
		modifyReservationHandler.NewHandler(modifyReservationUseCase, log).Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}/confirm",
		confirmReservationHandler.NewHandler(confirmReservationUseCase, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}/cancel",
		cancelReservationHandler.NewHandler(reservationSvc, log).Handle).Methods(http.MethodPost)

	// --- Синхронизация ---
	api.HandleFunc("/sync/trigger", triggerSyncHandler.NewHandler(sched, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/sync/status", getSyncStatusHandler.NewHandler(sched).Handle).Methods(http.MethodGet)
	api.HandleFunc("/sync/batches", listSyncBatchesHandler.NewHandler(syncBatchSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/sync/batches/{batchId}", getSyncBatchHandler.NewHandler(syncBatchSvc, log).Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	sched.Start()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-errCh:
		log.Error("Server failed: %v", err)
		_ = sched.Stop(context.Background())
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	// тик, запущенный в момент остановки, получает отмену контекста и закрывает batch
	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error("Scheduler did not stop in time: %v", err)
	}

	log.Info("Server exited")
	return nil
}
