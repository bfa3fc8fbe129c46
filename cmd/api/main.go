package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/prescripto/prescripto/internal/config"
	"github.com/prescripto/prescripto/internal/handler"
	v1 "github.com/prescripto/prescripto/internal/handler/v1"
	"github.com/prescripto/prescripto/internal/repository"
	"github.com/prescripto/prescripto/internal/service"
	"github.com/prescripto/prescripto/pkg/auth"
	"github.com/prescripto/prescripto/pkg/database"
	"github.com/prescripto/prescripto/pkg/logger"
	"github.com/prescripto/prescripto/pkg/metrics"
	"github.com/prescripto/prescripto/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	if cfg.Tracing.Enabled {
		tp, err := tracer.Init(cfg.Tracing)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.Migrate(db, log); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	collector := metrics.NewCollector("prescripto")
	if sqlDB, err := db.DB(); err == nil {
		collector.DBConnections.Set(float64(sqlDB.Stats().OpenConnections))
	}

	jwtManager := auth.NewJWTManager(cfg.JWT)

	users := repository.NewUserRepository(db)
	medications := repository.NewMedicationRepository(db)
	reminders := repository.NewReminderRepository(db)
	prescriptions := repository.NewPrescriptionRepository(db)
	messages := repository.NewMessageRepository(db)
	sideEffects := repository.NewSideEffectRepository(db)
	auditLogs := repository.NewAuditRepository(db)

	auditSvc := service.NewAuditService(auditLogs, collector, log)
	defer auditSvc.Shutdown()

	authSvc := service.NewAuthService(users, jwtManager, log)
	messageSvc := service.NewMessageService(messages, users, auditSvc, collector, log)
	prescriptionSvc := service.NewPrescriptionService(prescriptions, medications, messages, users, auditSvc, collector, log)
	reminderSvc := service.NewReminderService(reminders, medications, users, auditSvc, collector, log)
	sideEffectSvc := service.NewSideEffectService(sideEffects, medications, log)

	router := handler.NewRouter(handler.RouterDeps{
		Config:    cfg,
		Logger:    log,
		JWT:       jwtManager,
		Collector: collector,
		Auth:      v1.NewAuthHandler(authSvc),
		Patient:   v1.NewPatientHandler(messageSvc, prescriptionSvc, reminderSvc, sideEffectSvc),
		Doctor:    v1.NewDoctorHandler(messageSvc, prescriptionSvc, sideEffectSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("stopped")
	return nil
}
