package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"payslip/internal/domain/payroll"
	"payslip/internal/domain/payslip"
	"payslip/internal/platform/config"
	"payslip/internal/platform/crypto"
	"payslip/internal/platform/db"
	"payslip/internal/platform/email"
	"payslip/internal/platform/metrics"
	"payslip/internal/platform/render"
	"payslip/internal/platform/storage"
	paysliphandler "payslip/internal/transport/http/handlers/payslip"
	"payslip/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Log     logrus.FieldLogger
	DB      *pgxpool.Pool
	Metrics *metrics.Collector
	Router  http.Handler
}

// New wires the HTTP application. The database is optional: without
// DATABASE_URL the store-backed routes answer 503.
func New(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*App, error) {
	app := &App{Config: cfg, Log: log, Metrics: metrics.New()}

	var store payroll.StoreAPI
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		app.DB = pool
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir, log); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		store = payroll.NewStore(pool)
	}

	sealer, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		app.Close()
		return nil, err
	}

	// Downloads are only kept server side when asked for.
	var archive payslip.Saver
	if cfg.ArchiveEnabled {
		archive = storage.NewDisk(cfg.OutputDir, sealer)
	}

	handler := &paysliphandler.Handler{
		Service:   payslip.NewService(render.NewPDF(), log, app.Metrics),
		Store:     store,
		Archive:   archive,
		Mailer:    email.New(cfg, log),
		Indicator: app.Metrics,
		Defaults: paysliphandler.Defaults{
			Company: cfg.Defaults.Company,
			Payroll: cfg.Defaults.Payroll,
		},
		Log: log,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log, app.Metrics))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", app.handleReady)
	if cfg.MetricsEnabled {
		router.Handle("/metrics", app.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
		r.Use(middleware.Auth(cfg.JWTSecret))
		handler.RegisterRoutes(r)
	})

	app.Router = router
	return app, nil
}

func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	if a.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to ShutdownTimeout.
func Run(ctx context.Context, cfg config.Config, log logrus.FieldLogger) error {
	app, err := New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("payslip server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	log.Info("payslip server shutting down")
	return srv.Shutdown(shutdownCtx)
}
