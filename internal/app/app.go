package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/formsubmit-backend/internal/adapter/blob"
	"github.com/heartmarshall/formsubmit-backend/internal/adapter/envsecrets"
	"github.com/heartmarshall/formsubmit-backend/internal/adapter/postgres"
	submissionrepo "github.com/heartmarshall/formsubmit-backend/internal/adapter/postgres/submission"
	"github.com/heartmarshall/formsubmit-backend/internal/adapter/queue"
	"github.com/heartmarshall/formsubmit-backend/internal/adapter/secretsmanager"
	"github.com/heartmarshall/formsubmit-backend/internal/config"
	"github.com/heartmarshall/formsubmit-backend/internal/metrics"
	"github.com/heartmarshall/formsubmit-backend/internal/secrets"
	"github.com/heartmarshall/formsubmit-backend/internal/service/submission"
	"github.com/heartmarshall/formsubmit-backend/internal/transport/rest"
	"github.com/heartmarshall/formsubmit-backend/migrations"
)

// Run is the application entry point. It resolves the collaborator secrets,
// connects storage, database and queue, and serves HTTP until ctx is
// cancelled. Any startup failure is returned before the listener opens.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("secrets_provider", cfg.Secrets.Provider),
		slog.Any("required_fields", cfg.Form.RequiredFields),
	)

	getter, err := newSecretGetter(ctx, cfg.Secrets)
	if err != nil {
		return fmt.Errorf("secrets provider: %w", err)
	}

	bundle, err := secrets.Resolve(ctx, getter, cfg.Secrets.Names)
	if err != nil {
		logger.Error("resolve secrets", slog.String("error", err.Error()))
		return err
	}
	logger.Info("secrets resolved", slog.Any("secrets", bundle))

	m := metrics.New()
	m.SecretsResolved(time.Now())

	pool, err := postgres.NewPool(ctx, bundle.DatabaseDSN, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	store, err := blob.Open(ctx, bundle.StorageConnString, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	logger.Info("storage ready", slog.String("bucket", store.Bucket()))

	publisher, err := queue.Connect(ctx, bundle.QueueURL, cfg.Queue, m, logger)
	if err != nil {
		return fmt.Errorf("connect to queue: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close queue connection", slog.String("error", err.Error()))
		}
	}()

	svc := submission.NewService(logger, store, submissionrepo.New(pool), publisher, m, cfg.Storage, cfg.Form)

	deps := rest.RouterDeps{
		Logger:      logger,
		CORS:        cfg.CORS,
		Health:      rest.NewHealthHandler(BuildVersion()),
		Submissions: rest.NewSubmissionHandler(svc, cfg.Form, cfg.Storage.MaxUploadBytes, logger),
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = m.Handler()
		deps.MetricsPath = cfg.Metrics.Path
		deps.HTTPObserver = m
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rest.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// newSecretGetter picks the secret backend named by cfg.Provider.
func newSecretGetter(ctx context.Context, cfg config.SecretsConfig) (secrets.Getter, error) {
	switch cfg.Provider {
	case config.SecretsProviderAWS:
		client, err := secretsmanager.NewFromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.SecretsProviderEnv:
		return envsecrets.New(), nil
	default:
		return nil, fmt.Errorf("unknown secrets provider %q", cfg.Provider)
	}
}

// serve runs srv until ctx is done, then shuts it down within timeout.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}
