// Package bootstrap is the composition root. Keep construction and wiring
// here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	allocationservice "grantflow/contexts/grant-governance/allocation-service"
	allocationpostgres "grantflow/contexts/grant-governance/allocation-service/adapters/postgres"
	considerationservice "grantflow/contexts/grant-governance/consideration-service"
	considerationpostgres "grantflow/contexts/grant-governance/consideration-service/adapters/postgres"
	deliberationservice "grantflow/contexts/grant-governance/deliberation-service"
	deliberationpostgres "grantflow/contexts/grant-governance/deliberation-service/adapters/postgres"
	roundservice "grantflow/contexts/grant-governance/round-service"
	roundpostgres "grantflow/contexts/grant-governance/round-service/adapters/postgres"
	"grantflow/internal/platform/config"
	"grantflow/internal/platform/db"
	"grantflow/internal/platform/httpserver"
	"grantflow/internal/platform/ocv"

	"github.com/robfig/cron/v3"
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres  *db.Postgres
	scheduler *cron.Cron
	logger    *slog.Logger
}

func buildModules(pg *db.Postgres, cfg config.Config, logger *slog.Logger) (
	roundservice.Module,
	considerationservice.Module,
	deliberationservice.Module,
	allocationservice.Module,
) {
	clock := roundpostgres.SystemClock{}
	oracle := ocv.NewClient(cfg.OCVAPIBaseURL, cfg.OCVHTTPTimeout, logger)

	roundRepo := roundpostgres.NewRepository(pg.DB, logger)
	rounds := roundservice.NewModule(roundservice.Dependencies{
		Rounds:    roundRepo,
		Proposals: roundRepo,
		Clock:     clock,
		IDGen:     roundpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	considerationRepo := considerationpostgres.NewRepository(pg.DB, logger)
	consideration := considerationservice.NewModule(considerationservice.Dependencies{
		Votes:                considerationRepo,
		Snapshots:            considerationRepo,
		Proposals:            considerationRepo,
		Reviewers:            considerationRepo,
		Rounds:               considerationRepo,
		Oracle:               oracle,
		Clock:                clock,
		MinReviewerApprovals: cfg.MinReviewerApprovals,
		Logger:               logger,
	})

	deliberationRepo := deliberationpostgres.NewRepository(pg.DB, logger)
	deliberation := deliberationservice.NewModule(deliberationservice.Dependencies{
		ReviewerVotes: deliberationRepo,
		Feedback:      deliberationRepo,
		Proposals:     deliberationRepo,
		Reviewers:     deliberationRepo,
		Clock:         clock,
		Logger:        logger,
	})

	allocationRepo := allocationpostgres.NewRepository(pg.DB, logger)
	allocation := allocationservice.NewModule(allocationservice.Dependencies{
		Rounds:    allocationRepo,
		Proposals: allocationRepo,
		Oracle:    oracle,
		Winners:   allocationRepo,
		Clock:     clock,
		Logger:    logger,
	})

	return rounds, consideration, deliberation, allocation
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	rounds, consideration, deliberation, allocation := buildModules(pg, cfg, logger)
	server := httpserver.New(rounds, consideration, deliberation, allocation, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	rounds, consideration, _, allocation := buildModules(pg, cfg, logger)

	scheduler := cron.New()
	jobCtx := context.Background()
	runJob := func(name string, run func(context.Context) error) func() {
		return func() {
			if err := run(jobCtx); err != nil {
				logger.Error("scheduled job failed",
					"event", "bootstrap_job_failed",
					"module", "internal/app/bootstrap",
					"layer", "platform",
					"job", name,
					"error", err,
				)
			}
		}
	}

	if cfg.EnableOCVRefresh {
		if _, err := scheduler.AddFunc(cfg.OCVRefreshCron, runJob("ocv_snapshot_refresh", consideration.Refresher.RunOnce)); err != nil {
			return nil, err
		}
	}
	if cfg.EnablePhaseSweep {
		if _, err := scheduler.AddFunc(cfg.PhaseSweepCron, runJob("phase_sweep", rounds.Sweeper.RunOnce)); err != nil {
			return nil, err
		}
	}
	if cfg.EnableFinalizer {
		if _, err := scheduler.AddFunc(cfg.FinalizeCron, runJob("round_finalize", allocation.Finalizer.RunOnce)); err != nil {
			return nil, err
		}
	}

	return &WorkerApp{
		postgres:  pg,
		scheduler: scheduler,
		logger:    logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.scheduler.Start()
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)

	<-ctx.Done()
	stopCtx := w.scheduler.Stop()
	<-stopCtx.Done()
	return nil
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
