package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/codebugger/internal/aiconnectors"
	"github.com/codebugger/internal/analysis"
	"github.com/codebugger/internal/config"
	"github.com/codebugger/internal/conversation"
	"github.com/codebugger/internal/database"
	"github.com/codebugger/internal/jobqueue"
	"github.com/codebugger/internal/projects"
	"github.com/codebugger/internal/prompts"
	"github.com/codebugger/internal/review"
)

// app holds the collaborators shared by the api and analyze commands
type app struct {
	cfg      *config.Config
	driver   database.Driver
	ai       *aiconnectors.Service
	reviews  *review.Service
	history  conversation.HistoryStore
	projects projects.Store
	db       *database.DB
}

// newApp opens the configured storage and builds the review pipeline
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	driver, err := database.ParseDriver(cfg.Storage.Driver)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, driver: driver, ai: aiconnectors.NewService(cfg.AISettings())}
	switch driver {
	case database.DriverMemory:
		a.history = conversation.NewMemoryStore()
		a.projects = projects.NewMemoryStore()
	default:
		db, err := database.Open(ctx, driver, cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s storage: %w", driver, err)
		}
		a.db = db
		a.history = conversation.NewSQLStore(db)
		a.projects = projects.NewSQLStore(db)
	}
	log.Info().Str("driver", string(driver)).Msg("Storage ready")

	a.reviews = review.NewService(analysis.Heuristic{}, prompts.Builder{}, a.ai, a.history, review.Config{
		ReviewTimeout: review.DefaultConfig().ReviewTimeout,
		DefaultModel:  cfg.AI.DefaultModel,
	})
	return a, nil
}

// expirer picks River on Postgres and an in-process ticker otherwise
func (a *app) expirer(ctx context.Context) (jobqueue.Expirer, error) {
	qc := jobqueue.QueueConfig{
		TTL:           a.cfg.Projects.TTL,
		SweepInterval: a.cfg.Projects.SweepInterval,
	}
	if a.driver == database.DriverPostgres {
		jq, err := jobqueue.NewJobQueue(ctx, a.cfg.Storage.DSN, a.projects, qc)
		if err != nil {
			return nil, fmt.Errorf("failed to create job queue: %w", err)
		}
		return jq, nil
	}
	return jobqueue.NewTickerExpirer(a.projects, qc), nil
}

func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
