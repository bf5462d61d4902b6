/*
Package jobqueue removes expired projects in the background.

On Postgres the sweep runs as a River periodic job. Other storage drivers
use an in-process ticker.
*/
package jobqueue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/rs/zerolog/log"

	"github.com/codebugger/internal/projects"
)

// Expirer runs the project expiry schedule
type Expirer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Sweeper deletes projects older than a TTL
type Sweeper struct {
	store projects.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewSweeper creates a sweeper over a project store
func NewSweeper(store projects.Store, ttl time.Duration) *Sweeper {
	return &Sweeper{store: store, ttl: ttl, now: time.Now}
}

// Sweep removes every expired project and reports how many were removed
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.ttl)
	n, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired projects: %w", err)
	}
	if n > 0 {
		log.Info().Int("removed", n).Time("cutoff", cutoff).Msg("Expired projects removed")
	}
	return n, nil
}

// ProjectExpiryJobArgs are the arguments of the periodic expiry job
type ProjectExpiryJobArgs struct{}

// Kind returns the job kind for River
func (ProjectExpiryJobArgs) Kind() string {
	return "project_expiry"
}

// ProjectExpiryWorker handles project expiry jobs
type ProjectExpiryWorker struct {
	river.WorkerDefaults[ProjectExpiryJobArgs]
	sweeper *Sweeper
	config  *QueueConfig
}

// Work runs one sweep
func (w *ProjectExpiryWorker) Work(ctx context.Context, job *river.Job[ProjectExpiryJobArgs]) error {
	n, err := w.sweeper.Sweep(ctx)
	if err != nil {
		log.Error().Err(err).Int64("job_id", job.ID).Msg("Project expiry job failed")
		return err
	}
	log.Debug().Int64("job_id", job.ID).Int("removed", n).Msg("Project expiry job finished")
	return nil
}

// Timeout bounds a single sweep
func (w *ProjectExpiryWorker) Timeout(job *river.Job[ProjectExpiryJobArgs]) time.Duration {
	return w.config.JobTimeout
}

// JobQueue manages the River job queue
type JobQueue struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	config *QueueConfig
}

// NewJobQueue connects to Postgres, applies River's migrations and
// registers the periodic expiry job
func NewJobQueue(ctx context.Context, databaseURL string, store projects.Store, cfg QueueConfig) (*JobQueue, error) {
	config := cfg.withDefaults()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate River schema: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &ProjectExpiryWorker{
		sweeper: NewSweeper(store, config.TTL),
		config:  config,
	})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:       config.RiverQueueConfig(),
		Workers:      workers,
		MaxAttempts:  config.MaxRetries,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(config.SweepInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return ProjectExpiryJobArgs{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &JobQueue{
		client: client,
		pool:   pool,
		config: config,
	}, nil
}

// Start starts the job queue workers
func (jq *JobQueue) Start(ctx context.Context) error {
	log.Info().Dur("interval", jq.config.SweepInterval).Dur("ttl", jq.config.TTL).Msg("Starting River project expiry")
	return jq.client.Start(ctx)
}

// Stop stops the job queue workers and closes the pool
func (jq *JobQueue) Stop(ctx context.Context) error {
	defer jq.pool.Close()
	return jq.client.Stop(ctx)
}

// TickerExpirer sweeps on a timer inside the process
type TickerExpirer struct {
	sweeper  *Sweeper
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTickerExpirer creates an in-process expiry schedule
func NewTickerExpirer(store projects.Store, cfg QueueConfig) *TickerExpirer {
	config := cfg.withDefaults()
	return &TickerExpirer{
		sweeper:  NewSweeper(store, config.TTL),
		interval: config.SweepInterval,
	}
}

// Start sweeps once and then on every tick until Stop is called
func (t *TickerExpirer) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return fmt.Errorf("expiry ticker already started")
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	t.cancel = cancel
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			if _, err := t.sweeper.Sweep(ctx); err != nil {
				log.Error().Err(err).Msg("Project expiry sweep failed")
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	log.Info().Dur("interval", t.interval).Dur("ttl", t.sweeper.ttl).Msg("Starting in-process project expiry")
	return nil
}

// Stop ends the schedule and waits for a running sweep to finish
func (t *TickerExpirer) Stop(ctx context.Context) error {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel = nil
	t.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
