package jobqueue

import (
	"time"

	"github.com/riverqueue/river"
)

// QueueConfig holds the tunable parameters of the background jobs
type QueueConfig struct {
	// MaxWorkers bounds concurrent jobs on the default queue
	MaxWorkers int
	// MaxRetries is how often a failed sweep is retried by River
	MaxRetries int
	// JobTimeout bounds a single sweep
	JobTimeout time.Duration
	// SweepInterval is how often expired projects are removed
	SweepInterval time.Duration
	// TTL is how long a project is kept after upload
	TTL time.Duration
}

// DefaultQueueConfig returns the default configuration
func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{
		MaxWorkers:    2,
		MaxRetries:    5,
		JobTimeout:    time.Minute,
		SweepInterval: 10 * time.Minute,
		TTL:           24 * time.Hour,
	}
}

// withDefaults fills zero values from DefaultQueueConfig
func (c QueueConfig) withDefaults() *QueueConfig {
	d := DefaultQueueConfig()
	if c.MaxWorkers > 0 {
		d.MaxWorkers = c.MaxWorkers
	}
	if c.MaxRetries > 0 {
		d.MaxRetries = c.MaxRetries
	}
	if c.JobTimeout > 0 {
		d.JobTimeout = c.JobTimeout
	}
	if c.SweepInterval > 0 {
		d.SweepInterval = c.SweepInterval
	}
	if c.TTL > 0 {
		d.TTL = c.TTL
	}
	return d
}

// RiverQueueConfig converts our config to River's queue configuration format
func (c *QueueConfig) RiverQueueConfig() map[string]river.QueueConfig {
	return map[string]river.QueueConfig{
		river.QueueDefault: {
			MaxWorkers: c.MaxWorkers,
		},
	}
}
