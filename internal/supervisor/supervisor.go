package supervisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/metrics"
)

// DEFAULT_RESTART_DELAY is the pause before a failed worker is started again
const DEFAULT_RESTART_DELAY = 10 * time.Second

// Worker is a long-running loop owned by a supervisor
type Worker interface {
	// Start blocks until ctx is cancelled or the worker fails
	Start(ctx context.Context) error

	// Name identifies the worker in logs and metrics
	Name() string
}

// Config holds the configuration for the supervisor
type Config struct {
	RestartDelay time.Duration
}

// Supervisor runs workers in isolated goroutines
type Supervisor interface {
	// Run starts every worker and blocks until ctx is cancelled and all workers returned
	Run(ctx context.Context)
}

type supervisor struct {
	config  Config
	workers []Worker
	clock   adapter.Clock
}

// New creates a supervisor over workers
func New(config Config, clock adapter.Clock, workers ...Worker) Supervisor {
	if config.RestartDelay <= 0 {
		config.RestartDelay = DEFAULT_RESTART_DELAY
	}

	return &supervisor{
		config:  config,
		workers: workers,
		clock:   clock,
	}
}

func (s *supervisor) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, w := range s.workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			s.supervise(ctx, w)
		}(w)
	}
	wg.Wait()
}

// supervise restarts w after a failure or panic until ctx is cancelled.
// A worker returning nil while ctx is alive has finished and is not restarted.
func (s *supervisor) supervise(ctx context.Context, w Worker) {
	log := logger.Named(w.Name())

	for {
		log.Info("Starting worker")
		err := s.runOnce(ctx, w)
		if ctx.Err() != nil {
			log.Info("Worker stopped")
			return
		}
		if err == nil {
			log.Info("Worker finished")
			return
		}

		metrics.WorkerRestarts.WithLabelValues(w.Name()).Inc()
		log.Error(err.Error(), zap.Duration("restart_delay", s.config.RestartDelay))

		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(s.config.RestartDelay):
		}
	}
}

func (s *supervisor) runOnce(ctx context.Context, w Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker %s panicked: %v", w.Name(), r)
		}
	}()

	return w.Start(ctx)
}
