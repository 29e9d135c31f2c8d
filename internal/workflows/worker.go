package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-ledger-sync/internal/reconciler"
)

// ReconcileRequest selects a contract and the id bound to search below; 0 lets discovery gallop
type ReconcileRequest struct {
	ContractAddress string `json:"contractAddress"`
	UpperBound      uint64 `json:"upperBound"`
}

// WorkerCore defines the reconciliation workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_core.go -package=mocks -mock_names=WorkerCore=MockWorkerCore
type WorkerCore interface {
	// ReconcileContract discovers the highest token of a contract and closes every gap below it in chunks
	ReconcileContract(ctx workflow.Context, request ReconcileRequest) (*reconciler.Report, error)

	// ReconcileContracts reconciles several contracts as child workflows; used by the cron schedule
	ReconcileContracts(ctx workflow.Context, requests []ReconcileRequest) ([]*reconciler.Report, error)
}

// WorkerCoreConfig holds workflow tunables
type WorkerCoreConfig struct {
	// ChunkSize is the id span of one ReconcileRange activity
	ChunkSize uint64
	// ActivityTimeout bounds one activity attempt
	ActivityTimeout time.Duration
	// MaxAttempts bounds activity attempts
	MaxAttempts int32
}

// workerCore is the concrete implementation of WorkerCore
type workerCore struct {
	config   WorkerCoreConfig
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor, config WorkerCoreConfig) WorkerCore {
	if config.ChunkSize == 0 {
		config.ChunkSize = reconciler.DEFAULT_CHUNK_SIZE
	}
	if config.ActivityTimeout <= 0 {
		config.ActivityTimeout = 30 * time.Minute
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}

	return &workerCore{
		executor: executor,
		config:   config,
	}
}
