package workflows

import (
	"context"

	"github.com/feral-file/ff-ledger-sync/internal/reconciler"
)

// Executor defines the reconciliation activities
//
//go:generate mockgen -source=activities.go -destination=../mocks/executor.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	// DiscoverHighest finds the highest live token id of a contract
	DiscoverHighest(ctx context.Context, contractAddress string, upperBound uint64) (*reconciler.Discovery, error)

	// ReconcileRange closes the gaps of one id range
	ReconcileRange(ctx context.Context, contractAddress string, from, to uint64) (*reconciler.Report, error)
}

// executor is the concrete implementation of Executor
type executor struct {
	reconciler reconciler.Reconciler
}

// NewExecutor creates a new executor instance
func NewExecutor(r reconciler.Reconciler) Executor {
	return &executor{reconciler: r}
}

func (e *executor) DiscoverHighest(ctx context.Context, contractAddress string, upperBound uint64) (*reconciler.Discovery, error) {
	return e.reconciler.DiscoverHighest(ctx, contractAddress, upperBound)
}

func (e *executor) ReconcileRange(ctx context.Context, contractAddress string, from, to uint64) (*reconciler.Report, error) {
	return e.reconciler.ReconcileRange(ctx, contractAddress, from, to)
}
