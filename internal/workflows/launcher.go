package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/providers/temporal"
	"github.com/feral-file/ff-ledger-sync/internal/types"
)

// RECONCILE_CRON_WORKFLOW_ID is the fixed id of the scheduled reconciliation
const RECONCILE_CRON_WORKFLOW_ID = "reconcile-cron"

// Execution identifies a started workflow run
type Execution struct {
	WorkflowID string `json:"workflowId"`
	RunID      string `json:"runId"`
}

// Launcher starts reconciliation workflows from outside the worker
//
//go:generate mockgen -source=launcher.go -destination=../mocks/launcher.go -package=mocks -mock_names=Launcher=MockLauncher
type Launcher interface {
	// StartReconciliation starts an on-demand run; one run per contract at a time
	StartReconciliation(ctx context.Context, request ReconcileRequest) (*Execution, error)

	// EnsureCron starts the scheduled run unless it is already running
	EnsureCron(ctx context.Context, schedule string, requests []ReconcileRequest) error
}

type launcher struct {
	orchestrator temporal.TemporalOrchestrator
	taskQueue    string
}

// NewLauncher creates a workflow launcher
func NewLauncher(orchestrator temporal.TemporalOrchestrator, taskQueue string) Launcher {
	return &launcher{
		orchestrator: orchestrator,
		taskQueue:    taskQueue,
	}
}

func (l *launcher) StartReconciliation(ctx context.Context, request ReconcileRequest) (*Execution, error) {
	request.ContractAddress = types.NormalizeAddress(request.ContractAddress)
	if request.ContractAddress == "" {
		return nil, fmt.Errorf("contract address is required")
	}

	w := NewWorkerCore(nil, WorkerCoreConfig{})
	opt := client.StartWorkflowOptions{
		ID:                       fmt.Sprintf("reconcile-%s", request.ContractAddress),
		TaskQueue:                l.taskQueue,
		WorkflowIDReusePolicy:    enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowIDConflictPolicy: enums.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING,
		WorkflowExecutionTimeout: 24 * time.Hour,
	}
	run, err := l.orchestrator.ExecuteWorkflow(ctx, opt, w.ReconcileContract, request)
	if err != nil {
		return nil, fmt.Errorf("failed to execute workflow: %w", err)
	}

	logger.InfoCtx(ctx, "Reconciliation started",
		zap.String("contract", request.ContractAddress),
		zap.Uint64("upperBound", request.UpperBound),
		zap.String("workflowID", run.GetID()),
		zap.String("runID", run.GetRunID()))

	return &Execution{WorkflowID: run.GetID(), RunID: run.GetRunID()}, nil
}

func (l *launcher) EnsureCron(ctx context.Context, schedule string, requests []ReconcileRequest) error {
	if schedule == "" || len(requests) == 0 {
		return nil
	}

	w := NewWorkerCore(nil, WorkerCoreConfig{})
	opt := client.StartWorkflowOptions{
		ID:           RECONCILE_CRON_WORKFLOW_ID,
		TaskQueue:    l.taskQueue,
		CronSchedule: schedule,
	}
	run, err := l.orchestrator.ExecuteWorkflow(ctx, opt, w.ReconcileContracts, requests)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			logger.InfoCtx(ctx, "Reconciliation cron already scheduled", zap.String("schedule", schedule))
			return nil
		}
		return fmt.Errorf("failed to schedule reconciliation cron: %w", err)
	}

	logger.InfoCtx(ctx, "Reconciliation cron scheduled",
		zap.String("schedule", schedule),
		zap.Int("contracts", len(requests)),
		zap.String("runID", run.GetRunID()))
	return nil
}
