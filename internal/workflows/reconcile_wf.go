package workflows

import (
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/reconciler"
	"github.com/feral-file/ff-ledger-sync/internal/types"
)

// ReconcileContract discovers the highest live token and reconciles [1, highest] chunk by chunk
func (w *workerCore) ReconcileContract(ctx workflow.Context, request ReconcileRequest) (*reconciler.Report, error) {
	contract := types.NormalizeAddress(request.ContractAddress)
	if contract == "" {
		return nil, temporal.NewNonRetryableApplicationError("contract address is required", "InvalidRequest", nil)
	}

	logger.InfoWf(ctx, "Starting reconciliation",
		zap.String("contract", contract),
		zap.Uint64("upperBound", request.UpperBound))

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: w.config.ActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    10 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Minute,
			MaximumAttempts:    w.config.MaxAttempts,
		},
	})

	var discovery reconciler.Discovery
	err := workflow.ExecuteActivity(ctx, w.executor.DiscoverHighest, contract, request.UpperBound).Get(ctx, &discovery)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to discover highest token"),
			zap.Error(err),
			zap.String("contract", contract))
		return nil, err
	}

	report := &reconciler.Report{
		Contract: contract,
		Highest:  discovery.Highest,
		Probes:   discovery.Probes,
	}
	if discovery.Highest == 0 {
		logger.InfoWf(ctx, "No tokens found", zap.String("contract", contract))
		return report, nil
	}

	for from := uint64(1); from <= discovery.Highest; from += w.config.ChunkSize {
		to := min(from+w.config.ChunkSize-1, discovery.Highest)

		var chunk reconciler.Report
		err := workflow.ExecuteActivity(ctx, w.executor.ReconcileRange, contract, from, to).Get(ctx, &chunk)
		if err != nil {
			logger.ErrorWf(ctx, fmt.Errorf("failed to reconcile chunk"),
				zap.Error(err),
				zap.String("contract", contract),
				zap.Uint64("from", from),
				zap.Uint64("to", to))
			return report, err
		}
		report.Merge(&chunk)

		logger.InfoWf(ctx, "Chunk reconciled",
			zap.String("contract", contract),
			zap.Uint64("from", from),
			zap.Uint64("to", to),
			zap.Int("missing", chunk.Missing),
			zap.Int("inserted", chunk.Inserted),
			zap.Int("pending", chunk.Pending))
	}

	logger.InfoWf(ctx, "Reconciliation completed",
		zap.String("contract", contract),
		zap.Uint64("highest", report.Highest),
		zap.Int("probes", report.Probes),
		zap.Int("missing", report.Missing),
		zap.Int("inserted", report.Inserted),
		zap.Int("existing", report.Existing),
		zap.Int("pending", report.Pending),
		zap.Int("failed", report.Failed))

	return report, nil
}

// ReconcileContracts runs one child workflow per contract; a failing contract does not stop the others
func (w *workerCore) ReconcileContracts(ctx workflow.Context, requests []ReconcileRequest) ([]*reconciler.Report, error) {
	runID := workflow.GetInfo(ctx).WorkflowExecution.RunID

	futures := make([]workflow.ChildWorkflowFuture, len(requests))
	for i, request := range requests {
		childCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
			WorkflowID:            fmt.Sprintf("reconcile-%s-%s", types.NormalizeAddress(request.ContractAddress), runID),
			WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
			ParentClosePolicy:     enums.PARENT_CLOSE_POLICY_REQUEST_CANCEL,
		})
		futures[i] = workflow.ExecuteChildWorkflow(childCtx, w.ReconcileContract, request)
	}

	reports := make([]*reconciler.Report, 0, len(requests))
	var errs []error
	for i, future := range futures {
		var report reconciler.Report
		if err := future.Get(ctx, &report); err != nil {
			logger.ErrorWf(ctx, fmt.Errorf("contract reconciliation failed"),
				zap.Error(err),
				zap.String("contract", requests[i].ContractAddress))
			errs = append(errs, fmt.Errorf("%s: %w", requests[i].ContractAddress, err))
			continue
		}
		reports = append(reports, &report)
	}

	return reports, errors.Join(errs...)
}
