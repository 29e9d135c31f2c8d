package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// WorkflowInfo identifies a workflow execution in log lines and Sentry tags
type WorkflowInfo struct {
	WorkflowType string
	WorkflowID   string
	RunID        string
	TaskQueue    string
}

// GetWorkflowInfo extracts execution details from a workflow context
func GetWorkflowInfo(ctx workflow.Context) *WorkflowInfo {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return nil
	}

	name := info.WorkflowType.Name
	if name == "" {
		name = "unknown"
	}

	return &WorkflowInfo{
		WorkflowType: name,
		WorkflowID:   info.WorkflowExecution.ID,
		RunID:        info.WorkflowExecution.RunID,
		TaskQueue:    info.TaskQueueName,
	}
}

func workflowFields(ctx workflow.Context, fields []zap.Field) []zap.Field {
	info := GetWorkflowInfo(ctx)
	if info == nil {
		return fields
	}
	return append(fields,
		zap.String("workflow_type", info.WorkflowType),
		zap.String("workflow_id", info.WorkflowID),
		zap.String("run_id", info.RunID),
	)
}

// InfoWf logs an info message tagged with the workflow execution.
// Suppressed during replay.
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	log.Info(msg, workflowFields(ctx, fields)...)
}

// WarnWf logs a warning tagged with the workflow execution
func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	log.Warn(msg, workflowFields(ctx, fields)...)
}

// ErrorWf logs an error tagged with the workflow execution
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	Error(err, workflowFields(ctx, fields)...)
}
