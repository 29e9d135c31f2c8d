package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	adapter := NewZapLoggerAdapter(zap.New(core))

	adapter.Info("Started Worker", "Namespace", "default", "TaskQueue", "ledger-reconciliation")
	adapter.(log.WithLogger).With("WorkflowID", "reconcile-cron").Warn("retrying", 42)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "temporal", first["component"])
	assert.Equal(t, "default", first["Namespace"])
	assert.Equal(t, "ledger-reconciliation", first["TaskQueue"])

	second := entries[1].ContextMap()
	assert.Equal(t, "reconcile-cron", second["WorkflowID"])
	assert.EqualValues(t, 42, second["extra"])
}

func TestKeyvalsToFieldsNonStringKey(t *testing.T) {
	fields := keyvalsToFields([]interface{}{7, "seven"})
	require.Len(t, fields, 1)
	assert.Equal(t, "7", fields[0].Key)
}
