package workflows_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger-sync/internal/mocks"
	"github.com/feral-file/ff-ledger-sync/internal/reconciler"
	"github.com/feral-file/ff-ledger-sync/internal/workflows"
)

func TestExecutor_DelegatesToReconciler(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	r := mocks.NewMockReconciler(ctrl)
	executor := workflows.NewExecutor(r)

	r.EXPECT().DiscoverHighest(gomock.Any(), testContract, uint64(300)).
		Return(&reconciler.Discovery{Highest: 274, Probes: 9}, nil)
	r.EXPECT().ReconcileRange(gomock.Any(), testContract, uint64(1), uint64(274)).
		Return(&reconciler.Report{Contract: testContract, Missing: 1, Inserted: 1}, nil)

	discovery, err := executor.DiscoverHighest(ctx, testContract, 300)
	require.NoError(t, err)
	assert.Equal(t, uint64(274), discovery.Highest)
	assert.LessOrEqual(t, discovery.Probes, 9)

	report, err := executor.ReconcileRange(ctx, testContract, 1, 274)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)
}
