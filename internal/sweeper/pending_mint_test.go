package sweeper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger-sync/internal/alert"
	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/ingest"
	"github.com/feral-file/ff-ledger-sync/internal/mocks"
	"github.com/feral-file/ff-ledger-sync/internal/store"
	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
	"github.com/feral-file/ff-ledger-sync/internal/sweeper"
)

const (
	testContract = "0x00000000000000000000000000000000000000c1"
	testOwner    = "0x00000000000000000000000000000000000000d1"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testSweeperMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	ledger    *mocks.MockLedgerReader
	resolver  *mocks.MockTokenResolver
	alerter   *mocks.MockAlerter
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
}

func setupTestSweeper(t *testing.T, config sweeper.PendingMintSweeperConfig) (*testSweeperMocks, sweeper.PendingMintSweeper) {
	ctrl := gomock.NewController(t)
	tm := &testSweeperMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		ledger:    mocks.NewMockLedgerReader(ctrl),
		resolver:  mocks.NewMockTokenResolver(ctrl),
		alerter:   mocks.NewMockAlerter(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()

	s := sweeper.NewPendingMintSweeper(config, tm.store, tm.ledger, tm.resolver, tm.alerter, tm.publisher, tm.clock)
	return tm, s
}

func pendingEntry(id int64, tokenID string, retryCount int) schema.PendingMint {
	return schema.PendingMint{
		ID:              id,
		ContractAddress: testContract,
		TokenID:         tokenID,
		OwnerAddress:    testOwner,
		RetryCount:      retryCount,
	}
}

func TestRunCycle_FailureIncrementsRetryCount(t *testing.T) {
	ctx := context.Background()
	tm, s := setupTestSweeper(t, sweeper.PendingMintSweeperConfig{BatchSize: 10, AlertThreshold: 10})

	entry := pendingEntry(7, "280", 2)
	var claimToken string
	tm.store.EXPECT().ClaimPendingMints(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input store.ClaimPendingMintsInput) ([]schema.PendingMint, error) {
			claimToken = input.ClaimToken
			assert.Equal(t, testNow, input.AttemptedBefore)
			assert.Equal(t, testNow.Add(sweeper.DEFAULT_LEASE), input.LeaseUntil)
			assert.Equal(t, 10, input.Limit)
			return []schema.PendingMint{entry}, nil
		})
	tm.ledger.EXPECT().OwnerOf(gomock.Any(), testContract, "280").Return(testOwner, nil)
	tm.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), domain.SourcePendingSweep).
		Return(nil, domain.ErrTokenURIReverted)
	tm.store.EXPECT().FailPendingMint(gomock.Any(), int64(7), gomock.Any(), domain.ErrTokenURIReverted.Error(), testNow).
		DoAndReturn(func(_ context.Context, _ int64, token string, _ string, _ time.Time) (*schema.PendingMint, error) {
			assert.Equal(t, claimToken, token)
			updated := entry
			updated.RetryCount = 3
			return &updated, nil
		})

	result, err := s.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Claimed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Resolved)
	assert.Equal(t, 0, result.Alerts)
}

func TestRunCycle_Resolves(t *testing.T) {
	ctx := context.Background()
	tm, s := setupTestSweeper(t, sweeper.PendingMintSweeperConfig{BatchSize: 10})

	entry := pendingEntry(8, "281", 4)
	newOwner := "0x00000000000000000000000000000000000000d2"
	record := &schema.NFTRecord{ContractAddress: testContract, TokenID: "281", OwnerAddress: newOwner}

	tm.store.EXPECT().ClaimPendingMints(gomock.Any(), gomock.Any()).Return([]schema.PendingMint{entry}, nil)
	tm.ledger.EXPECT().OwnerOf(gomock.Any(), testContract, "281").Return(newOwner, nil)
	tm.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), domain.SourcePendingSweep).
		DoAndReturn(func(_ context.Context, mint ingest.Mint, _ string) (*schema.NFTRecord, error) {
			assert.Equal(t, newOwner, mint.OwnerAddress)
			assert.Equal(t, "281", mint.TokenID)
			return record, nil
		})
	tm.store.EXPECT().ResolvePendingMint(gomock.Any(), int64(8), gomock.Any(), record).Return(true, nil)
	tm.publisher.EXPECT().PublishNFTSynced(gomock.Any(), gomock.Any()).Return(nil)

	result, err := s.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Resolved)
	assert.Equal(t, 0, result.Failed)
}

func TestRunCycle_ClaimLost(t *testing.T) {
	ctx := context.Background()
	tm, s := setupTestSweeper(t, sweeper.PendingMintSweeperConfig{BatchSize: 10})

	record := &schema.NFTRecord{ContractAddress: testContract, TokenID: "300"}
	tm.store.EXPECT().ClaimPendingMints(gomock.Any(), gomock.Any()).
		Return([]schema.PendingMint{pendingEntry(1, "300", 0), pendingEntry(2, "301", 0)}, nil)
	tm.ledger.EXPECT().OwnerOf(gomock.Any(), testContract, gomock.Any()).Return(testOwner, nil).Times(2)
	tm.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), domain.SourcePendingSweep).
		DoAndReturn(func(_ context.Context, mint ingest.Mint, _ string) (*schema.NFTRecord, error) {
			if mint.TokenID == "300" {
				return record, nil
			}
			return nil, errors.New("gateway timeout")
		}).Times(2)
	tm.store.EXPECT().ResolvePendingMint(gomock.Any(), int64(1), gomock.Any(), record).Return(false, domain.ErrClaimLost)
	tm.store.EXPECT().FailPendingMint(gomock.Any(), int64(2), gomock.Any(), "gateway timeout", testNow).
		Return(nil, domain.ErrClaimLost)

	result, err := s.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Claimed)
	assert.Equal(t, 2, result.ClaimLost)
	assert.Equal(t, 0, result.Resolved)
	assert.Equal(t, 0, result.Failed)
}

func TestRunCycle_OwnerLookupFailureCountsAsAttempt(t *testing.T) {
	ctx := context.Background()
	tm, s := setupTestSweeper(t, sweeper.PendingMintSweeperConfig{BatchSize: 10})

	entry := pendingEntry(3, "290", 0)
	tm.store.EXPECT().ClaimPendingMints(gomock.Any(), gomock.Any()).Return([]schema.PendingMint{entry}, nil)
	tm.ledger.EXPECT().OwnerOf(gomock.Any(), testContract, "290").Return("", domain.ErrTokenNotFound)
	tm.store.EXPECT().FailPendingMint(gomock.Any(), int64(3), gomock.Any(), gomock.Any(), testNow).
		DoAndReturn(func(_ context.Context, _ int64, _ string, lastError string, _ time.Time) (*schema.PendingMint, error) {
			assert.Contains(t, lastError, domain.ErrTokenNotFound.Error())
			updated := entry
			updated.RetryCount = 1
			return &updated, nil
		})

	result, err := s.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
}

func TestRunCycle_AlertsAtThreshold(t *testing.T) {
	ctx := context.Background()
	tm, s := setupTestSweeper(t, sweeper.PendingMintSweeperConfig{BatchSize: 10, AlertThreshold: 5})

	entry := pendingEntry(9, "295", 4)
	tm.store.EXPECT().ClaimPendingMints(gomock.Any(), gomock.Any()).Return([]schema.PendingMint{entry}, nil)
	tm.ledger.EXPECT().OwnerOf(gomock.Any(), testContract, "295").Return(testOwner, nil)
	tm.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), domain.SourcePendingSweep).
		Return(nil, domain.ErrUnparseableMetadata)
	tm.store.EXPECT().FailPendingMint(gomock.Any(), int64(9), gomock.Any(), gomock.Any(), testNow).
		DoAndReturn(func(_ context.Context, _ int64, _ string, _ string, _ time.Time) (*schema.PendingMint, error) {
			updated := entry
			updated.RetryCount = 5
			return &updated, nil
		})
	tm.alerter.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a alert.Alert) (bool, error) {
			assert.Equal(t, "pending_mint:9:5", a.Key)
			assert.Equal(t, "295", a.Fields["token_id"])
			assert.Equal(t, "5", a.Fields["retry_count"])
			return true, nil
		})

	result, err := s.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Alerts)
}

func TestRunCycle_DrainsFullBatches(t *testing.T) {
	ctx := context.Background()
	tm, s := setupTestSweeper(t, sweeper.PendingMintSweeperConfig{BatchSize: 1})

	gomock.InOrder(
		tm.store.EXPECT().ClaimPendingMints(gomock.Any(), gomock.Any()).Return([]schema.PendingMint{pendingEntry(1, "1", 0)}, nil),
		tm.store.EXPECT().ClaimPendingMints(gomock.Any(), gomock.Any()).Return([]schema.PendingMint{pendingEntry(2, "2", 0)}, nil),
		tm.store.EXPECT().ClaimPendingMints(gomock.Any(), gomock.Any()).Return(nil, nil),
	)
	tm.ledger.EXPECT().OwnerOf(gomock.Any(), testContract, gomock.Any()).Return(testOwner, nil).Times(2)
	tm.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), domain.SourcePendingSweep).
		Return(&schema.NFTRecord{}, nil).Times(2)
	tm.store.EXPECT().ResolvePendingMint(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(2)

	result, err := s.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Claimed)
	assert.Equal(t, 2, result.Resolved)
}

func TestRunCycle_ClaimError(t *testing.T) {
	ctx := context.Background()
	tm, s := setupTestSweeper(t, sweeper.PendingMintSweeperConfig{})

	tm.store.EXPECT().ClaimPendingMints(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := s.RunCycle(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestShouldAlert(t *testing.T) {
	tests := []struct {
		name       string
		retryCount int
		threshold  int
		expected   bool
	}{
		{"disabled", 10, 0, false},
		{"below threshold", 9, 10, false},
		{"at threshold", 10, 10, true},
		{"between multiples", 15, 10, false},
		{"second multiple", 20, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sweeper.ShouldAlert(tt.retryCount, tt.threshold))
		})
	}
}

func TestStartStop(t *testing.T) {
	tm, s := setupTestSweeper(t, sweeper.PendingMintSweeperConfig{Interval: time.Hour})

	tm.store.EXPECT().ClaimPendingMints(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	tm.clock.EXPECT().After(time.Hour).Return(make(chan time.Time)).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()

	// Stop is a no-op until Start has flipped running
	require.Eventually(t, func() bool {
		_ = s.Stop(stopCtx)
		select {
		case err := <-done:
			return err == nil
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestStartAfterStop(t *testing.T) {
	tm, s := setupTestSweeper(t, sweeper.PendingMintSweeperConfig{Interval: time.Hour})

	tm.store.EXPECT().ClaimPendingMints(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	tm.clock.EXPECT().After(time.Hour).Return(make(chan time.Time)).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	run := func() chan error {
		done := make(chan error, 1)
		go func() {
			done <- s.Start(ctx)
		}()
		return done
	}
	stopAndWait := func(done chan error) {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
		defer stopCancel()
		require.Eventually(t, func() bool {
			_ = s.Stop(stopCtx)
			select {
			case err := <-done:
				return err == nil
			default:
				return false
			}
		}, time.Second, 10*time.Millisecond)
	}

	stopAndWait(run())

	// the second run keeps sweeping until stopped again
	second := run()
	select {
	case <-second:
		t.Fatal("restarted sweeper exited without being stopped")
	case <-time.After(100 * time.Millisecond):
	}
	stopAndWait(second)
}

func TestName(t *testing.T) {
	_, s := setupTestSweeper(t, sweeper.PendingMintSweeperConfig{})
	assert.Equal(t, "pending-mint-sweeper", s.Name())
}
