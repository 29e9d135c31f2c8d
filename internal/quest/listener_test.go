package quest_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/mocks"
	"github.com/feral-file/ff-ledger-sync/internal/quest"
	"github.com/feral-file/ff-ledger-sync/internal/store"
	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
)

const (
	testQuestContract = "0x00000000000000000000000000000000000000a1"
	testWallet        = "0x00000000000000000000000000000000000000b1"
	testUserID        = "user-1"
	checkInQuestID    = 1
)

type testListenerMocks struct {
	ctrl      *gomock.Controller
	ledger    *mocks.MockLedgerReader
	store     *mocks.MockStore
	tracker   *mocks.MockCheckpointTracker
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
}

func setupTestListener(t *testing.T) (*testListenerMocks, quest.Listener) {
	ctrl := gomock.NewController(t)
	tm := &testListenerMocks{
		ctrl:      ctrl,
		ledger:    mocks.NewMockLedgerReader(ctrl),
		store:     mocks.NewMockStore(ctrl),
		tracker:   mocks.NewMockCheckpointTracker(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}

	l, err := quest.NewListener(quest.Config{
		ContractAddress: testQuestContract,
		StartBlock:      1,
		Catalog: []domain.QuestDefinition{
			{ID: checkInQuestID, Type: domain.QuestTypeDailyCheckIn, Points: 10},
			{ID: 2, Type: domain.QuestTypeMintPhoto, Points: 50},
		},
		NewBackOff: func() backoff.BackOff {
			return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, quest.DEFAULT_RETRY_MAX_RETRIES)
		},
	}, tm.ledger, tm.store, tm.tracker, tm.publisher, tm.clock)
	require.NoError(t, err)

	return tm, l
}

func questEvent(block uint64, ts time.Time) domain.QuestEvent {
	return domain.QuestEvent{
		ContractAddress: testQuestContract,
		WalletAddress:   testWallet,
		QuestID:         checkInQuestID,
		BlockNumber:     block,
		BlockTimestamp:  ts,
		TxHash:          fmt.Sprintf("0xABC%d", block),
	}
}

func transientError() error {
	return fmt.Errorf("failed to upsert quest completion: %w", &pgconn.PgError{Code: "08006"})
}

func TestQuestBackOff_Schedule(t *testing.T) {
	b := quest.QuestBackOff(time.Second, 3)

	assert.Equal(t, time.Second, b.NextBackOff())
	assert.Equal(t, 2*time.Second, b.NextBackOff())
	assert.Equal(t, 4*time.Second, b.NextBackOff())
	assert.Equal(t, backoff.Stop, b.NextBackOff())
}

func TestCompletionDate_UTCDay(t *testing.T) {
	newYork := time.FixedZone("EST", -5*60*60)

	tests := []struct {
		name     string
		ts       time.Time
		expected time.Time
	}{
		{
			name:     "late evening in a western zone is the next UTC day",
			ts:       time.Date(2026, 3, 1, 23, 30, 0, 0, newYork),
			expected: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "last second of a UTC day",
			ts:       time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC),
			expected: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "midnight UTC starts a new day",
			ts:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, quest.CompletionDate(tt.ts))
		})
	}
}

func TestHandleEvent_Credited(t *testing.T) {
	ctx := context.Background()
	tm, l := setupTestListener(t)

	ts := time.Date(2026, 3, 1, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))
	tm.store.EXPECT().GetUserIDByWallet(gomock.Any(), testWallet).Return(testUserID, nil)
	tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *schema.QuestCompletion) (bool, error) {
			assert.Equal(t, testUserID, c.UserID)
			assert.Equal(t, string(domain.QuestTypeDailyCheckIn), c.QuestType)
			assert.Equal(t, 10, c.PointsEarned)
			assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), c.CompletionDate)
			assert.Equal(t, ts.UTC(), c.CompletedAt)
			require.NotNil(t, c.TransactionHash)
			assert.Equal(t, "0xabc100", *c.TransactionHash)
			return true, nil
		})
	tm.publisher.EXPECT().PublishQuestCredited(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.QuestCreditedEvent) error {
			assert.Equal(t, "2026-03-02", e.CompletionDate)
			return nil
		})
	tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(99)).Return(nil)

	outcome, err := l.HandleEvent(ctx, questEvent(100, ts))
	require.NoError(t, err)
	assert.Equal(t, quest.OutcomeCredited, outcome)
}

func TestHandleEvent_DuplicateIsSuccess(t *testing.T) {
	tests := []struct {
		name      string
		upsertErr error
	}{
		{name: "insert ignored", upsertErr: nil},
		{name: "unique violation on the day key", upsertErr: &pgconn.PgError{Code: "23505", ConstraintName: store.QUEST_COMPLETION_KEY_INDEX}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, l := setupTestListener(t)

			tm.store.EXPECT().GetUserIDByWallet(gomock.Any(), testWallet).Return(testUserID, nil)
			tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).Return(false, tt.upsertErr)
			tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(99)).Return(nil)

			outcome, err := l.HandleEvent(context.Background(), questEvent(100, time.Now()))
			require.NoError(t, err)
			assert.Equal(t, quest.OutcomeDuplicate, outcome)
		})
	}
}

func TestHandleEvent_RetriesTransientErrors(t *testing.T) {
	tm, l := setupTestListener(t)

	tm.store.EXPECT().GetUserIDByWallet(gomock.Any(), testWallet).Return(testUserID, nil).Times(3)
	gomock.InOrder(
		tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).Return(false, transientError()),
		tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).Return(false, transientError()),
		tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).Return(true, nil),
	)
	tm.publisher.EXPECT().PublishQuestCredited(gomock.Any(), gomock.Any()).Return(nil)
	tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(99)).Return(nil)

	outcome, err := l.HandleEvent(context.Background(), questEvent(100, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, quest.OutcomeCredited, outcome)
}

func TestHandleEvent_TransientExhaustionHaltsCheckpoint(t *testing.T) {
	ctx := context.Background()
	tm, l := setupTestListener(t)

	tm.store.EXPECT().GetUserIDByWallet(gomock.Any(), testWallet).Return(testUserID, nil).Times(5)
	// initial attempt plus three retries for the first event, then the second event succeeds
	gomock.InOrder(
		tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).Return(false, transientError()).Times(4),
		tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).Return(true, nil),
	)
	tm.publisher.EXPECT().PublishQuestCredited(gomock.Any(), gomock.Any()).Return(nil)
	tm.tracker.EXPECT().Advance(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	outcome, err := l.HandleEvent(ctx, questEvent(100, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, quest.OutcomeTransient, outcome)

	outcome, err = l.HandleEvent(ctx, questEvent(105, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, quest.OutcomeCredited, outcome)
}

func TestHandleEvent_PermanentFailures(t *testing.T) {
	t.Run("unknown wallet", func(t *testing.T) {
		tm, l := setupTestListener(t)

		tm.store.EXPECT().GetUserIDByWallet(gomock.Any(), testWallet).
			Return("", fmt.Errorf("%w: %s", domain.ErrUnknownWallet, testWallet))
		tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(99)).Return(nil)

		outcome, err := l.HandleEvent(context.Background(), questEvent(100, time.Now()))
		require.NoError(t, err)
		assert.Equal(t, quest.OutcomePermanent, outcome)
	})

	t.Run("unknown quest", func(t *testing.T) {
		tm, l := setupTestListener(t)

		event := questEvent(100, time.Now())
		event.QuestID = 99
		tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(99)).Return(nil)

		outcome, err := l.HandleEvent(context.Background(), event)
		require.NoError(t, err)
		assert.Equal(t, quest.OutcomePermanent, outcome)
	})

	t.Run("unrelated constraint violation", func(t *testing.T) {
		tm, l := setupTestListener(t)

		tm.store.EXPECT().GetUserIDByWallet(gomock.Any(), testWallet).Return(testUserID, nil)
		tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).
			Return(false, &pgconn.PgError{Code: "23502", ColumnName: "quest_type"})
		tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(99)).Return(nil)

		outcome, err := l.HandleEvent(context.Background(), questEvent(100, time.Now()))
		require.NoError(t, err)
		assert.Equal(t, quest.OutcomePermanent, outcome)
	})
}

func TestHandleEvent_ContextCancelled(t *testing.T) {
	tm, l := setupTestListener(t)

	ctx, cancel := context.WithCancel(context.Background())
	tm.store.EXPECT().GetUserIDByWallet(gomock.Any(), testWallet).DoAndReturn(
		func(context.Context, string) (string, error) {
			cancel()
			return "", context.Canceled
		})

	_, err := l.HandleEvent(ctx, questEvent(100, time.Now()))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCatchUp(t *testing.T) {
	ctx := context.Background()
	tm, l := setupTestListener(t)

	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []domain.QuestEvent{questEvent(10, ts), questEvent(10, ts), questEvent(12, ts)}

	tm.tracker.EXPECT().Next(gomock.Any(), testQuestContract, uint64(1)).Return(uint64(6), nil)
	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(15), nil)
	tm.ledger.EXPECT().FilterQuestCompletions(gomock.Any(), testQuestContract, uint64(6), uint64(15)).Return(events, nil)
	tm.store.EXPECT().GetUserIDByWallet(gomock.Any(), testWallet).Return(testUserID, nil).Times(3)
	gomock.InOrder(
		tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).Return(true, nil),
		tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).Return(false, nil),
		tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).Return(true, nil),
	)
	tm.publisher.EXPECT().PublishQuestCredited(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	gomock.InOrder(
		tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(9)).Return(nil),
		tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(11)).Return(nil),
		tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(15)).Return(nil),
	)

	head, err := l.CatchUp(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(15), head)
}

func TestCatchUp_NothingNew(t *testing.T) {
	tm, l := setupTestListener(t)

	tm.tracker.EXPECT().Next(gomock.Any(), testQuestContract, uint64(1)).Return(uint64(21), nil)
	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(20), nil)

	head, err := l.CatchUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(20), head)
}

func TestStart_ResubscribesAfterFailure(t *testing.T) {
	tm, l := setupTestListener(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan time.Time)
	close(ready)

	tm.tracker.EXPECT().Get(gomock.Any(), testQuestContract).Return(uint64(20), nil)
	tm.tracker.EXPECT().Next(gomock.Any(), testQuestContract, uint64(1)).Return(uint64(21), nil).Times(2)
	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(20), nil).Times(2)
	tm.clock.EXPECT().After(quest.DEFAULT_RESUBSCRIBE_DELAY).Return((<-chan time.Time)(ready))

	gomock.InOrder(
		tm.ledger.EXPECT().SubscribeQuestCompletions(gomock.Any(), testQuestContract, uint64(21), gomock.Any()).
			Return(errors.New("subscription error: connection reset")),
		tm.ledger.EXPECT().SubscribeQuestCompletions(gomock.Any(), testQuestContract, uint64(21), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string, _ uint64, handler func(domain.QuestEvent) error) error {
				cancel()
				<-ctx.Done()
				return ctx.Err()
			}),
	)

	require.NoError(t, l.Start(ctx))
}

func TestStart_FillsBlocksBeforeFirstLiveEvent(t *testing.T) {
	tm, l := setupTestListener(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tm.tracker.EXPECT().Get(gomock.Any(), testQuestContract).Return(uint64(100), nil)
	tm.tracker.EXPECT().Next(gomock.Any(), testQuestContract, uint64(1)).Return(uint64(101), nil)
	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(100), nil)
	tm.ledger.EXPECT().FilterQuestCompletions(gomock.Any(), testQuestContract, uint64(101), uint64(109)).
		Return([]domain.QuestEvent{questEvent(105, ts)}, nil)
	tm.store.EXPECT().GetUserIDByWallet(gomock.Any(), testWallet).Return(testUserID, nil).Times(3)
	tm.store.EXPECT().UpsertQuestCompletion(gomock.Any(), gomock.Any()).Return(true, nil).Times(3)
	tm.publisher.EXPECT().PublishQuestCredited(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	gomock.InOrder(
		tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(104)).Return(nil),
		tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(109)).Return(nil),
		tm.tracker.EXPECT().Advance(gomock.Any(), testQuestContract, uint64(111)).Return(nil),
	)

	tm.ledger.EXPECT().SubscribeQuestCompletions(gomock.Any(), testQuestContract, uint64(101), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ uint64, handler func(domain.QuestEvent) error) error {
			// only the first live event triggers a fill
			require.NoError(t, handler(questEvent(110, ts)))
			require.NoError(t, handler(questEvent(112, ts)))
			cancel()
			return ctx.Err()
		})

	require.NoError(t, l.Start(ctx))
}

func TestStart_FillFailureResubscribesWithoutAdvancing(t *testing.T) {
	tm, l := setupTestListener(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm.tracker.EXPECT().Get(gomock.Any(), testQuestContract).Return(uint64(100), nil)
	tm.tracker.EXPECT().Next(gomock.Any(), testQuestContract, uint64(1)).Return(uint64(101), nil)
	tm.ledger.EXPECT().LatestBlock(gomock.Any()).Return(uint64(100), nil)
	tm.ledger.EXPECT().FilterQuestCompletions(gomock.Any(), testQuestContract, uint64(101), uint64(109)).
		Return(nil, errors.New("rpc timeout"))
	tm.clock.EXPECT().After(quest.DEFAULT_RESUBSCRIBE_DELAY).DoAndReturn(func(time.Duration) <-chan time.Time {
		cancel()
		return make(chan time.Time)
	})

	tm.ledger.EXPECT().SubscribeQuestCompletions(gomock.Any(), testQuestContract, uint64(101), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ uint64, handler func(domain.QuestEvent) error) error {
			return handler(questEvent(110, time.Now()))
		})

	require.NoError(t, l.Start(ctx))
}

func TestNewListener_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := quest.NewListener(quest.Config{}, nil, nil, nil, nil, mocks.NewMockClock(ctrl))
	assert.Error(t, err)

	_, err = quest.NewListener(quest.Config{
		ContractAddress: testQuestContract,
		Catalog:         []domain.QuestDefinition{{ID: 1, Type: "bogus"}},
	}, nil, nil, nil, nil, mocks.NewMockClock(ctrl))
	assert.Error(t, err)

	_, err = quest.NewListener(quest.Config{
		ContractAddress: testQuestContract,
		Catalog: []domain.QuestDefinition{
			{ID: 1, Type: domain.QuestTypeDailyCheckIn},
			{ID: 1, Type: domain.QuestTypeShareNFT},
		},
	}, nil, nil, nil, nil, mocks.NewMockClock(ctrl))
	assert.Error(t, err)
}
