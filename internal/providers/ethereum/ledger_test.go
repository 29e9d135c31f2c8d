package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/mocks"
	ledger "github.com/feral-file/ff-ledger-sync/internal/providers/ethereum"
)

const testContract = "0x1111111111111111111111111111111111111111"

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testLedgerMocks struct {
	ctrl   *gomock.Controller
	client *mocks.MockEthClient
	blocks *mocks.MockBlockProvider
	reader ledger.LedgerReader
}

func setupTestLedger(t *testing.T) *testLedgerMocks {
	ctrl := gomock.NewController(t)

	tm := &testLedgerMocks{
		ctrl:   ctrl,
		client: mocks.NewMockEthClient(ctrl),
		blocks: mocks.NewMockBlockProvider(ctrl),
	}
	tm.reader = ledger.NewLedgerReader(tm.client, tm.blocks, nil, ledger.Config{
		CallTimeout:   time.Second,
		LogRangeLimit: 100,
		MaxRetries:    2,
		NewBackOff:    func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	})
	return tm
}

func packOutput(t *testing.T, method string, values ...interface{}) []byte {
	t.Helper()
	out, err := ledger.ERC721ABI.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return out
}

func TestLedgerReader_OwnerOf(t *testing.T) {
	ctx := context.Background()
	owner := common.HexToAddress("0xAbCdEf0123456789aBcDeF0123456789AbCdEf01")

	t.Run("returns lowercase owner", func(t *testing.T) {
		tm := setupTestLedger(t)
		tm.client.EXPECT().
			CallContract(gomock.Any(), gomock.Any(), nil).
			DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
				assert.Equal(t, common.HexToAddress(testContract), *msg.To)
				assert.Equal(t, ledger.ERC721ABI.Methods["ownerOf"].ID, msg.Data[:4])
				return packOutput(t, "ownerOf", owner), nil
			})

		got, err := tm.reader.OwnerOf(ctx, testContract, "274")
		require.NoError(t, err)
		assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", got)
	})

	t.Run("revert is definitive and not retried", func(t *testing.T) {
		tm := setupTestLedger(t)
		tm.client.EXPECT().
			CallContract(gomock.Any(), gomock.Any(), nil).
			Return(nil, errors.New("execution reverted: ERC721: invalid token ID")).
			Times(1)

		_, err := tm.reader.OwnerOf(ctx, testContract, "275")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})

	t.Run("zero address owner is not found", func(t *testing.T) {
		tm := setupTestLedger(t)
		tm.client.EXPECT().
			CallContract(gomock.Any(), gomock.Any(), nil).
			Return(packOutput(t, "ownerOf", common.Address{}), nil)

		_, err := tm.reader.OwnerOf(ctx, testContract, "1")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})

	t.Run("transient error is retried", func(t *testing.T) {
		tm := setupTestLedger(t)
		gomock.InOrder(
			tm.client.EXPECT().CallContract(gomock.Any(), gomock.Any(), nil).Return(nil, errors.New("connection reset")),
			tm.client.EXPECT().CallContract(gomock.Any(), gomock.Any(), nil).Return(packOutput(t, "ownerOf", owner), nil),
		)

		got, err := tm.reader.OwnerOf(ctx, testContract, "2")
		require.NoError(t, err)
		assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", got)
	})

	t.Run("exhausted retries stay inconclusive", func(t *testing.T) {
		tm := setupTestLedger(t)
		tm.client.EXPECT().
			CallContract(gomock.Any(), gomock.Any(), nil).
			Return(nil, context.DeadlineExceeded).
			Times(3)

		_, err := tm.reader.OwnerOf(ctx, testContract, "3")
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrTokenNotFound))
	})

	t.Run("invalid token id", func(t *testing.T) {
		tm := setupTestLedger(t)
		_, err := tm.reader.OwnerOf(ctx, testContract, "abc")
		assert.ErrorContains(t, err, "invalid token id")
	})
}

func TestLedgerReader_TokenURI(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		result   []byte
		callErr  error
		expected string
		wantErr  error
	}{
		{
			name:     "data uri",
			result:   packOutput(t, "tokenURI", "data:application/json;base64,e30="),
			expected: "data:application/json;base64,e30=",
		},
		{
			name:    "empty string",
			result:  packOutput(t, "tokenURI", ""),
			wantErr: domain.ErrEmptyTokenURI,
		},
		{
			name:    "reverted",
			callErr: errors.New("execution reverted"),
			wantErr: domain.ErrTokenURIReverted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestLedger(t)
			tm.client.EXPECT().CallContract(gomock.Any(), gomock.Any(), nil).Return(tt.result, tt.callErr)

			uri, err := tm.reader.TokenURI(ctx, testContract, "280")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, uri)
		})
	}
}

func TestLedgerReader_TotalSupply(t *testing.T) {
	ctx := context.Background()

	t.Run("supported", func(t *testing.T) {
		tm := setupTestLedger(t)
		tm.client.EXPECT().CallContract(gomock.Any(), gomock.Any(), nil).Return(packOutput(t, "totalSupply", big.NewInt(274)), nil)

		supply, err := tm.reader.TotalSupply(ctx, testContract)
		require.NoError(t, err)
		assert.Equal(t, uint64(274), supply)
	})

	t.Run("missing function", func(t *testing.T) {
		tm := setupTestLedger(t)
		tm.client.EXPECT().CallContract(gomock.Any(), gomock.Any(), nil).Return([]byte{}, nil)

		_, err := tm.reader.TotalSupply(ctx, testContract)
		assert.ErrorIs(t, err, domain.ErrTotalSupplyUnsupported)
	})
}

func transferLog(from, to common.Address, tokenID int64, blockNumber uint64, index uint) types.Log {
	return types.Log{
		Address: common.HexToAddress(testContract),
		Topics: []common.Hash{
			ledger.TransferEventSignature,
			common.BytesToHash(from.Bytes()),
			common.BytesToHash(to.Bytes()),
			common.BigToHash(big.NewInt(tokenID)),
		},
		BlockNumber: blockNumber,
		TxHash:      common.BigToHash(big.NewInt(int64(blockNumber)*1000 + int64(index))),
		Index:       index,
	}
}

func TestLedgerReader_FilterTransfers(t *testing.T) {
	ctx := context.Background()
	alice := common.HexToAddress("0x2222222222222222222222222222222222222222")
	bob := common.HexToAddress("0x3333333333333333333333333333333333333333")

	t.Run("paginates and orders events", func(t *testing.T) {
		tm := setupTestLedger(t)

		var ranges [][2]uint64
		tm.client.EXPECT().
			FilterLogs(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
				ranges = append(ranges, [2]uint64{q.FromBlock.Uint64(), q.ToBlock.Uint64()})
				switch q.FromBlock.Uint64() {
				case 1:
					return []types.Log{
						transferLog(common.Address{}, alice, 7, 50, 3),
						transferLog(common.Address{}, alice, 6, 50, 1),
					}, nil
				case 201:
					return []types.Log{transferLog(alice, bob, 7, 240, 0)}, nil
				}
				return nil, nil
			}).
			Times(3)

		events, err := tm.reader.FilterTransfers(ctx, testContract, 1, 250)
		require.NoError(t, err)

		assert.Equal(t, [][2]uint64{{1, 100}, {101, 200}, {201, 250}}, ranges)
		require.Len(t, events, 3)
		assert.Equal(t, "6", events[0].TokenID)
		assert.True(t, events[0].IsMint())
		assert.Equal(t, "7", events[1].TokenID)
		assert.Equal(t, "0x3333333333333333333333333333333333333333", events[2].To)
		assert.False(t, events[2].IsMint())
	})

	t.Run("halves the range on too many results", func(t *testing.T) {
		tm := setupTestLedger(t)

		var ranges [][2]uint64
		tm.client.EXPECT().
			FilterLogs(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
				ranges = append(ranges, [2]uint64{q.FromBlock.Uint64(), q.ToBlock.Uint64()})
				if q.ToBlock.Uint64()-q.FromBlock.Uint64() >= 50 {
					return nil, errors.New("query returned more than 10000 results")
				}
				return nil, nil
			}).
			AnyTimes()

		_, err := tm.reader.FilterTransfers(ctx, testContract, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, [][2]uint64{{1, 100}, {1, 50}, {51, 100}}, ranges)
	})

	t.Run("empty range", func(t *testing.T) {
		tm := setupTestLedger(t)
		events, err := tm.reader.FilterTransfers(ctx, testContract, 10, 9)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestLedgerReader_FindMintLog(t *testing.T) {
	ctx := context.Background()
	minter := common.HexToAddress("0x4444444444444444444444444444444444444444")

	t.Run("found", func(t *testing.T) {
		tm := setupTestLedger(t)
		tm.blocks.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(150), nil)
		tm.client.EXPECT().
			FilterLogs(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
				assert.Equal(t, ledger.ZeroAddressTopic, q.Topics[1][0])
				assert.Equal(t, common.BigToHash(big.NewInt(280)), q.Topics[3][0])
				if q.FromBlock.Uint64() == 101 {
					return []types.Log{transferLog(common.Address{}, minter, 280, 120, 0)}, nil
				}
				return nil, nil
			}).
			Times(2)

		event, err := tm.reader.FindMintLog(ctx, testContract, "280", 1)
		require.NoError(t, err)
		assert.Equal(t, "0x4444444444444444444444444444444444444444", event.To)
		assert.Equal(t, uint64(120), event.BlockNumber)
	})

	t.Run("not found", func(t *testing.T) {
		tm := setupTestLedger(t)
		tm.blocks.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(50), nil)
		tm.client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := tm.reader.FindMintLog(ctx, testContract, "280", 1)
		assert.ErrorIs(t, err, domain.ErrMintLogNotFound)
	})
}

func questLog(wallet common.Address, questID, questDay int64, blockNumber uint64, index uint) types.Log {
	return types.Log{
		Address: common.HexToAddress(testContract),
		Topics: []common.Hash{
			ledger.QuestCompletedEventSignature,
			common.BytesToHash(wallet.Bytes()),
			common.BigToHash(big.NewInt(questID)),
		},
		Data:        common.BigToHash(big.NewInt(questDay)).Bytes(),
		BlockNumber: blockNumber,
		TxHash:      common.BigToHash(big.NewInt(int64(blockNumber))),
		Index:       index,
	}
}

func TestLedgerReader_FilterQuestCompletions(t *testing.T) {
	ctx := context.Background()
	tm := setupTestLedger(t)
	wallet := common.HexToAddress("0x5555555555555555555555555555555555555555")
	blockTime := time.Date(2025, 9, 17, 23, 59, 59, 0, time.UTC)

	tm.client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return([]types.Log{
		questLog(wallet, 1, 20348, 10, 0),
		{Address: common.HexToAddress(testContract), Topics: []common.Hash{ledger.QuestCompletedEventSignature}, BlockNumber: 10, Index: 1},
	}, nil)
	tm.blocks.EXPECT().GetBlockTimestamp(gomock.Any(), uint64(10)).Return(blockTime, nil)

	events, err := tm.reader.FilterQuestCompletions(ctx, testContract, 1, 20)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "0x5555555555555555555555555555555555555555", events[0].WalletAddress)
	assert.Equal(t, uint64(1), events[0].QuestID)
	assert.Equal(t, uint64(20348), events[0].QuestDay)
	assert.Equal(t, blockTime, events[0].BlockTimestamp)
}

type fakeSubscription struct {
	errCh chan error
}

func (s *fakeSubscription) Err() <-chan error { return s.errCh }
func (s *fakeSubscription) Unsubscribe()      {}

func TestLedgerReader_SubscribeQuestCompletions(t *testing.T) {
	tm := setupTestLedger(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wallet := common.HexToAddress("0x5555555555555555555555555555555555555555")
	sub := &fakeSubscription{errCh: make(chan error)}
	tm.client.EXPECT().
		SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
			assert.Equal(t, uint64(42), q.FromBlock.Uint64())
			go func() {
				removed := questLog(wallet, 1, 1, 42, 0)
				removed.Removed = true
				ch <- removed
				ch <- questLog(wallet, 2, 1, 43, 0)
			}()
			return sub, nil
		})
	tm.blocks.EXPECT().GetBlockTimestamp(gomock.Any(), uint64(43)).Return(time.Unix(1_700_000_000, 0), nil)

	stop := errors.New("stop")
	var received []domain.QuestEvent
	err := tm.reader.SubscribeQuestCompletions(ctx, testContract, 42, func(event domain.QuestEvent) error {
		received = append(received, event)
		return stop
	})

	assert.ErrorIs(t, err, stop)
	require.Len(t, received, 1)
	assert.Equal(t, uint64(2), received[0].QuestID)
	assert.Equal(t, time.UTC, received[0].BlockTimestamp.Location())
}
