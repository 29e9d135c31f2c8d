package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/block"
	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
	internalTypes "github.com/feral-file/ff-ledger-sync/internal/types"
)

const erc721ABIJSON = `[
{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}
]`

var erc721ABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc721ABIJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid ERC721 ABI: %v", err))
	}
	return parsed
}()

var errExecutionReverted = errors.New("execution reverted")

// Config holds ledger reader settings
type Config struct {
	// CallTimeout bounds every single RPC attempt
	CallTimeout time.Duration
	// LogRangeLimit is the initial block span of one eth_getLogs request
	LogRangeLimit uint64
	// MaxRetries bounds retries of transient failures per call
	MaxRetries uint64
	// NewBackOff builds the retry schedule; nil uses an exponential backoff
	NewBackOff func() backoff.BackOff
}

// LedgerReader is the read-only view of the ledger used by every worker
//
//go:generate mockgen -source=ledger.go -destination=../../mocks/ledger_reader.go -package=mocks -mock_names=LedgerReader=MockLedgerReader
type LedgerReader interface {
	// LatestBlock returns the current head block number
	LatestBlock(ctx context.Context) (uint64, error)

	// OwnerOf returns the lowercase owner of a token, domain.ErrTokenNotFound when it does not exist
	OwnerOf(ctx context.Context, contractAddress string, tokenID string) (string, error)

	// TokenURI returns the raw tokenURI, domain.ErrTokenURIReverted or domain.ErrEmptyTokenURI on definitive failures
	TokenURI(ctx context.Context, contractAddress string, tokenID string) (string, error)

	// TotalSupply returns totalSupply(), domain.ErrTotalSupplyUnsupported when the contract lacks it
	TotalSupply(ctx context.Context, contractAddress string) (uint64, error)

	// FindMintLog returns the Transfer log minting a token, domain.ErrMintLogNotFound when absent
	FindMintLog(ctx context.Context, contractAddress string, tokenID string, fromBlock uint64) (*domain.TransferEvent, error)

	// FilterTransfers returns ERC721 Transfer events of a contract in [fromBlock, toBlock] in log order
	FilterTransfers(ctx context.Context, contractAddress string, fromBlock, toBlock uint64) ([]domain.TransferEvent, error)

	// FilterQuestCompletions returns quest events in [fromBlock, toBlock] in log order with block timestamps
	FilterQuestCompletions(ctx context.Context, contractAddress string, fromBlock, toBlock uint64) ([]domain.QuestEvent, error)

	// SubscribeQuestCompletions streams quest events from fromBlock until ctx ends, the subscription fails or handler returns an error
	SubscribeQuestCompletions(ctx context.Context, contractAddress string, fromBlock uint64, handler func(domain.QuestEvent) error) error

	// Close closes the connection
	Close()
}

type ledgerReader struct {
	client  adapter.EthClient
	blocks  block.BlockProvider
	limiter *rate.Limiter
	config  Config
}

// NewLedgerReader creates a ledger reader. limiter paces every RPC request.
func NewLedgerReader(client adapter.EthClient, blocks block.BlockProvider, limiter *rate.Limiter, config Config) LedgerReader {
	if config.CallTimeout <= 0 {
		config.CallTimeout = 10 * time.Second
	}
	if config.LogRangeLimit == 0 {
		config.LogRangeLimit = 2000
	}
	if config.NewBackOff == nil {
		config.NewBackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		}
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	return &ledgerReader{
		client:  client,
		blocks:  blocks,
		limiter: limiter,
		config:  config,
	}
}

// retry runs fn with pacing, a per-attempt timeout and backoff on transient errors
func (r *ledgerReader) retry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	b := backoff.WithContext(backoff.WithMaxRetries(r.config.NewBackOff(), r.config.MaxRetries), ctx)

	return backoff.RetryNotify(func() error {
		if err := r.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		callCtx, cancel := context.WithTimeout(ctx, r.config.CallTimeout)
		defer cancel()
		return fn(callCtx)
	}, b, func(err error, d time.Duration) {
		logger.WarnCtx(ctx, "Ledger call failed, retrying",
			zap.String("op", op),
			zap.Error(err),
			zap.Duration("retryIn", d))
	})
}

// call invokes a view method; reverts are returned as errExecutionReverted without retry
func (r *ledgerReader) call(ctx context.Context, contractAddress string, method string, args ...interface{}) ([]byte, error) {
	data, err := erc721ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contractAddress)
	var result []byte
	err = r.retry(ctx, method, func(ctx context.Context) error {
		out, err := r.client.CallContract(ctx, ethereum.CallMsg{
			To:   &contractAddr,
			Data: data,
		}, nil)
		if err != nil {
			if isRevertError(err) {
				return backoff.Permanent(fmt.Errorf("%w: %s", errExecutionReverted, err.Error()))
			}
			return err
		}
		result = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func parseTokenID(tokenID string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("invalid token id: %s", tokenID)
	}
	return id, nil
}

// LatestBlock returns the head block number through the block provider cache
func (r *ledgerReader) LatestBlock(ctx context.Context) (uint64, error) {
	var head uint64
	err := r.retry(ctx, "blockNumber", func(ctx context.Context) error {
		var err error
		head, err = r.blocks.GetLatestBlock(ctx)
		return err
	})
	return head, err
}

// OwnerOf fetches the current owner of an ERC721 token
func (r *ledgerReader) OwnerOf(ctx context.Context, contractAddress string, tokenID string) (string, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return "", err
	}

	result, err := r.call(ctx, contractAddress, "ownerOf", id)
	if err != nil {
		if errors.Is(err, errExecutionReverted) {
			return "", fmt.Errorf("%w: %s #%s", domain.ErrTokenNotFound, contractAddress, tokenID)
		}
		return "", fmt.Errorf("failed to call ownerOf: %w", err)
	}
	if len(result) == 0 {
		return "", fmt.Errorf("%w: %s #%s returned no data", domain.ErrTokenNotFound, contractAddress, tokenID)
	}

	var owner common.Address
	if err := erc721ABI.UnpackIntoInterface(&owner, "ownerOf", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}
	if owner == (common.Address{}) {
		return "", fmt.Errorf("%w: %s #%s is owned by the zero address", domain.ErrTokenNotFound, contractAddress, tokenID)
	}

	return internalTypes.NormalizeAddress(owner.Hex()), nil
}

// TokenURI fetches the tokenURI from an ERC721 contract
func (r *ledgerReader) TokenURI(ctx context.Context, contractAddress string, tokenID string) (string, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return "", err
	}

	result, err := r.call(ctx, contractAddress, "tokenURI", id)
	if err != nil {
		if errors.Is(err, errExecutionReverted) {
			return "", fmt.Errorf("%w: %s #%s", domain.ErrTokenURIReverted, contractAddress, tokenID)
		}
		return "", fmt.Errorf("failed to call tokenURI: %w", err)
	}
	if len(result) == 0 {
		return "", fmt.Errorf("%w: %s #%s returned no data", domain.ErrTokenURIReverted, contractAddress, tokenID)
	}

	var uri string
	if err := erc721ABI.UnpackIntoInterface(&uri, "tokenURI", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}
	if strings.TrimSpace(uri) == "" {
		return "", fmt.Errorf("%w: %s #%s", domain.ErrEmptyTokenURI, contractAddress, tokenID)
	}

	return uri, nil
}

// TotalSupply fetches totalSupply() where the contract implements it
func (r *ledgerReader) TotalSupply(ctx context.Context, contractAddress string) (uint64, error) {
	result, err := r.call(ctx, contractAddress, "totalSupply")
	if err != nil {
		if errors.Is(err, errExecutionReverted) {
			return 0, fmt.Errorf("%w: %s", domain.ErrTotalSupplyUnsupported, contractAddress)
		}
		return 0, fmt.Errorf("failed to call totalSupply: %w", err)
	}
	if len(result) == 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrTotalSupplyUnsupported, contractAddress)
	}

	var supply *big.Int
	if err := erc721ABI.UnpackIntoInterface(&supply, "totalSupply", result); err != nil {
		return 0, fmt.Errorf("failed to unpack result: %w", err)
	}
	if supply == nil || !supply.IsUint64() {
		return 0, fmt.Errorf("totalSupply out of range for %s", contractAddress)
	}

	return supply.Uint64(), nil
}

// FindMintLog searches Transfer(0x0, *, tokenId) from fromBlock to head
func (r *ledgerReader) FindMintLog(ctx context.Context, contractAddress string, tokenID string, fromBlock uint64) (*domain.TransferEvent, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}

	head, err := r.LatestBlock(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := r.filterLogs(ctx, ethereum.FilterQuery{
		Addresses: []common.Address{common.HexToAddress(contractAddress)},
		Topics: [][]common.Hash{
			{transferEventSignature},
			{zeroAddressTopic},
			nil,
			{common.BigToHash(id)},
		},
	}, fromBlock, head)
	if err != nil {
		return nil, fmt.Errorf("failed to filter mint logs: %w", err)
	}

	for _, vLog := range logs {
		if vLog.Removed {
			continue
		}
		event, err := ParseTransferLog(vLog)
		if err != nil || event == nil {
			continue
		}
		return event, nil
	}

	return nil, fmt.Errorf("%w: %s #%s", domain.ErrMintLogNotFound, contractAddress, tokenID)
}

// FilterTransfers returns ERC721 Transfer events in log order
func (r *ledgerReader) FilterTransfers(ctx context.Context, contractAddress string, fromBlock, toBlock uint64) ([]domain.TransferEvent, error) {
	logs, err := r.filterLogs(ctx, ethereum.FilterQuery{
		Addresses: []common.Address{common.HexToAddress(contractAddress)},
		Topics:    [][]common.Hash{{transferEventSignature}},
	}, fromBlock, toBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to filter transfer logs: %w", err)
	}

	events := make([]domain.TransferEvent, 0, len(logs))
	for _, vLog := range logs {
		if vLog.Removed {
			continue
		}
		event, err := ParseTransferLog(vLog)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to parse transfer log", zap.Error(err), zap.String("txHash", vLog.TxHash.Hex()))
			continue
		}
		if event == nil {
			continue
		}
		events = append(events, *event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].BlockNumber != events[j].BlockNumber {
			return events[i].BlockNumber < events[j].BlockNumber
		}
		return events[i].LogIndex < events[j].LogIndex
	})

	return events, nil
}

// FilterQuestCompletions returns quest events with their block timestamps in log order
func (r *ledgerReader) FilterQuestCompletions(ctx context.Context, contractAddress string, fromBlock, toBlock uint64) ([]domain.QuestEvent, error) {
	logs, err := r.filterLogs(ctx, ethereum.FilterQuery{
		Addresses: []common.Address{common.HexToAddress(contractAddress)},
		Topics:    [][]common.Hash{{questCompletedEventSignature}},
	}, fromBlock, toBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to filter quest logs: %w", err)
	}

	events := make([]domain.QuestEvent, 0, len(logs))
	for _, vLog := range logs {
		if vLog.Removed {
			continue
		}
		event, err := r.questEvent(ctx, vLog)
		if err != nil {
			return nil, err
		}
		if event == nil {
			continue
		}
		events = append(events, *event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].BlockNumber != events[j].BlockNumber {
			return events[i].BlockNumber < events[j].BlockNumber
		}
		return events[i].LogIndex < events[j].LogIndex
	})

	return events, nil
}

// questEvent parses a quest log and attaches its block timestamp; malformed logs yield nil
func (r *ledgerReader) questEvent(ctx context.Context, vLog types.Log) (*domain.QuestEvent, error) {
	event, err := ParseQuestLog(vLog)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to parse quest log", zap.Error(err), zap.String("txHash", vLog.TxHash.Hex()))
		return nil, nil
	}

	err = r.retry(ctx, "blockTimestamp", func(ctx context.Context) error {
		ts, err := r.blocks.GetBlockTimestamp(ctx, vLog.BlockNumber)
		if err != nil {
			return err
		}
		event.BlockTimestamp = ts.UTC()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get timestamp of block %d: %w", vLog.BlockNumber, err)
	}

	return event, nil
}

// SubscribeQuestCompletions subscribes to quest logs of a contract
func (r *ledgerReader) SubscribeQuestCompletions(ctx context.Context, contractAddress string, fromBlock uint64, handler func(domain.QuestEvent) error) error {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{common.HexToAddress(contractAddress)},
		Topics:    [][]common.Hash{{questCompletedEventSignature}},
	}

	logs := make(chan types.Log)
	sub, err := r.client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return fmt.Errorf("failed to subscribe to filter logs: %w", err)
	}
	defer sub.Unsubscribe()

	logger.InfoCtx(ctx, "Subscribed to quest completions",
		zap.String("contract", contractAddress),
		zap.Uint64("fromBlock", fromBlock))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("subscription error: %w", err)
		case vLog := <-logs:
			if vLog.Removed {
				logger.WarnCtx(ctx, "Ignoring removed quest log", zap.String("txHash", vLog.TxHash.Hex()))
				continue
			}
			event, err := r.questEvent(ctx, vLog)
			if err != nil {
				return err
			}
			if event == nil {
				continue
			}
			if err := handler(*event); err != nil {
				return err
			}
		}
	}
}

// filterLogs walks [fromBlock, toBlock] in chunks of LogRangeLimit, halving the chunk when
// the provider rejects a range for returning too many results
func (r *ledgerReader) filterLogs(ctx context.Context, query ethereum.FilterQuery, fromBlock, toBlock uint64) ([]types.Log, error) {
	if fromBlock > toBlock {
		return nil, nil
	}

	var allLogs []types.Log
	stepSize := r.config.LogRangeLimit
	current := fromBlock

	for current <= toBlock {
		end := current + stepSize - 1
		if end > toBlock || end < current {
			end = toBlock
		}

		rangeQuery := query
		rangeQuery.FromBlock = new(big.Int).SetUint64(current)
		rangeQuery.ToBlock = new(big.Int).SetUint64(end)

		var logs []types.Log
		err := r.retry(ctx, "getLogs", func(ctx context.Context) error {
			var err error
			logs, err = r.client.FilterLogs(ctx, rangeQuery)
			if err != nil && isTooManyResultsError(err) {
				return backoff.Permanent(err)
			}
			return err
		})
		if err != nil {
			if isTooManyResultsError(err) && stepSize > 1 {
				stepSize /= 2
				logger.WarnCtx(ctx, "Too many results, reducing step size",
					zap.Uint64("newStepSize", stepSize),
					zap.Uint64("fromBlock", current),
					zap.Uint64("toBlock", end))
				continue
			}
			return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", current, end, err)
		}

		allLogs = append(allLogs, logs...)
		if end == toBlock {
			break
		}
		current = end + 1
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum") ||
		strings.Contains(errStr, "block range")
}

// isRevertError reports whether a call failed because the contract reverted
func isRevertError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "execution reverted") ||
		strings.Contains(msg, "invalid opcode") ||
		strings.Contains(msg, "vm execution error")
}

// Close closes the connection
func (r *ledgerReader) Close() {
	r.client.Close()
}
