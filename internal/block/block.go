package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
)

// DEFAULT_MAX_CACHED_TIMESTAMPS bounds the timestamp cache when Config leaves it unset
const DEFAULT_MAX_CACHED_TIMESTAMPS = 4096

// headInfo is the cached chain head
type headInfo struct {
	Number    uint64
	FetchedAt time.Time
}

// timestampEntry is a cached block timestamp
type timestampEntry struct {
	Timestamp time.Time
	CachedAt  time.Time
}

// BlockProvider serves the chain head and block timestamps.
// The scanner polls the head on every tick and the quest listener needs the timestamp of every
// event block, so both are cached.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider,BlockFetcher=MockBlockFetcher
type BlockProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// GetBlockTimestamp returns the UTC timestamp of a block, potentially from cache
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// BlockFetcher reads block information from the ledger
type BlockFetcher interface {
	// FetchLatestBlock fetches the latest block number
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// FetchBlockTimestamp fetches the timestamp of a block
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TTL is how long to cache the head block number
	TTL time.Duration

	// StaleWindow is how long a cached value may still be served when fetching fails
	StaleWindow time.Duration

	// BlockTimestampTTL is how long to cache block timestamps; 0 caches until evicted
	BlockTimestampTTL time.Duration

	// MaxCachedTimestamps bounds the timestamp cache; the oldest entry is evicted first
	MaxCachedTimestamps int
}

type blockProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu         sync.RWMutex
	head       *headInfo
	timestamps map[uint64]*timestampEntry
	order      []uint64
}

// NewBlockProvider creates a new BlockProvider with caching
func NewBlockProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	if config.MaxCachedTimestamps <= 0 {
		config.MaxCachedTimestamps = DEFAULT_MAX_CACHED_TIMESTAMPS
	}

	return &blockProvider{
		fetcher:    fetcher,
		config:     config,
		clock:      clock,
		timestamps: make(map[uint64]*timestampEntry),
	}
}

// GetLatestBlock returns the latest block number, using cache if valid
func (p *blockProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.FetchedAt) < p.config.TTL {
		return cached.Number, nil
	}

	blockNumber, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.FetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Serving stale head block", zap.Uint64("block_number", cached.Number), zap.Error(err))
			return cached.Number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	// the head never moves backwards within a process
	if p.head == nil || blockNumber >= p.head.Number {
		p.head = &headInfo{Number: blockNumber, FetchedAt: now}
	} else {
		blockNumber = p.head.Number
	}
	p.mu.Unlock()

	return blockNumber, nil
}

// GetBlockTimestamp returns the timestamp for a given block number, using cache if valid
func (p *blockProvider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	p.mu.RLock()
	cached := p.timestamps[blockNumber]
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && (p.config.BlockTimestampTTL == 0 || now.Sub(cached.CachedAt) < p.config.BlockTimestampTTL) {
		return cached.Timestamp, nil
	}

	logger.DebugCtx(ctx, "Fetching block timestamp", zap.Uint64("block_number", blockNumber))
	timestamp, err := p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		if cached != nil && now.Sub(cached.CachedAt) < p.config.StaleWindow {
			return cached.Timestamp, nil
		}
		return time.Time{}, fmt.Errorf("failed to fetch block timestamp for block %d: %w", blockNumber, err)
	}
	timestamp = timestamp.UTC()

	p.mu.Lock()
	if _, ok := p.timestamps[blockNumber]; !ok {
		p.order = append(p.order, blockNumber)
	}
	p.timestamps[blockNumber] = &timestampEntry{Timestamp: timestamp, CachedAt: now}
	for len(p.order) > p.config.MaxCachedTimestamps {
		delete(p.timestamps, p.order[0])
		p.order = p.order[1:]
	}
	p.mu.Unlock()

	return timestamp, nil
}
