package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/checkpoint"
	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/ingest"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/messaging"
	"github.com/feral-file/ff-ledger-sync/internal/metrics"
	"github.com/feral-file/ff-ledger-sync/internal/providers/ethereum"
	"github.com/feral-file/ff-ledger-sync/internal/store"
	"github.com/feral-file/ff-ledger-sync/internal/types"
)

const (
	DEFAULT_SCAN_INTERVAL = 15 * time.Second
	DEFAULT_BATCH_SIZE    = 500
	DEFAULT_CONFIRMATIONS = 2
)

// Contract is an NFT contract followed by the scanner
type Contract struct {
	Address    string
	StartBlock uint64
}

// Config holds the configuration for the event scanner
type Config struct {
	Contracts     []Contract
	Interval      time.Duration // Time between scan passes
	BatchSize     uint64        // Blocks committed per transaction
	Confirmations uint64        // Blocks behind head considered final
}

// BatchResult summarizes one committed block range
type BatchResult struct {
	FromBlock     uint64
	ToBlock       uint64
	Mints         int
	Created       int
	Pending       int
	OwnersUpdated int
}

// Scanner incrementally applies Transfer events to the store
//
//go:generate mockgen -source=scanner.go -destination=../mocks/scanner.go -package=mocks -mock_names=Scanner=MockScanner
type Scanner interface {
	// Start scans every contract each interval until ctx is cancelled
	Start(ctx context.Context) error

	// ScanContract scans [checkpoint+1, head-confirmations] of one contract in batches
	ScanContract(ctx context.Context, contract Contract) ([]BatchResult, error)

	// Name identifies the scanner in logs
	Name() string
}

type scanner struct {
	config    Config
	ledger    ethereum.LedgerReader
	store     store.Store
	tracker   checkpoint.Tracker
	resolver  ingest.Resolver
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewScanner creates a new event scanner
func NewScanner(
	config Config,
	ledger ethereum.LedgerReader,
	st store.Store,
	tracker checkpoint.Tracker,
	resolver ingest.Resolver,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Scanner {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_SCAN_INTERVAL
	}
	if config.BatchSize == 0 {
		config.BatchSize = DEFAULT_BATCH_SIZE
	}
	for i := range config.Contracts {
		config.Contracts[i].Address = types.NormalizeAddress(config.Contracts[i].Address)
	}

	return &scanner{
		config:    config,
		ledger:    ledger,
		store:     st,
		tracker:   tracker,
		resolver:  resolver,
		publisher: publisher,
		clock:     clock,
	}
}

func (s *scanner) Name() string {
	return "event-scanner"
}

func (s *scanner) Start(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting event scanner",
		zap.Int("contracts", len(s.config.Contracts)),
		zap.Duration("interval", s.config.Interval),
		zap.Uint64("batch_size", s.config.BatchSize),
		zap.Uint64("confirmations", s.config.Confirmations))

	for {
		for _, contract := range s.config.Contracts {
			if _, err := s.ScanContract(ctx, contract); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.ErrorCtx(ctx, err, zap.String("contract", contract.Address))
			}
		}

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Event scanner stopping")
			return nil
		case <-s.clock.After(s.config.Interval):
		}
	}
}

func (s *scanner) ScanContract(ctx context.Context, contract Contract) ([]BatchResult, error) {
	address := types.NormalizeAddress(contract.Address)

	from, err := s.tracker.Next(ctx, address, contract.StartBlock)
	if err != nil {
		return nil, err
	}

	head, err := s.ledger.LatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get head block: %w", err)
	}
	if head < s.config.Confirmations {
		return nil, nil
	}
	safeHead := head - s.config.Confirmations

	var results []BatchResult
	for from <= safeHead {
		to := from + s.config.BatchSize - 1
		if to > safeHead || to < from {
			to = safeHead
		}

		result, err := s.scanBatch(ctx, address, from, to)
		if err != nil {
			return results, fmt.Errorf("failed to scan blocks %d-%d: %w", from, to, err)
		}
		results = append(results, *result)
		from = to + 1
	}

	return results, nil
}

// scanBatch resolves the mints of [from, to] and commits the range atomically
func (s *scanner) scanBatch(ctx context.Context, contract string, from, to uint64) (*BatchResult, error) {
	start := s.clock.Now()

	events, err := s.ledger.FilterTransfers(ctx, contract, from, to)
	if err != nil {
		return nil, err
	}

	batch := store.ScanBatch{
		ContractAddress: contract,
		FromBlock:       from,
		ToBlock:         to,
	}
	result := &BatchResult{FromBlock: from, ToBlock: to}

	for _, event := range events {
		if !event.IsMint() {
			metrics.ScannerTransfers.WithLabelValues(contract, "transfer").Inc()
			batch.OwnerUpdates = append(batch.OwnerUpdates, store.OwnerUpdate{
				TokenID:      event.TokenID,
				OwnerAddress: types.NormalizeAddress(event.To),
			})
			continue
		}

		metrics.ScannerTransfers.WithLabelValues(contract, "mint").Inc()
		result.Mints++
		txHash := event.TxHash
		mint := ingest.Mint{
			ContractAddress: contract,
			TokenID:         event.TokenID,
			OwnerAddress:    event.To,
			CreatorAddress:  event.To,
			TransactionHash: &txHash,
		}

		record, err := s.resolver.Resolve(ctx, mint, domain.SourceEventScan)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			batch.PendingMints = append(batch.PendingMints, ingest.PendingFromMint(mint, err))
			continue
		}
		batch.Records = append(batch.Records, record)
	}

	committed, err := s.store.CommitScanBatch(ctx, batch)
	if err != nil {
		var regression *domain.RegressionError
		if errors.As(err, &regression) {
			logger.WarnCtx(ctx, "Checkpoint moved ahead during scan, skipping batch",
				zap.String("contract", contract),
				zap.Uint64("from", from),
				zap.Uint64("to", to))
		}
		return nil, fmt.Errorf("failed to commit scan batch: %w", err)
	}

	result.Created = len(committed.Created)
	result.Pending = committed.PendingCreated
	result.OwnersUpdated = committed.OwnersUpdated

	syncedAt := s.clock.Now()
	for _, record := range committed.Created {
		metrics.RecordsCreated.WithLabelValues(domain.SourceEventScan).Inc()
		messaging.NotifyNFTSynced(ctx, s.publisher, record, domain.SourceEventScan, syncedAt)
	}

	metrics.ScannerBlocksProcessed.WithLabelValues(contract).Add(float64(to - from + 1))
	metrics.ScannerBatchLatency.WithLabelValues(contract).Observe(s.clock.Since(start).Seconds())
	metrics.CheckpointBlock.WithLabelValues(contract).Set(float64(to))

	logger.InfoCtx(ctx, "Scan batch committed",
		zap.String("contract", contract),
		zap.Uint64("from", from),
		zap.Uint64("to", to),
		zap.Int("transfers", len(events)),
		zap.Int("mints", result.Mints),
		zap.Int("created", result.Created),
		zap.Int("pending", result.Pending),
		zap.Int("owners_updated", result.OwnersUpdated))

	return result, nil
}
