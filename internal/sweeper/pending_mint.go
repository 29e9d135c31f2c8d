package sweeper

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/alert"
	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/ingest"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/messaging"
	"github.com/feral-file/ff-ledger-sync/internal/metrics"
	"github.com/feral-file/ff-ledger-sync/internal/providers/ethereum"
	"github.com/feral-file/ff-ledger-sync/internal/store"
	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
)

const (
	DEFAULT_SWEEP_INTERVAL  = time.Minute
	DEFAULT_BATCH_SIZE      = 50
	DEFAULT_LEASE           = 5 * time.Minute
	DEFAULT_POOL_SIZE       = 4
	DEFAULT_ALERT_THRESHOLD = 10
)

// PendingMintSweeperConfig holds configuration for the pending-mint sweeper
type PendingMintSweeperConfig struct {
	Interval       time.Duration // Time between sweep cycles
	BatchSize      int           // Entries claimed per round
	Lease          time.Duration // Claim lease; expired leases are reclaimable
	PoolSize       int           // Concurrent retries
	AlertThreshold int           // Retry count that triggers an alert, and every multiple of it
}

// CycleResult summarizes one sweep cycle
type CycleResult struct {
	Claimed   int
	Resolved  int
	Failed    int
	ClaimLost int
	Alerts    int
}

type outcome int

const (
	outcomeResolved outcome = iota
	outcomeFailed
	outcomeClaimLost
)

type pendingMintSweeper struct {
	config    PendingMintSweeperConfig
	store     store.Store
	ledger    ethereum.LedgerReader
	resolver  ingest.Resolver
	alerter   alert.Alerter
	publisher messaging.Publisher
	clock     adapter.Clock
	running   atomic.Bool
	mu        sync.Mutex
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

var _ Sweeper = (*pendingMintSweeper)(nil)

// PendingMintSweeper drains the pending-mint queue
//
//go:generate mockgen -source=pending_mint.go -destination=../mocks/sweeper.go -package=mocks -mock_names=PendingMintSweeper=MockPendingMintSweeper
type PendingMintSweeper interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Name() string

	// RunCycle claims and retries entries until none is claimable in this cycle
	RunCycle(ctx context.Context) (*CycleResult, error)
}

// NewPendingMintSweeper creates a new pending-mint sweeper
func NewPendingMintSweeper(
	config PendingMintSweeperConfig,
	st store.Store,
	ledger ethereum.LedgerReader,
	resolver ingest.Resolver,
	alerter alert.Alerter,
	publisher messaging.Publisher,
	clock adapter.Clock,
) PendingMintSweeper {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_SWEEP_INTERVAL
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DEFAULT_BATCH_SIZE
	}
	if config.Lease <= 0 {
		config.Lease = DEFAULT_LEASE
	}
	if config.PoolSize <= 0 {
		config.PoolSize = DEFAULT_POOL_SIZE
	}
	if config.AlertThreshold < 0 {
		config.AlertThreshold = 0
	}

	return &pendingMintSweeper{
		config:    config,
		store:     st,
		ledger:    ledger,
		resolver:  resolver,
		alerter:   alerter,
		publisher: publisher,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *pendingMintSweeper) Name() string {
	return "pending-mint-sweeper"
}

// Start runs a cycle every interval
func (s *pendingMintSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if !s.running.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return fmt.Errorf("sweeper already running")
	}
	// both channels are recreated per run so a stopped sweeper can start again
	s.stopChan = make(chan struct{})
	s.stoppedCh = make(chan struct{})
	stop, stopped := s.stopChan, s.stoppedCh
	s.mu.Unlock()
	defer func() {
		s.running.Store(false)
		close(stopped)
	}()

	logger.InfoCtx(ctx, "Starting pending mint sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("pool_size", s.config.PoolSize),
		zap.Duration("lease", s.config.Lease),
		zap.Int("alert_threshold", s.config.AlertThreshold),
	)

	for {
		if _, err := s.RunCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		if !s.sleep(ctx, stop, s.config.Interval) {
			logger.InfoCtx(ctx, "Pending mint sweeper stopping")
			return nil
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *pendingMintSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running.Load() {
		s.mu.Unlock()
		return nil
	}

	logger.InfoCtx(ctx, "Stopping pending mint sweeper")
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}
	stopped := s.stoppedCh
	s.mu.Unlock()

	select {
	case <-stopped:
		logger.InfoCtx(ctx, "Pending mint sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Pending mint sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// sleep returns false when interrupted by cancellation or stop
func (s *pendingMintSweeper) sleep(ctx context.Context, stop <-chan struct{}, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-stop:
		return false
	}
}

func (s *pendingMintSweeper) RunCycle(ctx context.Context) (*CycleResult, error) {
	cycleStart := s.clock.Now()
	claimToken := uuid.NewString()
	result := &CycleResult{}
	defer func() {
		metrics.SweeperCycleLatency.Observe(s.clock.Since(cycleStart).Seconds())
	}()

	pool := pond.NewPool(s.config.PoolSize, pond.WithContext(ctx))
	defer pool.StopAndWait()

	for {
		now := s.clock.Now()
		claimed, err := s.store.ClaimPendingMints(ctx, store.ClaimPendingMintsInput{
			ClaimToken:      claimToken,
			Now:             now,
			LeaseUntil:      now.Add(s.config.Lease),
			AttemptedBefore: cycleStart,
			Limit:           s.config.BatchSize,
		})
		if err != nil {
			return result, fmt.Errorf("failed to claim pending mints: %w", err)
		}
		if len(claimed) == 0 {
			break
		}
		result.Claimed += len(claimed)

		outcomes := make([]outcome, len(claimed))
		alerts := make([]bool, len(claimed))
		group := pool.NewGroup()
		for i := range claimed {
			group.Submit(func() {
				outcomes[i], alerts[i] = s.retry(ctx, claimToken, &claimed[i])
			})
		}
		if err := group.Wait(); err != nil {
			return result, fmt.Errorf("sweep round interrupted: %w", err)
		}

		for i, o := range outcomes {
			switch o {
			case outcomeResolved:
				result.Resolved++
			case outcomeClaimLost:
				result.ClaimLost++
			default:
				result.Failed++
			}
			if alerts[i] {
				result.Alerts++
			}
		}

		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if len(claimed) < s.config.BatchSize {
			break
		}
	}

	if result.Claimed > 0 {
		logger.InfoCtx(ctx, "Sweep cycle completed",
			zap.String("claim_token", claimToken),
			zap.Duration("duration", s.clock.Since(cycleStart)),
			zap.Int("claimed", result.Claimed),
			zap.Int("resolved", result.Resolved),
			zap.Int("failed", result.Failed),
			zap.Int("claim_lost", result.ClaimLost),
		)
	}

	return result, nil
}

// retry re-runs one claimed entry through the resolver
func (s *pendingMintSweeper) retry(ctx context.Context, claimToken string, pending *schema.PendingMint) (outcome, bool) {
	mint := ingest.MintFromPending(pending)

	owner, err := s.ledger.OwnerOf(ctx, pending.ContractAddress, pending.TokenID)
	if err != nil {
		return s.fail(ctx, claimToken, pending, fmt.Errorf("failed to read owner: %w", err))
	}
	mint.OwnerAddress = owner

	record, err := s.resolver.Resolve(ctx, mint, domain.SourcePendingSweep)
	if err != nil {
		return s.fail(ctx, claimToken, pending, err)
	}

	created, err := s.store.ResolvePendingMint(ctx, pending.ID, claimToken, record)
	if err != nil {
		if errors.Is(err, domain.ErrClaimLost) {
			metrics.SweeperAttempts.WithLabelValues(metrics.OutcomeClaimLost).Inc()
			logger.WarnCtx(ctx, "Pending mint claim lost before resolve",
				zap.Int64("id", pending.ID),
				zap.String("tokenID", pending.TokenID))
			return outcomeClaimLost, false
		}
		return s.fail(ctx, claimToken, pending, fmt.Errorf("failed to store resolved mint: %w", err))
	}

	metrics.SweeperAttempts.WithLabelValues(metrics.OutcomeResolved).Inc()
	if created {
		metrics.RecordsCreated.WithLabelValues(domain.SourcePendingSweep).Inc()
		messaging.NotifyNFTSynced(ctx, s.publisher, record, domain.SourcePendingSweep, s.clock.Now())
	}

	logger.InfoCtx(ctx, "Pending mint resolved",
		zap.Int64("id", pending.ID),
		zap.String("contract", pending.ContractAddress),
		zap.String("tokenID", pending.TokenID),
		zap.Int("retry_count", pending.RetryCount),
		zap.Bool("created", created))
	return outcomeResolved, false
}

// fail records the attempt and applies the alert policy
func (s *pendingMintSweeper) fail(ctx context.Context, claimToken string, pending *schema.PendingMint, cause error) (outcome, bool) {
	updated, err := s.store.FailPendingMint(ctx, pending.ID, claimToken, cause.Error(), s.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrClaimLost) {
			metrics.SweeperAttempts.WithLabelValues(metrics.OutcomeClaimLost).Inc()
			return outcomeClaimLost, false
		}
		logger.ErrorCtx(ctx, err, zap.Int64("id", pending.ID))
		metrics.SweeperAttempts.WithLabelValues(metrics.OutcomeFailed).Inc()
		return outcomeFailed, false
	}

	metrics.SweeperAttempts.WithLabelValues(metrics.OutcomeFailed).Inc()
	logger.WarnCtx(ctx, "Pending mint retry failed",
		zap.Int64("id", updated.ID),
		zap.String("contract", updated.ContractAddress),
		zap.String("tokenID", updated.TokenID),
		zap.Int("retry_count", updated.RetryCount),
		zap.Error(cause))

	if !ShouldAlert(updated.RetryCount, s.config.AlertThreshold) {
		return outcomeFailed, false
	}

	sent, err := s.alerter.Send(ctx, alert.Alert{
		Key:     fmt.Sprintf("pending_mint:%d:%d", updated.ID, updated.RetryCount),
		Title:   "Pending mint keeps failing",
		Message: fmt.Sprintf("token %s of %s failed %d times", updated.TokenID, updated.ContractAddress, updated.RetryCount),
		Fields: map[string]string{
			"contract":    updated.ContractAddress,
			"token_id":    updated.TokenID,
			"retry_count": strconv.Itoa(updated.RetryCount),
			"last_error":  cause.Error(),
		},
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to send pending mint alert", zap.Error(err))
	}
	return outcomeFailed, sent
}

// ShouldAlert reports whether retryCount hits the threshold or one of its multiples
func ShouldAlert(retryCount int, threshold int) bool {
	if threshold <= 0 || retryCount < threshold {
		return false
	}
	return retryCount%threshold == 0
}
