package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
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
	DEFAULT_CONFIRMATIONS = 2
	DEFAULT_CHUNK_SIZE    = 500
	DEFAULT_POOL_SIZE     = 4

	// maxInconclusiveProbes caps transient failures on a single id before it is reported as failed
	maxInconclusiveProbes = 3

	// maxGallopBound stops doubling before overflow
	maxGallopBound = uint64(1) << 62
)

// Config holds reconciler tuning
type Config struct {
	// RequestDelay separates sequential ownerOf probes of a range scan
	RequestDelay time.Duration
	// Confirmations is the number of consecutive not-found probes that make an id absent
	Confirmations int
	// ChunkSize is the number of ids scanned per ReconcileRange call by Reconcile
	ChunkSize uint64
	// PoolSize bounds concurrent gap resolutions
	PoolSize int
	// StartBlocks maps contract address to the block the contract was deployed at
	StartBlocks map[string]uint64
}

// Discovery is the result of the highest-token search
type Discovery struct {
	Highest uint64 `json:"highest"`
	Probes  int    `json:"probes"`
}

// ScanResult classifies every id of a scanned window
type ScanResult struct {
	// Live maps live token ids to their current owner
	Live map[uint64]string
	// Absent lists ids confirmed missing on the ledger
	Absent []uint64
	// Inconclusive lists ids that only produced transient errors
	Inconclusive []uint64
	Probes       int
}

// Report summarizes a reconciliation run
type Report struct {
	Contract  string   `json:"contract"`
	Highest   uint64   `json:"highest"`
	Probes    int      `json:"probes"`
	Live      int      `json:"live"`
	Existing  int      `json:"existing"`
	Missing   int      `json:"missing"`
	Inserted  int      `json:"inserted"`
	Pending   int      `json:"pending"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failedIds,omitempty"`
}

// Merge adds the counters of another window to the report
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Probes += other.Probes
	r.Live += other.Live
	r.Existing += other.Existing
	r.Missing += other.Missing
	r.Inserted += other.Inserted
	r.Pending += other.Pending
	r.Failed += other.Failed
	r.FailedIDs = append(r.FailedIDs, other.FailedIDs...)
	if other.Highest > r.Highest {
		r.Highest = other.Highest
	}
}

// Reconciler finds tokens that exist on the ledger but not in the store and fills the gaps
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// DiscoverHighest binary searches [1, upperBound] for the highest live token id.
	// upperBound 0 gallops to find a bound first.
	DiscoverHighest(ctx context.Context, contractAddress string, upperBound uint64) (*Discovery, error)

	// ScanRange probes every id in [from, to] sequentially
	ScanRange(ctx context.Context, contractAddress string, from, to uint64) (*ScanResult, error)

	// ReconcileRange scans [from, to] and inserts every live id missing from the store
	ReconcileRange(ctx context.Context, contractAddress string, from, to uint64) (*Report, error)

	// Reconcile discovers the highest id and reconciles [1, highest] chunk by chunk
	Reconcile(ctx context.Context, contractAddress string, upperBound uint64) (*Report, error)
}

type reconciler struct {
	config    Config
	ledger    ethereum.LedgerReader
	store     store.Store
	resolver  ingest.Resolver
	publisher messaging.Publisher
	clock     adapter.Clock
	pool      pond.Pool
}

// NewReconciler creates a reconciler. The gap-fill pool lives until ctx is done.
func NewReconciler(
	ctx context.Context,
	config Config,
	ledger ethereum.LedgerReader,
	st store.Store,
	resolver ingest.Resolver,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Reconciler {
	if config.Confirmations <= 0 {
		config.Confirmations = DEFAULT_CONFIRMATIONS
	}
	if config.ChunkSize == 0 {
		config.ChunkSize = DEFAULT_CHUNK_SIZE
	}
	if config.PoolSize <= 0 {
		config.PoolSize = DEFAULT_POOL_SIZE
	}

	return &reconciler{
		config:    config,
		ledger:    ledger,
		store:     st,
		resolver:  resolver,
		publisher: publisher,
		clock:     clock,
		pool:      pond.NewPool(config.PoolSize, pond.WithContext(ctx)),
	}
}

type probeState int

const (
	probeLive probeState = iota
	probeAbsent
)

// probe is a single ownerOf call. Transient errors are returned as errors.
func (r *reconciler) probe(ctx context.Context, contractAddress string, id uint64, phase string) (string, probeState, error) {
	metrics.ReconcilerProbes.WithLabelValues(contractAddress, phase).Inc()

	owner, err := r.ledger.OwnerOf(ctx, contractAddress, strconv.FormatUint(id, 10))
	if err == nil {
		return owner, probeLive, nil
	}
	if errors.Is(err, domain.ErrTokenNotFound) {
		return "", probeAbsent, nil
	}
	return "", probeAbsent, err
}

// search is the binary search over [low, high] used by DiscoverHighest
func (r *reconciler) search(ctx context.Context, contractAddress string, low, high uint64, d *Discovery) error {
	for low <= high {
		mid := low + (high-low)/2
		d.Probes++

		_, state, err := r.probe(ctx, contractAddress, mid, "discover")
		if err != nil {
			return fmt.Errorf("inconclusive probe of token %d: %w", mid, err)
		}

		if state == probeLive {
			d.Highest = mid
			low = mid + 1
			continue
		}
		high = mid - 1
	}
	return nil
}

func (r *reconciler) DiscoverHighest(ctx context.Context, contractAddress string, upperBound uint64) (*Discovery, error) {
	contractAddress = types.NormalizeAddress(contractAddress)
	d := &Discovery{}

	if upperBound > 0 {
		if err := r.search(ctx, contractAddress, 1, upperBound, d); err != nil {
			return nil, err
		}
		r.logDiscovery(ctx, contractAddress, upperBound, d)
		return d, nil
	}

	lastLive, firstAbsent, err := r.gallop(ctx, contractAddress, d)
	if err != nil {
		return nil, err
	}
	d.Highest = lastLive
	if firstAbsent > lastLive+1 {
		if err := r.search(ctx, contractAddress, lastLive+1, firstAbsent-1, d); err != nil {
			return nil, err
		}
	}

	r.logDiscovery(ctx, contractAddress, upperBound, d)
	return d, nil
}

// gallop doubles the probe id until the first absent token.
// totalSupply seeds the start when the contract exposes it.
func (r *reconciler) gallop(ctx context.Context, contractAddress string, d *Discovery) (lastLive uint64, firstAbsent uint64, err error) {
	start := uint64(1)
	supply, err := r.ledger.TotalSupply(ctx, contractAddress)
	switch {
	case err == nil && supply > 0:
		start = supply
	case err != nil && !errors.Is(err, domain.ErrTotalSupplyUnsupported):
		logger.WarnCtx(ctx, "totalSupply failed, galloping from 1",
			zap.String("contract", contractAddress), zap.Error(err))
	}

	id := start
	for {
		d.Probes++
		_, state, err := r.probe(ctx, contractAddress, id, "discover")
		if err != nil {
			return 0, 0, fmt.Errorf("inconclusive probe of token %d: %w", id, err)
		}

		if state == probeAbsent {
			if id == start && start > 1 {
				// supply overshoots when tokens were burned; search below it
				return 0, id, nil
			}
			return lastLive, id, nil
		}

		lastLive = id
		if id >= maxGallopBound {
			return lastLive, lastLive + 1, nil
		}
		id *= 2
	}
}

func (r *reconciler) logDiscovery(ctx context.Context, contractAddress string, upperBound uint64, d *Discovery) {
	logger.InfoCtx(ctx, "Highest token discovered",
		zap.String("contract", contractAddress),
		zap.Uint64("upperBound", upperBound),
		zap.Uint64("highest", d.Highest),
		zap.Int("probes", d.Probes))
}

func (r *reconciler) ScanRange(ctx context.Context, contractAddress string, from, to uint64) (*ScanResult, error) {
	contractAddress = types.NormalizeAddress(contractAddress)
	result := &ScanResult{Live: make(map[uint64]string)}
	if from == 0 {
		from = 1
	}

	first := true
	for id := from; id <= to; id++ {
		absentCount, inconclusive := 0, 0
		for {
			if !first {
				if err := r.wait(ctx); err != nil {
					return nil, err
				}
			}
			first = false

			owner, state, err := r.probe(ctx, contractAddress, id, "scan")
			result.Probes++
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				inconclusive++
				if inconclusive >= maxInconclusiveProbes {
					result.Inconclusive = append(result.Inconclusive, id)
					break
				}
				continue
			}

			if state == probeLive {
				result.Live[id] = owner
				break
			}

			absentCount++
			if absentCount >= r.config.Confirmations {
				result.Absent = append(result.Absent, id)
				break
			}
		}
		if id == ^uint64(0) {
			break
		}
	}

	return result, nil
}

func (r *reconciler) wait(ctx context.Context) error {
	if r.config.RequestDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.clock.After(r.config.RequestDelay):
		return nil
	}
}

func (r *reconciler) ReconcileRange(ctx context.Context, contractAddress string, from, to uint64) (*Report, error) {
	contractAddress = types.NormalizeAddress(contractAddress)
	report := &Report{Contract: contractAddress}

	scan, err := r.ScanRange(ctx, contractAddress, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to scan range [%d, %d]: %w", from, to, err)
	}
	report.Probes = scan.Probes
	report.Live = len(scan.Live)
	for _, id := range scan.Inconclusive {
		report.Failed++
		report.FailedIDs = append(report.FailedIDs, strconv.FormatUint(id, 10))
	}
	for id := range scan.Live {
		if id > report.Highest {
			report.Highest = id
		}
	}

	stored, err := r.store.ListTokenIDs(ctx, contractAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored token ids: %w", err)
	}
	existing := make(map[string]struct{}, len(stored))
	for _, id := range stored {
		existing[id] = struct{}{}
	}

	missing := make([]uint64, 0)
	for id := range scan.Live {
		if _, ok := existing[strconv.FormatUint(id, 10)]; ok {
			report.Existing++
			continue
		}
		missing = append(missing, id)
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	report.Missing = len(missing)

	r.fillGaps(ctx, contractAddress, missing, scan.Live, report)

	logger.InfoCtx(ctx, "Range reconciled",
		zap.String("contract", contractAddress),
		zap.Uint64("from", from),
		zap.Uint64("to", to),
		zap.Int("live", report.Live),
		zap.Int("missing", report.Missing),
		zap.Int("inserted", report.Inserted),
		zap.Int("pending", report.Pending),
		zap.Int("failed", report.Failed))

	return report, nil
}

type gapOutcome int

const (
	gapInserted gapOutcome = iota
	gapExisting
	gapPending
	gapFailed
)

// fillGaps resolves missing ids in the pool; one id failing never affects the others
func (r *reconciler) fillGaps(ctx context.Context, contractAddress string, missing []uint64, owners map[uint64]string, report *Report) {
	if len(missing) == 0 {
		return
	}

	var mu sync.Mutex
	group := r.pool.NewGroup()
	for _, id := range missing {
		tokenID := strconv.FormatUint(id, 10)
		owner := owners[id]
		group.Submit(func() {
			outcome, err := r.fillGap(ctx, contractAddress, tokenID, owner)

			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case gapInserted:
				report.Inserted++
				metrics.ReconcilerGaps.WithLabelValues(contractAddress, metrics.OutcomeInserted).Inc()
			case gapExisting:
				report.Existing++
				report.Missing--
				metrics.ReconcilerGaps.WithLabelValues(contractAddress, metrics.OutcomeExisting).Inc()
			case gapPending:
				report.Pending++
				metrics.ReconcilerGaps.WithLabelValues(contractAddress, metrics.OutcomePending).Inc()
			default:
				report.Failed++
				report.FailedIDs = append(report.FailedIDs, tokenID)
				metrics.ReconcilerGaps.WithLabelValues(contractAddress, metrics.OutcomeFailed).Inc()
				logger.ErrorCtx(ctx, fmt.Errorf("failed to reconcile token: %w", err),
					zap.String("contract", contractAddress),
					zap.String("tokenID", tokenID))
			}
		})
	}

	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "Gap fill group interrupted", zap.Error(err))
	}
	sort.Strings(report.FailedIDs)
}

func (r *reconciler) fillGap(ctx context.Context, contractAddress string, tokenID string, owner string) (gapOutcome, error) {
	mint := ingest.Mint{
		ContractAddress: contractAddress,
		TokenID:         tokenID,
		OwnerAddress:    owner,
	}

	mintLog, err := r.ledger.FindMintLog(ctx, contractAddress, tokenID, r.config.StartBlocks[contractAddress])
	if err != nil {
		logger.WarnCtx(ctx, "Mint log unavailable, using owner as creator",
			zap.String("contract", contractAddress),
			zap.String("tokenID", tokenID),
			zap.Error(err))
	} else {
		mint.CreatorAddress = mintLog.To
		mint.TransactionHash = types.StringPtr(mintLog.TxHash)
	}

	record, err := r.resolver.Resolve(ctx, mint, domain.SourceReconciliation)
	if err != nil {
		if _, perr := r.store.InsertPendingMint(ctx, ingest.PendingFromMint(mint, err)); perr != nil {
			return gapFailed, fmt.Errorf("failed to queue pending mint: %w", perr)
		}
		return gapPending, nil
	}

	created, err := r.store.InsertNFTRecord(ctx, record)
	if err != nil {
		return gapFailed, err
	}
	if !created {
		return gapExisting, nil
	}

	metrics.RecordsCreated.WithLabelValues(domain.SourceReconciliation).Inc()
	messaging.NotifyNFTSynced(ctx, r.publisher, record, domain.SourceReconciliation, r.clock.Now())
	return gapInserted, nil
}

func (r *reconciler) Reconcile(ctx context.Context, contractAddress string, upperBound uint64) (*Report, error) {
	contractAddress = types.NormalizeAddress(contractAddress)

	discovery, err := r.DiscoverHighest(ctx, contractAddress, upperBound)
	if err != nil {
		return nil, fmt.Errorf("failed to discover highest token: %w", err)
	}

	report := &Report{Contract: contractAddress}
	for from := uint64(1); from <= discovery.Highest; from += r.config.ChunkSize {
		to := from + r.config.ChunkSize - 1
		if to > discovery.Highest {
			to = discovery.Highest
		}

		chunk, err := r.ReconcileRange(ctx, contractAddress, from, to)
		if err != nil {
			return nil, err
		}
		report.Merge(chunk)
	}

	report.Highest = discovery.Highest
	report.Probes += discovery.Probes
	return report, nil
}
