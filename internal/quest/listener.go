package quest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/checkpoint"
	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/messaging"
	"github.com/feral-file/ff-ledger-sync/internal/metrics"
	"github.com/feral-file/ff-ledger-sync/internal/providers/ethereum"
	"github.com/feral-file/ff-ledger-sync/internal/store"
	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
	"github.com/feral-file/ff-ledger-sync/internal/types"
)

const (
	DEFAULT_RETRY_INITIAL     = time.Second
	DEFAULT_RETRY_MAX_RETRIES = 3
	DEFAULT_RESUBSCRIBE_DELAY = 5 * time.Second
)

// Outcome is the final state of one quest event
type Outcome string

const (
	OutcomeCredited  Outcome = "credited"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomePermanent Outcome = "permanent_failure"
	OutcomeTransient Outcome = "transient_failure"
)

// settled reports whether the event no longer needs a replay
func (o Outcome) settled() bool {
	return o != OutcomeTransient
}

// Config holds quest listener configuration
type Config struct {
	ContractAddress  string
	StartBlock       uint64
	Catalog          []domain.QuestDefinition
	RetryInitial     time.Duration
	RetryMaxRetries  uint64
	ResubscribeDelay time.Duration
	// NewBackOff overrides the write retry schedule; nil uses QuestBackOff
	NewBackOff func() backoff.BackOff
}

// Listener credits quest completions observed on the quest contract
//
//go:generate mockgen -source=listener.go -destination=../mocks/quest_listener.go -package=mocks -mock_names=Listener=MockQuestListener
type Listener interface {
	// Start catches up from the checkpoint, then follows the live subscription until ctx ends.
	// A failed subscription triggers a new catch-up.
	Start(ctx context.Context) error

	// CatchUp credits every event from the checkpoint to head and returns head
	CatchUp(ctx context.Context) (uint64, error)

	// HandleEvent credits one event. The error is non-nil only when ctx ended.
	HandleEvent(ctx context.Context, event domain.QuestEvent) (Outcome, error)

	// Name identifies the listener in logs
	Name() string
}

type listener struct {
	config     Config
	catalog    map[uint64]domain.QuestDefinition
	ledger     ethereum.LedgerReader
	store      store.Store
	tracker    checkpoint.Tracker
	publisher  messaging.Publisher
	clock      adapter.Clock
	checkpoint uint64
	// halted stops checkpoint advances after a transient exhaustion until restart
	halted bool
}

// QuestBackOff returns the write retry schedule: initial, 2x initial, 4x initial, ... for maxRetries retries
func QuestBackOff(initial time.Duration, maxRetries uint64) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = initial << maxRetries
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithMaxRetries(b, maxRetries)
}

// NewListener creates a quest listener
func NewListener(
	config Config,
	ledger ethereum.LedgerReader,
	st store.Store,
	tracker checkpoint.Tracker,
	publisher messaging.Publisher,
	clock adapter.Clock,
) (Listener, error) {
	if config.ContractAddress == "" {
		return nil, fmt.Errorf("quest contract address is required")
	}
	config.ContractAddress = types.NormalizeAddress(config.ContractAddress)
	if config.RetryInitial <= 0 {
		config.RetryInitial = DEFAULT_RETRY_INITIAL
	}
	if config.RetryMaxRetries == 0 {
		config.RetryMaxRetries = DEFAULT_RETRY_MAX_RETRIES
	}
	if config.ResubscribeDelay <= 0 {
		config.ResubscribeDelay = DEFAULT_RESUBSCRIBE_DELAY
	}
	if config.NewBackOff == nil {
		initial, retries := config.RetryInitial, config.RetryMaxRetries
		config.NewBackOff = func() backoff.BackOff {
			return QuestBackOff(initial, retries)
		}
	}

	catalog := make(map[uint64]domain.QuestDefinition, len(config.Catalog))
	for _, def := range config.Catalog {
		if !def.Type.Valid() {
			return nil, fmt.Errorf("quest %d has unknown type %q", def.ID, def.Type)
		}
		if _, ok := catalog[def.ID]; ok {
			return nil, fmt.Errorf("quest %d is defined twice", def.ID)
		}
		catalog[def.ID] = def
	}

	return &listener{
		config:    config,
		catalog:   catalog,
		ledger:    ledger,
		store:     st,
		tracker:   tracker,
		publisher: publisher,
		clock:     clock,
	}, nil
}

func (l *listener) Name() string {
	return "quest-listener"
}

func (l *listener) Start(ctx context.Context) error {
	current, err := l.tracker.Get(ctx, l.config.ContractAddress)
	if err != nil {
		return err
	}
	l.checkpoint = current

	logger.InfoCtx(ctx, "Starting quest listener",
		zap.String("contract", l.config.ContractAddress),
		zap.Uint64("checkpoint", current),
		zap.Int("quests", len(l.catalog)))

	for {
		err := l.follow(ctx)
		if ctx.Err() != nil {
			logger.InfoCtx(ctx, "Quest listener stopping")
			return nil
		}

		logger.WarnCtx(ctx, "Quest subscription ended, catching up again",
			zap.Error(err),
			zap.Duration("delay", l.config.ResubscribeDelay))

		select {
		case <-ctx.Done():
			return nil
		case <-l.clock.After(l.config.ResubscribeDelay):
		}
	}
}

// follow runs one catch-up and then the live subscription from the block after head.
// Log subscriptions only push new logs, so the blocks between head and the first live
// event are filtered before that event is handled.
func (l *listener) follow(ctx context.Context) error {
	head, err := l.CatchUp(ctx)
	if err != nil {
		return err
	}

	bridged := false
	return l.ledger.SubscribeQuestCompletions(ctx, l.config.ContractAddress, head+1, func(event domain.QuestEvent) error {
		if !bridged {
			if event.BlockNumber > head+1 {
				if err := l.bridge(ctx, head+1, event.BlockNumber-1); err != nil {
					return err
				}
			}
			bridged = true
		}

		_, err := l.HandleEvent(ctx, event)
		return err
	})
}

// bridge credits the events of [from, to] missed while the subscription was being set up
func (l *listener) bridge(ctx context.Context, from, to uint64) error {
	events, err := l.ledger.FilterQuestCompletions(ctx, l.config.ContractAddress, from, to)
	if err != nil {
		return fmt.Errorf("failed to fill quest events %d-%d: %w", from, to, err)
	}

	if len(events) > 0 {
		logger.InfoCtx(ctx, "Filling quest events mined before the subscription",
			zap.Uint64("from", from),
			zap.Uint64("to", to),
			zap.Int("events", len(events)))
	}
	for _, event := range events {
		if _, err := l.HandleEvent(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (l *listener) CatchUp(ctx context.Context) (uint64, error) {
	from, err := l.tracker.Next(ctx, l.config.ContractAddress, l.config.StartBlock)
	if err != nil {
		return 0, err
	}

	head, err := l.ledger.LatestBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get head block: %w", err)
	}
	if from > head {
		return head, nil
	}

	events, err := l.ledger.FilterQuestCompletions(ctx, l.config.ContractAddress, from, head)
	if err != nil {
		return 0, fmt.Errorf("failed to catch up quest events: %w", err)
	}

	logger.InfoCtx(ctx, "Catching up quest events",
		zap.Uint64("from", from),
		zap.Uint64("to", head),
		zap.Int("events", len(events)))

	for _, event := range events {
		if _, err := l.HandleEvent(ctx, event); err != nil {
			return 0, err
		}
	}

	l.advance(ctx, head)
	return head, nil
}

func (l *listener) HandleEvent(ctx context.Context, event domain.QuestEvent) (Outcome, error) {
	outcome, err := l.credit(ctx, event)
	if err != nil {
		return "", err
	}
	metrics.QuestEvents.WithLabelValues(string(outcome)).Inc()

	if !outcome.settled() {
		if !l.halted {
			logger.WarnCtx(ctx, "Quest checkpoint halted until restart",
				zap.Uint64("checkpoint", l.checkpoint),
				zap.Uint64("block", event.BlockNumber))
		}
		l.halted = true
		return outcome, nil
	}

	// Events sharing a block may still follow, so only the previous block is complete
	if event.BlockNumber > 0 {
		l.advance(ctx, event.BlockNumber-1)
	}
	return outcome, nil
}

// credit resolves and writes one completion with the retry policy
func (l *listener) credit(ctx context.Context, event domain.QuestEvent) (Outcome, error) {
	fields := []zap.Field{
		zap.String("wallet", event.WalletAddress),
		zap.Uint64("questId", event.QuestID),
		zap.Uint64("block", event.BlockNumber),
		zap.String("txHash", event.TxHash),
	}

	def, ok := l.catalog[event.QuestID]
	if !ok {
		logger.ErrorCtx(ctx, fmt.Errorf("%w: %d", domain.ErrUnknownQuest, event.QuestID), fields...)
		return OutcomePermanent, nil
	}

	var (
		completion *schema.QuestCompletion
		created    bool
		duplicate  bool
		permanent  bool
	)
	operation := func() error {
		userID, err := l.store.GetUserIDByWallet(ctx, types.NormalizeAddress(event.WalletAddress))
		if err != nil {
			if errors.Is(err, domain.ErrUnknownWallet) || store.ClassifyError(err, "") == store.ErrorClassPermanent {
				permanent = true
				return backoff.Permanent(err)
			}
			return err
		}

		completion = buildCompletion(userID, def, event)
		created, err = l.store.UpsertQuestCompletion(ctx, completion)
		if err == nil {
			return nil
		}
		switch store.ClassifyError(err, store.QUEST_COMPLETION_KEY_INDEX) {
		case store.ErrorClassDuplicate:
			duplicate = true
			return nil
		case store.ErrorClassPermanent:
			permanent = true
			return backoff.Permanent(err)
		default:
			return err
		}
	}

	b := backoff.WithContext(l.config.NewBackOff(), ctx)
	err := backoff.RetryNotify(operation, b, func(err error, d time.Duration) {
		metrics.QuestWriteRetries.Inc()
		logger.WarnCtx(ctx, "Quest write failed, retrying",
			append(fields, zap.Error(err), zap.Duration("retryIn", d))...)
	})
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if err != nil {
		if permanent {
			logger.ErrorCtx(ctx, fmt.Errorf("quest event dropped: %w", err), fields...)
			return OutcomePermanent, nil
		}
		logger.ErrorCtx(ctx, fmt.Errorf("quest write retries exhausted: %w", err), fields...)
		return OutcomeTransient, nil
	}

	if duplicate || !created {
		logger.DebugCtx(ctx, "Quest completion already credited", fields...)
		return OutcomeDuplicate, nil
	}

	logger.InfoCtx(ctx, "Quest completion credited",
		append(fields,
			zap.String("userID", completion.UserID),
			zap.String("questType", completion.QuestType),
			zap.Time("completionDate", completion.CompletionDate))...)
	messaging.NotifyQuestCredited(ctx, l.publisher, completion)
	return OutcomeCredited, nil
}

// advance moves the checkpoint forward unless halted
func (l *listener) advance(ctx context.Context, block uint64) {
	if l.halted || block <= l.checkpoint {
		return
	}
	if err := l.tracker.Advance(ctx, l.config.ContractAddress, block); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to advance quest checkpoint: %w", err),
			zap.Uint64("block", block))
		return
	}
	l.checkpoint = block
}

func buildCompletion(userID string, def domain.QuestDefinition, event domain.QuestEvent) *schema.QuestCompletion {
	completedAt := event.BlockTimestamp.UTC()
	var txHash *string
	if event.TxHash != "" {
		hash := strings.ToLower(event.TxHash)
		txHash = &hash
	}

	return &schema.QuestCompletion{
		UserID:          userID,
		QuestType:       string(def.Type),
		PointsEarned:    def.Points,
		CompletionDate:  CompletionDate(completedAt),
		CompletedAt:     completedAt,
		TransactionHash: txHash,
	}
}

// CompletionDate returns the UTC calendar day of ts at midnight UTC
func CompletionDate(ts time.Time) time.Time {
	utc := ts.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
