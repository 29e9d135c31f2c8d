package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
)

// Publisher defines the interface for publishing sync events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishNFTSynced announces a newly stored NFT record
	PublishNFTSynced(ctx context.Context, event *domain.NFTSyncedEvent) error
	// PublishQuestCredited announces a newly created quest completion
	PublishQuestCredited(ctx context.Context, event *domain.QuestCreditedEvent) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishNFTSynced(context.Context, *domain.NFTSyncedEvent) error { return nil }

func (noopPublisher) PublishQuestCredited(context.Context, *domain.QuestCreditedEvent) error {
	return nil
}

func (noopPublisher) Close() {}

// NotifyNFTSynced publishes nft.synced for a created record. Failures are logged, not returned.
func NotifyNFTSynced(ctx context.Context, p Publisher, record *schema.NFTRecord, source string, syncedAt time.Time) {
	event := &domain.NFTSyncedEvent{
		ContractAddress: record.ContractAddress,
		TokenID:         record.TokenID,
		OwnerAddress:    record.OwnerAddress,
		ImageURL:        record.ImageURL,
		Source:          source,
		SyncedAt:        syncedAt.UTC(),
	}
	if err := p.PublishNFTSynced(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish nft.synced",
			zap.String("contract", record.ContractAddress),
			zap.String("tokenID", record.TokenID),
			zap.Error(err))
	}
}

// NotifyQuestCredited publishes quest.credited for a created completion. Failures are logged, not returned.
func NotifyQuestCredited(ctx context.Context, p Publisher, completion *schema.QuestCompletion) {
	event := &domain.QuestCreditedEvent{
		UserID:         completion.UserID,
		QuestType:      domain.QuestType(completion.QuestType),
		PointsEarned:   completion.PointsEarned,
		CompletionDate: completion.CompletionDate.Format(time.DateOnly),
		CompletedAt:    completion.CompletedAt.UTC(),
	}
	if err := p.PublishQuestCredited(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish quest.credited",
			zap.String("userID", completion.UserID),
			zap.String("questType", completion.QuestType),
			zap.Error(err))
	}
}
