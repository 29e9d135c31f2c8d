package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
)

// QUEST_COMPLETION_KEY_INDEX is the unique index that makes quest credits idempotent
const QUEST_COMPLETION_KEY_INDEX = "idx_quest_completions_user_quest_day"

// UpsertQuestCompletion inserts a completion; an existing credit for the same day is left untouched
func (s *pgStore) UpsertQuestCompletion(ctx context.Context, completion *schema.QuestCompletion) (bool, error) {
	completion.ID = 0
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "quest_type"}, {Name: "completion_date"}},
		DoNothing: true,
	}).Create(completion)
	if result.Error != nil {
		return false, fmt.Errorf("failed to upsert quest completion: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetUserIDByWallet resolves a wallet address to its user id
func (s *pgStore) GetUserIDByWallet(ctx context.Context, address string) (string, error) {
	var wallet schema.UserWallet
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: %s", domain.ErrUnknownWallet, address)
		}
		return "", fmt.Errorf("failed to get user by wallet: %w", err)
	}

	return wallet.UserID, nil
}
