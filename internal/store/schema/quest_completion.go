package schema

import "time"

// QuestCompletion represents the quest_completions table - an append-only ledger of day-scoped credits
type QuestCompletion struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UserID is the stable user identity, not a wallet
	UserID string `gorm:"column:user_id;not null;type:text;uniqueIndex:idx_quest_completions_user_quest_day,priority:1"`
	// QuestType is the enumerated quest kind
	QuestType string `gorm:"column:quest_type;not null;type:text;uniqueIndex:idx_quest_completions_user_quest_day,priority:2"`
	// PointsEarned is the reward credited for the completion
	PointsEarned int `gorm:"column:points_earned;not null"`
	// CompletionDate is the UTC calendar day of the block timestamp
	CompletionDate time.Time `gorm:"column:completion_date;not null;type:date;uniqueIndex:idx_quest_completions_user_quest_day,priority:3"`
	// CompletedAt is the block timestamp of the quest event
	CompletedAt time.Time `gorm:"column:completed_at;not null;type:timestamptz"`
	// TransactionHash is the transaction that emitted the quest event
	TransactionHash *string `gorm:"column:transaction_hash;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the QuestCompletion model
func (QuestCompletion) TableName() string {
	return "quest_completions"
}
