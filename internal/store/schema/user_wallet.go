package schema

import "time"

// UserWallet links a wallet address to a user. Owned by the application; read-only here.
type UserWallet struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Address   string    `gorm:"column:address;not null;type:text;uniqueIndex"`
	UserID    string    `gorm:"column:user_id;not null;type:text;index"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the UserWallet model
func (UserWallet) TableName() string {
	return "user_wallets"
}
