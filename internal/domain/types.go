package domain

import (
	"math/big"
	"strings"
	"time"
)

// TransferEvent is an ERC-721 Transfer log observed on an NFT contract
type TransferEvent struct {
	ContractAddress string `json:"contractAddress"`
	From            string `json:"from"`
	To              string `json:"to"`
	TokenID         string `json:"tokenId"`
	TxHash          string `json:"txHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	LogIndex        uint   `json:"logIndex"`
}

// IsMint reports whether the transfer originates from the zero address
func (e *TransferEvent) IsMint() bool {
	return strings.EqualFold(e.From, ETHEREUM_ZERO_ADDRESS)
}

// QuestEvent is a quest completion log observed on the quest contract
type QuestEvent struct {
	ContractAddress string    `json:"contractAddress"`
	WalletAddress   string    `json:"walletAddress"`
	QuestID         uint64    `json:"questId"`
	QuestDay        uint64    `json:"questDay"`
	BlockNumber     uint64    `json:"blockNumber"`
	BlockTimestamp  time.Time `json:"blockTimestamp"`
	TxHash          string    `json:"txHash"`
	LogIndex        uint      `json:"logIndex"`
}

// QuestType enumerates the quest kinds credited by the quest ledger
type QuestType string

const (
	QuestTypeDailyCheckIn QuestType = "daily_check_in"
	QuestTypeMintPhoto    QuestType = "mint_photo"
	QuestTypeVisitPlace   QuestType = "visit_place"
	QuestTypeShareNFT     QuestType = "share_nft"
)

// Valid reports whether the quest type is one of the known kinds
func (q QuestType) Valid() bool {
	switch q {
	case QuestTypeDailyCheckIn, QuestTypeMintPhoto, QuestTypeVisitPlace, QuestTypeShareNFT:
		return true
	}
	return false
}

// QuestDefinition binds an on-chain quest id to its type and reward
type QuestDefinition struct {
	ID     uint64    `mapstructure:"id" json:"id"`
	Type   QuestType `mapstructure:"type" json:"type"`
	Points int       `mapstructure:"points" json:"points"`
}

// TokenIDString renders an on-chain token id in decimal
func TokenIDString(id *big.Int) string {
	if id == nil {
		return ""
	}
	return id.String()
}

// NFTSyncedEvent is published after a new NFT record is stored
type NFTSyncedEvent struct {
	EventID         string    `json:"eventId"`
	ContractAddress string    `json:"contractAddress"`
	TokenID         string    `json:"tokenId"`
	OwnerAddress    string    `json:"ownerAddress"`
	ImageURL        string    `json:"imageUrl"`
	Source          string    `json:"source"`
	SyncedAt        time.Time `json:"syncedAt"`
}

// QuestCreditedEvent is published after a new quest completion row is created
type QuestCreditedEvent struct {
	EventID        string    `json:"eventId"`
	UserID         string    `json:"userId"`
	QuestType      QuestType `json:"questType"`
	PointsEarned   int       `json:"pointsEarned"`
	CompletionDate string    `json:"completionDate"`
	CompletedAt    time.Time `json:"completedAt"`
}

// Sync sources recorded on NFTSyncedEvent
const (
	SourceEventScan      = "event_scan"
	SourceReconciliation = "reconciliation"
	SourcePendingSweep   = "pending_sweep"
)
