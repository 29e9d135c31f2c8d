package schema

import (
	"time"

	"gorm.io/datatypes"
)

// NFTRecord represents the nft_records table - one minted token mirrored from the ledger
type NFTRecord struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContractAddress is the lowercase address of the NFT contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_nft_records_contract_token,priority:1"`
	// TokenID is the decimal form of the on-chain token id
	TokenID string `gorm:"column:token_id;not null;type:text;uniqueIndex:idx_nft_records_contract_token,priority:2"`
	// OwnerAddress is the current owner; updated by transfer events
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;index"`
	// CreatorAddress is the minter; never updated after insert
	CreatorAddress string `gorm:"column:creator_address;not null;type:text;index"`
	// Title comes from the metadata name
	Title string `gorm:"column:title;not null;type:text;default:''"`
	// Description comes from the metadata description
	Description string `gorm:"column:description;not null;type:text;default:''"`
	// ImageURL is the canonical image reference (IPFS gateway or HTTP)
	ImageURL string `gorm:"column:image_url;not null;type:text;default:''"`
	// ObjectStorageURL is the durable mirror populated by the media pipeline
	ObjectStorageURL *string `gorm:"column:object_storage_url;type:text"`
	// Category comes from the Category attribute
	Category *string `gorm:"column:category;type:text;index"`
	// Location is the free-text place name from the Location attribute
	Location *string `gorm:"column:location;type:text"`
	// Latitude is nil when the token carries no usable geodata
	Latitude *float64 `gorm:"column:latitude;type:double precision"`
	// Longitude is nil when the token carries no usable geodata
	Longitude *float64 `gorm:"column:longitude;type:double precision"`
	// TransactionHash is the mint transaction; unique when present
	TransactionHash *string `gorm:"column:transaction_hash;type:text;uniqueIndex:idx_nft_records_transaction_hash,where:transaction_hash IS NOT NULL"`
	// TokenURI is the raw tokenURI the record was normalized from
	TokenURI string `gorm:"column:token_uri;not null;type:text"`
	// Metadata is the decoded metadata document, verbatim
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	// MetadataHash is the sha256 of the canonical metadata document
	MetadataHash string `gorm:"column:metadata_hash;not null;type:text;default:''"`
	// CreatedAt is the timestamp when this record was first stored
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last owner change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the NFTRecord model
func (NFTRecord) TableName() string {
	return "nft_records"
}
