package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
)

// NFTResponse is one stored NFT record
type NFTResponse struct {
	ContractAddress  string          `json:"contract_address"`
	TokenID          string          `json:"token_id"`
	OwnerAddress     string          `json:"owner_address"`
	CreatorAddress   string          `json:"creator_address"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	ImageURL         string          `json:"image_url"`
	ObjectStorageURL *string         `json:"object_storage_url,omitempty"`
	Category         *string         `json:"category,omitempty"`
	Location         *string         `json:"location,omitempty"`
	Latitude         *float64        `json:"latitude,omitempty"`
	Longitude        *float64        `json:"longitude,omitempty"`
	TransactionHash  *string         `json:"transaction_hash,omitempty"`
	TokenURI         string          `json:"token_uri"`
	Metadata         json.RawMessage `json:"metadata,omitempty"`
	MetadataHash     string          `json:"metadata_hash,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NFTListResponse is a page of NFT records
type NFTListResponse struct {
	Items  []NFTResponse `json:"items"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// MapNFT converts a stored record to its response
func MapNFT(record *schema.NFTRecord) NFTResponse {
	resp := NFTResponse{
		ContractAddress:  record.ContractAddress,
		TokenID:          record.TokenID,
		OwnerAddress:     record.OwnerAddress,
		CreatorAddress:   record.CreatorAddress,
		Title:            record.Title,
		Description:      record.Description,
		ImageURL:         record.ImageURL,
		ObjectStorageURL: record.ObjectStorageURL,
		Category:         record.Category,
		Location:         record.Location,
		Latitude:         record.Latitude,
		Longitude:        record.Longitude,
		TransactionHash:  record.TransactionHash,
		TokenURI:         record.TokenURI,
		MetadataHash:     record.MetadataHash,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
	if len(record.Metadata) > 0 {
		resp.Metadata = json.RawMessage(record.Metadata)
	}
	return resp
}
