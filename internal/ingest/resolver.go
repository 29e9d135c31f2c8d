package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/metadata"
	"github.com/feral-file/ff-ledger-sync/internal/metrics"
	"github.com/feral-file/ff-ledger-sync/internal/providers/ethereum"
	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
	"github.com/feral-file/ff-ledger-sync/internal/types"
)

// Mint identifies a token to resolve along with what is already known about it
type Mint struct {
	ContractAddress string
	TokenID         string
	OwnerAddress    string
	// CreatorAddress falls back to OwnerAddress when empty
	CreatorAddress  string
	TransactionHash *string
}

// Resolver turns a minted token into an NFT record draft
//
//go:generate mockgen -source=resolver.go -destination=../mocks/token_resolver.go -package=mocks -mock_names=Resolver=MockTokenResolver
type Resolver interface {
	// Resolve reads the tokenURI, normalizes it and fetches IPFS references when needed.
	// Any error means the mint belongs in the pending queue.
	Resolve(ctx context.Context, mint Mint, source string) (*schema.NFTRecord, error)
}

type resolver struct {
	ledger     ethereum.LedgerReader
	normalizer metadata.Normalizer
	fetcher    metadata.Fetcher
}

// NewResolver creates the token resolver shared by the scanner, reconciler and sweeper
func NewResolver(ledger ethereum.LedgerReader, normalizer metadata.Normalizer, fetcher metadata.Fetcher) Resolver {
	return &resolver{
		ledger:     ledger,
		normalizer: normalizer,
		fetcher:    fetcher,
	}
}

func (r *resolver) Resolve(ctx context.Context, mint Mint, source string) (*schema.NFTRecord, error) {
	record, err := r.resolve(ctx, mint)
	if err != nil {
		metrics.TokensResolved.WithLabelValues(source, metrics.OutcomePending).Inc()
		logger.WarnCtx(ctx, "Token resolution failed",
			zap.String("contract", mint.ContractAddress),
			zap.String("tokenID", mint.TokenID),
			zap.String("source", source),
			zap.Error(err))
		return nil, err
	}

	metrics.TokensResolved.WithLabelValues(source, metrics.OutcomeSuccess).Inc()
	return record, nil
}

func (r *resolver) resolve(ctx context.Context, mint Mint) (*schema.NFTRecord, error) {
	tokenURI, err := r.ledger.TokenURI(ctx, mint.ContractAddress, mint.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokenURI: %w", err)
	}

	normalized, err := r.normalizer.Normalize(tokenURI)
	var fetchErr *metadata.FetchRequiredError
	if errors.As(err, &fetchErr) {
		doc, ferr := r.fetcher.Fetch(ctx, fetchErr.Reference)
		if ferr != nil {
			return nil, fmt.Errorf("failed to fetch metadata: %w", ferr)
		}
		normalized, err = r.normalizer.NormalizeDocument(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to normalize metadata: %w", err)
	}

	return BuildRecord(mint, tokenURI, normalized), nil
}

// BuildRecord maps a normalized document onto a new NFT record
func BuildRecord(mint Mint, tokenURI string, normalized *metadata.Record) *schema.NFTRecord {
	owner := types.NormalizeAddress(mint.OwnerAddress)
	creator := types.NormalizeAddress(mint.CreatorAddress)
	if creator == "" {
		creator = owner
	}

	record := &schema.NFTRecord{
		ContractAddress: types.NormalizeAddress(mint.ContractAddress),
		TokenID:         mint.TokenID,
		OwnerAddress:    owner,
		CreatorAddress:  creator,
		TransactionHash: normalizeTxHash(mint.TransactionHash),
		TokenURI:        tokenURI,
	}
	if normalized == nil {
		return record
	}

	record.Title = normalized.Title
	record.Description = normalized.Description
	record.ImageURL = normalized.ImageURL
	record.Category = normalized.Category
	record.Location = normalized.Location
	record.Latitude = normalized.Latitude
	record.Longitude = normalized.Longitude
	record.Metadata = datatypes.JSON(normalized.Raw)
	record.MetadataHash = normalized.Hash

	return record
}

// PendingFromMint builds the retry queue entry for a mint that failed to resolve
func PendingFromMint(mint Mint, cause error) *schema.PendingMint {
	pending := &schema.PendingMint{
		ContractAddress: types.NormalizeAddress(mint.ContractAddress),
		TokenID:         mint.TokenID,
		OwnerAddress:    types.NormalizeAddress(mint.OwnerAddress),
		TransactionHash: normalizeTxHash(mint.TransactionHash),
	}
	if mint.CreatorAddress != "" {
		pending.CreatorAddress = types.StringPtr(types.NormalizeAddress(mint.CreatorAddress))
	}
	if cause != nil {
		pending.LastError = types.StringPtr(cause.Error())
	}
	return pending
}

// MintFromPending rebuilds the mint of a queued entry
func MintFromPending(pending *schema.PendingMint) Mint {
	return Mint{
		ContractAddress: pending.ContractAddress,
		TokenID:         pending.TokenID,
		OwnerAddress:    pending.OwnerAddress,
		CreatorAddress:  types.SafeString(pending.CreatorAddress),
		TransactionHash: pending.TransactionHash,
	}
}

func normalizeTxHash(hash *string) *string {
	if types.StringNilOrEmpty(hash) {
		return nil
	}
	return types.StringPtr(types.NormalizeTxHash(*hash))
}
