package ingest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/ingest"
	"github.com/feral-file/ff-ledger-sync/internal/metadata"
	"github.com/feral-file/ff-ledger-sync/internal/mocks"
)

const (
	testContract = "0xAbC0000000000000000000000000000000000001"
	testOwner    = "0xBEEF000000000000000000000000000000000002"
	testCID      = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
)

type testResolverMocks struct {
	ctrl    *gomock.Controller
	ledger  *mocks.MockLedgerReader
	fetcher *mocks.MockFetcher
}

func setupTestResolver(t *testing.T) (*testResolverMocks, ingest.Resolver) {
	ctrl := gomock.NewController(t)
	tm := &testResolverMocks{
		ctrl:    ctrl,
		ledger:  mocks.NewMockLedgerReader(ctrl),
		fetcher: mocks.NewMockFetcher(ctrl),
	}
	normalizer := metadata.NewNormalizer("https://ipfs.io", nil, adapter.NewBase64())
	return tm, ingest.NewResolver(tm.ledger, normalizer, tm.fetcher)
}

func TestResolver_Resolve_InlineJSON(t *testing.T) {
	tm, r := setupTestResolver(t)
	ctx := context.Background()
	tokenURI := `data:application/json;utf8,{"name":"Shrine","image":"ipfs://` + testCID + `","attributes":[{"trait_type":"Category","value":"Temple"},{"trait_type":"Latitude","value":35.01}]}`

	tm.ledger.EXPECT().TokenURI(ctx, testContract, "7").Return(tokenURI, nil)

	txHash := "0xABCDEF"
	record, err := r.Resolve(ctx, ingest.Mint{
		ContractAddress: testContract,
		TokenID:         "7",
		OwnerAddress:    testOwner,
		TransactionHash: &txHash,
	}, domain.SourceEventScan)
	require.NoError(t, err)

	assert.Equal(t, "0xabc0000000000000000000000000000000000001", record.ContractAddress)
	assert.Equal(t, "7", record.TokenID)
	assert.Equal(t, "0xbeef000000000000000000000000000000000002", record.OwnerAddress)
	assert.Equal(t, record.OwnerAddress, record.CreatorAddress)
	require.NotNil(t, record.TransactionHash)
	assert.Equal(t, "0xabcdef", *record.TransactionHash)
	assert.Equal(t, "Shrine", record.Title)
	assert.Equal(t, "https://ipfs.io/ipfs/"+testCID, record.ImageURL)
	require.NotNil(t, record.Category)
	assert.Equal(t, "Temple", *record.Category)
	require.NotNil(t, record.Latitude)
	assert.Nil(t, record.Longitude)
	assert.Equal(t, tokenURI, record.TokenURI)
	assert.Len(t, record.MetadataHash, 64)
	assert.NotEmpty(t, record.Metadata)
}

func TestResolver_Resolve_FetchesIPFSReference(t *testing.T) {
	tm, r := setupTestResolver(t)
	ctx := context.Background()

	tm.ledger.EXPECT().TokenURI(ctx, testContract, "8").Return("ipfs://"+testCID+"/8.json", nil)
	tm.fetcher.EXPECT().Fetch(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, ref metadata.Source) ([]byte, error) {
		assert.Equal(t, metadata.SourceIPFSReference, ref.Kind)
		assert.Equal(t, "https://ipfs.io/ipfs/"+testCID+"/8.json", ref.CanonicalURL)
		return []byte(`{"name":"Fetched"}`), nil
	})

	record, err := r.Resolve(ctx, ingest.Mint{
		ContractAddress: testContract,
		TokenID:         "8",
		OwnerAddress:    testOwner,
		CreatorAddress:  "0xC0FFEE0000000000000000000000000000000003",
	}, domain.SourceReconciliation)
	require.NoError(t, err)
	assert.Equal(t, "Fetched", record.Title)
	assert.Equal(t, "0xc0ffee0000000000000000000000000000000003", record.CreatorAddress)
	assert.Nil(t, record.TransactionHash)
}

func TestResolver_Resolve_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("tokenURI reverted", func(t *testing.T) {
		tm, r := setupTestResolver(t)
		tm.ledger.EXPECT().TokenURI(ctx, testContract, "1").Return("", domain.ErrTokenURIReverted)

		record, err := r.Resolve(ctx, ingest.Mint{ContractAddress: testContract, TokenID: "1"}, domain.SourceEventScan)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, domain.ErrTokenURIReverted)
	})

	t.Run("unparseable", func(t *testing.T) {
		tm, r := setupTestResolver(t)
		tm.ledger.EXPECT().TokenURI(ctx, testContract, "1").Return("https://example.com/1", nil)

		_, err := r.Resolve(ctx, ingest.Mint{ContractAddress: testContract, TokenID: "1"}, domain.SourceEventScan)
		assert.ErrorIs(t, err, domain.ErrUnparseableMetadata)
	})

	t.Run("fetch failure", func(t *testing.T) {
		tm, r := setupTestResolver(t)
		tm.ledger.EXPECT().TokenURI(ctx, testContract, "1").Return("ipfs://"+testCID, nil)
		tm.fetcher.EXPECT().Fetch(ctx, gomock.Any()).Return(nil, errors.New("all gateways failed"))

		_, err := r.Resolve(ctx, ingest.Mint{ContractAddress: testContract, TokenID: "1"}, domain.SourceEventScan)
		assert.ErrorContains(t, err, "failed to fetch metadata")
	})

	t.Run("fetched document is not JSON", func(t *testing.T) {
		tm, r := setupTestResolver(t)
		tm.ledger.EXPECT().TokenURI(ctx, testContract, "1").Return("ipfs://"+testCID, nil)
		tm.fetcher.EXPECT().Fetch(ctx, gomock.Any()).Return([]byte("<html></html>"), nil)

		_, err := r.Resolve(ctx, ingest.Mint{ContractAddress: testContract, TokenID: "1"}, domain.SourceEventScan)
		assert.ErrorIs(t, err, domain.ErrUnparseableMetadata)
	})
}

func TestPendingFromMint(t *testing.T) {
	txHash := "0xAA"
	pending := ingest.PendingFromMint(ingest.Mint{
		ContractAddress: testContract,
		TokenID:         "280",
		OwnerAddress:    testOwner,
		CreatorAddress:  testOwner,
		TransactionHash: &txHash,
	}, domain.ErrTokenURIReverted)

	assert.Equal(t, "0xabc0000000000000000000000000000000000001", pending.ContractAddress)
	assert.Equal(t, "280", pending.TokenID)
	assert.Equal(t, 0, pending.RetryCount)
	require.NotNil(t, pending.LastError)
	assert.Equal(t, domain.ErrTokenURIReverted.Error(), *pending.LastError)
	require.NotNil(t, pending.TransactionHash)
	assert.Equal(t, "0xaa", *pending.TransactionHash)

	mint := ingest.MintFromPending(pending)
	assert.Equal(t, pending.OwnerAddress, mint.OwnerAddress)
	assert.Equal(t, "0xbeef000000000000000000000000000000000002", mint.CreatorAddress)
}
