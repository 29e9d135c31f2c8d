package metadata_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger-sync/internal/metadata"
	"github.com/feral-file/ff-ledger-sync/internal/mocks"
)

const testCID = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

func testReference() metadata.Source {
	return metadata.Source{
		Kind:         metadata.SourceIPFSReference,
		CID:          testCID,
		CanonicalURL: "https://gateway.example/ipfs/" + testCID,
		Fallbacks:    []string{"https://fallback-a.example/ipfs/" + testCID},
	}
}

func TestFetcher_Fetch(t *testing.T) {
	t.Run("canonical gateway succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		httpClient := mocks.NewMockHTTPClient(ctrl)
		httpClient.EXPECT().GetBytes(gomock.Any(), "https://gateway.example/ipfs/"+testCID).
			Return([]byte(`{"name":"A"}`), nil)

		body, err := metadata.NewFetcher(httpClient, time.Second).Fetch(context.Background(), testReference())
		require.NoError(t, err)
		assert.Equal(t, `{"name":"A"}`, string(body))
	})

	t.Run("falls back when canonical fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		httpClient := mocks.NewMockHTTPClient(ctrl)
		gomock.InOrder(
			httpClient.EXPECT().GetBytes(gomock.Any(), "https://gateway.example/ipfs/"+testCID).
				Return(nil, errors.New("unexpected status code 504")),
			httpClient.EXPECT().GetBytes(gomock.Any(), "https://fallback-a.example/ipfs/"+testCID).
				Return([]byte(`{"name":"B"}`), nil),
		)

		body, err := metadata.NewFetcher(httpClient, time.Second).Fetch(context.Background(), testReference())
		require.NoError(t, err)
		assert.Equal(t, `{"name":"B"}`, string(body))
	})

	t.Run("slow canonical gateway is not raced by fallbacks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		httpClient := mocks.NewMockHTTPClient(ctrl)
		httpClient.EXPECT().GetBytes(gomock.Any(), "https://gateway.example/ipfs/"+testCID).
			DoAndReturn(func(ctx context.Context, url string) ([]byte, error) {
				time.Sleep(20 * time.Millisecond)
				return []byte(`{"name":"canonical"}`), nil
			})

		body, err := metadata.NewFetcher(httpClient, time.Second).Fetch(context.Background(), testReference())
		require.NoError(t, err)
		assert.Equal(t, `{"name":"canonical"}`, string(body))
	})

	t.Run("fallbacks are tried in order until one succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		httpClient := mocks.NewMockHTTPClient(ctrl)
		ref := testReference()
		ref.Fallbacks = append(ref.Fallbacks,
			"https://fallback-b.example/ipfs/"+testCID,
			"https://fallback-c.example/ipfs/"+testCID)

		gomock.InOrder(
			httpClient.EXPECT().GetBytes(gomock.Any(), ref.CanonicalURL).Return(nil, errors.New("timeout")),
			httpClient.EXPECT().GetBytes(gomock.Any(), ref.Fallbacks[0]).Return([]byte{}, nil),
			httpClient.EXPECT().GetBytes(gomock.Any(), ref.Fallbacks[1]).Return([]byte(`{"name":"C"}`), nil),
		)

		body, err := metadata.NewFetcher(httpClient, time.Second).Fetch(context.Background(), ref)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"C"}`, string(body))
	})

	t.Run("all gateways fail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		httpClient := mocks.NewMockHTTPClient(ctrl)
		httpClient.EXPECT().GetBytes(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("timeout")).Times(2)

		body, err := metadata.NewFetcher(httpClient, time.Second).Fetch(context.Background(), testReference())
		assert.Nil(t, body)
		require.Error(t, err)
		assert.Contains(t, err.Error(), testCID)
	})

	t.Run("empty body is a failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		httpClient := mocks.NewMockHTTPClient(ctrl)
		httpClient.EXPECT().GetBytes(gomock.Any(), gomock.Any()).Return([]byte{}, nil).Times(2)

		_, err := metadata.NewFetcher(httpClient, time.Second).Fetch(context.Background(), testReference())
		assert.Error(t, err)
	})

	t.Run("rejects non-reference sources", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		httpClient := mocks.NewMockHTTPClient(ctrl)

		_, err := metadata.NewFetcher(httpClient, time.Second).Fetch(context.Background(), metadata.Source{Kind: metadata.SourceInlineJSON})
		assert.Error(t, err)
	})
}
