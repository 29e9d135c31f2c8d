package metadata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
)

// Fetcher downloads metadata documents behind IPFS references
//
//go:generate mockgen -source=fetcher.go -destination=../mocks/fetcher.go -package=mocks -mock_names=Fetcher=MockFetcher
type Fetcher interface {
	// Fetch returns the document from the canonical URL, falling back to each gateway in order
	Fetch(ctx context.Context, ref Source) ([]byte, error)
}

type fetcher struct {
	httpClient adapter.HTTPClient
	timeout    time.Duration
}

// NewFetcher creates a gateway fetcher. timeout bounds the whole fetch across gateways.
func NewFetcher(httpClient adapter.HTTPClient, timeout time.Duration) Fetcher {
	return &fetcher{
		httpClient: httpClient,
		timeout:    timeout,
	}
}

// Fetch tries the canonical URL, then each fallback gateway in order, and stops at the first success
func (f *fetcher) Fetch(ctx context.Context, ref Source) ([]byte, error) {
	if ref.Kind != SourceIPFSReference {
		return nil, fmt.Errorf("cannot fetch %s source", ref.Kind)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	urls := append([]string{ref.CanonicalURL}, ref.Fallbacks...)
	var errs []error
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		body, err := f.httpClient.GetBytes(ctx, url)
		if err == nil && len(body) > 0 {
			logger.DebugCtx(ctx, "Fetched metadata from gateway",
				zap.String("cid", ref.CID),
				zap.String("url", url))
			return body, nil
		}
		if err == nil {
			err = errors.New("empty body")
		}
		logger.DebugCtx(ctx, "Gateway fetch failed",
			zap.String("cid", ref.CID),
			zap.String("url", url),
			zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", url, err))
	}

	return nil, fmt.Errorf("failed to fetch %s from all gateways: %w", ref.CID, errors.Join(errs...))
}
