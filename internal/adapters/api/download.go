package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thumlify/thumlify-cli/internal/ports"
)

// Rendered assets are served from the image host, not the JSON API, so the
// cap is wider than the API response cap.
const maxAssetBytes = 64 << 20

// AssetDownloader fetches rendered assets from absolute URLs. It shares the
// cookie-bearing HTTP client so protected assets resolve too.
type AssetDownloader struct {
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.AssetFetcher = (*AssetDownloader)(nil)

func (d *AssetDownloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	requestCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		timeout := d.RequestTimeout
		if timeout <= 0 {
			timeout = 2 * time.Minute
		}
		var cancel context.CancelFunc
		requestCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create asset request: %w", err)
	}

	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch asset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{Status: resp.StatusCode, Message: "asset fetch failed"}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, fmt.Errorf("read asset body: %w", err)
	}
	return data, nil
}
