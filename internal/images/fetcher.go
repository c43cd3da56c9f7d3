// Package images localizes remotely-hosted images referenced by post
// bodies: download, rename, rewrite, de-duplicate.
package images

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/wxrtools/wxr2mdx/internal/ratelimit"
)

const (
	// maxImageSize limits download size to prevent memory exhaustion.
	maxImageSize = 20 * 1024 * 1024 // 20MB

	// downloadTimeout is the maximum time for one image download.
	downloadTimeout = 30 * time.Second

	// Some image CDNs refuse requests without a browser identity.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Per-host politeness budget for downloads.
	hostRPS   = 4.0
	hostBurst = 8
)

// Fetcher downloads images with per-host rate limiting.
type Fetcher struct {
	client  *http.Client
	limiter *ratelimit.HostLimiter
	logger  *slog.Logger
}

// NewFetcher creates a new image fetcher. When insecure is true, TLS
// certificate verification is skipped; this is opt-in because some
// legacy image hosts still serve self-signed certificates.
func NewFetcher(logger *slog.Logger, insecure bool) *Fetcher {
	client := &http.Client{Timeout: downloadTimeout}
	if insecure {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //#nosec G402 -- gated behind the --insecure flag
		}
	}

	return &Fetcher{
		client:  client,
		limiter: ratelimit.New(hostRPS, hostBurst),
		logger:  logger,
	}
}

// Fetch downloads one image and returns its bytes.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, host string) ([]byte, error) {
	if err := f.limiter.Wait(ctx, host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	downloadCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(downloadCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	f.logger.Debug("downloaded image", "url", rawURL, "size", len(data))
	return data, nil
}
