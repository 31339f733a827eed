package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/blind-rankings/internal/common"
)

const maxBodyBytes = 32 << 20

// Fetcher performs bounded HTTP GETs against the publisher's site.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
	logger    *slog.Logger
}

func NewFetcher(client *http.Client, userAgent string, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client, userAgent: userAgent, maxBody: maxBodyBytes, logger: logger}
}

// Get downloads url and returns the body. Transport failures, non-2xx statuses
// and bodies over the size cap wrap common.ErrFetch.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Error("ingest.http.build_request_error", "req_id", reqID, "error", err)
		return nil, fmt.Errorf("%w: build request: %v", common.ErrFetch, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	f.logger.Info("ingest.http.request", "req_id", reqID, "url", url)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error("ingest.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("%w: %s: %v", common.ErrFetch, url, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			f.logger.Warn("ingest.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrFetch, url, err)
	}
	if int64(len(raw)) > f.maxBody {
		f.logger.Error("ingest.http.body_too_large", "req_id", reqID, "url", url, "limit", f.maxBody)
		return nil, fmt.Errorf("%w: %s: body too large (> %d bytes)", common.ErrFetch, url, f.maxBody)
	}

	f.logger.Info("ingest.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: %s: non-2xx status: %d", common.ErrFetch, url, resp.StatusCode)
	}
	return raw, nil
}
