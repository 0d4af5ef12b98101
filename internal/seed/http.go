package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/tuna/pkg/logger"
)

// requestIDHeader matches the header the catalog API echoes back.
const requestIDHeader = "X-Request-ID"

// HTTPClient is a small JSON client for the catalog API.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	runID   string
	seq     atomic.Int64
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		runID:   uuid.NewString(),
	}
}

// do sends body as JSON and decodes the response into out when the status is want.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, c.runID+"-"+strconv.FormatInt(c.seq.Add(1), 10))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode != want {
		return fmt.Errorf("%w: %s %s: got %d want %d: %s", ErrUnexpectedStatus, method, path, resp.StatusCode, want, bytes.TrimSpace(data))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: decode: %w", method, path, err)
		}
	}
	return nil
}

func (c *HTTPClient) get(ctx context.Context, path string, want int, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, want, out)
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, http.StatusCreated, out)
}

func (c *HTTPClient) remove(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, http.StatusNoContent, nil)
}

func itemPath(collection string, id int64) string {
	return "/" + collection + "/" + strconv.FormatInt(id, 10)
}

// runPool feeds items to workers and calls fn for each.
// It returns how many calls failed.
func runPool[T any](ctx context.Context, workers int, items []T, fn func(context.Context, T) error) int {
	if workers < 1 {
		workers = 1
	}
	ch := make(chan T, workers*WorkerChannelMultiplier)
	var (
		wg     sync.WaitGroup
		failed int64
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range ch {
				if err := fn(ctx, item); err != nil {
					atomic.AddInt64(&failed, 1)
					logger.Get().Debug(ctx, "seed call failed", logger.Error(err))
				}
			}
		}()
	}

	go func() {
		defer close(ch)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case ch <- item:
			}
		}
	}()

	wg.Wait()
	return int(atomic.LoadInt64(&failed))
}

// indices returns 0..n-1.
func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
