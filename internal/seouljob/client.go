package seouljob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/the11job/jobs-ingest/internal/errors"
)

// ErrEmptyResponse signals a successful call whose body was empty. The
// upstream API answers open-ended windows this way, so it means "no more
// data", not failure.
var ErrEmptyResponse = errors.New("empty response body")

// Config captures the subset of upstream API behaviour the client needs.
type Config struct {
	BaseURL      string
	Key          string
	Endpoint     string
	Timeout      time.Duration
	Retries      int
	MaxBodyBytes int64
	Client       *http.Client
}

// Client fetches one index window of the job dataset per call. It is
// stateless across calls apart from the injected base URL and key.
type Client struct {
	baseURL  string
	key      string
	endpoint string
	retries  int
	maxBody  int64
	client   *http.Client
}

// NewClient builds an API client. Callers should pass a sanitized config.
func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		return nil, errors.New("seoul api key is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("seoul api base url is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "GetJobInfo"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 4 << 20
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:  baseURL,
		key:      key,
		endpoint: endpoint,
		retries:  retries,
		maxBody:  maxBody,
		client:   hc,
	}, nil
}

// FetchPage issues one GET for the inclusive [start, end] window and
// returns the raw XML body. Transient failures (network errors, 5xx) are
// retried up to the configured bound with linear backoff; 4xx responses
// and oversized bodies fail fast. ErrEmptyResponse reports a successful
// call that carried no body.
func (c *Client) FetchPage(ctx context.Context, start, end int) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/xml/%s/%d/%d", c.baseURL, c.key, c.endpoint, start, end)

	attempts := c.retries + 1
	var (
		body    []byte
		lastErr error
	)
	for attempt := 0; attempt < attempts; attempt++ {
		var retryable bool
		body, retryable, lastErr = c.get(ctx, url)
		if lastErr == nil {
			break
		}
		if !retryable {
			return nil, lastErr
		}
		if attempt < attempts-1 {
			// Simple linear backoff to avoid hammering the API.
			delay := time.Duration(attempt+1) * 200 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyResponse
	}
	return body, nil
}

// get performs a single request. The second return value reports whether
// the failure is worth retrying.
func (c *Client) get(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.ErrCodeCommunication, "build job info request")
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, apperrors.Wrap(err, apperrors.ErrCodeCommunication, "call job info api")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err = apperrors.Communicationf(
			"job info api responded %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)),
		)
		// Server-side failures may be transient; client errors are not.
		return nil, resp.StatusCode >= http.StatusInternalServerError, err
	}

	// Read one byte past the cap so truncation is detected rather than
	// silently handing a cut-off document to the XML decoder.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, true, apperrors.Wrap(err, apperrors.ErrCodeCommunication, "read job info response")
	}
	if int64(len(body)) > c.maxBody {
		return nil, false, apperrors.Communicationf(
			"job info response exceeds %d byte limit", c.maxBody,
		)
	}
	return body, true, nil
}
