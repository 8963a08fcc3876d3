package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lampstand/berea/config"
	"github.com/rs/zerolog/log"
)

// Client talks to the external question-generation webhook service.
type Client interface {
	// Generate performs the synchronous call: it blocks until the generator
	// returns question content or the sync timeout elapses. Transport
	// failures, deadlines, HTTP 504 and empty/unparsable bodies come back as
	// fallback-class errors (see IsFallback); other non-2xx statuses map to
	// the typed errors in errors.go.
	Generate(ctx context.Context, req Request) ([]GeneratedQuestion, error)

	// Acknowledge performs the asynchronous kickoff call: it only waits for
	// the generator to accept the request, retrying transient failures with
	// exponential backoff before giving up.
	Acknowledge(ctx context.Context, req Request) error

	// Configured reports whether a generator endpoint is set at all.
	Configured() bool
}

type httpClient struct {
	url         string
	apiKey      string
	syncClient  *http.Client
	ackClient   *http.Client
	ackRetries  int
	backoffBase time.Duration
}

// NewClient builds the generator client from config. An empty GENERATOR_URL
// yields a client whose Configured() is false; callers decide how to degrade.
func NewClient(cfg *config.Config) Client {
	return &httpClient{
		url:         cfg.Generator.URL,
		apiKey:      cfg.Generator.APIKey,
		syncClient:  &http.Client{Timeout: time.Duration(cfg.Generator.SyncTimeoutSeconds) * time.Second},
		ackClient:   &http.Client{Timeout: time.Duration(cfg.Generator.AckTimeoutSeconds) * time.Second},
		ackRetries:  cfg.Generator.AckMaxRetries,
		backoffBase: time.Second,
	}
}

func (c *httpClient) Configured() bool {
	return c.url != ""
}

func (c *httpClient) Generate(ctx context.Context, req Request) ([]GeneratedQuestion, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	resp, body, err := c.post(ctx, c.syncClient, req)
	if err != nil {
		// Network-level failure or deadline: the caller falls back to
		// placeholders rather than failing quiz creation.
		log.Warn().Err(err).Msg("Generator sync call failed at transport level")
		return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyStatus(resp.StatusCode, body)
	}

	if errMsg := embeddedError(body); errMsg != "" {
		log.Warn().Str("generatorError", errMsg).Msg("Generator returned error body under 2xx status")
		return nil, fmt.Errorf("%w: %s", ErrInternal, errMsg)
	}

	questions, err := Normalize(body)
	if err != nil {
		log.Warn().Err(err).Int("bodyLen", len(body)).Msg("Generator response body could not be normalized")
		return nil, err
	}
	return questions, nil
}

func (c *httpClient) Acknowledge(ctx context.Context, req Request) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var lastErr error
	for attempt := 0; attempt <= c.ackRetries; attempt++ {
		if attempt > 0 {
			// 1s, 2s, 4s between attempts.
			backoff := c.backoffBase * (1 << (attempt - 1))
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
			case <-time.After(backoff):
			}
		}

		resp, body, err := c.post(ctx, c.ackClient, req)
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Int("attempt", attempt+1).Str("jobID", req.JobID).Msg("Generator acknowledgment attempt failed")
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return nil
		}

		classified := classifyStatus(resp.StatusCode, body)
		// Permanent rejections are not worth retrying.
		if !IsFallback(classified) && resp.StatusCode < 500 {
			return classified
		}
		lastErr = classified
	}

	return fmt.Errorf("%w: acknowledgment retries exhausted: %v", ErrTimeout, lastErr)
}

func (c *httpClient) post(ctx context.Context, client *http.Client, req Request) (*http.Response, []byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal generator request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("build generator request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

// classifyStatus maps generator HTTP statuses onto the user-facing error
// taxonomy. 504 is deliberately grouped with transport timeouts so a slow
// generator degrades to placeholder content instead of failing the request.
func classifyStatus(status int, body []byte) error {
	switch {
	case status == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: gateway timeout", ErrTimeout)
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusTooManyRequests:
		return ErrBusy
	case status == http.StatusBadRequest,
		status == http.StatusUnsupportedMediaType,
		status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w (status %d)", ErrUnsupported, status)
	default:
		if msg := embeddedError(body); msg != "" {
			return fmt.Errorf("%w (status %d): %s", ErrInternal, status, msg)
		}
		return fmt.Errorf("%w (status %d)", ErrInternal, status)
	}
}

// embeddedError extracts an error message from an error-shaped JSON body
// such as {"error": "..."} or {"error": {"message": "..."}}.
func embeddedError(body []byte) string {
	var shape struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &shape); err != nil || len(shape.Error) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(shape.Error, &msg); err == nil {
		return msg
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(shape.Error, &nested); err == nil && nested.Message != "" {
		return nested.Message
	}
	return string(shape.Error)
}
