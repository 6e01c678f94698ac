// Package relayer is the HTTP client for the upstream swap network: price
// quotes, order creation and submission, status polling, and secret
// revelation.
package relayer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crosslock/fusion-gateway/pkg/types"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Client talks to the upstream swap network REST API.
type Client struct {
	baseURL    string
	authToken  string
	sourceTag  string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds relayer client configuration.
type Config struct {
	BaseURL   string
	AuthToken string
	SourceTag string
	Timeout   time.Duration
	Logger    *zap.Logger
}

// NewClient creates a new relayer client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		authToken: cfg.AuthToken,
		sourceTag: cfg.SourceTag,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: cfg.Logger,
	}
}

// doJSON performs one request against the upstream API. Any non-2xx status
// or malformed body is reported through a SwapError of the given kind with
// the upstream status and body attached; nothing is retried here - the
// caller decides.
func (c *Client) doJSON(ctx context.Context, kind types.ErrorKind, method, path string, reqBody, respBody any) error {
	var reader io.Reader
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	RequestDuration.WithLabelValues(method + " " + path).Observe(time.Since(start).Seconds())
	if err != nil {
		RequestErrorsTotal.Inc()
		return types.WrapError(kind, err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		RequestErrorsTotal.Inc()
		return types.WrapError(kind, err, "read response for %s %s", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		RequestErrorsTotal.Inc()
		return types.NewUpstreamError(kind, resp.StatusCode, string(body), "%s %s", method, path)
	}

	if respBody != nil {
		if err := json.Unmarshal(body, respBody); err != nil {
			RequestErrorsTotal.Inc()
			return types.NewUpstreamError(kind, resp.StatusCode, string(body),
				"parse response for %s %s", method, path)
		}
	}

	c.logger.Debug("relayer-request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return nil
}
