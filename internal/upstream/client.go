package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"isiboard/internal/common"
	"isiboard/internal/metrics"

	"github.com/rs/zerolog"
)

// Client is the typed REST client for the IsiPython API. Every dashboard
// data source goes through it; the base URL is configured once here instead
// of per call site.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func New(baseURL string, timeout time.Duration, logger zerolog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "upstream").Logger(),
		metrics: m,
	}
}

// APIError carries the message probed out of an upstream error body. The
// message is surfaced to the dashboard as-is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return common.ErrUpstream }

// envelope is the upstream success convention: {data: ..., message: string}.
// Endpoints that reply without the wrapper are handled by falling back to the
// whole body.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("upstream.do: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("upstream.do: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if c.metrics != nil {
		c.metrics.ObserveUpstreamLatency(time.Since(start).Seconds())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.IncUpstreamRequest(path, "error")
		}
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("upstream request failed")
		return nil, &APIError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.IncUpstreamRequest(path, strconv.Itoa(resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("upstream.do: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := probeErrorMessage(resp.StatusCode, raw)
		c.logger.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Str("error", msg).Msg("upstream returned error")
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return env.Data, nil
	}
	return raw, nil
}

// probeErrorMessage extracts a display string from an upstream error body.
// Bodies are inconsistently shaped, so the keys are probed in a fixed order:
// errors (field -> message map), message, error, detail, then a plain
// "HTTP <status> <text>" fallback.
func probeErrorMessage(status int, raw []byte) string {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err == nil {
		if fields, ok := body["errors"].(map[string]interface{}); ok && len(fields) > 0 {
			keys := make([]string, 0, len(fields))
			for k := range fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts := make([]string, 0, len(keys))
			for _, k := range keys {
				parts = append(parts, fmt.Sprintf("%s: %v", k, fields[k]))
			}
			return strings.Join(parts, "; ")
		}
		for _, key := range []string{"message", "error", "detail"} {
			if s, ok := body[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("HTTP %d %s", status, http.StatusText(status))
}

// unwrapList peels one more layer for endpoints that nest their array under a
// named key inside data, e.g. {"data": {"challenges": [...]}}.
func unwrapList(raw json.RawMessage, key string) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &nested); err != nil {
		return raw
	}
	if inner, ok := nested[key]; ok {
		return inner
	}
	return raw
}

func orderQuery(orderBy, orderDirection string) url.Values {
	query := url.Values{}
	if orderBy != "" {
		query.Set("order_by", orderBy)
	}
	if orderDirection != "" {
		query.Set("order_direction", orderDirection)
	}
	return query
}
