// Package hosted talks to a hosted PostgREST and GoTrue service, the
// deployment target that owns the guest tables and admin accounts.
package hosted

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wedding-rsvp/internal/auth"
)

// APIError is a non-2xx reply. Its Error is the service's own message so it
// can be shown to the user verbatim.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client is a data and auth client for the hosted service
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a client for baseURL authenticated with the project's API key
func NewClient(baseURL, apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log.With().Str("component", "hosted").Logger(),
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	prefer string
	bearer string
}

// do sends req and decodes a JSON reply into out when out is non-nil
func (c *Client) do(ctx context.Context, req request, out any) (*http.Response, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}
	bearer := req.bearer
	if bearer == "" {
		if token, ok := auth.TokenFrom(ctx); ok {
			bearer = token
		} else {
			bearer = c.apiKey
		}
	}
	httpReq.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error().Err(err).Str("method", req.method).Str("path", req.path).Msg("request failed")
		return nil, fmt.Errorf("request to %s failed: %w", req.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		c.log.Warn().Int("status", resp.StatusCode).Str("path", req.path).Str("error", apiErr.Message).Msg("service returned an error")
		return resp, apiErr
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return resp, fmt.Errorf("failed to decode %s response: %w", req.path, err)
		}
	}
	return resp, nil
}

// decodeError reads whichever error shape the service used
func decodeError(resp *http.Response) *APIError {
	var raw struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		Code             any    `json:"code"`
		ErrorCode        string `json:"error_code"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(b, &raw)

	e := &APIError{Status: resp.StatusCode}
	for _, m := range []string{raw.Message, raw.Msg, raw.ErrorDescription, raw.Error} {
		if m != "" {
			e.Message = m
			break
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}
	switch code := raw.Code.(type) {
	case string:
		e.Code = code
	case float64:
		e.Code = strconv.Itoa(int(code))
	}
	if e.Code == "" {
		e.Code = raw.ErrorCode
	}
	return e
}

// parseCount reads the total from a Content-Range header such as "0-24/3573" or "*/0"
func parseCount(header string) (int, error) {
	i := strings.LastIndexByte(header, '/')
	if i < 0 || header[i+1:] == "*" {
		return 0, fmt.Errorf("content-range %q has no total", header)
	}
	n, err := strconv.Atoi(header[i+1:])
	if err != nil {
		return 0, fmt.Errorf("content-range %q: %w", header, err)
	}
	return n, nil
}
