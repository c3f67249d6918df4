// Package api is a typed client for the knowledge-graph platform REST API.
// It attaches the caller's bearer token to every request and normalizes the
// platform's error bodies into a single message.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for outbound requests. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client talks to the platform API under its /api/v1 prefix.
type Client struct {
	http   *resty.Client
	tokens TokenSource
}

// ClientParams contains configuration for creating a Client.
type ClientParams struct {
	BaseURL string
	Tokens  TokenSource
	Timeout time.Duration
}

// NewClient creates a platform API client.
func NewClient(params ClientParams) *Client {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(params.BaseURL, "/") + "/api/v1").
		SetTimeout(timeout)
	return &Client{
		http:   httpClient,
		tokens: params.Tokens,
	}
}

// Error is a server-reported failure, normalized to a single message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("platform api: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a server-side 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// errorBody covers the error shapes the platform emits: a FastAPI "detail"
// that is either a string or a field-validation array, and the flat
// "message"/"error" variants from the global exception handlers.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Err     string          `json:"error"`
}

func normalizeError(status int, body []byte) *Error {
	fallback := &Error{
		StatusCode: status,
		Message:    http.StatusText(status),
	}
	if len(body) == 0 {
		return fallback
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		msg := strings.TrimSpace(string(body))
		if msg != "" {
			fallback.Message = msg
		}
		return fallback
	}

	if len(parsed.Detail) > 0 {
		var detailStr string
		if err := json.Unmarshal(parsed.Detail, &detailStr); err == nil && detailStr != "" {
			return &Error{StatusCode: status, Message: detailStr}
		}

		var fields []fieldError
		if err := json.Unmarshal(parsed.Detail, &fields); err == nil && len(fields) > 0 {
			parts := make([]string, 0, len(fields))
			for _, f := range fields {
				field := ""
				if len(f.Loc) > 0 {
					field = fmt.Sprintf("%v", f.Loc[len(f.Loc)-1])
				}
				if field != "" {
					parts = append(parts, field+": "+f.Msg)
				} else {
					parts = append(parts, f.Msg)
				}
			}
			return &Error{StatusCode: status, Message: strings.Join(parts, "; ")}
		}

		// Nested detail object, e.g. {"error": ..., "sql": ...}.
		var detailObj errorBody
		if err := json.Unmarshal(parsed.Detail, &detailObj); err == nil && detailObj.Err != "" {
			return &Error{StatusCode: status, Message: detailObj.Err}
		}
	}

	if parsed.Message != "" {
		return &Error{StatusCode: status, Message: parsed.Message}
	}
	if parsed.Err != "" {
		return &Error{StatusCode: status, Message: parsed.Err}
	}
	return fallback
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.SetAuthToken(token)
		}
	}
	return req
}

func (c *Client) finish(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return normalizeError(resp.StatusCode(), resp.Body())
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	req := c.request(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Get(path)
	return c.finish(resp, err)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	req := c.request(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Post(path)
	return c.finish(resp, err)
}

func (c *Client) del(ctx context.Context, path string, out any) error {
	req := c.request(ctx)
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Delete(path)
	return c.finish(resp, err)
}
