// Package gateway is the typed client for the café API gateway. Every call
// returns either the decoded `result` payload or one of *Error and
// *NetworkError.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	http    HTTPClient
}

func NewClient(cfg Config, httpClient HTTPClient) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
	}
}

// Error is a non-2xx answer from the gateway.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// NetworkError means the gateway could not be reached or its answer could
// not be read.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a gateway 404.
func IsNotFound(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Status == http.StatusNotFound
}

type ctxKey int

const (
	tokenKey ctxKey = iota
	requestIDKey
)

// WithToken attaches the bearer token used for calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFrom(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey).(string)
	return s
}

// WithRequestID sets the X-Request-ID forwarded upstream.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	if s, ok := ctx.Value(requestIDKey).(string); ok && s != "" {
		return s
	}
	return uuid.NewString()
}

type envelope struct {
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
}

// do sends one request and decodes the result into out (may be nil). The
// gateway wraps payloads as {"result": ..., "message": ...}; some endpoints
// answer with the bare payload, which is accepted as well.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rid := requestIDFrom(ctx)
	req.Header.Set("X-Request-ID", rid)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		log.Printf("gateway %s %s rid=%s failed: %v", method, path, rid, err)
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer res.Body.Close()
	log.Printf("gateway %s %s rid=%s status=%d took=%s", method, path, rid, res.StatusCode, time.Since(start))

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return &Error{Status: res.StatusCode, Message: strings.TrimSpace(env.Message)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	payload := unwrap(raw)
	if err := json.Unmarshal(payload, out); err != nil {
		return &NetworkError{Op: "decode " + method + " " + path, Err: err}
	}
	return nil
}

func unwrap(raw []byte) []byte {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return raw
	}
	if r, ok := probe["result"]; ok {
		return r
	}
	return raw
}
