// Package backend wraps every outbound call to the help-desk API. Each
// operation is one HTTP request; the parsed body comes back on 2xx and a
// *APIError carrying the response text on anything else. Retry policy, if
// any, belongs to the caller.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// TokenSource yields the bearer token attached to every request.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource for an already-issued token, e.g. the one
// held by a browser session.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource
	Log     zerolog.Logger
}

func New(baseURL string, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 20 * time.Second},
		Tokens:  tokens,
		Log:     log,
	}
}

// APIError is a non-2xx response. Body holds the backend's textual error
// body when one could be read.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	return c.send(req)
}

func (c *Client) authorize(req *http.Request) error {
	token, err := c.Tokens.Token()
	if err != nil {
		return fmt.Errorf("failed to load auth token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if readErr == nil {
			apiErr.Body = string(data)
		}
		c.Log.Error().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", resp.StatusCode).
			Str("body", apiErr.Body).
			Msg("backend request failed")
		return nil, apiErr
	}
	if readErr != nil {
		return nil, fmt.Errorf("failed to read response body: %w", readErr)
	}
	return data, nil
}

func decodeInto(data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// doJSON runs a request and decodes the 2xx body into T.
func doJSON[T any](ctx context.Context, c *Client, method, path string, payload interface{}) (T, error) {
	var out T
	data, err := c.do(ctx, method, path, payload)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}
