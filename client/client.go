package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const apiPrefix = "/v1"

// APIError is a non-2xx response, carrying the human-readable message the
// backend put in the body (or a generic fallback).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client issues requests against the PlanningKart backend, attaching the
// bearer token when a session is present. A 401 on any call purges the
// stored credentials as a side effect; the caller is never redirected.
type Client struct {
	baseURL string
	httpc   *http.Client
	session *Session
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithStorage(storage CredentialStorage) Option {
	return func(c *Client) { c.session.storage = storage }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New builds a client for the given base URL. The session is rehydrated
// from storage immediately, so a previously saved token is used without
// revalidation until the backend rejects it.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	c.session = &Session{c: c, storage: NewMemoryStorage()}

	for _, opt := range opts {
		opt(c)
	}

	c.session.rehydrate()
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body == nil {
		buf.WriteString("{}")
	} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}
	return c.do(ctx, method, path, &buf, "application/json", out)
}

// do runs one request/response cycle. Connectivity failures come back as
// wrapped network errors, non-2xx responses as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp, out)
}

func (c *Client) decodeResponse(resp *http.Response, out interface{}) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Soft logout: purge stored credentials, surface the error.
		c.logger.Debug("received 401, clearing stored credentials")
		c.session.clearLocal()
	}

	var envelope apiResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := fmt.Sprintf("Request failed with status %d", resp.StatusCode)
		if jsonErr := json.Unmarshal(raw, &envelope); jsonErr == nil {
			if envelope.Error != "" {
				message = envelope.Error
			} else if envelope.Message != "" {
				message = envelope.Message
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}
