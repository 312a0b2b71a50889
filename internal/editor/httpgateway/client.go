// Package httpgateway implements editor.Gateway against the resumes HTTP API.
package httpgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resumecraft/internal/editor"
)

const (
	defaultTimeout = 30 * time.Second
	resumesPath    = "/api/v1/resumes"
	maxErrorBody   = 64 << 10
)

// Client talks to the resumes API. The owner credential is sent as a bearer
// token on every request.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client for the API rooted at baseURL
// (e.g. http://localhost:8080). A nil httpClient gets a default with a 30s timeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

func (c *Client) Create(ctx context.Context, cred string, p editor.Payload) (editor.Record, error) {
	var rec editor.Record
	err := c.do(ctx, http.MethodPost, resumesPath, cred, p, &rec)
	return rec, err
}

func (c *Client) Update(ctx context.Context, cred, id string, p editor.Payload) (editor.Record, error) {
	var rec editor.Record
	err := c.do(ctx, http.MethodPut, resumePath(id), cred, p, &rec)
	return rec, err
}

func (c *Client) Get(ctx context.Context, cred, id string) (editor.Record, error) {
	var rec editor.Record
	err := c.do(ctx, http.MethodGet, resumePath(id), cred, nil, &rec)
	return rec, err
}

func (c *Client) List(ctx context.Context, cred string) ([]editor.Summary, error) {
	out := []editor.Summary{}
	if err := c.do(ctx, http.MethodGet, resumesPath, cred, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, cred, id string) error {
	return c.do(ctx, http.MethodDelete, resumePath(id), cred, nil, nil)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path, cred string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred != "" {
		req.Header.Set("Authorization", "Bearer "+cred)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", editor.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", editor.ErrNetwork, err)
	}
	return nil
}

// APIError is a non-2xx response. It unwraps to ErrUnauthorized,
// ErrNotFound or ErrNetwork according to Status.
type APIError struct {
	Status  int
	Code    string
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: status %d", e.kind, e.Status)
	}
	return fmt.Sprintf("%v: status %d: %s", e.kind, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Message != "" {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		apiErr.kind = editor.ErrUnauthorized
	case http.StatusNotFound:
		apiErr.kind = editor.ErrNotFound
	default:
		apiErr.kind = editor.ErrNetwork
	}
	return apiErr
}

func resumePath(id string) string {
	return resumesPath + "/" + url.PathEscape(id)
}

var _ editor.Gateway = (*Client)(nil)
