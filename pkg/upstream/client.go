// Package upstream is the gateway's client for the research-management REST
// backend. It exposes one method per backend endpoint and normalises every
// failure into a *errors.Error whose Message is safe to show to the user.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
	"github.com/noah-isme/research-admin-gateway/pkg/middleware/requestid"
)

const maxResponseBytes = 16 << 20

// Config locates the backend.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxUploadBytes int64
}

// Observer receives timing for every backend call.
type Observer interface {
	ObserveUpstream(endpoint string, status int, duration time.Duration)
}

// Option customises the client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client (tests use httptest servers).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client talks to the backend on behalf of the signed-in user.
type Client struct {
	baseURL   string
	http      *http.Client
	logger    *zap.Logger
	observer  Observer
	maxUpload int64
}

// New constructs a Client.
func New(cfg Config, logger *zap.Logger, observer Observer, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 50 << 20
	}
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
		observer:  observer,
		maxUpload: maxUpload,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// MaxUploadBytes is the largest file the client will forward.
func (c *Client) MaxUploadBytes() int64 {
	return c.maxUpload
}

type tokenKey struct{}

// WithToken attaches the caller's bearer token for forwarding.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token placed by WithToken.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// getJSON, postJSON, putJSON and deleteJSON are thin verb helpers over do.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, endpoint, path, nil, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, endpoint, path, body, out)
}

func (c *Client) putJSON(ctx context.Context, endpoint, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, endpoint, path, body, out)
}

func (c *Client) deleteJSON(ctx context.Context, endpoint, path string) error {
	return c.do(ctx, http.MethodDelete, endpoint, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Normalize(fmt.Errorf("encode %s request: %w", endpoint, err))
		}
		reader = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return Normalize(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, endpoint, out)
}

func (c *Client) upload(ctx context.Context, endpoint, path string, file FileUpload, fields map[string]string, out interface{}) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	written := make(chan error, 1)
	go func() {
		err := writeMultipart(mw, file, fields, c.maxUpload)
		if closeErr := mw.Close(); err == nil {
			err = closeErr
		}
		// Published before the pipe closes so send never fails first.
		written <- err
		pw.CloseWithError(err)
	}()

	req, err := c.newRequest(ctx, http.MethodPost, path, pr)
	if err != nil {
		_ = pr.Close()
		return Normalize(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	err = c.send(req, endpoint, out)
	if err == nil {
		return nil
	}
	// A rejected file aborts the body; report that rather than the
	// transport failure it causes.
	select {
	case writeErr := <-written:
		var appErr *appErrors.Error
		if errors.As(writeErr, &appErr) {
			return appErr
		}
	default:
	}
	return err
}

func writeMultipart(mw *multipart.Writer, file FileUpload, fields map[string]string, limit int64) error {
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	part, err := mw.CreateFormFile(file.Field, file.Filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	n, err := io.Copy(part, io.LimitReader(file.Content, limit+1))
	if err != nil {
		return fmt.Errorf("copy upload: %w", err)
	}
	if n > limit {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the upload limit of %d bytes", limit))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		req.Header.Set(requestid.HeaderKey, reqID)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, endpoint string, out interface{}) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(endpoint, 0, duration)
		c.logger.Warn("upstream request failed",
			zap.String("endpoint", endpoint),
			zap.String("method", req.Method),
			zap.Duration("duration", duration),
			zap.Error(err))
		return Normalize(&transportError{err: err})
	}
	defer resp.Body.Close() //nolint:errcheck
	c.observe(endpoint, resp.StatusCode, duration)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Normalize(&transportError{err: err})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		httpErr := responseError(resp.StatusCode, raw)
		c.logger.Info("upstream returned error",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", httpErr.Message))
		return httpErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := decodeBody(raw, out); err != nil {
		return Normalize(fmt.Errorf("decode %s response: %w", endpoint, err))
	}
	return nil
}

func (c *Client) observe(endpoint string, status int, duration time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(endpoint, status, duration)
	}
}

// decodeBody accepts both {"data": ...} envelopes and bare JSON.
func decodeBody(raw []byte, out interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &envelope); err == nil && len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
			return json.Unmarshal(envelope.Data, out)
		}
	}
	return json.Unmarshal(trimmed, out)
}

// FileUpload describes a file streamed to the backend as multipart form data.
type FileUpload struct {
	Field    string
	Filename string
	Content  io.Reader
}
