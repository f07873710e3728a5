// Package remote talks to the storefront API on behalf of the client stores.
package remote

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

	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/types"
)

const (
	apiPrefix         = "/api/v1"
	defaultTimeout    = 10 * time.Second
	maxErrorBodyBytes = 64 << 10
)

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	AccessToken() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) AccessToken() string { return f() }

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Tokens     TokenSource
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Client is the HTTP implementation of every remote capability the client
// stores depend on.
type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
	logg   *logger.Logger
}

func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "api base url is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "api base url is invalid").
			WithDetails(map[string]any{"base_url": opts.BaseURL})
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	c := &Client{base: base, http: httpClient, tokens: opts.Tokens, logg: opts.Logger}
	if c.logg == nil {
		c.logg = logger.Nop()
	}
	return c, nil
}

// NewFromConfig builds a client from the client configuration.
func NewFromConfig(cfg config.APIClientConfig, tokens TokenSource, logg *logger.Logger) (*Client, error) {
	return New(Options{BaseURL: cfg.BaseURL, Timeout: cfg.RequestTimeout, Tokens: tokens, Logger: logg})
}

type request struct {
	method  string
	path    string
	query   url.Values
	body    any
	token   string
	headers map[string]string
}

// do sends req and decodes the data member of the response into out. A nil
// out discards the body.
func (c *Client) do(ctx context.Context, req request, out any) error {
	target := *c.base
	target.Path = c.base.Path + apiPrefix + req.path
	if len(req.query) > 0 {
		target.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request")
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target.String(), body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	token := req.token
	if token == "" && c.tokens != nil {
		token = c.tokens.AccessToken()
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logg.Warn(c.logg.WithFields(ctx, map[string]any{"method": req.method, "path": req.path, "error": err.Error()}), "remote.transport_failed")
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s", req.method, req.path))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	envelope := types.Envelope[json.RawMessage]{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response data")
	}
	return nil
}

// decodeError maps the error envelope back onto a typed error. Server-side
// failures are reported as dependency errors whatever code they carry.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var envelope types.ErrorEnvelope
	parsed := json.Unmarshal(raw, &envelope) == nil && envelope.Error.Code != ""

	if resp.StatusCode >= http.StatusInternalServerError {
		msg := fmt.Sprintf("remote returned %d", resp.StatusCode)
		if parsed && envelope.Error.Message != "" {
			msg = envelope.Error.Message
		}
		details := map[string]any{"status": resp.StatusCode}
		if parsed && envelope.Error.RequestID != "" {
			details["request_id"] = envelope.Error.RequestID
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New(strings.TrimSpace(string(raw))), msg).
			WithDetails(details)
	}

	code := pkgerrors.CodeForStatus(resp.StatusCode)
	msg := http.StatusText(resp.StatusCode)
	if parsed {
		code = pkgerrors.ParseCode(envelope.Error.Code)
		if envelope.Error.Message != "" {
			msg = envelope.Error.Message
		}
	}
	typed := pkgerrors.New(code, msg)
	if parsed && envelope.Error.Details != nil {
		typed = typed.WithDetails(envelope.Error.Details)
	}
	return typed
}
