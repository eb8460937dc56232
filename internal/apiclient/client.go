package apiclient

// Package apiclient is the console's single outbound gateway to the backend API.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/showcase-labs/showcase-console/internal/ports"
	"golang.org/x/net/publicsuffix"
)

var _ ports.CredentialAPI = (*Client)(nil)

// Endpoint paths relative to the base URL.
const (
	LoginPath  = "/auth/login"
	SignupPath = "/auth/signup"
	MePath     = "/auth/me"
)

// Options configures a Client.
type Options struct {
	BaseURL string
	Tokens  TokenSource
	// HTTPClient is copied; its Transport becomes the base of the bearer transport.
	HTTPClient *http.Client
	// Timeout of zero means no client-side timeout.
	Timeout   time.Duration
	UserAgent string
	Logger    *slog.Logger
}

// Client issues JSON requests through the bearer Transport.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// New constructs a Client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https, got %q", base.Scheme)
	}

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		copied := *opts.HTTPClient
		hc = &copied
	}
	hc.Transport = &Transport{Base: hc.Transport, Tokens: opts.Tokens, Logger: opts.Logger}
	if opts.Timeout > 0 {
		hc.Timeout = opts.Timeout
	}
	if hc.Jar == nil {
		jar, jarErr := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if jarErr != nil {
			return nil, fmt.Errorf("cookie jar: %w", jarErr)
		}
		hc.Jar = jar
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "showcase-console"
	}
	return &Client{baseURL: base, http: hc, userAgent: ua}, nil
}

// Do sends in (when non-nil) as JSON and decodes a 2xx body into out (when non-nil).
// Non-2xx responses return *Error.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Login calls POST /auth/login.
func (c *Client) Login(ctx context.Context, req ports.LoginRequest) (ports.AuthResponse, error) {
	var resp ports.AuthResponse
	err := c.Do(ctx, http.MethodPost, LoginPath, req, &resp)
	return resp, err
}

// Signup calls POST /auth/signup.
func (c *Client) Signup(ctx context.Context, req ports.SignupRequest) (ports.AuthResponse, error) {
	var resp ports.AuthResponse
	err := c.Do(ctx, http.MethodPost, SignupPath, req, &resp)
	return resp, err
}

// Me calls GET /auth/me.
func (c *Client) Me(ctx context.Context) (ports.MeResponse, error) {
	var resp ports.MeResponse
	err := c.Do(ctx, http.MethodGet, MePath, nil, &resp)
	return resp, err
}
