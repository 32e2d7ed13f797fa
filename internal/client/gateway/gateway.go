// Package gateway is the single point of egress to the taskboard REST API.
//
// Every request carries the session cookie (kept in a cookie jar) and, when
// the token store holds a token, an "Authorization: Bearer" header. Every
// successful body goes through the document normalizer before it is decoded,
// so callers never see "_id" or "__v". Every failure is returned as *Error.
//
// A 401 response purges the stored token and notifies the ExpiryHandler once
// per response, whichever service issued the request. No request is retried.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/taskboard/internal/client/normalize"
	"github.com/dmitrijs2005/taskboard/internal/client/tokenstore"
	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// ExpiryHandler reacts to an authentication-expired response.
type ExpiryHandler interface {
	SessionExpired(ctx context.Context)
}

// ExpiryFunc adapts a function to ExpiryHandler.
type ExpiryFunc func(ctx context.Context)

func (f ExpiryFunc) SessionExpired(ctx context.Context) { f(ctx) }

type Options struct {
	BaseURL    string
	Tokens     tokenstore.Store
	OnExpired  ExpiryHandler
	Logger     logging.Logger
	HTTPClient *http.Client
}

type Gateway struct {
	base   *url.URL
	client *http.Client
	tokens tokenstore.Store
	log    logging.Logger

	mu        sync.RWMutex
	onExpired ExpiryHandler

	newRequestID func() string
}

func New(opts Options) (*Gateway, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", opts.BaseURL)
	}

	client, err := withCookieJar(opts.HTTPClient)
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		base:         base,
		client:       client,
		tokens:       opts.Tokens,
		log:          opts.Logger,
		onExpired:    opts.OnExpired,
		newRequestID: uuid.NewString,
	}
	if g.tokens == nil {
		g.tokens = tokenstore.NewMemoryStore("")
	}
	if g.log == nil {
		g.log = logging.Nop{}
	}
	return g, nil
}

// withCookieJar returns c (or a default client) with a cookie jar attached,
// which carries the HTTP-only session cookie.
func withCookieJar(c *http.Client) (*http.Client, error) {
	if c != nil && c.Jar != nil {
		return c, nil
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &http.Client{Jar: jar}, nil
	}
	cp := *c
	cp.Jar = jar
	return &cp, nil
}

// SetExpiryHandler replaces the handler notified on 401 responses.
func (g *Gateway) SetExpiryHandler(h ExpiryHandler) {
	g.mu.Lock()
	g.onExpired = h
	g.mu.Unlock()
}

// Tokens exposes the token store the gateway reads credentials from.
func (g *Gateway) Tokens() tokenstore.Store {
	return g.tokens
}

func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.Do(ctx, http.MethodGet, path, nil, out)
}

func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	return g.Do(ctx, http.MethodPost, path, body, out)
}

func (g *Gateway) Put(ctx context.Context, path string, body, out any) error {
	return g.Do(ctx, http.MethodPut, path, body, out)
}

func (g *Gateway) Delete(ctx context.Context, path string, out any) error {
	return g.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do sends one request. path is relative to the base URL and may carry a
// query string. A non-nil body is sent as JSON; a non-nil out receives the
// normalized response body. An empty response body leaves out untouched.
func (g *Gateway) Do(ctx context.Context, method, path string, body, out any) error {
	requestID := g.newRequestID()
	log := g.log.With("request_id", requestID, "method", method, "path", path)

	req, err := g.newRequest(ctx, method, path, body)
	if err != nil {
		return &Error{Kind: KindStructural, Message: fmt.Sprintf("invalid request: %v", err), Err: err}
	}
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if err := g.authorize(ctx, req); err != nil {
		log.Warn(ctx, "token store unavailable, sending request without bearer", "error", err)
	}

	log.Debug(ctx, "request sent")
	resp, err := g.client.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		gerr := g.fail(ctx, resp.StatusCode, data)
		log.Warn(ctx, "request rejected", "status", resp.StatusCode, "kind", gerr.Kind.String(), "message", gerr.Message)
		return gerr
	}
	log.Debug(ctx, "response received", "status", resp.StatusCode, "bytes", len(data))

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	normalized, err := normalize.Normalize(data)
	if err != nil {
		return &Error{Kind: KindStructural, Status: resp.StatusCode, Message: "Invalid response from server", Err: err}
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return &Error{Kind: KindStructural, Status: resp.StatusCode, Message: "Invalid response from server", Err: err}
	}
	return nil
}

func (g *Gateway) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	target, err := g.resolve(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (g *Gateway) resolve(path string) (string, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	if rel.IsAbs() {
		return "", fmt.Errorf("path %q must be relative to the base url", path)
	}
	u := g.base.JoinPath(rel.EscapedPath())
	u.RawQuery = rel.RawQuery
	return u.String(), nil
}

func (g *Gateway) authorize(ctx context.Context, req *http.Request) error {
	token, err := g.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return nil
}

// fail maps a non-2xx response to *Error and applies the 401 policy.
func (g *Gateway) fail(ctx context.Context, status int, data []byte) *Error {
	msg := serverMessage(data)
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status code %d", status)
	}

	if status != http.StatusUnauthorized {
		return &Error{Kind: KindServer, Status: status, Message: msg}
	}

	if err := g.tokens.Clear(ctx); err != nil {
		g.log.Error(ctx, "failed to purge token after 401", "error", err)
	}

	g.mu.RLock()
	h := g.onExpired
	g.mu.RUnlock()
	if h != nil {
		h.SessionExpired(ctx)
	}

	return &Error{Kind: KindAuthExpired, Status: status, Message: msg}
}

func networkError(err error) *Error {
	msg := err.Error()
	if msg == "" {
		msg = DefaultMessage
	}
	return &Error{Kind: KindNetwork, Message: msg, Err: err}
}

// serverMessage extracts the "message" (or "error") string of a JSON error body.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if m := strings.TrimSpace(body.Message); m != "" {
		return m
	}
	return strings.TrimSpace(body.Error)
}
