// Package backend is the client for the remote billing API. Every call made on
// behalf of a partner goes through a Tenant, which carries the session issued
// at login.
package backend

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

	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

// DefaultBaseURL is the hosted billing API.
const DefaultBaseURL = "https://invoicegenerator-bktt.onrender.com"

var (
	// ErrConnectivity wraps transport failures: DNS, refused connections, timeouts.
	ErrConnectivity = errors.New("could not reach the billing service, check your connection and try again")
	// ErrUnauthorized is matched by API errors with status 401 or 403.
	ErrUnauthorized = errors.New("not authorized, please login again")
	// ErrNoSession is returned when a tenant call is attempted without a login.
	ErrNoSession = errors.New("no active session, please login")
)

// APIError is a non-2xx answer from the billing API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// Client talks to one billing API host.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client with its own http.Client bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient lets tests and callers supply the transport.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// BaseURL returns the host the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

type loginRequest struct {
	PartnerName string `json:"partnerName"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session. The password is not retained.
func (c *Client) Login(ctx context.Context, partnerName, username, password string) (session.Session, error) {
	var out loginResponse
	err := c.do(ctx, session.Session{}, http.MethodPost, "/Auth/login", nil,
		loginRequest{PartnerName: partnerName, Username: username, Password: password}, &out)
	if err != nil {
		return session.Session{}, err
	}
	if strings.TrimSpace(out.Token) == "" {
		return session.Session{}, &APIError{Status: http.StatusUnauthorized, Message: "login response did not include a token"}
	}
	return session.Session{Token: out.Token, PartnerName: partnerName, Username: username}, nil
}

// For binds the client to a logged-in partner.
func (c *Client) For(s session.Session) *Tenant {
	return &Tenant{c: c, s: s}
}

// Tenant issues calls scoped to one partner's session.
type Tenant struct {
	c *Client
	s session.Session
}

// Session returns the session the tenant was built from.
func (t *Tenant) Session() session.Session { return t.s }

func (t *Tenant) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	if !t.s.Authenticated() {
		return ErrNoSession
	}
	if q == nil {
		q = url.Values{}
	}
	q.Set("partnerName", t.s.PartnerName)
	return t.c.do(ctx, t.s, method, path, q, body, out)
}

func (c *Client) do(ctx context.Context, s session.Session, method, path string, q url.Values, body, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var rdr io.Reader
	if body != nil && method != http.MethodGet {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	if s.PartnerName != "" {
		req.Header.Set("X-Partner-Name", s.PartnerName)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// errorMessage prefers a message field of a JSON body, then the raw text,
// then a generic line built from the status.
func errorMessage(status int, raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return genericMessage(status)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, k := range []string{"message", "Message", "error", "title"} {
			if v, ok := obj[k].(string); ok && strings.TrimSpace(v) != "" {
				return v
			}
		}
		return genericMessage(status)
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil && strings.TrimSpace(str) != "" {
		return str
	}
	if len(text) > 500 {
		text = text[:500]
	}
	return text
}

func genericMessage(status int) string {
	if st := http.StatusText(status); st != "" {
		return fmt.Sprintf("request failed: %d %s", status, st)
	}
	return fmt.Sprintf("request failed with status %d", status)
}
