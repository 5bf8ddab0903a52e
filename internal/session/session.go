// Package session holds the authenticated partner context (token, partner
// name, username) that every remote call needs, and persists it so a session
// survives restarts until logout.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Session is the auth context issued at login.
type Session struct {
	Token       string `json:"token"`
	PartnerName string `json:"partnerName"`
	Username    string `json:"username"`
}

// Authenticated reports whether the session carries a token and a partner.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Token) != "" && strings.TrimSpace(s.PartnerName) != ""
}

// ErrNotFound is returned by a Store when no session is persisted under an id.
var ErrNotFound = errors.New("session not found")

// Store persists sessions by id.
type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, id string, s Session) error
	Delete(ctx context.Context, id string) error
}

type ctxKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext extracts the session stored by WithSession.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok && s.Authenticated()
}

// Provider owns a single persisted session, as used by the terminal client.
// Init restores it, Set is called by login only and Teardown by logout only.
type Provider struct {
	store Store
	id    string

	mu  sync.RWMutex
	cur Session
}

// NewProvider binds a provider to one session id in store.
func NewProvider(store Store, id string) *Provider {
	return &Provider{store: store, id: id}
}

// Init reads the persisted session, if any.
func (p *Provider) Init(ctx context.Context) error {
	s, err := p.store.Get(ctx, p.id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.cur = s
	p.mu.Unlock()
	return nil
}

// Current returns the active session, which may be empty.
func (p *Provider) Current() Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cur
}

// Set stores a freshly issued session.
func (p *Provider) Set(ctx context.Context, s Session) error {
	if err := p.store.Save(ctx, p.id, s); err != nil {
		return err
	}
	p.mu.Lock()
	p.cur = s
	p.mu.Unlock()
	return nil
}

// Teardown clears the session in memory and in the store.
func (p *Provider) Teardown(ctx context.Context) error {
	p.mu.Lock()
	p.cur = Session{}
	p.mu.Unlock()
	if err := p.store.Delete(ctx, p.id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
