package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

// The browser only ever holds a signed session id. Token, partner name and
// username stay server side in a session.Store.

type ctxKey string

const (
	sessionCookieName = "session"
	sessionIDCtxKey   = ctxKey("sessionID")
	sessionTTL        = 14 * 24 * time.Hour
)

var secret string

// SetSecret overrides the signing secret. Empty values are ignored.
func SetSecret(s string) {
	if s != "" {
		secret = s
	}
}

// Secret returns the configured secret, then SESSION_SECRET, then a dev default.
func Secret() string {
	if secret != "" {
		return secret
	}
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(id string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie with the session id.
func CreateSession(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id + "." + sign(id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionTTL),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie and returns the session id.
func ParseSession(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	id, sig, ok := strings.Cut(c.Value, ".")
	if !ok || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(sign(id))) {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// WithSessionID stores the session id in context.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDCtxKey, id)
}

// SessionIDFromContext extracts the session id.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDCtxKey).(string)
	return id, ok && id != ""
}

// SignIn persists s under a fresh id and sets the cookie.
func SignIn(ctx context.Context, w http.ResponseWriter, store session.Store, s session.Session) error {
	id := uuid.NewString()
	if err := store.Save(ctx, id, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	CreateSession(w, id)
	return nil
}

// SignOut deletes the stored session, if any, and clears the cookie.
func SignOut(w http.ResponseWriter, r *http.Request, store session.Store) {
	if id, ok := ParseSession(r); ok {
		if err := store.Delete(r.Context(), id); err != nil {
			log.Printf("auth: delete session: %v", err)
		}
	}
	ClearSession(w)
}

// Middleware attaches the stored session to the request context if the cookie is valid.
func Middleware(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := ParseSession(r); ok {
				ctx := WithSessionID(r.Context(), id)
				if s, err := store.Get(ctx, id); err == nil {
					ctx = session.WithSession(ctx, s)
				}
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// Unauthorized answers 401 JSON to API clients and redirects browsers to /login.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"unauthorized"}`)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RequireAuth redirects to /login if not authenticated (HTML) or returns 401 JSON.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			if _, hadCookie := SessionIDFromContext(r.Context()); hadCookie {
				// cookie outlived its stored session
				ClearSession(w)
			}
			Unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
