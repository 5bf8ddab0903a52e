package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RajevHacker/codespark-invoice-wizard/i18n"
	"github.com/RajevHacker/codespark-invoice-wizard/view"
)

func TestPrefsQueryOverridesAndPersists(t *testing.T) {
	var lang, theme string
	h := Prefs(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang = i18n.LangFromContext(r.Context())
		theme = view.ThemeFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/?lang=hi&theme=dark", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if lang != "hi" || theme != "dark" {
		t.Fatalf("got lang=%s theme=%s", lang, theme)
	}
	if len(rec.Result().Cookies()) != 2 {
		t.Fatalf("expected lang and theme cookies")
	}
}

func TestPrefsFallsBackToAcceptLanguage(t *testing.T) {
	var lang string
	h := Prefs(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang = i18n.LangFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/?lang=xx", nil)
	req.AddCookie(&http.Cookie{Name: "lang", Value: "zz"})
	req.Header.Set("Accept-Language", "hi-IN,en;q=0.5")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if lang != "hi" {
		t.Fatalf("expected hi from header, got %s", lang)
	}
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/sales", nil)
	Flash(rec, req, "payment_saved")
	next := httptest.NewRequest(http.MethodGet, "/payments/sales", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	if got := TakeFlash(httptest.NewRecorder(), next); got != "Payment recorded" {
		t.Fatalf("flash = %q", got)
	}
}

func TestRequestIDKeepsSafeIDsOnly(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "abc-123" || rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("caller id not kept: %s", seen)
	}

	req.Header.Set("X-Request-ID", "bad id;drop")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == "bad id;drop" || len(seen) != 36 {
		t.Fatalf("unsafe id should be replaced by a uuid, got %q", seen)
	}
}

func TestRecovererAnswers500(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), RequestID, Logger, Recoverer)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "internal_error") {
		t.Fatalf("unexpected %d %s", rec.Code, rec.Body.String())
	}
}
