package middleware

import (
	"net/http"
	"net/url"

	"github.com/RajevHacker/codespark-invoice-wizard/i18n"
	"github.com/RajevHacker/codespark-invoice-wizard/view"
)

const prefMaxAge = 86400 * 30

// Prefs extracts language/theme preferences (query > cookie > header) and stores them in context.
// Query-provided prefs are persisted in cookies for ~30 days.
func Prefs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if c, err := r.Cookie("lang"); err == nil {
			lang = c.Value
		}
		if ql := r.URL.Query().Get("lang"); ql != "" && i18n.Supported(ql) {
			lang = ql
			http.SetCookie(w, &http.Cookie{Name: "lang", Value: lang, Path: "/", MaxAge: prefMaxAge})
		}
		if !i18n.Supported(lang) {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}
		theme := "system"
		if c, err := r.Cookie("theme"); err == nil && validTheme(c.Value) {
			theme = c.Value
		}
		if qt := r.URL.Query().Get("theme"); validTheme(qt) {
			theme = qt
			http.SetCookie(w, &http.Cookie{Name: "theme", Value: theme, Path: "/", MaxAge: prefMaxAge})
		}
		ctx := i18n.WithLang(r.Context(), lang)
		ctx = view.WithTheme(ctx, theme)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validTheme(t string) bool {
	return t == "light" || t == "dark" || t == "system"
}

// Flash sets a translated flash message cookie using translation code (or literal if missing).
func Flash(w http.ResponseWriter, r *http.Request, code string) {
	msg := i18n.T(i18n.LangFromContext(r.Context()), code)
	http.SetCookie(w, &http.Cookie{Name: "flash", Value: url.QueryEscape(msg), Path: "/"})
}

// TakeFlash returns the pending flash message, if any, and expires the cookie.
func TakeFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie("flash")
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: "flash", Value: "", Path: "/", MaxAge: -1})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}
