package view

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RajevHacker/codespark-invoice-wizard/i18n"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/gst"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

//go:embed templates
var embedded embed.FS

// Context key for theme
type themeKey struct{}

// WithTheme returns a new context with the given theme.
func WithTheme(ctx context.Context, theme string) context.Context {
	return context.WithValue(ctx, themeKey{}, theme)
}

// ThemeFromContext retrieves the theme from context, defaulting to "system".
func ThemeFromContext(ctx context.Context) string {
	if theme, ok := ctx.Value(themeKey{}).(string); ok {
		return theme
	}
	return "system"
}

var (
	mu       sync.RWMutex
	source   fs.FS
	tplCache = map[string]*template.Template{}
)

func templates() fs.FS {
	mu.RLock()
	defer mu.RUnlock()
	if source != nil {
		return source
	}
	sub, _ := fs.Sub(embedded, "templates")
	return sub
}

// SetBaseDir reads templates from disk instead of the embedded copy (useful with DEV=1).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	mu.Lock()
	source = os.DirFS(path)
	tplCache = map[string]*template.Template{}
	mu.Unlock()
}

// ResetForTests clears caches and goes back to the embedded templates.
func ResetForTests() {
	mu.Lock()
	source = nil
	tplCache = map[string]*template.Template{}
	mu.Unlock()
}

// Funcs returns the standard func map including i18n and money helpers.
func Funcs(r *http.Request) template.FuncMap {
	lang := i18n.LangFromContext(r.Context())
	theme := ThemeFromContext(r.Context())
	return template.FuncMap{
		"t":      func(code string) string { return i18n.T(lang, code) },
		"lang":   func() string { return lang },
		"theme":  func() string { return theme },
		"year":   func() int { return time.Now().Year() },
		"money":  func(d decimal.Decimal) string { return gst.FormatMoney(d) },
		"amount": func(d decimal.Decimal) string { return gst.FormatAmountIN(d) },
		"date":   models.DisplayDate,
		"inc":    func(i int) int { return i + 1 },
		"list":   func(items ...string) []string { return items },
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// placeholder funcs let templates parse once; real per-request funcs are bound on a clone.
var placeholder = Funcs(new(http.Request))

func parse(name string) (*template.Template, error) {
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		mu.RLock()
		t, ok := tplCache[name]
		mu.RUnlock()
		if ok {
			return t, nil
		}
	}
	fsys := templates()
	t, err := template.New("layout.html").Funcs(placeholder).ParseFS(fsys, "layout.html", "partials/*.html", name)
	if err != nil {
		return nil, err
	}
	if !devMode {
		mu.Lock()
		tplCache[name] = t
		mu.Unlock()
	}
	return t, nil
}

// Render parses name (e.g. "dashboard.html") inside the layout and writes it.
// Nothing is written when execution fails.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	s, loggedIn := session.FromContext(r.Context())
	if _, exists := data["IsLoggedIn"]; !exists {
		data["IsLoggedIn"] = loggedIn
	}
	if _, exists := data["Partner"]; !exists && loggedIn {
		data["Partner"] = s.PartnerName
		data["Username"] = s.Username
	}
	base, err := parse(name)
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.Funcs(Funcs(r)).Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
