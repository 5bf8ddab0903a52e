package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/RajevHacker/codespark-invoice-wizard/auth"
	"github.com/RajevHacker/codespark-invoice-wizard/httpx"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/middleware"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/services"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
	"github.com/RajevHacker/codespark-invoice-wizard/validation"
	"github.com/RajevHacker/codespark-invoice-wizard/view"
)

// base is embedded by every handler that talks to the billing API.
type base struct {
	api      *backend.Client
	sessions session.Store
}

// current returns the session resolved by auth.Middleware. Routes are wrapped
// in auth.RequireAuth so it is always present.
func current(r *http.Request) session.Session {
	s, _ := session.FromContext(r.Context())
	return s
}

func (b base) tenant(r *http.Request) *backend.Tenant {
	return b.api.For(current(r))
}

// render writes an HTML page, picking up any pending flash message.
func render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = middleware.TakeFlash(w, r)
	}
	if status != http.StatusOK {
		// view.Render sets the content type; the status must be written after it
		rec := &statusWriter{ResponseWriter: w, status: status}
		w = rec
	}
	if err := view.Render(w, r, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// statusWriter delays WriteHeader until the first body write.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (s *statusWriter) WriteHeader(code int) {
	if !s.written {
		s.written = true
		s.ResponseWriter.WriteHeader(code)
	}
}

func (s *statusWriter) Write(b []byte) (int, error) {
	if !s.written {
		s.WriteHeader(s.status)
	}
	return s.ResponseWriter.Write(b)
}

// invalid answers a validation failure: 422 JSON, or the page re-rendered with
// the user's input and the offending fields.
func invalid(w http.ResponseWriter, r *http.Request, v validation.Violations, page string, data map[string]any) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", v)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	data["Errors"] = v
	render(w, r, http.StatusUnprocessableEntity, page, data)
}

// fail answers any error returned by a workflow or the billing API. An
// expired token ends the session and sends the user back to the login page.
func (b base) fail(w http.ResponseWriter, r *http.Request, err error, page string, data map[string]any) {
	if v, ok := services.AsViolations(err); ok {
		invalid(w, r, v, page, data)
		return
	}
	status, code, msg := httpx.BackendStatus(err)
	if status == http.StatusUnauthorized {
		if id, ok := auth.SessionIDFromContext(r.Context()); ok {
			if derr := b.sessions.Delete(r.Context(), id); derr != nil {
				log.Printf("delete session: %v", derr)
			}
		}
		auth.ClearSession(w)
		if !httpx.WantsJSON(r) {
			middleware.Flash(w, r, "session_expired")
		}
		auth.Unauthorized(w, r)
		return
	}
	if errors.Is(err, services.ErrAlreadyCancelled) {
		status, code, msg = http.StatusConflict, "already_cancelled", err.Error()
	}
	if status >= 500 {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, status, code, msg)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	data["Error"] = msg
	render(w, r, status, page, data)
}

// done answers a successful mutation: JSON payload, or a flash and a redirect.
func done(w http.ResponseWriter, r *http.Request, status int, payload any, flash, redirect string) {
	if httpx.WantsJSON(r) {
		httpx.JSON(w, status, payload)
		return
	}
	middleware.Flash(w, r, flash)
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}
