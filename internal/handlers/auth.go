package handlers

import (
	"errors"
	"net/http"

	"github.com/RajevHacker/codespark-invoice-wizard/auth"
	"github.com/RajevHacker/codespark-invoice-wizard/httpx"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/middleware"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

type AuthHandler struct {
	base
}

func NewAuthHandler(api *backend.Client, sessions session.Store) *AuthHandler {
	return &AuthHandler{base{api: api, sessions: sessions}}
}

// Login: GET renders the form, POST exchanges credentials for a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if _, ok := session.FromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		render(w, r, http.StatusOK, "login.html", map[string]any{"Form": forms.Login{}})
		return
	}

	var f forms.Login
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	// the password is never echoed back
	data := map[string]any{"Form": forms.Login{PartnerName: f.PartnerName, Username: f.Username}}
	if v := f.Validate(); !v.Empty() {
		invalid(w, r, v, "login.html", data)
		return
	}
	s, err := h.api.Login(r.Context(), f.PartnerName.String(), f.Username.String(), string(f.Password))
	if err != nil {
		status, code, msg := httpx.BackendStatus(err)
		if errors.Is(err, backend.ErrUnauthorized) {
			code = "login_failed"
		}
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, status, code, msg)
			return
		}
		data["Error"] = msg
		render(w, r, status, "login.html", data)
		return
	}
	if err := auth.SignIn(r.Context(), w, h.sessions, s); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "session_error", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"partnerName": s.PartnerName, "username": s.Username})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout ends the session. It is the only place a session is torn down by the user.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.SignOut(w, r, h.sessions)
	if httpx.WantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	middleware.Flash(w, r, "logged_out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
