package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body := []byte("null")
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
		body = b
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// WantsJSON reports whether the caller is an API client: it either sent JSON
// or asked for JSON without also accepting HTML.
func WantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// BackendStatus maps a remote API failure onto the status we answer with and
// a stable error code. The message is the user facing text from the backend.
func BackendStatus(err error) (status int, code string, msg string) {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, backend.ErrNoSession), errors.Is(err, backend.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, backend.ErrConnectivity):
		status, code = http.StatusBadGateway, "backend_unreachable"
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		status, code = apiErr.Status, "backend_rejected"
	default:
		status, code = http.StatusBadGateway, "backend_error"
	}
	return status, code, err.Error()
}
