// Package forms decodes and validates the user-facing forms before anything is
// sent to the billing API. A form that fails validation is handed back intact
// so the page can be re-rendered with the values the user typed.
package forms

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Value is a form field that accepts JSON strings and JSON numbers alike.
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	*v = Value(b)
	return nil
}

func (v Value) String() string { return strings.TrimSpace(string(v)) }

type valuesReader interface {
	readValues(url.Values)
}

// Decode fills dst from a JSON body or from url-encoded form values.
func Decode(r *http.Request, dst valuesReader) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return json.NewDecoder(r.Body).Decode(dst)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	dst.readValues(r.Form)
	return nil
}

func get(vals url.Values, key string) Value { return Value(vals.Get(key)) }
