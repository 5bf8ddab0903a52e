package models

import (
	"strings"
	"time"
)

const (
	// ISODate is the wire format for every date exchanged with the billing API.
	ISODate = "2006-01-02"
	// DisplayLayout is how dates are shown to users and printed on reports.
	DisplayLayout = "02-Jan-2006"
)

var acceptedLayouts = []string{
	ISODate,
	DisplayLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2-Jan-2006",
}

// ParseDate reads a date in any format the billing API is known to return.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate renders s as dd-Mon-yyyy. Unparseable values are returned as is,
// and empty values as "-".
func DisplayDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(DisplayLayout)
}

// Today returns the current date in wire format.
func Today() string { return time.Now().Format(ISODate) }
