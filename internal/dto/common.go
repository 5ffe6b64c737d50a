package dto

import "time"

// DateLayout is the wire format for business dates (invoice dates, due
// dates, report boundaries). Timestamps stay RFC 3339.
const DateLayout = "2006-01-02"

// ParseDate parses a wire-format business date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a business date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
