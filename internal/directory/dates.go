package directory

import (
	"strconv"
	"strings"
	"time"
)

// dateFloor ranks entries that carry no parseable date.
var dateFloor = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// renderEpochDate converts an epoch-millisecond string to YYYY-MM-DD (UTC).
// Any other value is returned unchanged.
func renderEpochDate(raw string) string {
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return raw
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}

// parseDate accepts epoch milliseconds or one of the ISO layouts CRMs emit.
func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// contactDate prefers the explicit last-contacted value over last-modified.
func contactDate(e Entry) string {
	raw := e.LastContacted
	if raw == "" {
		raw = e.LastModified
	}
	if raw == "" {
		return ""
	}
	return renderEpochDate(raw)
}

// companyDates lists the company date properties in preference order.
func companyDates(e Entry) []string {
	return []string{e.LastActivity, e.LastModified, e.Created}
}

// bestCompanyTime returns the first parseable company date, or dateFloor.
func bestCompanyTime(e Entry) time.Time {
	for _, raw := range companyDates(e) {
		if t, ok := parseDate(raw); ok {
			return t
		}
	}
	return dateFloor
}

// companyDateLabel returns the first present company date property as-is.
func companyDateLabel(e Entry) string {
	for _, raw := range companyDates(e) {
		if raw != "" {
			return raw
		}
	}
	return ""
}
