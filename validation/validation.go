// Package validation provides field validators shared by services and handlers.
package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TrimEmpty reports whether s is blank after trimming whitespace.
func TrimEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s matches a basic address pattern.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsUUID reports whether s is a syntactically valid UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

const dateLayout = "2006-01-02"

// IsDate reports whether s is a calendar date in YYYY-MM-DD form.
// The parsed date must round-trip to the identical string, which rejects
// out-of-range days such as 2024-02-30.
func IsDate(s string) bool {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(dateLayout) == s
}

// ParseDate parses a YYYY-MM-DD string previously accepted by IsDate.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatDate renders t in YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
