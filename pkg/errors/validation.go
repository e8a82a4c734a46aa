package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a dataset name. Names appear in log lines, cache
// keys and metric labels, so the rules are conservative:
//   - No empty names
//   - No control characters
//   - No path separators
//   - Maximum length of 64 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "dataset name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidConfig, "dataset name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "dataset name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidConfig, "dataset name cannot contain path separators: %q", name)
	}

	return nil
}

// ValidateURL accepts absolute http and https URLs with a host. A "{year}"
// placeholder is allowed anywhere after the host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}

var colorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor accepts #rgb and #rrggbb hex colors.
func ValidateColor(c string) error {
	if !colorRegex.MatchString(c) {
		return New(ErrCodeInvalidConfig, "invalid color %q (want #rgb or #rrggbb)", c)
	}
	return nil
}

// MinYear and MaxYear bound the years that can be rendered.
const (
	MinYear = 1
	MaxYear = 9999
)

// ValidateYear rejects years outside [MinYear, MaxYear].
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return New(ErrCodeInvalidYear, "year %d out of range [%d, %d]", year, MinYear, MaxYear)
	}
	return nil
}
