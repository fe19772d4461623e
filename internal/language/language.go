package language

import (
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize converts any recognized language code or name to ISO 639-1
// (2-letter). Returns empty string for unrecognized input, except that an
// already 2-letter code passes through lowercased.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if tag, err := xlang.Parse(code); err == nil {
		if base, conf := tag.Base(); conf > xlang.No {
			return base.String()
		}
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns the English name of a language code ("fr" → "French").
// Unrecognized codes come back uppercased so prompts stay readable; empty
// input yields "Unknown".
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	if tag, err := xlang.Parse(trimmed); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return strings.ToUpper(trimmed)
}
