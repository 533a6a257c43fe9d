package filename

import (
	"strings"
	"unicode"
)

const (
	// Fallback is returned whenever sanitization leaves nothing usable
	Fallback = "tiktok"

	// DefaultMaxLength is the maximum length in characters of a sanitized name
	DefaultMaxLength = 100
)

// illegal holds characters that are not allowed in file names on common
// filesystems. Control characters are handled separately.
const illegal = `<>:"/\|?*`

// Sanitize converts an arbitrary caption into a file name base with
// DefaultMaxLength.
func Sanitize(name string) string {
	return SanitizeN(name, DefaultMaxLength)
}

// SanitizeN removes illegal and control characters, trims the result, replaces
// each run of whitespace with a single underscore and truncates it to
// maxLength characters. A non-positive maxLength means DefaultMaxLength.
func SanitizeN(name string, maxLength int) string {
	if name == "" {
		return Fallback
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	cleaned := strings.Map(func(r rune) rune {
		if r <= 0x1f || strings.ContainsRune(illegal, r) {
			return -1
		}
		return r
	}, name)
	cleaned = strings.TrimFunc(cleaned, isSpace)

	var b strings.Builder
	inSpace := false
	for _, r := range cleaned {
		if isSpace(r) {
			if !inSpace {
				b.WriteRune('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}

	runes := []rune(b.String())
	if len(runes) > maxLength {
		runes = runes[:maxLength]
	}

	if len(runes) == 0 {
		return Fallback
	}
	return string(runes)
}

// isSpace also counts the byte order mark, which captions copied from some
// apps start with
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
