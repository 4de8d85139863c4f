// Package nameutil canonicalises and validates ingredient names and recipe slugs.
package nameutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxNameLength is the longest ingredient name the catalog accepts.
const MaxNameLength = 250

// Capitalize returns name in canonical form: surrounding whitespace trimmed,
// inner whitespace runs collapsed to one space, and in every word the first
// rune title-cased and the rest lower-cased ("white  bread" becomes
// "White Bread", "7UP" becomes "7up", "O'NEIL" becomes "O'neil").
func Capitalize(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	// Casers keep state between calls and must not be shared across goroutines.
	lower := cases.Lower(language.Und)
	for i, w := range fields {
		r, size := utf8.DecodeRuneInString(w)
		fields[i] = string(unicode.ToTitle(r)) + lower.String(w[size:])
	}
	return strings.Join(fields, " ")
}

// ValidateName checks whether the provided name is acceptable for an ingredient.
// It trims and checks for empty names and non-UTF8 bytes. It does NOT mutate the
// input; use SanitizeName to remove undesirable characters first when desired.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("invalid name: name cannot be empty")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("invalid name: contains invalid encoding")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("invalid name: longer than %d characters", MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid name: contains control character U+%04X (%q)", r, r)
		}
	}
	return nil
}

// SanitizeName removes common invisible/control characters and returns the
// sanitized string and a boolean indicating whether any change was made.
// It removes control characters, NULs, and zero-width characters commonly
// introduced by copy/paste (e.g., U+200B). Trimming of leading/trailing
// whitespace is also performed.
func SanitizeName(name string) (string, bool) {
	if name == "" {
		return name, false
	}
	runes := []rune(name)
	out := make([]rune, 0, len(runes))
	changed := false
	for _, r := range runes {
		if unicode.IsControl(r) {
			changed = true
			continue
		}
		// remove zero-width and other invisible separators
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			changed = true
			continue
		}
		out = append(out, r)
	}
	res := strings.TrimSpace(string(out))
	if res != name {
		changed = true
	}
	return res, changed
}

// Slugify lowercases title and joins its letter/digit runs with dashes.
// It returns "recipe" when nothing usable remains.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "recipe"
	}
	return b.String()
}
