package site

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

/*
	Slug helpers
	------------
	- Responsible ONLY for:
	  • normalizing user supplied slugs
	  • deriving a free slug from a base
	- Persistence checks are passed in (no database import here)
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
	validSlug = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// SanitizeSlug makes a URL-safe slug out of arbitrary text.
// Example: "Căn hộ Đống Đa 2PN" -> "can-ho-dong-da-2pn"
func SanitizeSlug(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.TrimSpace(raw))
	if err != nil {
		s = raw
	}
	// đ, CJK and anything else NFD cannot decompose
	s = unidecode.Unidecode(s)

	s = strings.ToLower(s)
	s = nonSlug.ReplaceAllString(s, "-")
	s = multiDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValidSlug reports whether s is already in canonical slug form.
func IsValidSlug(s string) bool {
	return validSlug.MatchString(s)
}

// UniqueSlug returns base, or base-1, base-2... for the first candidate taken reports false.
func UniqueSlug(base string, taken func(candidate string) (bool, error)) (string, error) {
	base = SanitizeSlug(base)
	if base == "" {
		base = "property"
	}

	candidate := base
	for i := 1; ; i++ {
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
