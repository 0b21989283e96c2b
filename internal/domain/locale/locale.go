package locale

import "strings"

// Locale is one of the supported display languages. Stored as its lowercase code.
type Locale string

const (
	VI Locale = "vi"
	EN Locale = "en"
	JA Locale = "ja"

	Default = VI
)

var all = []Locale{VI, EN, JA}

// All returns the supported locales, default first.
func All() []Locale {
	out := make([]Locale, len(all))
	copy(out, all)
	return out
}

func (l Locale) String() string { return string(l) }

func (l Locale) IsValid() bool {
	switch l {
	case VI, EN, JA:
		return true
	}
	return false
}

// FromCode is the strict variant used for translation map keys: unknown codes are
// reported instead of being replaced.
func FromCode(code string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(code)))
	return l, l.IsValid()
}

// Parse never fails: empty or unknown input yields def.
func Parse(raw string, def Locale) Locale {
	if l, ok := FromCode(raw); ok {
		return l
	}
	return def
}

// ParsePtr is Parse for optional JSON fields.
func ParsePtr(raw *string, def Locale) Locale {
	if raw == nil {
		return def
	}
	return Parse(*raw, def)
}
