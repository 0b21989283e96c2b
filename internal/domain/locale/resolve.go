package locale

import "strings"

// Key identifies one translation row: the owning entity plus the locale.
type Key[ID comparable] struct {
	Owner  ID
	Locale Locale
}

// Index holds translated text for many owners, addressed by Key.
type Index[ID comparable] map[Key[ID]]string

func (ix Index[ID]) Put(owner ID, l Locale, text string) {
	ix[Key[ID]{Owner: owner, Locale: l}] = text
}

// Lookup returns the per-locale values of one owner.
func (ix Index[ID]) Lookup(owner ID) map[Locale]string {
	out := make(map[Locale]string, len(all))
	for _, l := range all {
		if v, ok := ix[Key[ID]{Owner: owner, Locale: l}]; ok {
			out[l] = v
		}
	}
	return out
}

// Resolve picks the display text: the requested locale, then the default locale,
// then fallback. Blank strings count as missing.
func Resolve(values map[Locale]string, want Locale, fallback string) string {
	if v, ok := values[want]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	if v, ok := values[Default]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// Pick collects one text field out of a slice of translation rows.
func Pick[T any](rows []T, loc func(T) Locale, field func(T) string) map[Locale]string {
	out := make(map[Locale]string, len(rows))
	for _, r := range rows {
		out[loc(r)] = field(r)
	}
	return out
}
