package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		def  Locale
		want Locale
	}{
		{"upper case", "EN", VI, EN},
		{"mixed case with spaces", "  Ja ", VI, JA},
		{"unknown falls back", "fr", VI, VI},
		{"empty uses default", "", EN, EN},
		{"region tag is not a locale", "en-US", VI, VI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw, tt.def))
		})
	}
}

func TestParsePtr_Nil(t *testing.T) {
	assert.Equal(t, EN, ParsePtr(nil, EN))
	ja := "ja"
	assert.Equal(t, JA, ParsePtr(&ja, EN))
}

func TestFromCode(t *testing.T) {
	l, ok := FromCode("VI")
	assert.True(t, ok)
	assert.Equal(t, VI, l)

	_, ok = FromCode("de")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	values := map[Locale]string{VI: "Căn hộ", EN: "Apartment", JA: "   "}

	assert.Equal(t, "Apartment", Resolve(values, EN, "slug"))
	assert.Equal(t, "Căn hộ", Resolve(values, JA, "slug"), "blank translation falls through to vi")
	assert.Equal(t, "slug", Resolve(map[Locale]string{EN: "Apartment"}, JA, "slug"))
	assert.Equal(t, "slug", Resolve(nil, VI, "slug"))
}

func TestIndex(t *testing.T) {
	ix := Index[uint]{}
	ix.Put(1, VI, "Một")
	ix.Put(1, EN, "One")
	ix.Put(2, EN, "Two")

	one := ix.Lookup(1)
	assert.Len(t, one, 2)
	assert.Equal(t, "One", Resolve(one, EN, ""))
	assert.Equal(t, "Two", Resolve(ix.Lookup(2), JA, "Two"))
	assert.Empty(t, ix.Lookup(3))
}

func TestPick(t *testing.T) {
	type row struct {
		l Locale
		t string
	}
	rows := []row{{VI, "a"}, {EN, "b"}}
	got := Pick(rows, func(r row) Locale { return r.l }, func(r row) string { return r.t })
	assert.Equal(t, map[Locale]string{VI: "a", EN: "b"}, got)
}
