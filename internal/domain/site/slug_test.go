package site

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Studio 1", "studio-1"},
		{"  --Căn hộ Đống Đa 2PN--  ", "can-ho-dong-da-2pn"},
		{"a__b!!c", "a-b-c"},
		{"already-ok", "already-ok"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeSlug(tt.in))
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("studio-1"))
	assert.False(t, IsValidSlug("Studio 1"))
	assert.False(t, IsValidSlug(""))
}

func TestUniqueSlug(t *testing.T) {
	used := map[string]bool{"qa-07": true, "qa-07-1": true}
	taken := func(s string) (bool, error) { return used[s], nil }

	got, err := UniqueSlug("QA 07", taken)
	require.NoError(t, err)
	assert.Equal(t, "qa-07-2", got)

	got, err = UniqueSlug("fresh", taken)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)

	got, err = UniqueSlug("!!!", taken)
	require.NoError(t, err)
	assert.Equal(t, "property", got)
}

func TestUniqueSlug_PropagatesError(t *testing.T) {
	boom := errors.New("db down")
	_, err := UniqueSlug("x", func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
