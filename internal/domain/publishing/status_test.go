package publishing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStampPublished(t *testing.T) {
	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	assert.Nil(t, StampPublished(nil, Draft, first), "draft never stamps")

	stamped := StampPublished(nil, Published, first)
	require.NotNil(t, stamped)
	assert.Equal(t, first, *stamped)

	again := StampPublished(stamped, Published, later)
	assert.Equal(t, first, *again, "republishing keeps the first timestamp")

	hidden := StampPublished(stamped, Hidden, later)
	assert.Equal(t, first, *hidden)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("published")
	assert.True(t, ok)
	assert.Equal(t, Published, s)

	_, ok = ParseStatus("archived")
	assert.False(t, ok)
}
