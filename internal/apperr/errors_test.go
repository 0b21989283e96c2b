package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("create property: %w", Duplicate("Property", "slug", "studio-1"))

	assert.Equal(t, KindDuplicate, KindOf(err))
	assert.True(t, Is(err, KindDuplicate))
	assert.Contains(t, err.Error(), "Property already exists with slug: studio-1")
}

func TestKindOf_Untyped(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestField(t *testing.T) {
	err := Field("areaSqm", "Area must be between 10 and 1000 sqm")

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, map[string]string{"areaSqm": "Area must be between 10 and 1000 sqm"}, err.Fields)
}

func TestFileUpload_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := FileUpload("Failed to store file", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to store file: disk full", err.Error())
}
