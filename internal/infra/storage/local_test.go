package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SaveDelete(t *testing.T) {
	root := t.TempDir()
	s := NewLocal(root)

	rel, err := s.Save("properties/12", ".JPG", []byte("img"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "properties/12/"))
	assert.True(t, strings.HasSuffix(rel, ".jpg"))

	got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "img", string(got))

	require.NoError(t, s.Delete(rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(rel), "second delete is a no-op")
}

func TestLocal_RejectsTraversal(t *testing.T) {
	s := NewLocal(t.TempDir())

	assert.ErrorIs(t, s.Delete("../etc/passwd"), ErrInvalidPath)
	assert.ErrorIs(t, s.Delete(""), ErrInvalidPath)
	_, err := s.Save("../x", "jpg", nil)
	assert.ErrorIs(t, err, ErrInvalidPath)
}
