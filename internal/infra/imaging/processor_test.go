package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess_KeepsSmallImage(t *testing.T) {
	data := pngBytes(t, 40, 20)

	res, err := Process(data, MaxEdge)
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.MimeType)
	assert.Equal(t, "png", res.Ext)
	assert.False(t, res.Resized)
	assert.Equal(t, data, res.Data)
}

func TestProcess_Downscales(t *testing.T) {
	res, err := Process(pngBytes(t, 400, 100), 200)
	require.NoError(t, err)

	assert.True(t, res.Resized)
	assert.Equal(t, 200, res.Width)
	assert.Equal(t, 50, res.Height)
	assert.Equal(t, "image/png", res.MimeType)
}

func TestProcess_RejectsNonImage(t *testing.T) {
	_, err := Process([]byte("%PDF-1.4 not an image"), MaxEdge)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Process([]byte("<html><body>hi</body></html>"), MaxEdge)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
