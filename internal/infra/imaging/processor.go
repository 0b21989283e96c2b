package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp" // WebP decoder
)

// MaxEdge is the longest side kept for stored listing photos.
const MaxEdge = 2048

var ErrUnsupportedType = errors.New("unsupported image type")

var allowed = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// AllowedTypes lists the accepted content types, for error messages.
func AllowedTypes() []string {
	return []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}
}

type Result struct {
	Data     []byte
	MimeType string
	Ext      string
	Width    int
	Height   int
	Resized  bool
}

// Process sniffs the real content type of an upload, rejects anything that is
// not an accepted image and downscales images whose longest side exceeds maxEdge.
// Animated GIFs are stored as uploaded.
func Process(data []byte, maxEdge int) (*Result, error) {
	mt := mimetype.Detect(data).String()
	ext, ok := allowed[mt]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mt)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	res := &Result{Data: data, MimeType: mt, Ext: ext, Width: b.Dx(), Height: b.Dy()}

	if mt == "image/gif" || maxEdge <= 0 || (b.Dx() <= maxEdge && b.Dy() <= maxEdge) {
		return res, nil
	}

	resized := imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
	out, outType, err := encode(resized, mt)
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	rb := resized.Bounds()
	return &Result{
		Data:     out,
		MimeType: outType,
		Ext:      allowed[outType],
		Width:    rb.Dx(),
		Height:   rb.Dy(),
		Resized:  true,
	}, nil
}

// encode keeps the source format; WebP has no pure Go encoder and becomes JPEG.
func encode(img image.Image, mt string) ([]byte, string, error) {
	var buf bytes.Buffer
	switch mt {
	case "image/png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), mt, nil
	case "image/gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), mt, nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}
