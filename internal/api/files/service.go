package files

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"rental-app/internal/apperr"
	"rental-app/internal/infra/imaging"
	"rental-app/internal/infra/storage"
	"rental-app/internal/logger"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// Root is the storage directory general uploads live under. Deletes outside it
// are refused so listing photos keep their rows consistent.
const Root = "files"

type Kind string

const (
	KindImage    Kind = "IMAGE"
	KindDocument Kind = "DOCUMENT"
	KindOther    Kind = "OTHER"
)

// ParseKind accepts the kind names case-insensitively. Empty means OTHER.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", KindOther:
		return KindOther, true
	case KindImage:
		return KindImage, true
	case KindDocument:
		return KindDocument, true
	}
	return "", false
}

func (k Kind) dir() string { return path.Join(Root, strings.ToLower(string(k))) }

var documentTypes = []string{
	"application/pdf",
	"text/plain",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// FileStore persists upload bytes and returns a provider relative path.
type FileStore interface {
	Save(dir, ext string, data []byte) (string, error)
	Delete(path string) error
}

type Service struct {
	files    FileStore
	maxBytes int64
}

func NewService(files FileStore, maxBytes int64) *Service {
	return &Service{files: files, maxBytes: maxBytes}
}

type Stored struct {
	Path     string
	MimeType string
	Size     int64
}

// Upload validates data against kind and stores it under files/<kind>/.
// Images go through the same processing as listing photos. OTHER accepts any
// image or document type.
func (s *Service) Upload(ctx context.Context, kind Kind, data []byte) (*Stored, error) {
	if len(data) == 0 {
		return nil, apperr.FileUpload("File is empty", nil)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, apperr.PayloadTooLarge(fmt.Sprintf("File size exceeds maximum allowed size of %dMB", s.maxBytes/(1024*1024)))
	}

	mt := mimetype.Detect(data)
	isImage := strings.HasPrefix(mt.String(), "image/")
	var (
		body     = data
		mimeType = mt.String()
		ext      = strings.TrimPrefix(mt.Extension(), ".")
	)

	switch {
	case kind == KindImage || (kind == KindOther && isImage):
		res, err := imaging.Process(data, imaging.MaxEdge)
		if err != nil {
			if errors.Is(err, imaging.ErrUnsupportedType) {
				return nil, apperr.FileUpload("Invalid file type. Allowed types: "+strings.Join(imaging.AllowedTypes(), ", "), err)
			}
			return nil, apperr.FileUpload("Invalid image file", err)
		}
		body, mimeType, ext = res.Data, res.MimeType, res.Ext
	case isDocument(mt):
	default:
		return nil, apperr.FileUpload("File type not allowed: "+mimeType, nil)
	}

	p, err := s.files.Save(kind.dir(), ext, body)
	if err != nil {
		return nil, apperr.FileUpload("Failed to store file", err)
	}
	logger.FromContext(ctx).Info("File uploaded",
		zap.String("path", p), zap.String("kind", string(kind)), zap.String("mime_type", mimeType))
	return &Stored{Path: p, MimeType: mimeType, Size: int64(len(body))}, nil
}

// Delete removes a general upload. Unknown files are not an error.
func (s *Service) Delete(ctx context.Context, filePath string) error {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return apperr.Field("filePath", "File path is required")
	}
	if !strings.HasPrefix(path.Clean(filePath), Root+"/") {
		return apperr.Field("filePath", "Only general uploads can be deleted")
	}
	if err := s.files.Delete(filePath); err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return apperr.Field("filePath", "Invalid file path")
		}
		return err
	}
	logger.FromContext(ctx).Info("File deleted", zap.String("path", filePath))
	return nil
}

func isDocument(mt *mimetype.MIME) bool {
	for _, t := range documentTypes {
		if mt.Is(t) {
			return true
		}
	}
	return false
}
