package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rental-app/internal/apperr"
	"rental-app/internal/domain/media"
	dp "rental-app/internal/domain/properties"
	"rental-app/internal/infra/imaging"
	"rental-app/internal/logger"
	"rental-app/internal/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FileStore persists upload bytes and returns a provider relative path.
type FileStore interface {
	Save(dir, ext string, data []byte) (string, error)
	Delete(path string) error
}

type ImageService struct {
	db       *gorm.DB
	files    FileStore
	maxBytes int64
}

func NewImageService(db *gorm.DB, files FileStore, maxBytes int64) *ImageService {
	return &ImageService{db: db, files: files, maxBytes: maxBytes}
}

type UploadInput struct {
	Data      []byte
	SortOrder *int
	IsCover   bool
}

func (s *ImageService) List(ctx context.Context, propertyID uint) ([]media.PropertyImage, error) {
	if err := propertyExists(s.db.WithContext(ctx), propertyID); err != nil {
		return nil, err
	}
	var out []media.PropertyImage
	err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("sort_order ASC, id ASC").
		Find(&out).Error
	return out, err
}

// Upload checks, processes and stores one image. The file is written before the
// row; a failed insert removes it again.
func (s *ImageService) Upload(ctx context.Context, propertyID uint, in UploadInput) (*media.PropertyImage, error) {
	log := logger.FromContext(ctx)

	if len(in.Data) == 0 {
		return nil, apperr.FileUpload("File is empty", nil)
	}
	if s.maxBytes > 0 && int64(len(in.Data)) > s.maxBytes {
		metrics.ImagesUploaded.WithLabelValues("rejected").Inc()
		return nil, apperr.PayloadTooLarge(fmt.Sprintf("File size exceeds maximum allowed size of %dMB", s.maxBytes/(1024*1024)))
	}
	if err := propertyExists(s.db.WithContext(ctx), propertyID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&media.PropertyImage{}).Where("property_id = ?", propertyID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count >= dp.MaxImages {
		return nil, apperr.Validation(fmt.Sprintf("Maximum %d images allowed per property", dp.MaxImages), nil)
	}

	res, err := imaging.Process(in.Data, imaging.MaxEdge)
	if err != nil {
		metrics.ImagesUploaded.WithLabelValues("rejected").Inc()
		if errors.Is(err, imaging.ErrUnsupportedType) {
			return nil, apperr.FileUpload("Invalid file type. Allowed types: "+strings.Join(imaging.AllowedTypes(), ", "), err)
		}
		return nil, apperr.FileUpload("Invalid image file", err)
	}

	path, err := s.files.Save(fmt.Sprintf("properties/%d", propertyID), res.Ext, res.Data)
	if err != nil {
		metrics.ImagesUploaded.WithLabelValues("failed").Inc()
		return nil, apperr.FileUpload("Failed to store file", err)
	}

	size := int64(len(res.Data))
	img := media.PropertyImage{
		PropertyID: propertyID,
		FilePath:   path,
		MimeType:   res.MimeType,
		FileSize:   &size,
		IsCover:    in.IsCover,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProperty(tx, propertyID); err != nil {
			return err
		}
		if in.SortOrder != nil {
			img.SortOrder = *in.SortOrder
		} else {
			next, err := nextSortOrder(tx, propertyID)
			if err != nil {
				return err
			}
			img.SortOrder = next
		}
		if in.IsCover {
			if err := clearCover(tx, propertyID); err != nil {
				return err
			}
		}
		return tx.Create(&img).Error
	})
	if err != nil {
		if derr := s.files.Delete(path); derr != nil {
			log.Warn("Failed to remove stored file after insert error", zap.String("path", path), zap.Error(derr))
		}
		metrics.ImagesUploaded.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.ImagesUploaded.WithLabelValues("stored").Inc()
	log.Info("Property image uploaded",
		zap.Uint("property_id", propertyID), zap.Uint("image_id", img.ID),
		zap.String("mime", res.MimeType), zap.Bool("resized", res.Resized))
	return &img, nil
}

// Delete removes the row, and the stored file once no other row points at it.
func (s *ImageService) Delete(ctx context.Context, propertyID, imageID uint) error {
	var path string
	var shared bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		img, err := findImage(tx, propertyID, imageID)
		if err != nil {
			return err
		}
		path = img.FilePath
		if err := tx.Delete(img).Error; err != nil {
			return err
		}
		shared, err = fileShared(tx, path)
		return err
	})
	if err != nil {
		return err
	}

	if !shared {
		if err := s.files.Delete(path); err != nil {
			logger.FromContext(ctx).Warn("Failed to delete stored file", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

func (s *ImageService) UpdateSortOrder(ctx context.Context, propertyID, imageID uint, order int) (*media.PropertyImage, error) {
	var out *media.PropertyImage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		img, err := findImage(tx, propertyID, imageID)
		if err != nil {
			return err
		}
		if err := tx.Model(img).Update("sort_order", order).Error; err != nil {
			return err
		}
		img.SortOrder = order
		out = img
		return nil
	})
	return out, err
}

// SetCover flags one image as cover. Other flags are cleared in the same
// transaction, with the property row locked so concurrent calls serialize.
func (s *ImageService) SetCover(ctx context.Context, propertyID, imageID uint) (*media.PropertyImage, error) {
	var out *media.PropertyImage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProperty(tx, propertyID); err != nil {
			return err
		}
		img, err := findImage(tx, propertyID, imageID)
		if err != nil {
			return err
		}
		if err := clearCover(tx, propertyID); err != nil {
			return err
		}
		if err := tx.Model(img).Update("is_cover", true).Error; err != nil {
			return err
		}
		img.IsCover = true
		out = img
		return nil
	})
	return out, err
}

func propertyExists(db *gorm.DB, id uint) error {
	var n int64
	if err := db.Model(&dp.Property{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("Property", "id", id)
	}
	return nil
}

func lockProperty(tx *gorm.DB, id uint) error {
	var p dp.Property
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Property", "id", id)
	}
	return err
}

func findImage(tx *gorm.DB, propertyID, imageID uint) (*media.PropertyImage, error) {
	var img media.PropertyImage
	err := tx.Where("id = ? AND property_id = ?", imageID, propertyID).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Image", "id", imageID)
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func clearCover(tx *gorm.DB, propertyID uint) error {
	return tx.Model(&media.PropertyImage{}).
		Where("property_id = ? AND is_cover = ?", propertyID, true).
		Update("is_cover", false).Error
}

func nextSortOrder(tx *gorm.DB, propertyID uint) (int, error) {
	var row struct{ Last int }
	err := tx.Model(&media.PropertyImage{}).
		Where("property_id = ?", propertyID).
		Select("COALESCE(MAX(sort_order), -1) AS last").
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return row.Last + 1, nil
}
