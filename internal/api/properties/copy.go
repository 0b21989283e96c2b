package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rental-app/internal/apperr"
	"rental-app/internal/domain/media"
	"rental-app/internal/domain/publishing"
	dp "rental-app/internal/domain/properties"
	"rental-app/internal/domain/site"
	"rental-app/internal/logger"
	"rental-app/internal/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Duplicate deep copies a property into a new non-featured draft:
//   - slug derived from code (code, code-1, code-2...)
//   - translations copied with " - Copy" appended to titles
//   - amenity links copied
//   - image rows copied, pointing at the same stored files
func (s *Service) Duplicate(ctx context.Context, sourceID uint, code string, actor *uint) (*dp.Property, error) {
	code = strings.TrimSpace(code)
	if err := validateCode(code); err != nil {
		return nil, err
	}

	var out *dp.Property
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		src, err := s.load(tx, sourceID)
		if err != nil {
			return err
		}
		out, err = s.copyProperty(tx, src, code, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.PropertiesDuplicated.Inc()
	logger.FromContext(ctx).Info("Property duplicated",
		zap.Uint("source_id", sourceID), zap.Uint("property_id", out.ID), zap.String("slug", out.Slug))
	return out, nil
}

// DuplicateBatch makes one copy per code. The request is validated up front; a
// copy that fails afterwards is logged and skipped.
func (s *Service) DuplicateBatch(ctx context.Context, sourceID uint, codes []string, actor *uint) ([]dp.Property, error) {
	log := logger.FromContext(ctx)

	if err := validateBatchCodes(codes); err != nil {
		return nil, err
	}

	src, err := s.Get(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	created := make([]dp.Property, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)

		var p *dp.Property
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			p, err = s.copyProperty(tx, src, code, actor)
			return err
		})
		if err != nil {
			log.Error("Failed to duplicate property", zap.Uint("source_id", sourceID), zap.String("code", code), zap.Error(err))
			continue
		}
		metrics.PropertiesDuplicated.Inc()
		created = append(created, *p)
	}

	log.Info("Batch duplicate completed",
		zap.Uint("source_id", sourceID), zap.Int("created", len(created)), zap.Int("requested", len(codes)))
	return created, nil
}

func (s *Service) copyProperty(tx *gorm.DB, src *dp.Property, code string, actor *uint) (*dp.Property, error) {
	slug, err := site.UniqueSlug(code, func(candidate string) (bool, error) {
		return slugTaken(tx, candidate, nil)
	})
	if err != nil {
		return nil, err
	}

	c := code
	p := dp.Property{
		Slug:         slug,
		Code:         &c,
		PropertyType: src.PropertyType,
		PriceMonth:   src.PriceMonth,
		AreaSqm:      src.AreaSqm,
		Bedrooms:     src.Bedrooms,
		Bathrooms:    src.Bathrooms,
		FloorNo:      src.FloorNo,
		PetPolicy:    src.PetPolicy,
		ViewDesc:     src.ViewDesc,
		Latitude:     src.Latitude,
		Longitude:    src.Longitude,
		AddressLine:  src.AddressLine,
		Status:       publishing.Draft,
		IsFeatured:   false,
		CreatedByID:  actor,
		UpdatedByID:  actor,
	}
	if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
		return nil, duplicateSlug(err, slug)
	}

	// translations
	if len(src.Translations) > 0 {
		rows := make([]dp.PropertyI18n, 0, len(src.Translations))
		for _, t := range src.Translations {
			rows = append(rows, dp.PropertyI18n{
				PropertyID:    p.ID,
				Locale:        t.Locale,
				Title:         t.Title + dp.CopyTitleSuffix,
				DescriptionMD: t.DescriptionMD,
				AddressText:   t.AddressText,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return nil, err
		}
	}

	// amenity links
	if len(src.Amenities) > 0 {
		links := make([]propertyAmenity, 0, len(src.Amenities))
		for _, a := range src.Amenities {
			links = append(links, propertyAmenity{PropertyID: p.ID, AmenityID: a.ID})
		}
		if err := tx.Create(&links).Error; err != nil {
			return nil, err
		}
	}

	// image rows only, the files are shared
	if len(src.Images) > 0 {
		imgs := make([]media.PropertyImage, 0, len(src.Images))
		for _, img := range src.Images {
			imgs = append(imgs, media.PropertyImage{
				PropertyID: p.ID,
				FilePath:   img.FilePath,
				MimeType:   img.MimeType,
				FileSize:   img.FileSize,
				SortOrder:  img.SortOrder,
				IsCover:    img.IsCover,
			})
		}
		if err := tx.Create(&imgs).Error; err != nil {
			return nil, err
		}
	}

	return s.load(tx, p.ID)
}

func validateCode(code string) error {
	if code == "" {
		return apperr.Field("code", "Code cannot be empty")
	}
	if len(code) > dp.MaxCodeLength {
		return apperr.Field("code", fmt.Sprintf("Code cannot exceed %d characters", dp.MaxCodeLength))
	}
	return nil
}

func validateBatchCodes(codes []string) error {
	if len(codes) == 0 {
		return apperr.Field("codes", "New codes list cannot be empty")
	}
	if len(codes) > dp.MaxBatchCopies {
		return apperr.Field("codes", fmt.Sprintf("Cannot duplicate more than %d properties at once", dp.MaxBatchCopies))
	}

	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if seen[code] {
			return apperr.Field("codes", "Duplicate codes found in the request")
		}
		seen[code] = true

		if err := validateCode(code); err != nil {
			var ae *apperr.Error
			if errors.As(err, &ae) {
				return apperr.Field("codes", ae.Message+": "+code)
			}
			return err
		}
	}
	return nil
}
