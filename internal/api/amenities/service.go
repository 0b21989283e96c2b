package amenities

import (
	"context"
	"errors"

	"rental-app/internal/apperr"
	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/properties"

	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns every amenity ordered by key, labels attached.
func (s *Service) List(ctx context.Context) ([]properties.Amenity, error) {
	var list []properties.Amenity
	if err := s.db.WithContext(ctx).Order("key ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	if err := s.attachLabels(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ForType keeps room amenities for ROOM listings and common amenities otherwise.
func (s *Service) ForType(ctx context.Context, t properties.Type) ([]properties.Amenity, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]properties.Amenity, 0, len(all))
	for i := range all {
		if all[i].ForType(t) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*properties.Amenity, error) {
	var a properties.Amenity
	err := s.db.WithContext(ctx).Preload("Translations").First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Amenity", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// attachLabels loads all label rows in one query and distributes them by owner.
func (s *Service) attachLabels(ctx context.Context, list []properties.Amenity) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]uint, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}

	var rows []properties.AmenityI18n
	if err := s.db.WithContext(ctx).Where("amenity_id IN ?", ids).Find(&rows).Error; err != nil {
		return err
	}

	ix := locale.Index[uint]{}
	for _, r := range rows {
		ix.Put(r.AmenityID, r.Locale, r.Label)
	}
	for i := range list {
		labels := ix.Lookup(list[i].ID)
		list[i].Translations = make([]properties.AmenityI18n, 0, len(labels))
		for _, l := range locale.All() {
			if v, ok := labels[l]; ok {
				list[i].Translations = append(list[i].Translations,
					properties.AmenityI18n{AmenityID: list[i].ID, Locale: l, Label: v})
			}
		}
	}
	return nil
}
