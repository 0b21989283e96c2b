package properties

import (
	"strings"

	"rental-app/internal/domain/locale"
)

type Amenity struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Key          string        `gorm:"type:varchar(100);not null;uniqueIndex" json:"key"`
	Translations []AmenityI18n `gorm:"foreignKey:AmenityID;constraint:OnDelete:CASCADE;" json:"translations,omitempty"`
}

type AmenityI18n struct {
	AmenityID uint          `gorm:"primaryKey" json:"-"`
	Locale    locale.Locale `gorm:"type:varchar(5);primaryKey" json:"locale"`
	Label     string        `gorm:"not null" json:"label"`
}

var (
	roomAmenityPrefixes = []string{"shared_", "private_"}
	roomAmenityKeys     = map[string]bool{"laundry_service": true, "cleaning_service": true}
)

// IsRoomAmenityKey classifies a key; everything that is not a room amenity is common.
func IsRoomAmenityKey(key string) bool {
	if roomAmenityKeys[key] {
		return true
	}
	for _, p := range roomAmenityPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func (a *Amenity) IsRoomAmenity() bool   { return IsRoomAmenityKey(a.Key) }
func (a *Amenity) IsCommonAmenity() bool { return !a.IsRoomAmenity() }

func (a *Amenity) Labels() map[locale.Locale]string {
	return locale.Pick(a.Translations,
		func(t AmenityI18n) locale.Locale { return t.Locale },
		func(t AmenityI18n) string { return t.Label })
}

func (a *Amenity) DisplayLabel(l locale.Locale) string {
	return locale.Resolve(a.Labels(), l, a.Key)
}

// ForType tells whether an amenity applies to a property type: rooms list room
// amenities, every other type lists common ones.
func (a *Amenity) ForType(t Type) bool {
	if t == TypeRoom {
		return a.IsRoomAmenity()
	}
	return a.IsCommonAmenity()
}

func (AmenityI18n) TableName() string { return "amenity_i18ns" }
