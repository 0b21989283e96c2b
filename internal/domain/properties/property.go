package properties

import (
	"fmt"
	"time"

	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/media"
	"rental-app/internal/domain/publishing"
	"rental-app/internal/domain/users"
)

type Property struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Slug         string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_properties_slug" json:"slug"`
	Code         *string `gorm:"type:varchar(50);index" json:"code,omitempty"`
	PropertyType Type    `gorm:"type:varchar(20);not null;index" json:"property_type"`

	PriceMonth float64  `gorm:"type:numeric(12,2);not null" json:"price_month"`
	AreaSqm    *float64 `gorm:"type:numeric(10,2)" json:"area_sqm,omitempty"`
	Bedrooms   *int     `json:"bedrooms,omitempty"`
	Bathrooms  *int     `json:"bathrooms,omitempty"`
	FloorNo    *int     `json:"floor_no,omitempty"`

	PetPolicy   string   `json:"pet_policy,omitempty"`
	ViewDesc    string   `json:"view_desc,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	AddressLine string   `json:"address_line,omitempty"`

	Status      publishing.Status `gorm:"type:varchar(20);not null;index" json:"status"`
	IsFeatured  bool              `gorm:"not null;default:false;index" json:"is_featured"`
	PublishedAt *time.Time        `gorm:"index" json:"published_at,omitempty"`

	CreatedByID *uint       `gorm:"index" json:"-"`
	CreatedBy   *users.User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL;" json:"-"`
	UpdatedByID *uint       `json:"-"`
	UpdatedBy   *users.User `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL;" json:"-"`

	Translations []PropertyI18n        `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE;" json:"translations,omitempty"`
	Images       []media.PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE;" json:"images,omitempty"`
	Amenities    []Amenity             `gorm:"many2many:property_amenities;constraint:OnDelete:CASCADE;" json:"amenities,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetStatus applies a status change and stamps PublishedAt on the first publish.
func (p *Property) SetStatus(next publishing.Status, now time.Time) {
	p.Status = next
	p.PublishedAt = publishing.StampPublished(p.PublishedAt, next, now)
}

func (p *Property) titles() map[locale.Locale]string {
	return locale.Pick(p.Translations,
		func(t PropertyI18n) locale.Locale { return t.Locale },
		func(t PropertyI18n) string { return t.Title })
}

// FallbackTitle is used when no translation carries a title.
func (p *Property) FallbackTitle() string {
	if p.Slug != "" {
		return p.Slug
	}
	if p.Code != nil && *p.Code != "" {
		return *p.Code
	}
	return fmt.Sprintf("Property %d", p.ID)
}

func (p *Property) DisplayTitle(l locale.Locale) string {
	return locale.Resolve(p.titles(), l, p.FallbackTitle())
}

func (p *Property) DisplayDescription(l locale.Locale) string {
	return locale.Resolve(locale.Pick(p.Translations,
		func(t PropertyI18n) locale.Locale { return t.Locale },
		func(t PropertyI18n) string { return t.DescriptionMD }), l, "")
}

// DisplayAddress prefers the translated address text over the raw address line.
func (p *Property) DisplayAddress(l locale.Locale) string {
	return locale.Resolve(locale.Pick(p.Translations,
		func(t PropertyI18n) locale.Locale { return t.Locale },
		func(t PropertyI18n) string { return t.AddressText }), l, p.AddressLine)
}

func (p *Property) CoverImage() *media.PropertyImage {
	return media.Cover(p.Images)
}

func (p *Property) IsPublic() bool {
	return p.Status == publishing.Published
}
