package properties

import (
	"time"

	"rental-app/internal/domain/locale"
)

// PropertyI18n is keyed by (property_id, locale).
type PropertyI18n struct {
	PropertyID    uint          `gorm:"primaryKey" json:"-"`
	Locale        locale.Locale `gorm:"type:varchar(5);primaryKey" json:"locale"`
	Title         string        `gorm:"not null" json:"title"`
	DescriptionMD string        `gorm:"column:description_md;type:text" json:"description_md,omitempty"`
	AddressText   string        `json:"address_text,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t PropertyI18n) Key() locale.Key[uint] {
	return locale.Key[uint]{Owner: t.PropertyID, Locale: t.Locale}
}

func (PropertyI18n) TableName() string { return "property_i18ns" }
