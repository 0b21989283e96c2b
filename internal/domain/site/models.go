package site

import (
	"time"

	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/users"
)

// Setting is a key/value pair with optional per-locale overrides of the value.
type Setting struct {
	Key   string `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value string `gorm:"type:text" json:"value"`

	UpdatedByID *uint       `json:"-"`
	UpdatedBy   *users.User `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL;" json:"-"`

	Translations []SettingI18n `gorm:"foreignKey:SettingKey;references:Key;constraint:OnDelete:CASCADE;" json:"translations,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string { return "site_settings" }

type SettingI18n struct {
	SettingKey string        `gorm:"type:varchar(100);primaryKey" json:"-"`
	Locale     locale.Locale `gorm:"type:varchar(5);primaryKey" json:"locale"`
	Value      string        `gorm:"type:text" json:"value"`
}

func (SettingI18n) TableName() string { return "site_setting_i18ns" }

// DisplayValue resolves the localized value, falling back to the default value.
func (s *Setting) DisplayValue(l locale.Locale) string {
	return locale.Resolve(locale.Pick(s.Translations,
		func(t SettingI18n) locale.Locale { return t.Locale },
		func(t SettingI18n) string { return t.Value }), l, s.Value)
}

const (
	KeyCompanyName      = "company_name"
	KeyCompanyPhone     = "company_phone"
	KeyCompanyEmail     = "company_email"
	KeyCompanyZalo      = "company_zalo"
	KeyCompanyAddress   = "company_address"
	KeySiteTitle        = "site_title"
	KeySiteDescription  = "site_description"
	KeyContactFormEmail = "contact_form_email"
	KeyHeroImageURL     = "hero_image_url"
)

// CompanyInfoKeys are the settings exposed publicly under /company-info.
var CompanyInfoKeys = []string{
	KeyCompanyName, KeyCompanyPhone, KeyCompanyEmail, KeyCompanyZalo,
	KeyCompanyAddress, KeySiteTitle, KeySiteDescription, KeyHeroImageURL,
}

// Defaults seeds a fresh installation; existing keys are never overwritten.
var Defaults = map[string]string{
	KeyCompanyName:      "Q Apartment",
	KeyCompanyPhone:     "0903228571",
	KeyCompanyEmail:     "q.apartment09hbm@gmail.com",
	KeyCompanyZalo:      "0903228571",
	KeyCompanyAddress:   "Hanoi, Vietnam",
	KeySiteTitle:        "Q Apartment - Quality Housing Solutions",
	KeySiteDescription:  "Find quality apartments and rooms for rent in Hanoi",
	KeyContactFormEmail: "q.apartment09hbm@gmail.com",
	KeyHeroImageURL:     "",
}

func IsCompanyInfoKey(key string) bool {
	for _, k := range CompanyInfoKeys {
		if k == key {
			return true
		}
	}
	return false
}
