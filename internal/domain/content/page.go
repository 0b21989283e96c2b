package content

import (
	"time"

	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/publishing"
	"rental-app/internal/domain/users"
)

type Page struct {
	ID     uint              `gorm:"primaryKey" json:"id"`
	Slug   string            `gorm:"type:varchar(255);not null;uniqueIndex:idx_content_pages_slug" json:"slug"`
	Status publishing.Status `gorm:"type:varchar(20);not null;index" json:"status"`

	CreatedByID *uint       `json:"-"`
	CreatedBy   *users.User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL;" json:"-"`
	UpdatedByID *uint       `json:"-"`
	UpdatedBy   *users.User `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL;" json:"-"`

	Translations []PageI18n `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"translations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Page) TableName() string { return "content_pages" }

type PageI18n struct {
	PageID uint          `gorm:"primaryKey" json:"-"`
	Locale locale.Locale `gorm:"type:varchar(5);primaryKey" json:"locale"`
	Title  string        `gorm:"not null" json:"title"`
	BodyMD string        `gorm:"column:body_md;type:text" json:"body_md,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PageI18n) TableName() string { return "content_page_i18ns" }

func (p *Page) DisplayTitle(l locale.Locale) string {
	return locale.Resolve(locale.Pick(p.Translations,
		func(t PageI18n) locale.Locale { return t.Locale },
		func(t PageI18n) string { return t.Title }), l, p.Slug)
}

func (p *Page) DisplayBody(l locale.Locale) string {
	return locale.Resolve(locale.Pick(p.Translations,
		func(t PageI18n) locale.Locale { return t.Locale },
		func(t PageI18n) string { return t.BodyMD }), l, "")
}
