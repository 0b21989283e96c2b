package siteapi

import (
	"rental-app/internal/domain/site"

	"gorm.io/gorm"
)

func settingsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&site.Setting{}).Preload("Translations")
}

func companyInfoQuery(db *gorm.DB) *gorm.DB {
	return settingsQuery(db).Where("key IN ?", site.CompanyInfoKeys)
}
