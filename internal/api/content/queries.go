package content

import (
	"rental-app/internal/domain/content"
	"rental-app/internal/domain/publishing"

	"gorm.io/gorm"
)

func pagesQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&content.Page{})
}

func publishedPages(db *gorm.DB) *gorm.DB {
	return pagesQuery(db).Where("content_pages.status = ?", publishing.Published)
}

func statusScope(st *publishing.Status) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if st == nil {
			return db
		}
		return db.Where("content_pages.status = ?", *st)
	}
}

func withTranslations(db *gorm.DB) *gorm.DB {
	return db.Preload("Translations")
}
