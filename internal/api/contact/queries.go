package contact

import (
	"strings"

	dc "rental-app/internal/domain/contact"
	"rental-app/internal/store"

	"gorm.io/gorm"
)

func messagesQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&dc.Message{})
}

func unhandledScope(db *gorm.DB) *gorm.DB {
	return db.Where("contact_messages.handled_at IS NULL")
}

func handledScope(db *gorm.DB) *gorm.DB {
	return db.Where("contact_messages.handled_at IS NOT NULL")
}

// searchScope matches the query, case-insensitively, against the sender and text fields.
func searchScope(q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q = strings.ToLower(strings.TrimSpace(q))
		if q == "" {
			return db
		}
		like := store.ContainsPattern(q)
		return db.Where(
			"(LOWER(contact_messages.full_name) LIKE ?"+store.Escape+
				" OR LOWER(COALESCE(contact_messages.email, '')) LIKE ?"+store.Escape+
				" OR LOWER(COALESCE(contact_messages.subject, '')) LIKE ?"+store.Escape+
				" OR LOWER(contact_messages.message) LIKE ?"+store.Escape+")",
			like, like, like, like,
		)
	}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Property").Preload("Property.Translations").Preload("HandledBy")
}
