package store

import (
	"gorm.io/gorm"
)

// ReplaceTranslations swaps the whole translation set of one owner: every existing
// row for ownerID is deleted, then rows are inserted. Run it inside the transaction
// that writes the owner so both sides commit together.
func ReplaceTranslations[T any](tx *gorm.DB, ownerColumn string, ownerID any, rows []T) error {
	if err := tx.Where(ownerColumn+" = ?", ownerID).Delete(new(T)).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
