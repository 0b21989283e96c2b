package store_test

import (
	"testing"

	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/properties"
	"rental-app/internal/store"
	"rental-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReplaceTranslations_ReplacesNotMerges(t *testing.T) {
	db := testutil.NewDB(t)
	a := properties.Amenity{Key: "IF_sofa"}
	require.NoError(t, db.Create(&a).Error)

	other := properties.Amenity{Key: "IF_bed"}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&properties.AmenityI18n{AmenityID: other.ID, Locale: locale.VI, Label: "Giường"}).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		return store.ReplaceTranslations(tx, "amenity_id", a.ID, []properties.AmenityI18n{
			{AmenityID: a.ID, Locale: locale.VI, Label: "Ghế sofa"},
		})
	})
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		return store.ReplaceTranslations(tx, "amenity_id", a.ID, []properties.AmenityI18n{
			{AmenityID: a.ID, Locale: locale.EN, Label: "Sofa"},
		})
	})
	require.NoError(t, err)

	var rows []properties.AmenityI18n
	require.NoError(t, db.Where("amenity_id = ?", a.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, locale.EN, rows[0].Locale)

	var untouched int64
	db.Model(&properties.AmenityI18n{}).Where("amenity_id = ?", other.ID).Count(&untouched)
	assert.Equal(t, int64(1), untouched)
}

func TestReplaceTranslations_EmptyClears(t *testing.T) {
	db := testutil.NewDB(t)
	a := properties.Amenity{Key: "IS_wifi"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&properties.AmenityI18n{AmenityID: a.ID, Locale: locale.VI, Label: "Wi-Fi"}).Error)

	require.NoError(t, store.ReplaceTranslations[properties.AmenityI18n](db, "amenity_id", a.ID, nil))

	var count int64
	db.Model(&properties.AmenityI18n{}).Where("amenity_id = ?", a.ID).Count(&count)
	assert.Zero(t, count)
}
