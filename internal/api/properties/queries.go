package properties

import (
	"strings"

	"rental-app/internal/domain/publishing"
	dp "rental-app/internal/domain/properties"
	"rental-app/internal/store"

	"gorm.io/gorm"
)

// Criteria is the optional, AND-combined filter set of a listing query.
type Criteria struct {
	Query        string
	PropertyType *dp.Type
	Status       *publishing.Status
	MinPrice     *float64
	MaxPrice     *float64
	MinArea      *float64
	MaxArea      *float64
	MinBedrooms  *int
	MaxBedrooms  *int
	MinBathrooms *int
	MaxBathrooms *int
	Featured     *bool
	AmenityIDs   []uint // any-of

	SortBy  string
	SortDir string
}

// sortable maps the accepted sort parameters to columns. Anything else falls back to
// the listing default.
var sortable = map[string]string{
	"createdAt":   "properties.created_at",
	"updatedAt":   "properties.updated_at",
	"publishedAt": "properties.published_at",
	"priceMonth":  "properties.price_month",
	"areaSqm":     "properties.area_sqm",
	"bedrooms":    "properties.bedrooms",
	"slug":        "properties.slug",
}

const (
	sortDefaultAdmin  = "createdAt"
	sortDefaultPublic = "publishedAt"
)

func propertiesQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&dp.Property{})
}

func publishedQuery(db *gorm.DB) *gorm.DB {
	return propertiesQuery(db).Where("properties.status = ?", publishing.Published)
}

// filterScope applies every criterion that is set.
func filterScope(c Criteria) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q := strings.ToLower(strings.TrimSpace(c.Query)); q != "" {
			like := store.ContainsPattern(q)
			db = db.Where(
				"(properties.id IN (SELECT property_id FROM property_i18ns WHERE LOWER(title) LIKE ?"+store.Escape+" OR LOWER(address_text) LIKE ?"+store.Escape+") OR LOWER(COALESCE(properties.code, '')) LIKE ?"+store.Escape+")",
				like, like, like,
			)
		}
		if c.PropertyType != nil {
			db = db.Where("properties.property_type = ?", *c.PropertyType)
		}
		if c.Status != nil {
			db = db.Where("properties.status = ?", *c.Status)
		}
		if c.MinPrice != nil {
			db = db.Where("properties.price_month >= ?", *c.MinPrice)
		}
		if c.MaxPrice != nil {
			db = db.Where("properties.price_month <= ?", *c.MaxPrice)
		}
		if c.MinArea != nil {
			db = db.Where("properties.area_sqm >= ?", *c.MinArea)
		}
		if c.MaxArea != nil {
			db = db.Where("properties.area_sqm <= ?", *c.MaxArea)
		}
		if c.MinBedrooms != nil {
			db = db.Where("properties.bedrooms >= ?", *c.MinBedrooms)
		}
		if c.MaxBedrooms != nil {
			db = db.Where("properties.bedrooms <= ?", *c.MaxBedrooms)
		}
		if c.MinBathrooms != nil {
			db = db.Where("properties.bathrooms >= ?", *c.MinBathrooms)
		}
		if c.MaxBathrooms != nil {
			db = db.Where("properties.bathrooms <= ?", *c.MaxBathrooms)
		}
		if c.Featured != nil {
			db = db.Where("properties.is_featured = ?", *c.Featured)
		}
		if len(c.AmenityIDs) > 0 {
			db = db.Where("properties.id IN (SELECT property_id FROM property_amenities WHERE amenity_id IN ?)", c.AmenityIDs)
		}
		return db
	}
}

// orderScope sorts featured listings first, then by the allow-listed field.
func orderScope(sortBy, dir, fallback string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		col, ok := sortable[sortBy]
		if !ok {
			col = sortable[fallback]
		}
		d := "DESC"
		if strings.EqualFold(dir, "asc") {
			d = "ASC"
		}
		return db.Order("properties.is_featured DESC").
			Order(col + " " + d).
			Order("properties.id " + d)
	}
}

func summaryPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Translations").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Amenities")
}

func detailPreloads(db *gorm.DB) *gorm.DB {
	return summaryPreloads(db).Preload("Amenities.Translations")
}
