package properties

// ---------- requests

type TranslationInput struct {
	Title         string `json:"title"`
	DescriptionMD string `json:"descriptionMd"`
	AddressText   string `json:"addressText"`
}

type CreatePropertyRequest struct {
	Slug         string   `json:"slug" binding:"required"`
	Code         *string  `json:"code"`
	PropertyType string   `json:"propertyType" binding:"required"`
	PriceMonth   *float64 `json:"priceMonth" binding:"required"`
	AreaSqm      *float64 `json:"areaSqm"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms"`
	FloorNo      *int     `json:"floorNo"`
	PetPolicy    string   `json:"petPolicy"`
	ViewDesc     string   `json:"viewDesc"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	AddressLine  string   `json:"addressLine"`
	Status       string   `json:"status"`
	IsFeatured   bool     `json:"isFeatured"`

	Translations map[string]TranslationInput `json:"translations"` // { "vi": {...}, "en": {...} }
	AmenityIDs   []uint                      `json:"amenityIds"`
}

// UpdatePropertyRequest patches base fields that are present. Translations and
// amenities, when present, replace the stored sets.
type UpdatePropertyRequest struct {
	Slug         *string  `json:"slug"`
	Code         *string  `json:"code"`
	PropertyType *string  `json:"propertyType"`
	PriceMonth   *float64 `json:"priceMonth"`
	AreaSqm      *float64 `json:"areaSqm"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms"`
	FloorNo      *int     `json:"floorNo"`
	PetPolicy    *string  `json:"petPolicy"`
	ViewDesc     *string  `json:"viewDesc"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	AddressLine  *string  `json:"addressLine"`
	Status       *string  `json:"status"`
	IsFeatured   *bool    `json:"isFeatured"`

	Translations map[string]TranslationInput `json:"translations"`
	AmenityIDs   []uint                      `json:"amenityIds"`
}

type DuplicateRequest struct {
	Code string `json:"code" binding:"required"`
}

type BatchDuplicateRequest struct {
	Codes []string `json:"codes" binding:"required"`
}

type SortOrderRequest struct {
	SortOrder *int `json:"sortOrder" binding:"required"`
}
