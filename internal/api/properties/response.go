package properties

import (
	"context"
	"fmt"
	"sort"
	"time"

	"rental-app/internal/api/amenities"
	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/media"
	"rental-app/internal/domain/publishing"
	dp "rental-app/internal/domain/properties"
	"rental-app/internal/logger"

	"go.uber.org/zap"
)

const shortDescriptionLength = 150

type TranslationResponse struct {
	Title         string `json:"title"`
	DescriptionMD string `json:"descriptionMd,omitempty"`
	AddressText   string `json:"addressText,omitempty"`
}

type ImageResponse struct {
	ID                uint   `json:"id"`
	FilePath          string `json:"filePath"`
	ImageURL          string `json:"imageUrl"`
	MimeType          string `json:"mimeType,omitempty"`
	FileSize          *int64 `json:"fileSize,omitempty"`
	FileSizeFormatted string `json:"fileSizeFormatted"`
	SortOrder         int    `json:"sortOrder"`
	IsCover           bool   `json:"isCover"`
}

type SummaryResponse struct {
	ID               uint              `json:"id"`
	Slug             string            `json:"slug"`
	Code             *string           `json:"code,omitempty"`
	PropertyType     dp.Type           `json:"propertyType"`
	Title            string            `json:"title"`
	ShortDescription string            `json:"shortDescription,omitempty"`
	PriceMonth       float64           `json:"priceMonth"`
	AreaSqm          *float64          `json:"areaSqm,omitempty"`
	Bedrooms         *int              `json:"bedrooms,omitempty"`
	Bathrooms        *int              `json:"bathrooms,omitempty"`
	AddressText      string            `json:"addressText,omitempty"`
	CoverImageURL    string            `json:"coverImageUrl,omitempty"`
	Status           publishing.Status `json:"status"`
	IsFeatured       bool              `json:"isFeatured"`
	PublishedAt      *time.Time        `json:"publishedAt,omitempty"`
	TotalImages      int               `json:"totalImages"`
	TotalAmenities   int               `json:"totalAmenities"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

type DetailResponse struct {
	ID           uint              `json:"id"`
	Slug         string            `json:"slug"`
	Code         *string           `json:"code,omitempty"`
	PropertyType dp.Type           `json:"propertyType"`
	PriceMonth   float64           `json:"priceMonth"`
	AreaSqm      *float64          `json:"areaSqm,omitempty"`
	Bedrooms     *int              `json:"bedrooms,omitempty"`
	Bathrooms    *int              `json:"bathrooms,omitempty"`
	FloorNo      *int              `json:"floorNo,omitempty"`
	PetPolicy    string            `json:"petPolicy,omitempty"`
	ViewDesc     string            `json:"viewDesc,omitempty"`
	Latitude     *float64          `json:"latitude,omitempty"`
	Longitude    *float64          `json:"longitude,omitempty"`
	AddressLine  string            `json:"addressLine,omitempty"`
	Status       publishing.Status `json:"status"`
	IsFeatured   bool              `json:"isFeatured"`
	PublishedAt  *time.Time        `json:"publishedAt,omitempty"`

	// resolved for the requested locale
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AddressText string `json:"addressText,omitempty"`

	Translations map[string]TranslationResponse `json:"translations"`
	Amenities    []amenities.AmenityResponse    `json:"amenities"`
	Images       []ImageResponse                `json:"images"`
	CoverImage   *ImageResponse                 `json:"coverImage,omitempty"`

	TotalImages    int   `json:"totalImages"`
	TotalAmenities int   `json:"totalAmenities"`
	TotalInquiries int64 `json:"totalInquiries"`

	CreatedByID *uint     `json:"createdById,omitempty"`
	UpdatedByID *uint     `json:"updatedById,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Mapper assembles responses for a display locale.
type Mapper struct {
	URLs media.URLBuilder
}

func (m Mapper) Image(img media.PropertyImage) ImageResponse {
	return ImageResponse{
		ID:                img.ID,
		FilePath:          img.FilePath,
		ImageURL:          m.URLs.URL(img.FilePath),
		MimeType:          img.MimeType,
		FileSize:          img.FileSize,
		FileSizeFormatted: media.FormatSize(img.FileSize),
		SortOrder:         img.SortOrder,
		IsCover:           img.IsCover,
	}
}

func (m Mapper) Images(list []media.PropertyImage) []ImageResponse {
	out := make([]ImageResponse, 0, len(list))
	for _, img := range list {
		out = append(out, m.Image(img))
	}
	return out
}

func (m Mapper) Summary(p *dp.Property, l locale.Locale) SummaryResponse {
	out := SummaryResponse{
		ID:               p.ID,
		Slug:             p.Slug,
		Code:             p.Code,
		PropertyType:     p.PropertyType,
		Title:            p.DisplayTitle(l),
		ShortDescription: truncate(p.DisplayDescription(l), shortDescriptionLength),
		PriceMonth:       p.PriceMonth,
		AreaSqm:          p.AreaSqm,
		Bedrooms:         p.Bedrooms,
		Bathrooms:        p.Bathrooms,
		AddressText:      p.DisplayAddress(l),
		Status:           p.Status,
		IsFeatured:       p.IsFeatured,
		PublishedAt:      p.PublishedAt,
		TotalImages:      len(p.Images),
		TotalAmenities:   len(p.Amenities),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if cover := p.CoverImage(); cover != nil {
		out.CoverImageURL = m.URLs.URL(cover.FilePath)
	}
	return out
}

// SafeSummary never fails: a property whose graph cannot be mapped degrades to its
// identifying fields so one bad row does not break a whole listing.
func (m Mapper) SafeSummary(ctx context.Context, p *dp.Property, l locale.Locale) (out SummaryResponse) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error("Failed to map property summary",
				zap.Uint("property_id", p.ID), zap.Any("panic", r))
			out = minimalSummary(p)
		}
	}()
	return m.Summary(p, l)
}

func minimalSummary(p *dp.Property) SummaryResponse {
	return SummaryResponse{
		ID:           p.ID,
		Slug:         p.Slug,
		Code:         p.Code,
		PropertyType: p.PropertyType,
		Title:        fmt.Sprintf("Property %d", p.ID),
		PriceMonth:   p.PriceMonth,
		Status:       p.Status,
		IsFeatured:   p.IsFeatured,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m Mapper) Summaries(ctx context.Context, list []dp.Property, l locale.Locale) []SummaryResponse {
	out := make([]SummaryResponse, 0, len(list))
	for i := range list {
		out = append(out, m.SafeSummary(ctx, &list[i], l))
	}
	return out
}

func (m Mapper) Detail(p *dp.Property, l locale.Locale, inquiries int64) DetailResponse {
	tr := make(map[string]TranslationResponse, len(p.Translations))
	for _, t := range p.Translations {
		tr[t.Locale.String()] = TranslationResponse{
			Title:         t.Title,
			DescriptionMD: t.DescriptionMD,
			AddressText:   t.AddressText,
		}
	}

	ams := make([]dp.Amenity, len(p.Amenities))
	copy(ams, p.Amenities)
	sort.Slice(ams, func(i, j int) bool { return ams[i].Key < ams[j].Key })

	out := DetailResponse{
		ID:             p.ID,
		Slug:           p.Slug,
		Code:           p.Code,
		PropertyType:   p.PropertyType,
		PriceMonth:     p.PriceMonth,
		AreaSqm:        p.AreaSqm,
		Bedrooms:       p.Bedrooms,
		Bathrooms:      p.Bathrooms,
		FloorNo:        p.FloorNo,
		PetPolicy:      p.PetPolicy,
		ViewDesc:       p.ViewDesc,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		AddressLine:    p.AddressLine,
		Status:         p.Status,
		IsFeatured:     p.IsFeatured,
		PublishedAt:    p.PublishedAt,
		Title:          p.DisplayTitle(l),
		Description:    p.DisplayDescription(l),
		AddressText:    p.DisplayAddress(l),
		Translations:   tr,
		Amenities:      amenities.ToResponses(ams, l),
		Images:         m.Images(p.Images),
		TotalImages:    len(p.Images),
		TotalAmenities: len(p.Amenities),
		TotalInquiries: inquiries,
		CreatedByID:    p.CreatedByID,
		UpdatedByID:    p.UpdatedByID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if cover := p.CoverImage(); cover != nil {
		img := m.Image(*cover)
		out.CoverImage = &img
	}
	return out
}

// truncate cuts s to n runes and marks the cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
