package properties

import (
	"context"
	"strings"
	"testing"

	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/media"
	dp "rental-app/internal/domain/properties"

	"github.com/stretchr/testify/assert"
)

func TestMapper_Summary(t *testing.T) {
	m := Mapper{URLs: media.URLBuilder{PublicBaseURL: "https://x.vn", StorageBaseURL: "https://cdn.x.vn"}}
	p := &dp.Property{
		ID:   3,
		Slug: "q1-loft",
		Translations: []dp.PropertyI18n{
			{Locale: locale.VI, Title: "Gác xép Q1", DescriptionMD: strings.Repeat("á", 200)},
		},
		Images: []media.PropertyImage{
			{ID: 1, FilePath: "properties/3/b.jpg", SortOrder: 1},
			{ID: 2, FilePath: "properties/3/a.jpg", SortOrder: 0},
		},
	}

	out := m.Summary(p, locale.EN)

	assert.Equal(t, "Gác xép Q1", out.Title)
	assert.Equal(t, "https://cdn.x.vn/properties/3/a.jpg", out.CoverImageURL)
	assert.Equal(t, 2, out.TotalImages)
	assert.Equal(t, shortDescriptionLength+3, len([]rune(out.ShortDescription)))
	assert.True(t, strings.HasSuffix(out.ShortDescription, "..."))
}

func TestMapper_SummaryFallbackTitle(t *testing.T) {
	out := Mapper{}.Summaries(context.Background(), []dp.Property{{ID: 9, Slug: "no-title"}}, locale.JA)

	assert.Equal(t, "no-title", out[0].Title)
	assert.Empty(t, out[0].CoverImageURL)
}

func TestMinimalSummary(t *testing.T) {
	out := minimalSummary(&dp.Property{ID: 12, Slug: "broken"})

	assert.Equal(t, "Property 12", out.Title)
	assert.Equal(t, "broken", out.Slug)
}

func TestMapper_DetailSortsAmenities(t *testing.T) {
	p := &dp.Property{
		ID:   1,
		Slug: "s",
		Amenities: []dp.Amenity{
			{ID: 2, Key: "IF_wifi"},
			{ID: 1, Key: "IF_ac"},
		},
		Translations: []dp.PropertyI18n{{Locale: locale.EN, Title: "Flat", AddressText: "District 1"}},
	}

	out := Mapper{}.Detail(p, locale.EN, 4)

	assert.Equal(t, "IF_ac", out.Amenities[0].Key)
	assert.Equal(t, "District 1", out.AddressText)
	assert.Equal(t, int64(4), out.TotalInquiries)
	assert.Equal(t, "Flat", out.Translations["en"].Title)
	assert.Nil(t, out.CoverImage)
}
