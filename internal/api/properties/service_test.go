package properties

import (
	"context"
	"testing"
	"time"

	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/domain/contact"
	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/media"
	"rental-app/internal/domain/publishing"
	dp "rental-app/internal/domain/properties"
	"rental-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func createRequest(slug string) CreatePropertyRequest {
	return CreatePropertyRequest{
		Slug:         slug,
		PropertyType: "APARTMENT",
		PriceMonth:   ptr(12000000.0),
		AreaSqm:      ptr(45.0),
		Bedrooms:     ptr(1),
		Bathrooms:    ptr(1),
		Translations: map[string]TranslationInput{
			"vi": {Title: "Căn hộ " + slug, DescriptionMD: "Mô tả"},
			"en": {Title: "Apartment " + slug},
		},
	}
}

func mustCreate(t *testing.T, svc *Service, req CreatePropertyRequest) *dp.Property {
	t.Helper()
	p, err := svc.Create(context.Background(), req, nil)
	require.NoError(t, err)
	return p
}

func seedAmenity(t *testing.T, db *gorm.DB, key string) dp.Amenity {
	t.Helper()
	a := dp.Amenity{Key: key}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func TestCreate_PersistsTranslationsAndAmenities(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db)
	sofa := seedAmenity(t, db, "IF_sofa")

	req := createRequest("d1-studio")
	req.AmenityIDs = []uint{sofa.ID, sofa.ID, 999}
	req.Translations["FR"] = TranslationInput{Title: "ignored"}

	p := mustCreate(t, svc, req)

	assert.Equal(t, publishing.Draft, p.Status)
	assert.Nil(t, p.PublishedAt)
	assert.Len(t, p.Translations, 2)
	require.Len(t, p.Amenities, 1)
	assert.Equal(t, "IF_sofa", p.Amenities[0].Key)
	assert.Equal(t, "Apartment d1-studio", p.DisplayTitle(locale.EN))
	assert.Equal(t, "Căn hộ d1-studio", p.DisplayTitle(locale.JA))
}

func TestCreate_PublishedStampsPublishedAt(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	req := createRequest("published-one")
	req.Status = "published"
	p := mustCreate(t, svc, req)

	assert.Equal(t, publishing.Published, p.Status)
	require.NotNil(t, p.PublishedAt)
	assert.True(t, p.PublishedAt.Equal(fixed))
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(r *CreatePropertyRequest)
		field string
	}{
		{"bad slug", func(r *CreatePropertyRequest) { r.Slug = "Bad Slug" }, "slug"},
		{"zero price", func(r *CreatePropertyRequest) { r.PriceMonth = ptr(0.0) }, "priceMonth"},
		{"area too small", func(r *CreatePropertyRequest) { r.AreaSqm = ptr(5.0) }, "areaSqm"},
		{"too many bedrooms", func(r *CreatePropertyRequest) { r.Bedrooms = ptr(21) }, "bedrooms"},
		{"negative bathrooms", func(r *CreatePropertyRequest) { r.Bathrooms = ptr(-1) }, "bathrooms"},
		{"unknown type", func(r *CreatePropertyRequest) { r.PropertyType = "CASTLE" }, "propertyType"},
		{"latitude", func(r *CreatePropertyRequest) { r.Latitude = ptr(91.0) }, "latitude"},
		{"blank title", func(r *CreatePropertyRequest) {
			r.Translations = map[string]TranslationInput{"vi": {Title: "  "}}
		}, "translations.vi.title"},
		{"no translations", func(r *CreatePropertyRequest) { r.Translations = nil }, "translations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(testutil.NewDB(t))
			req := createRequest("valid-slug")
			tt.edit(&req)

			_, err := svc.Create(context.Background(), req, nil)

			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, apperr.KindValidation, ae.Kind)
			assert.Contains(t, ae.Fields, tt.field)
		})
	}
}

func TestCreate_DuplicateSlug(t *testing.T) {
	svc := NewService(testutil.NewDB(t))
	mustCreate(t, svc, createRequest("taken"))

	_, err := svc.Create(context.Background(), createRequest("taken"), nil)

	assert.True(t, apperr.Is(err, apperr.KindDuplicate))
}

func TestUpdate_ReplacesTranslations(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db)
	p := mustCreate(t, svc, createRequest("replace-me"))

	out, err := svc.Update(context.Background(), p.ID, UpdatePropertyRequest{
		Translations: map[string]TranslationInput{"ja": {Title: "アパート"}},
	}, nil)
	require.NoError(t, err)

	require.Len(t, out.Translations, 1)
	assert.Equal(t, locale.JA, out.Translations[0].Locale)

	var n int64
	require.NoError(t, db.Model(&dp.PropertyI18n{}).Where("property_id = ?", p.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestUpdate_KeepsUnsuppliedSets(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db)
	a := seedAmenity(t, db, "IF_tv")
	req := createRequest("keep-sets")
	req.AmenityIDs = []uint{a.ID}
	p := mustCreate(t, svc, req)

	out, err := svc.Update(context.Background(), p.ID, UpdatePropertyRequest{PriceMonth: ptr(9000000.0)}, nil)
	require.NoError(t, err)

	assert.Equal(t, 9000000.0, out.PriceMonth)
	assert.Len(t, out.Translations, 2)
	assert.Len(t, out.Amenities, 1)

	out, err = svc.Update(context.Background(), p.ID, UpdatePropertyRequest{AmenityIDs: []uint{}}, nil)
	require.NoError(t, err)
	assert.Empty(t, out.Amenities, "an empty list clears the links")
}

func TestUpdate_Slug(t *testing.T) {
	svc := NewService(testutil.NewDB(t))
	a := mustCreate(t, svc, createRequest("first"))
	mustCreate(t, svc, createRequest("second"))
	ctx := context.Background()

	_, err := svc.Update(ctx, a.ID, UpdatePropertyRequest{Slug: ptr("second")}, nil)
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))

	out, err := svc.Update(ctx, a.ID, UpdatePropertyRequest{Slug: ptr("first")}, nil)
	require.NoError(t, err, "keeping its own slug is allowed")
	assert.Equal(t, "first", out.Slug)
}

func TestUpdate_PublishedAtStampedOnce(t *testing.T) {
	svc := NewService(testutil.NewDB(t))
	ctx := context.Background()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	p := mustCreate(t, svc, createRequest("stamp"))

	out, err := svc.Update(ctx, p.ID, UpdatePropertyRequest{Status: ptr("PUBLISHED")}, nil)
	require.NoError(t, err)
	require.NotNil(t, out.PublishedAt)
	assert.True(t, out.PublishedAt.Equal(first))

	svc.now = func() time.Time { return first.Add(48 * time.Hour) }
	_, err = svc.Update(ctx, p.ID, UpdatePropertyRequest{Status: ptr("HIDDEN")}, nil)
	require.NoError(t, err)
	out, err = svc.Update(ctx, p.ID, UpdatePropertyRequest{Status: ptr("PUBLISHED")}, nil)
	require.NoError(t, err)
	assert.True(t, out.PublishedAt.Equal(first), "republishing keeps the first stamp")
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(testutil.NewDB(t))

	_, err := svc.Update(context.Background(), 42, UpdatePropertyRequest{PriceMonth: ptr(1.0)}, nil)

	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDelete_HidesProperty(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db)
	p := mustCreate(t, svc, createRequest("hide-me"))

	require.NoError(t, svc.Delete(context.Background(), p.ID, nil))

	got, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, publishing.Hidden, got.Status)
	assert.Len(t, got.Translations, 2, "soft delete keeps the translations")

	assert.True(t, apperr.Is(svc.Delete(context.Background(), 999, nil), apperr.KindNotFound))
}

func TestPurge_RemovesGraphAndReportsOrphans(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db)
	ctx := context.Background()
	p := mustCreate(t, svc, createRequest("purge-me"))
	other := mustCreate(t, svc, createRequest("other"))

	require.NoError(t, db.Create(&[]media.PropertyImage{
		{PropertyID: p.ID, FilePath: "properties/1/own.jpg"},
		{PropertyID: p.ID, FilePath: "properties/1/shared.jpg"},
		{PropertyID: other.ID, FilePath: "properties/1/shared.jpg"},
	}).Error)
	msg := contact.Message{FullName: "An", Email: "an@example.com", Message: "Còn phòng không?", PropertyID: &p.ID}
	require.NoError(t, db.Create(&msg).Error)

	orphans, err := svc.Purge(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"properties/1/own.jpg"}, orphans)

	_, err = svc.Get(ctx, p.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	var n int64
	require.NoError(t, db.Model(&dp.PropertyI18n{}).Where("property_id = ?", p.ID).Count(&n).Error)
	assert.Zero(t, n)

	var kept contact.Message
	require.NoError(t, db.First(&kept, msg.ID).Error)
	assert.Nil(t, kept.PropertyID, "inquiries survive with the link cleared")

	_, err = svc.Purge(ctx, p.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestSlugAvailable(t *testing.T) {
	svc := NewService(testutil.NewDB(t))
	ctx := context.Background()
	p := mustCreate(t, svc, createRequest("in-use"))

	ok, err := svc.SlugAvailable(ctx, "in-use", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.SlugAvailable(ctx, "in-use", &p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.SlugAvailable(ctx, "free", nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInquiryCounts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db)
	p := mustCreate(t, svc, createRequest("popular"))
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&contact.Message{FullName: "A", Email: "a@example.com", Message: "hi", PropertyID: &p.ID}).Error)
	}

	counts, err := svc.InquiryCounts(context.Background(), p.ID, 77)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[p.ID])
	assert.Zero(t, counts[77])
}

// ------------------------------
// listing
// ------------------------------

func TestList_FiltersAndPaging(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db)
	ctx := context.Background()
	wifi := seedAmenity(t, db, "IF_wifi")
	pool := seedAmenity(t, db, "IF_pool")

	cheap := createRequest("cheap")
	cheap.PriceMonth = ptr(5000000.0)
	cheap.Status = "PUBLISHED"
	cheap.AmenityIDs = []uint{wifi.ID}
	mustCreate(t, svc, cheap)

	pricey := createRequest("pricey")
	pricey.PriceMonth = ptr(30000000.0)
	pricey.Bedrooms = ptr(3)
	pricey.Status = "PUBLISHED"
	pricey.IsFeatured = true
	pricey.AmenityIDs = []uint{pool.ID}
	mustCreate(t, svc, pricey)

	draft := createRequest("draft")
	mustCreate(t, svc, draft)

	page := response.NewPageRequest(0, 20)

	list, total, err := svc.List(ctx, Criteria{}, page, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "public listing hides drafts")
	assert.Equal(t, "pricey", list[0].Slug, "featured first")

	list, total, err = svc.List(ctx, Criteria{Status: ptr(publishing.Draft)}, page, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "status filter is ignored on public listings")

	list, total, err = svc.List(ctx, Criteria{Status: ptr(publishing.Draft)}, page, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "draft", list[0].Slug)

	list, _, err = svc.List(ctx, Criteria{MaxPrice: ptr(10000000.0)}, page, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "cheap", list[0].Slug)

	list, _, err = svc.List(ctx, Criteria{MinBedrooms: ptr(2)}, page, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "pricey", list[0].Slug)

	list, _, err = svc.List(ctx, Criteria{AmenityIDs: []uint{wifi.ID, pool.ID}}, page, true)
	require.NoError(t, err)
	assert.Len(t, list, 2, "amenity filter matches any of the ids")

	list, _, err = svc.List(ctx, Criteria{Query: "APARTMENT CHEAP"}, page, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "cheap", list[0].Slug)

	for _, q := range []string{"%", "_", "apartment_cheap"} {
		_, total, err = svc.List(ctx, Criteria{Query: q}, page, false)
		require.NoError(t, err)
		assert.Zero(t, total, "wildcards in %q are matched literally", q)
	}

	list, total, err = svc.List(ctx, Criteria{}, response.NewPageRequest(2, 1), false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 1)
}

func TestList_SortByPrice(t *testing.T) {
	svc := NewService(testutil.NewDB(t))
	ctx := context.Background()
	for i, price := range []float64{3e6, 1e6, 2e6} {
		req := createRequest([]string{"a", "b", "c"}[i])
		req.PriceMonth = ptr(price)
		mustCreate(t, svc, req)
	}

	list, _, err := svc.List(ctx, Criteria{SortBy: "priceMonth", SortDir: "asc"}, response.NewPageRequest(0, 20), false)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{list[0].Slug, list[1].Slug, list[2].Slug})

	list, _, err = svc.List(ctx, Criteria{SortBy: "price_month; DROP TABLE properties"}, response.NewPageRequest(0, 20), false)
	require.NoError(t, err, "unknown sort keys fall back to the default")
	assert.Len(t, list, 3)
}

func TestFeaturedAndPublishedBySlug(t *testing.T) {
	svc := NewService(testutil.NewDB(t))
	ctx := context.Background()

	req := createRequest("star")
	req.Status = "PUBLISHED"
	req.IsFeatured = true
	mustCreate(t, svc, req)

	hidden := createRequest("hidden-star")
	hidden.Status = "HIDDEN"
	hidden.IsFeatured = true
	mustCreate(t, svc, hidden)

	list, err := svc.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "star", list[0].Slug)

	p, err := svc.GetPublishedBySlug(ctx, "star")
	require.NoError(t, err)
	assert.Equal(t, "star", p.Slug)

	_, err = svc.GetPublishedBySlug(ctx, "hidden-star")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
