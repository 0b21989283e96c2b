package content

import (
	"context"
	"testing"

	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/publishing"
	"rental-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageRequest(slug, status string) CreatePageRequest {
	return CreatePageRequest{
		Slug:   slug,
		Status: status,
		Translations: map[string]TranslationInput{
			"vi": {Title: "Giới thiệu", BodyMD: "# Chào mừng\n\nChúng tôi cho thuê **căn hộ**."},
			"en": {Title: "About us", BodyMD: "Welcome."},
		},
	}
}

func TestCreateAndPublicRead(t *testing.T) {
	svc := NewService(testutil.NewDB(t))
	ctx := context.Background()

	p, err := svc.Create(ctx, pageRequest("about-us", "PUBLISHED"), nil)
	require.NoError(t, err)
	assert.Len(t, p.Translations, 2)

	_, err = svc.Create(ctx, pageRequest("draft-page", ""), nil)
	require.NoError(t, err)

	list, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "about-us", list[0].Slug)

	got, err := svc.GetPublishedBySlug(ctx, "about-us")
	require.NoError(t, err)
	out := ToResponse(got, locale.JA, true)
	assert.Equal(t, "Giới thiệu", out.Title)
	assert.Contains(t, out.BodyHTML, "<strong>căn hộ</strong>")
	assert.Equal(t, "Chào mừng Chúng tôi cho thuê căn hộ.", out.Preview)

	_, err = svc.GetPublishedBySlug(ctx, "draft-page")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCreate_Rejects(t *testing.T) {
	svc := NewService(testutil.NewDB(t))
	ctx := context.Background()
	_, err := svc.Create(ctx, pageRequest("faq", ""), nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, pageRequest("faq", ""), nil)
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))

	_, err = svc.Create(ctx, pageRequest("Not Valid", ""), nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	req := pageRequest("empty", "")
	req.Translations = map[string]TranslationInput{"de": {Title: "Hallo"}}
	_, err = svc.Create(ctx, req, nil)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "translations")

	req = pageRequest("Bad Slug", "")
	req.Translations = nil
	_, err = svc.Create(ctx, req, nil)
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "slug")
	assert.Contains(t, ae.Fields, "translations")
}

func TestUpdate(t *testing.T) {
	svc := NewService(testutil.NewDB(t))
	ctx := context.Background()
	a, err := svc.Create(ctx, pageRequest("terms", ""), nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, pageRequest("privacy", ""), nil)
	require.NoError(t, err)

	slug := "privacy"
	_, err = svc.Update(ctx, a.ID, UpdatePageRequest{Slug: &slug}, nil)
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))

	slug = "terms"
	status := "published"
	out, err := svc.Update(ctx, a.ID, UpdatePageRequest{
		Slug:         &slug,
		Status:       &status,
		Translations: map[string]TranslationInput{"ja": {Title: "利用規約"}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, publishing.Published, out.Status)
	require.Len(t, out.Translations, 1)
	assert.Equal(t, "利用規約", out.DisplayTitle(locale.JA))
	assert.Equal(t, "terms", out.DisplayTitle(locale.VI), "translations are replaced, vi is gone")
}

func TestDeleteAndAdminList(t *testing.T) {
	svc := NewService(testutil.NewDB(t))
	ctx := context.Background()
	a, err := svc.Create(ctx, pageRequest("one", "PUBLISHED"), nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, pageRequest("two", "PUBLISHED"), nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID, nil))
	assert.True(t, apperr.Is(svc.Delete(ctx, 99, nil), apperr.KindNotFound))

	hidden := publishing.Hidden
	list, total, err := svc.List(ctx, &hidden, response.NewPageRequest(0, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "one", list[0].Slug)
	assert.Len(t, list[0].Translations, 2)

	_, total, err = svc.List(ctx, nil, response.NewPageRequest(0, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestSlugAvailable(t *testing.T) {
	svc := NewService(testutil.NewDB(t))
	ctx := context.Background()
	p, err := svc.Create(ctx, pageRequest("guide", ""), nil)
	require.NoError(t, err)

	ok, err := svc.SlugAvailable(ctx, "guide", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.SlugAvailable(ctx, "guide", &p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
