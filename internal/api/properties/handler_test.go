package properties

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"rental-app/database"
	"rental-app/internal/api/response"
	"rental-app/internal/app/http/middleware"
	"rental-app/internal/domain/media"
	"rental-app/internal/infra/storage"
	"rental-app/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	testutil.UseGlobalDB(t, testutil.NewDB(t))

	h := &Handler{
		Files:          storage.NewLocal(t.TempDir()),
		URLs:           media.URLBuilder{PublicBaseURL: "http://localhost:8080", StorageBaseURL: "http://localhost:8080/uploads"},
		MaxUploadBytes: 1 << 20,
	}

	r := gin.New()
	r.Use(middleware.Locale())
	r.GET("/properties", h.ListPublished)
	r.GET("/properties/search", h.Search)
	r.GET("/properties/check-slug", h.CheckSlug)
	r.GET("/properties/slug/:slug", h.GetBySlug)
	r.GET("/admin/properties", h.AdminList)
	r.POST("/admin/properties", h.Create)
	r.GET("/admin/properties/:id", h.AdminGet)
	r.PUT("/admin/properties/:id", h.Update)
	r.DELETE("/admin/properties/:id", h.Delete)
	r.POST("/admin/properties/:id/duplicate/batch", h.DuplicateBatch)
	r.POST("/admin/properties/:id/images", h.UploadImage)
	return r, h
}

func TestHandler_CreateAndReadBack(t *testing.T) {
	r, _ := newEngine(t)

	req := createRequest("river-view")
	req.Status = "PUBLISHED"
	rec := testutil.Do(t, r, http.MethodPost, "/admin/properties", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created DetailResponse
	env := testutil.Decode(t, rec, &created)
	assert.Equal(t, "Property created successfully", env.Message)
	assert.Equal(t, "Căn hộ river-view", created.Title)
	assert.Len(t, created.Translations, 2)

	rec = testutil.Do(t, r, http.MethodGet, "/properties/slug/river-view?locale=en", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail DetailResponse
	testutil.Decode(t, rec, &detail)
	assert.Equal(t, "Apartment river-view", detail.Title)
	assert.Zero(t, detail.TotalInquiries)

	rec = testutil.Do(t, r, http.MethodGet, "/properties?locale=ja", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page response.Page[SummaryResponse]
	testutil.Decode(t, rec, &page)
	assert.Equal(t, int64(1), page.TotalElements)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Căn hộ river-view", page.Items[0].Title)
}

func TestHandler_CreateRejections(t *testing.T) {
	r, _ := newEngine(t)

	rec := testutil.Do(t, r, http.MethodPost, "/admin/properties", map[string]any{"slug": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := testutil.Decode(t, rec, nil)
	assert.Contains(t, env.Errors, "propertyType")

	require.Equal(t, http.StatusCreated, testutil.Do(t, r, http.MethodPost, "/admin/properties", createRequest("dup")).Code)
	rec = testutil.Do(t, r, http.MethodPost, "/admin/properties", createRequest("dup"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_SearchParams(t *testing.T) {
	r, _ := newEngine(t)

	rec := testutil.Do(t, r, http.MethodGet, "/properties/search?minPrice=abc&amenityIds=1,x", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := testutil.Decode(t, rec, nil)
	assert.Contains(t, env.Errors, "minPrice")
	assert.Contains(t, env.Errors, "amenityIds")

	rec = testutil.Do(t, r, http.MethodGet, "/properties/search?amenityIds=1,2&amenityIds=3&size=500", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page response.Page[SummaryResponse]
	testutil.Decode(t, rec, &page)
	assert.Equal(t, response.MaxPageSize, page.PageSize)
}

func TestHandler_CheckSlug(t *testing.T) {
	r, _ := newEngine(t)
	require.Equal(t, http.StatusCreated, testutil.Do(t, r, http.MethodPost, "/admin/properties", createRequest("used")).Code)

	rec := testutil.Do(t, r, http.MethodGet, "/properties/check-slug?slug=used", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Available bool `json:"available"`
	}
	testutil.Decode(t, rec, &out)
	assert.False(t, out.Available)

	rec = testutil.Do(t, r, http.MethodGet, "/properties/check-slug?slug=used&excludeId=1", nil)
	testutil.Decode(t, rec, &out)
	assert.True(t, out.Available)

	assert.Equal(t, http.StatusBadRequest, testutil.Do(t, r, http.MethodGet, "/properties/check-slug", nil).Code)
}

func TestHandler_DeleteThenPublicNotFound(t *testing.T) {
	r, _ := newEngine(t)
	req := createRequest("gone")
	req.Status = "PUBLISHED"
	require.Equal(t, http.StatusCreated, testutil.Do(t, r, http.MethodPost, "/admin/properties", req).Code)

	require.Equal(t, http.StatusOK, testutil.Do(t, r, http.MethodDelete, "/admin/properties/1", nil).Code)

	assert.Equal(t, http.StatusNotFound, testutil.Do(t, r, http.MethodGet, "/properties/slug/gone", nil).Code)
	assert.Equal(t, http.StatusOK, testutil.Do(t, r, http.MethodGet, "/admin/properties/1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, testutil.Do(t, r, http.MethodGet, "/admin/properties/abc", nil).Code)
}

func TestHandler_DuplicateBatch(t *testing.T) {
	r, _ := newEngine(t)
	require.Equal(t, http.StatusCreated, testutil.Do(t, r, http.MethodPost, "/admin/properties", createRequest("base")).Code)

	rec := testutil.Do(t, r, http.MethodPost, "/admin/properties/1/duplicate/batch", BatchDuplicateRequest{Codes: []string{"B-1", "B-2"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out []DetailResponse
	env := testutil.Decode(t, rec, &out)
	assert.Equal(t, "2 of 2 properties duplicated", env.Message)
	assert.Len(t, out, 2)
}

func TestHandler_UploadImage(t *testing.T) {
	r, _ := newEngine(t)
	require.Equal(t, http.StatusCreated, testutil.Do(t, r, http.MethodPost, "/admin/properties", createRequest("photos")).Code)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(pngBytes(t, 8, 8))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("isCover", "true"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/properties/1/images", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var img ImageResponse
	testutil.Decode(t, rec, &img)
	assert.True(t, img.IsCover)
	assert.Contains(t, img.ImageURL, "http://localhost:8080/uploads/properties/1/")
	assert.Equal(t, "image/png", img.MimeType)

	req = httptest.NewRequest(http.MethodPost, "/admin/properties/1/images", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing file")
}

type failingDeleteStore struct {
	FileStore
	attempts []string
}

func (s *failingDeleteStore) Delete(path string) error {
	s.attempts = append(s.attempts, path)
	return errors.New("permission denied")
}

func TestHandler_PurgeReportsOnlyRemovedFiles(t *testing.T) {
	r, h := newEngine(t)
	r.DELETE("/admin/properties/:id/purge", h.Purge)
	require.Equal(t, http.StatusCreated, testutil.Do(t, r, http.MethodPost, "/admin/properties", createRequest("gone")).Code)
	require.NoError(t, database.DB.Create(&media.PropertyImage{PropertyID: 1, FilePath: "properties/1/a.jpg"}).Error)

	store := &failingDeleteStore{FileStore: h.Files}
	h.Files = store

	rec := testutil.Do(t, r, http.MethodDelete, "/admin/properties/1/purge", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		FilesRemoved int `json:"filesRemoved"`
	}
	testutil.Decode(t, rec, &out)
	assert.Zero(t, out.FilesRemoved, "a failed file delete does not fail the purge")
	assert.Equal(t, []string{"properties/1/a.jpg"}, store.attempts)
}
