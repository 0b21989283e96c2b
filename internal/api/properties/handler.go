package properties

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"rental-app/database"
	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/app/http/middleware"
	"rental-app/internal/domain/media"
	"rental-app/internal/domain/publishing"
	dp "rental-app/internal/domain/properties"
	"rental-app/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the public and admin property endpoints.
type Handler struct {
	Files          FileStore
	URLs           media.URLBuilder
	MaxUploadBytes int64
}

func (h *Handler) mapper() Mapper { return Mapper{URLs: h.URLs} }

func (h *Handler) service() *Service { return NewService(database.DB) }

func (h *Handler) images() *ImageService {
	return NewImageService(database.DB, h.Files, h.MaxUploadBytes)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, apperr.Field(name, "Invalid id"))
		return 0, false
	}
	return uint(id), true
}

// ------------------------------
// GET /properties?propertyType=&page=&size=&locale=
// ------------------------------
func (h *Handler) ListPublished(c *gin.Context) {
	var crit Criteria
	if raw := c.Query("propertyType"); raw != "" {
		t, ok := dp.ParseType(raw)
		if !ok {
			response.Fail(c, apperr.Field("propertyType", "Invalid property type"))
			return
		}
		crit.PropertyType = &t
	}
	h.respondList(c, crit, true)
}

// ------------------------------
// GET /properties/search
// ------------------------------
func (h *Handler) Search(c *gin.Context) {
	crit, err := parseCriteria(c, false)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.respondList(c, crit, true)
}

// ------------------------------
// GET /admin/properties
// ------------------------------
func (h *Handler) AdminList(c *gin.Context) {
	crit, err := parseCriteria(c, true)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.respondList(c, crit, false)
}

func (h *Handler) respondList(c *gin.Context, crit Criteria, public bool) {
	ctx := c.Request.Context()
	page := response.ParsePageRequest(c)

	list, total, err := h.service().List(ctx, crit, page, public)
	if err != nil {
		response.Fail(c, err)
		return
	}
	items := h.mapper().Summaries(ctx, list, middleware.RequestLocale(c))
	response.OK(c, response.NewPage(items, total, page))
}

// GET /properties/featured
func (h *Handler) Featured(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.service().Featured(ctx)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, h.mapper().Summaries(ctx, list, middleware.RequestLocale(c)))
}

// GET /properties/:slug
func (h *Handler) GetBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	svc := h.service()

	p, err := svc.GetPublishedBySlug(ctx, c.Param("slug"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.respondDetail(c, svc, p, http.StatusOK, "")
}

// GET /admin/properties/:id
func (h *Handler) AdminGet(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	svc := h.service()
	p, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.respondDetail(c, svc, p, http.StatusOK, "")
}

func (h *Handler) respondDetail(c *gin.Context, svc *Service, p *dp.Property, status int, msg string) {
	counts, err := svc.InquiryCounts(c.Request.Context(), p.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := h.mapper().Detail(p, middleware.RequestLocale(c), counts[p.ID])
	if status == http.StatusCreated {
		response.Created(c, msg, out)
		return
	}
	response.OKMessage(c, msg, out)
}

// GET /properties/check-slug?slug=&excludeId=
func (h *Handler) CheckSlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("slug"))
	if slug == "" {
		response.Fail(c, apperr.Field("slug", "Slug is required"))
		return
	}

	var exclude *uint
	if raw := c.Query("excludeId"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Fail(c, apperr.Field("excludeId", "Invalid id"))
			return
		}
		id := uint(v)
		exclude = &id
	}

	ok, err := h.service().SlugAvailable(c.Request.Context(), slug, exclude)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"slug": slug, "available": ok})
}

// ------------------------------
// POST /admin/properties
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}

	svc := h.service()
	p, err := svc.Create(c.Request.Context(), req, middleware.CurrentUserRef(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.respondDetail(c, svc, p, http.StatusCreated, "Property created successfully")
}

// ------------------------------
// PUT /admin/properties/:id
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}

	svc := h.service()
	p, err := svc.Update(c.Request.Context(), id, req, middleware.CurrentUserRef(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.respondDetail(c, svc, p, http.StatusOK, "Property updated successfully")
}

// DELETE /admin/properties/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service().Delete(c.Request.Context(), id, middleware.CurrentUserRef(c)); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Property deleted successfully", nil)
}

// DELETE /admin/properties/:id/purge
func (h *Handler) Purge(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	orphans, err := h.service().Purge(ctx, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	removed := 0
	for _, path := range orphans {
		if err := h.Files.Delete(path); err != nil {
			logger.FromGin(c).Warn("Failed to delete stored file", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}
	response.OKMessage(c, "Property permanently deleted", gin.H{"id": id, "filesRemoved": removed})
}

// POST /admin/properties/:id/duplicate
func (h *Handler) Duplicate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req DuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}

	svc := h.service()
	p, err := svc.Duplicate(c.Request.Context(), id, req.Code, middleware.CurrentUserRef(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.respondDetail(c, svc, p, http.StatusCreated, "Property duplicated successfully")
}

// POST /admin/properties/:id/duplicate/batch
func (h *Handler) DuplicateBatch(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req BatchDuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}

	ctx := c.Request.Context()
	created, err := h.service().DuplicateBatch(ctx, id, req.Codes, middleware.CurrentUserRef(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	m := h.mapper()
	loc := middleware.RequestLocale(c)
	items := make([]DetailResponse, 0, len(created))
	for i := range created {
		items = append(items, m.Detail(&created[i], loc, 0))
	}
	response.Created(c, strconv.Itoa(len(created))+" of "+strconv.Itoa(len(req.Codes))+" properties duplicated", items)
}

// ------------------------------
// images
// ------------------------------

// GET /admin/properties/:id/images
func (h *Handler) ListImages(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, err := h.images().List(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, h.mapper().Images(list))
}

// POST /admin/properties/:id/images (multipart: file, sortOrder, isCover)
func (h *Handler) UploadImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if h.MaxUploadBytes > 0 {
		// one extra MB for the multipart envelope and the other form fields
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+1<<20)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			response.Fail(c, apperr.PayloadTooLarge("File size exceeds maximum allowed size"))
			return
		}
		response.Fail(c, apperr.FileUpload("File is required", err))
		return
	}
	if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
		response.Fail(c, apperr.PayloadTooLarge("File size exceeds maximum allowed size"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Fail(c, apperr.FileUpload("Failed to read file", err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.Fail(c, apperr.FileUpload("Failed to read file", err))
		return
	}

	in := UploadInput{Data: data, IsCover: c.PostForm("isCover") == "true"}
	if raw := c.PostForm("sortOrder"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, apperr.Field("sortOrder", "Invalid sort order"))
			return
		}
		in.SortOrder = &v
	}

	img, err := h.images().Upload(c.Request.Context(), id, in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "Image uploaded successfully", h.mapper().Image(*img))
}

// DELETE /admin/properties/:id/images/:imageId
func (h *Handler) DeleteImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	imageID, ok := paramID(c, "imageId")
	if !ok {
		return
	}
	if err := h.images().Delete(c.Request.Context(), id, imageID); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Image deleted successfully", nil)
}

// PUT /admin/properties/:id/images/:imageId/sort-order
func (h *Handler) UpdateImageSortOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	imageID, ok := paramID(c, "imageId")
	if !ok {
		return
	}
	var req SortOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}

	img, err := h.images().UpdateSortOrder(c.Request.Context(), id, imageID, *req.SortOrder)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, h.mapper().Image(*img))
}

// PUT /admin/properties/:id/images/:imageId/cover
func (h *Handler) SetCoverImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	imageID, ok := paramID(c, "imageId")
	if !ok {
		return
	}
	img, err := h.images().SetCover(c.Request.Context(), id, imageID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Cover image updated", h.mapper().Image(*img))
}

// ------------------------------
// query parsing
// ------------------------------

// parseCriteria reads the optional filters of a listing. Malformed numbers are
// rejected with a field error; status is only honoured for admin listings.
func parseCriteria(c *gin.Context, admin bool) (Criteria, error) {
	crit := Criteria{
		Query:   c.Query("query"),
		SortBy:  c.Query("sortBy"),
		SortDir: c.DefaultQuery("sortDirection", "desc"),
	}
	errs := map[string]string{}

	if raw := c.Query("propertyType"); raw != "" {
		if t, ok := dp.ParseType(raw); ok {
			crit.PropertyType = &t
		} else {
			errs["propertyType"] = "Invalid property type"
		}
	}
	if raw := c.Query("status"); admin && raw != "" {
		if s, ok := publishing.ParseStatus(raw); ok {
			crit.Status = &s
		} else {
			errs["status"] = "Invalid status"
		}
	}

	crit.MinPrice = queryFloat(c, "minPrice", errs)
	crit.MaxPrice = queryFloat(c, "maxPrice", errs)
	crit.MinArea = queryFloat(c, "minArea", errs)
	crit.MaxArea = queryFloat(c, "maxArea", errs)
	crit.MinBedrooms = queryInt(c, "minBedrooms", errs)
	crit.MaxBedrooms = queryInt(c, "maxBedrooms", errs)
	crit.MinBathrooms = queryInt(c, "minBathrooms", errs)
	crit.MaxBathrooms = queryInt(c, "maxBathrooms", errs)

	if raw := c.Query("isFeatured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs["isFeatured"] = "Must be true or false"
		} else {
			crit.Featured = &v
		}
	}

	for _, raw := range c.QueryArray("amenityIds") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				errs["amenityIds"] = "Invalid amenity id"
				continue
			}
			crit.AmenityIDs = append(crit.AmenityIDs, uint(v))
		}
	}

	if len(errs) > 0 {
		return Criteria{}, apperr.Validation("Invalid search parameters", errs)
	}
	return crit, nil
}

func queryFloat(c *gin.Context, key string, errs map[string]string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		errs[key] = "Must be a non-negative number"
		return nil
	}
	return &v
}

func queryInt(c *gin.Context, key string, errs map[string]string) *int {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		errs[key] = "Must be a non-negative integer"
		return nil
	}
	return &v
}
