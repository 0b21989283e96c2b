package content

import (
	"strconv"
	"strings"

	"rental-app/database"
	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/app/http/middleware"
	"rental-app/internal/domain/publishing"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, apperr.Field("id", "Invalid id"))
		return 0, false
	}
	return uint(id), true
}

// GET /content
func ListPublished(c *gin.Context) {
	list, err := NewService(database.DB).ListPublished(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, ToResponses(list, middleware.RequestLocale(c)))
}

// GET /content/:slug
func GetBySlug(c *gin.Context) {
	p, err := NewService(database.DB).GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, ToResponse(p, middleware.RequestLocale(c), true))
}

// GET /admin/content?status=&page=&size=
func AdminList(c *gin.Context) {
	var st *publishing.Status
	if raw := c.Query("status"); raw != "" {
		v, ok := publishing.ParseStatus(raw)
		if !ok {
			response.Fail(c, apperr.Field("status", "Invalid status"))
			return
		}
		st = &v
	}

	page := response.ParsePageRequest(c)
	list, total, err := NewService(database.DB).List(c.Request.Context(), st, page)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, response.NewPage(ToResponses(list, middleware.RequestLocale(c)), total, page))
}

// GET /admin/content/:id
func AdminGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := NewService(database.DB).Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, ToResponse(p, middleware.RequestLocale(c), true))
}

// POST /admin/content
func Create(c *gin.Context) {
	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}
	p, err := NewService(database.DB).Create(c.Request.Context(), req, middleware.CurrentUserRef(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "Content page created successfully", ToResponse(p, middleware.RequestLocale(c), true))
}

// PUT /admin/content/:id
func Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}
	p, err := NewService(database.DB).Update(c.Request.Context(), id, req, middleware.CurrentUserRef(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Content page updated successfully", ToResponse(p, middleware.RequestLocale(c), true))
}

// DELETE /admin/content/:id
func Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := NewService(database.DB).Delete(c.Request.Context(), id, middleware.CurrentUserRef(c)); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Content page deleted successfully", nil)
}

// GET /admin/content/check-slug?slug=&excludeId=
func CheckSlug(c *gin.Context) {
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

	ok, err := NewService(database.DB).SlugAvailable(c.Request.Context(), slug, exclude)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"slug": slug, "available": ok})
}
