package contact

import (
	"strconv"

	"rental-app/database"
	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// POST /contact
func Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}
	if _, err := NewService(database.DB).Submit(c.Request.Context(), req); err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "Thank you for your message. We will get back to you soon.", nil)
}

func list(f Filter, withQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := ""
		if withQuery {
			q = c.Query("query")
			if q == "" {
				response.Fail(c, apperr.Field("query", "Search query is required"))
				return
			}
		}
		page := response.ParsePageRequest(c)
		msgs, total, err := NewService(database.DB).List(c.Request.Context(), f, q, page)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, response.NewPage(ToResponses(msgs, middleware.RequestLocale(c)), total, page))
	}
}

var (
	// GET /admin/messages
	ListAll = list(All, false)
	// GET /admin/messages/unhandled
	ListUnhandled = list(Unhandled, false)
	// GET /admin/messages/handled
	ListHandled = list(Handled, false)
	// GET /admin/messages/search?query=
	Search = list(All, true)
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, apperr.Field("id", "Invalid id"))
		return 0, false
	}
	return uint(id), true
}

// GET /admin/messages/:id
func Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := NewService(database.DB).Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, ToResponse(m, middleware.RequestLocale(c)))
}

// PUT /admin/messages/:id/handle
func MarkHandled(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := NewService(database.DB).MarkHandled(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Message marked as handled", ToResponse(m, middleware.RequestLocale(c)))
}
