package siteapi

import (
	"rental-app/database"
	"rental-app/internal/api/response"
	"rental-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /company-info
func GetCompanyInfo(c *gin.Context) {
	list, err := NewService(database.DB).CompanyInfo(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	l := middleware.RequestLocale(c)
	out := make(map[string]string, len(list))
	for i := range list {
		out[list[i].Key] = list[i].DisplayValue(l)
	}
	response.OK(c, out)
}

// GET /company-info/:key
func GetCompanyInfoValue(c *gin.Context) {
	st, err := NewService(database.DB).CompanyInfoValue(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, toDTO(st, middleware.RequestLocale(c)))
}

// GET /admin/settings
func ListSettings(c *gin.Context) {
	list, err := NewService(database.DB).List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, toDTOs(list, middleware.RequestLocale(c)))
}

// GET /admin/settings/:key
func GetSetting(c *gin.Context) {
	st, err := NewService(database.DB).Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, toDTO(st, middleware.RequestLocale(c)))
}

// PUT /admin/settings/:key
func UpsertSetting(c *gin.Context) {
	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}

	st, err := NewService(database.DB).Upsert(c.Request.Context(), c.Param("key"), req, middleware.CurrentUserRef(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Setting saved successfully", toDTO(st, middleware.RequestLocale(c)))
}

// POST /admin/settings/initialize (SUPER_ADMIN)
func InitializeDefaults(c *gin.Context) {
	n, err := NewService(database.DB).InitializeDefaults(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Default settings initialized", gin.H{"created": n})
}
