package admin

import (
	"rental-app/database"
	"rental-app/internal/api/response"

	"github.com/gin-gonic/gin"
)

// GET /admin/analytics/dashboard
func Dashboard(c *gin.Context) {
	stats, err := NewService(database.DB).Dashboard(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, stats)
}
