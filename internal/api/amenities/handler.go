package amenities

import (
	"strconv"

	"rental-app/database"
	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/app/http/middleware"
	"rental-app/internal/domain/properties"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /amenities?propertyType=&locale=
// ------------------------------
func ListAmenities(c *gin.Context) {
	svc := NewService(database.DB)
	loc := middleware.RequestLocale(c)

	var (
		list []properties.Amenity
		err  error
	)
	if raw := c.Query("propertyType"); raw != "" {
		t, ok := properties.ParseType(raw)
		if !ok {
			response.Fail(c, apperr.Field("propertyType", "Invalid property type"))
			return
		}
		list, err = svc.ForType(c.Request.Context(), t)
	} else {
		list, err = svc.List(c.Request.Context())
	}
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, ToResponses(list, loc))
}

// GET /amenities/:id
func GetAmenity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, apperr.NotFound("Amenity", "id", c.Param("id")))
		return
	}

	a, err := NewService(database.DB).Get(c.Request.Context(), uint(id))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, ToResponse(*a, middleware.RequestLocale(c)))
}
