package users

import (
	"strconv"
	"strings"

	"rental-app/database"
	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/app/http/middleware"
	"rental-app/internal/domain/access"

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

// GET /auth/me
func GetCurrentUser(c *gin.Context) {
	u, err := NewService(database.DB).Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			response.Fail(c, apperr.Unauthorized("User not found or inactive"))
			return
		}
		response.Fail(c, err)
		return
	}
	response.OK(c, BuildMeResponse(u))
}

// PUT /auth/change-password
func ChangeMyPassword(c *gin.Context) {
	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}
	if strings.TrimSpace(req.CurrentPassword) == "" {
		response.Fail(c, apperr.Field("currentPassword", "Current password is required"))
		return
	}
	if err := NewService(database.DB).ChangeOwnPassword(c.Request.Context(), middleware.CurrentUserID(c), req); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Password changed successfully", nil)
}

// ------------------------------
// SUPER_ADMIN user management
// ------------------------------

// GET /admin/users?role=&query=&page=&size=
func ListUsers(c *gin.Context) {
	var f Filter
	if raw := c.Query("role"); raw != "" {
		r, ok := access.ParseRole(raw)
		if !ok {
			response.Fail(c, apperr.Field("role", "Invalid role"))
			return
		}
		f.Role = &r
	}
	f.Query = c.Query("query")

	page := response.ParsePageRequest(c)
	list, total, err := NewService(database.DB).List(c.Request.Context(), f, page)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, response.NewPage(BuildUserDTOs(list), total, page))
}

// GET /admin/users/:id
func GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := NewService(database.DB).Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, BuildUserDTO(u))
}

// POST /admin/users
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}
	u, err := NewService(database.DB).Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "User created successfully", BuildUserDTO(u))
}

// PUT /admin/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}
	u, err := NewService(database.DB).Update(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "User updated successfully", BuildUserDTO(u))
}

// PUT /admin/users/:id/deactivate
func DeactivateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if id == middleware.CurrentUserID(c) {
		response.Fail(c, apperr.InvalidOperation("You cannot deactivate your own account"))
		return
	}
	if err := NewService(database.DB).Deactivate(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "User deactivated successfully", nil)
}

// PUT /admin/users/:id/activate
func ActivateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := NewService(database.DB).Activate(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "User activated successfully", nil)
}

// PUT /admin/users/:id/password
func ResetPassword(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}
	if err := NewService(database.DB).ChangePassword(c.Request.Context(), id, req); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Password changed successfully", nil)
}

// GET /admin/users/check-email?email=&excludeId=
func CheckEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		response.Fail(c, apperr.Field("email", "Email is required"))
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
	ok, err := NewService(database.DB).EmailAvailable(c.Request.Context(), email, exclude)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"email": email, "available": ok})
}

// GET /admin/users/stats
func Stats(c *gin.Context) {
	out, err := NewService(database.DB).Stats(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, out)
}
