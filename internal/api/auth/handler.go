package auth

import (
	"rental-app/config"
	"rental-app/database"
	"rental-app/internal/api/response"
	"rental-app/internal/infra/tokens"

	"github.com/gin-gonic/gin"
)

// Handler serves /auth. Me and change-password live in the users package.
type Handler struct {
	Issuer *tokens.Issuer
}

func (h *Handler) service() *Service {
	return NewService(database.DB, h.Issuer)
}

// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}
	out, err := h.service().Login(c.Request.Context(), req, c.Request.UserAgent())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Login successful", out)
}

// POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}
	out, err := h.service().Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Token refreshed successfully", out)
}

// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.BindError(err))
		return
	}
	if err := h.service().Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Logout successful", nil)
}

// POST /admin/auth/tokens/purge
func (h *Handler) PurgeTokens(c *gin.Context) {
	out, err := h.service().PurgeTokens(c.Request.Context(), config.REVOKED_TOKEN_RETENTION)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "Refresh tokens purged", out)
}
