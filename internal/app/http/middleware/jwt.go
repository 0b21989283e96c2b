package middleware

import (
	"net/http"
	"strings"

	"rental-app/internal/api/response"
	"rental-app/internal/domain/access"
	"rental-app/internal/infra/tokens"
	"rental-app/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
)

// AuthMiddleware accepts only access tokens and exposes their claims on the context.
func AuthMiddleware(issuer *tokens.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			response.Abort(c, http.StatusUnauthorized, "Bearer token malformed")
			return
		}

		claims, err := issuer.Parse(strings.TrimSpace(tokenString), tokens.KindAccess)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)

		l := logger.FromGin(c).With(zap.Uint("user_id", claims.UserID))
		c.Set(logger.GinKey, l)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))

		c.Next()
	}
}

// RequirePermission lets the request through only when the caller's role is granted p.
func RequirePermission(p access.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, "Role not found in token")
			return
		}

		r, _ := role.(access.Role)
		if !access.Authorize(r, p) {
			response.Abort(c, http.StatusForbidden, "Access denied")
			return
		}

		c.Next()
	}
}

func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}

// CurrentUserRef is CurrentUserID for nullable audit columns.
func CurrentUserRef(c *gin.Context) *uint {
	id := CurrentUserID(c)
	if id == 0 {
		return nil
	}
	return &id
}

func CurrentRole(c *gin.Context) access.Role {
	r, _ := c.Get(ctxRole)
	role, _ := r.(access.Role)
	return role
}
