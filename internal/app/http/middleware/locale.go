package middleware

import (
	"rental-app/internal/domain/locale"

	"github.com/gin-gonic/gin"
)

const ctxLocale = "locale"

// Locale parses the ?locale= parameter once; handlers read it with RequestLocale.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxLocale, locale.Parse(c.Query("locale"), locale.Default))
		c.Next()
	}
}

// RequestLocale falls back to parsing the query when the middleware is not mounted.
func RequestLocale(c *gin.Context) locale.Locale {
	if v, ok := c.Get(ctxLocale); ok {
		if l, ok := v.(locale.Locale); ok {
			return l
		}
	}
	return locale.Parse(c.Query("locale"), locale.Default)
}
