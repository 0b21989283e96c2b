package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"rental-app/internal/api/response"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeAndCleanInputMiddleware strips markup from every string of a JSON body,
// nested objects and arrays included. Non-JSON bodies pass untouched.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		if !strings.HasPrefix(c.ContentType(), "application/json") {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Abort(c, http.StatusBadRequest, "Invalid body")
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		newBody, err := sanitizeJSON(policy, buf)
		if err != nil {
			response.Abort(c, http.StatusBadRequest, "Malformed JSON")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

// sanitizeJSON decodes buf, sanitizes every string in it and encodes it again.
func sanitizeJSON(p *bluemonday.Policy, buf []byte) ([]byte, error) {
	var body any
	if err := json.Unmarshal(buf, &body); err != nil {
		return nil, err
	}
	return json.Marshal(sanitizeValue(p, body))
}

func sanitizeValue(p *bluemonday.Policy, v any) any {
	switch t := v.(type) {
	case string:
		return p.Sanitize(t)
	case map[string]any:
		for k, inner := range t {
			t[k] = sanitizeValue(p, inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = sanitizeValue(p, inner)
		}
		return t
	}
	return v
}
