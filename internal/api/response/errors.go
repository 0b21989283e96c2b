package response

import (
	"errors"
	"net/http"
	"strings"

	"rental-app/internal/apperr"
	"rental-app/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgUnexpected       = "An unexpected error occurred. Please try again later."
	msgDuplicateKey     = "Resource with this identifier already exists"
	msgForeignKey       = "Referenced resource does not exist"
	msgNotNull          = "Required field cannot be empty"
	msgIntegrity        = "Data integrity violation"
	msgValidationFailed = "Validation failed"
)

// Fail maps a service error to its HTTP status and writes the error envelope.
// Internal details of untyped errors are logged, never returned.
func Fail(c *gin.Context, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		logger.FromGin(c).Error("Request failed", zap.Error(err))
	} else {
		logger.FromGin(c).Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, body)
}

func classify(err error) (int, Envelope) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return statusOf(ae.Kind), Envelope{Success: false, Message: ae.Message, Errors: ae.Fields}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, Envelope{Message: "Resource not found"}
	}

	if msg, ok := integrityMessage(err); ok {
		return http.StatusConflict, Envelope{Message: msg}
	}

	return http.StatusInternalServerError, Envelope{Message: msgUnexpected}
}

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindDuplicate:
		return http.StatusConflict
	case apperr.KindValidation, apperr.KindInvalidOperation, apperr.KindFileUpload:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// integrityMessage infers a human message from a store constraint failure.
func integrityMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return msgDuplicateKey, true
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return msgForeignKey, true
	}

	m := strings.ToLower(err.Error())
	switch {
	case strings.Contains(m, "duplicate key"), strings.Contains(m, "unique constraint"):
		return msgDuplicateKey, true
	case strings.Contains(m, "foreign key"):
		return msgForeignKey, true
	case strings.Contains(m, "not-null"), strings.Contains(m, "not null constraint"):
		return msgNotNull, true
	case strings.Contains(m, "violates") && strings.Contains(m, "constraint"):
		return msgIntegrity, true
	}
	return "", false
}

// BindError turns a gin binding failure into a Validation error with a field map.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[jsonField(fe.Field())] = fieldMessage(fe)
		}
		return apperr.Validation(msgValidationFailed, fields)
	}
	return apperr.Validation("Malformed request body", nil)
}

func jsonField(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "is invalid"
}
