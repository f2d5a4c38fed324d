package middleware

import (
	"errors"
	"net/http"
	"strings"

	"unionhub/internal/pkg/apperrors"
	"unionhub/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Code    apperrors.Code    `json:"code"`
	Errors  map[string]string `json:"errors,omitempty"`
}

var statusByCode = map[apperrors.Code]int{
	apperrors.CodeNotFound:         http.StatusNotFound,
	apperrors.CodePermissionDenied: http.StatusForbidden,
	apperrors.CodeValidationFailed: http.StatusBadRequest,
	apperrors.CodeUnauthenticated:  http.StatusUnauthorized,
	apperrors.CodeInternal:         http.StatusInternalServerError,
}

// StatusOf maps an error code to its HTTP status.
func StatusOf(code apperrors.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError renders err with the status of its code. Errors that are not
// AppErrors are treated as internal and logged; their text is not exposed.
func WriteError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("Internal server error", err)
	}

	status := StatusOf(appErr.Code)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("request failed")
	}

	message := appErr.Message
	if appErr.Code == apperrors.CodeInternal {
		message = "Internal server error"
	}
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    appErr.Code,
		Errors:  appErr.Details,
	})
}

// BindingError converts a ShouldBind error into a VALIDATION_FAILED AppError
// with one message per offending field.
func BindingError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation("", "Invalid request body: "+err.Error())
	}
	out := apperrors.New(apperrors.CodeValidationFailed, "validation failed")
	for _, fe := range verrs {
		out.WithField(jsonFieldName(fe), fieldMessage(fe))
	}
	return out
}

func jsonFieldName(fe validator.FieldError) string {
	// gin registers no tag name func, so Field() is the Go name
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "min":
		return "Ensure this value is at least " + fe.Param() + "."
	case "oneof":
		return "Must be one of: " + fe.Param() + "."
	default:
		return "Invalid value."
	}
}
