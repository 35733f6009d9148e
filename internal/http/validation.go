package http

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func init() {
	// Report failed fields under their json names rather than the Go
	// struct field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindAndValidateJSON binds the JSON request body into dst and rejects the
// request with a 400 on malformed JSON or failed binding rules.
// Returns false when the request was rejected.
func bindAndValidateJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation failed",
				Code:    "validation_error",
				Details: formatValidationErrors(verrs),
			})
			return false
		}

		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
			Code:  "invalid_json",
		})
		return false
	}
	return true
}

func formatValidationErrors(verrs validator.ValidationErrors) []FieldError {
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		jsonField := toJSONFieldName(fe.Field())
		fields = append(fields, FieldError{
			Field:   jsonField,
			Rule:    fe.Tag(),
			Message: buildMessage(jsonField, fe),
		})
	}
	return fields
}

// toJSONFieldName lowercases the first rune of a field name. With the tag
// name func registered this is a no-op for tagged fields and a fallback
// for untagged ones.
func toJSONFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func buildMessage(field string, fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return field + " is required"
	}
	return field + " is invalid (" + fe.Tag() + ")"
}
