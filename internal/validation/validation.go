package validation

import (
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// Now is swapped in tests that need a fixed current year.
var Now = time.Now

var registerOnce sync.Once

// Register installs the custom rules on gin's validator engine. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(jsonTagName)
		_ = v.RegisterValidation("notfuture", notFutureYear)
		_ = v.RegisterValidation("password", strongPassword)
	})
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// notFutureYear rejects integer years after the current calendar year.
func notFutureYear(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() <= int64(Now().Year())
	}
	return false
}

func strongPassword(fl validator.FieldLevel) bool {
	return PasswordOK(fl.Field().String())
}

// PasswordOK requires at least 8 characters with a letter and a digit.
func PasswordOK(s string) bool {
	if len(s) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

func BindAndValidateJSON(c *gin.Context, dst any) bool {
	Register()

	if err := c.ShouldBindJSON(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			resp := formatValidationErrors(verrs)
			c.AbortWithStatusJSON(http.StatusBadRequest, resp)
			return false
		}

		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "invalid request body",
			Errors: []FieldError{
				{
					Field:   "",
					Rule:    "syntax",
					Message: err.Error(),
				},
			},
		})
		return false
	}

	return true
}

// FieldFailure builds a single-field validation response for checks that run
// after binding.
func FieldFailure(code, field, rule, message string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Errors: []FieldError{
			{Field: field, Rule: rule, Message: message},
		},
	}
}

func formatValidationErrors(verrs validator.ValidationErrors) ErrorResponse {
	fields := make([]FieldError, 0, len(verrs))

	for _, fe := range verrs {
		jsonField := toJSONFieldName(fe.Field())
		fields = append(fields, FieldError{
			Field:   jsonField,
			Rule:    fe.Tag(),
			Message: buildMessage(jsonField, fe),
		})
	}

	return ErrorResponse{
		Code:    "VALIDATION_FAILED",
		Message: "validation failed",
		Errors:  fields,
	}
}

func toJSONFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func buildMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notfuture":
		return field + " cannot be in the future"
	case "password":
		return field + " must be at least 8 characters and contain a letter and a digit"
	case "min", "max", "len":
		return field + " is invalid (" + fe.Tag() + "=" + fe.Param() + ")"
	case "email":
		return field + " must be a valid email address"
	}

	return field + " is invalid (" + fe.Tag() + ")"
}
