// Package validation wraps go-playground/validator with a shared instance
// and an error type that the HTTP layer can render directly.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Error returns the human-readable message.
func (e FieldError) Error() string { return e.Message }

// RequestValidationError collects every failed rule of one struct.
type RequestValidationError struct {
	Fields []FieldError
}

// Error joins all field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates s and returns nil or a *RequestValidationError.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestValidationError{Fields: []FieldError{{Message: err.Error()}}}
	}
	out := &RequestValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Namespace(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}

// SearchRequest is a search query as it arrives at the presentation
// boundary, before it is decoded and handed to the matcher.
type SearchRequest struct {
	Query  string `validate:"required"`
	Mode   string `validate:"omitempty,oneof=subset superset"`
	Fridge string `validate:"omitempty,max=150"`
}

// ValidateSearch validates req and additionally bounds the query length.
func ValidateSearch(req SearchRequest, maxQueryLength int) *RequestValidationError {
	if verr := ValidateStruct(&req); verr != nil {
		return verr
	}
	if maxQueryLength > 0 {
		if err := GetValidator().Var(req.Query, fmt.Sprintf("max=%d", maxQueryLength)); err != nil {
			return &RequestValidationError{Fields: []FieldError{{
				Field:   "SearchRequest.Query",
				Tag:     "max",
				Param:   fmt.Sprint(maxQueryLength),
				Message: fmt.Sprintf("Query must be at most %d characters", maxQueryLength),
			}}}
		}
	}
	return nil
}
