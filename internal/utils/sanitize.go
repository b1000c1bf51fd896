package utils

import (
	"html"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// NoMarkupTag rejects text that carries HTML tags.
const NoMarkupTag = "nomarkup"

var strictPolicy = bluemonday.StrictPolicy()

// HasMarkup reports whether the strict policy would change s. Entities the
// policy escapes are turned back into plain characters first, so text like
// "Kid's & teen" is not markup.
func HasMarkup(s string) bool {
	return html.UnescapeString(strictPolicy.Sanitize(s)) != s
}

// NewValidator returns a validator with the storefront's custom tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()

	// only fails on an invalid tag name
	_ = v.RegisterValidation(NoMarkupTag, func(fl validator.FieldLevel) bool {
		return !HasMarkup(fl.Field().String())
	})

	return v
}
