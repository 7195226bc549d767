// Package langtag normalizes BCP 47 language tags for the query pipeline
package langtag

import (
	"golang.org/x/text/language"

	perr "sahayak/internal/platform/errors"
)

// Default is assumed when a request carries no language tag
const Default = "en"

// Normalize parses raw and returns the canonical tag string.
// Empty input maps to Default, malformed input is a validation error
func Normalize(raw string) (string, error) {
	if raw == "" {
		return Default, nil
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", perr.Validationf("invalid language tag %q", raw)
	}
	return tag.String(), nil
}

// IsEnglish reports whether tag's base language is English.
// Non-English queries go through translation before embedding
func IsEnglish(tag string) bool {
	t, err := language.Parse(tag)
	if err != nil {
		return false
	}
	base, _ := t.Base()
	return base.String() == "en"
}

// Base returns the base language subtag, e.g. "hi" for "hi-IN"
func Base(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	base, _ := t.Base()
	return base.String()
}
