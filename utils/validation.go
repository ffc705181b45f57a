package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// BindingErrors translates a gin binding failure into the per-field messages
// of an endpoint's rule set. Every violated rule is reported, not just the
// first; messages is keyed by struct field name. A failure that is not a
// field-level violation (malformed JSON, wrong types) maps to fallback.
func BindingErrors(err error, messages map[string]string, fallback string) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Msg: fallback}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := messages[fe.Field()]; ok {
			out = append(out, FieldError{Msg: msg})
		} else {
			out = append(out, FieldError{Msg: fallback})
		}
	}
	return out
}
