// Package validation centralizes input validation: struct-tag validation for
// option types and the property-name rules imposed by the binary file format.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance.
var validate = validator.New()

// Property names are embedded in the textual header as (name:dim) tokens, so
// the list delimiters are forbidden, as is surrounding whitespace.
var forbiddenNameChars = regexp.MustCompile(`[,:()]`)

// ErrInvalidPropertyName indicates a name the file format cannot represent.
var ErrInvalidPropertyName = errors.New("invalid property name")

// PropertyName checks that a name can round-trip through the header schema
// line: non-empty, no ',' ':' '(' ')', no leading or trailing whitespace.
func PropertyName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPropertyName)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidPropertyName, name)
	}
	if loc := forbiddenNameChars.FindString(name); loc != "" {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidPropertyName, name, loc)
	}
	return nil
}

// Struct validates v against its `validate` struct tags, rewriting
// validator's error into a single readable message.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q constraint", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}
	return err
}
