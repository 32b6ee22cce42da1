// Package validation turns untrusted request input into normalized, typed values. Every function
// either returns the normalized value or an *apperror.Error of kind Validation that lists all
// violated field rules. No function touches the database.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gitlab.com/dirk.krummacker/contact-management/internal/apperror"
)

// Default and maximum page size of a contact search.
const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// validate is only used for single value rules like email syntax. It is safe for concurrent use.
var validate = validator.New()

// checker collects the violated rules of one input value.
type checker struct {
	fields []apperror.FieldError
}

func (c *checker) add(field string, format string, args ...any) {
	c.fields = append(c.fields, apperror.FieldError{
		Field:   field,
		Message: fmt.Sprintf(`"%s" `+format, append([]any{field}, args...)...),
	})
}

// required trims the value and checks that it is neither empty nor longer than max characters.
func (c *checker) required(field string, value string, max int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		c.add(field, "is required")
		return value
	}
	c.maxLength(field, value, max)
	return value
}

// optional trims the value and checks its length. A missing or empty value becomes nil.
func (c *checker) optional(field string, value *string, max int) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	c.maxLength(field, trimmed, max)
	return &trimmed
}

// present is like optional, but a value that has been sent must not be empty.
func (c *checker) present(field string, value *string, min int, max int) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		c.add(field, "is not allowed to be empty")
		return &trimmed
	}
	c.minLength(field, trimmed, min)
	c.maxLength(field, trimmed, max)
	return &trimmed
}

func (c *checker) minLength(field string, value string, min int) {
	if utf8.RuneCountInString(value) < min {
		c.add(field, "length must be at least %d characters long", min)
	}
}

func (c *checker) maxLength(field string, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		c.add(field, "length must be less than or equal to %d characters long", max)
	}
}

func (c *checker) email(field string, value *string) {
	if value == nil {
		return
	}
	if err := validate.Var(*value, "email"); err != nil {
		c.add(field, "must be a valid email")
	}
}

func (c *checker) positive(field string, value int64) {
	if value < 1 {
		c.add(field, "must be a positive number")
	}
}

// integer parses an optional integer query value. An empty value yields the default.
func (c *checker) integer(field string, raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.add(field, "must be a number")
		return def
	}
	return n
}

func (c *checker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return apperror.NewFieldValidation(c.fields)
}

// ID validates a resource id taken from the request path.
func ID(field string, raw string) (int64, error) {
	var c checker
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		c.add(field, "must be a number")
		return 0, c.err()
	}
	c.positive(field, id)
	return id, c.err()
}

// InvalidBody is returned when the request body cannot be decoded at all.
func InvalidBody() error {
	return apperror.NewValidation("request body is not valid JSON")
}

// InvalidQuery is returned when the URL parameters cannot be bound at all.
func InvalidQuery() error {
	return apperror.NewValidation("query parameters are not valid")
}

// PositiveID validates an id that has already been parsed.
func PositiveID(field string, id int64) error {
	var c checker
	c.positive(field, id)
	return c.err()
}
