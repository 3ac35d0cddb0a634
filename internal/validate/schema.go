// Package validate turns raw form field text into typed, checked values.
//
// A schema is declared as a struct: the `form` tag names the field, the
// `validate` tag lists go-playground/validator rules and the `msg` tag holds
// the message shown when any of those rules fails. Rules that span several
// fields or depend on the clock are added with Schema.With.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// FormField keys errors that do not belong to a single field.
const FormField = "_form"

// Errors maps a field name to a human-readable message.
type Errors map[string]string

// Add records msg for field unless the field already has an error.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Merge adds every error from other that e does not already hold.
func (e Errors) Merge(other Errors) {
	for f, m := range other {
		e.Add(f, m)
	}
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Rule checks a decoded value and reports per-field failures.
type Rule[T any] func(v T) Errors

// Schema validates field maps into values of type T.
type Schema[T any] struct {
	v        *validator.Validate
	fields   []string
	messages map[string]string
	rules    []Rule[T]
}

// New builds a schema from the struct tags of T. T must be a struct type.
func New[T any]() *Schema[T] {
	var zero T
	rt := reflect.TypeOf(zero)
	if rt == nil || rt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("validate: schema type %T is not a struct", zero))
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("phone", isPhone)

	s := &Schema[T]{v: v, messages: map[string]string{}}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name := fieldName(f)
		if name == "" {
			continue
		}
		s.fields = append(s.fields, name)
		if msg := f.Tag.Get("msg"); msg != "" {
			s.messages[name] = msg
		}
	}
	return s
}

// MinPhoneDigits is the fewest digits a phone number may have.
const MinPhoneDigits = 10

// isPhone accepts digits with optional spaces, dashes, dots, parentheses and
// a leading plus, holding at least MinPhoneDigits digits.
func isPhone(fl validator.FieldLevel) bool {
	digits := 0
	for i, r := range fl.Field().String() {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ', r == '-', r == '.', r == '(', r == ')':
		default:
			return false
		}
	}
	return digits >= MinPhoneDigits
}

func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// With appends rules that run after the struct tag checks.
func (s *Schema[T]) With(rules ...Rule[T]) *Schema[T] {
	s.rules = append(s.rules, rules...)
	return s
}

// Fields lists the form field names in declaration order.
func (s *Schema[T]) Fields() []string {
	return append([]string(nil), s.fields...)
}

// Validate decodes values into T and checks every rule. When any rule fails
// it returns the zero T and a non-empty Errors; each field reports only its
// first failure.
func (s *Schema[T]) Validate(values map[string]string) (T, Errors) {
	var out T
	errs := Errors{}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "form",
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		errs.Add(FormField, err.Error())
		return out, errs
	}
	if err := dec.Decode(values); err != nil {
		errs.Add(FormField, "Some fields could not be read: "+err.Error())
		var zero T
		return zero, errs
	}

	if err := s.v.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs.Add(FormField, err.Error())
		}
		for _, fe := range verrs {
			errs.Add(fe.Field(), s.message(fe))
		}
	}
	for _, rule := range s.rules {
		errs.Merge(rule(out))
	}

	if len(errs) > 0 {
		var zero T
		return zero, errs
	}
	return out, nil
}

func (s *Schema[T]) message(fe validator.FieldError) string {
	if msg, ok := s.messages[fe.Field()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "email":
		return "Please enter a valid email address"
	case "oneof":
		return "Please choose one of the listed options"
	case "numeric":
		return "Please enter a number"
	}
	return fmt.Sprintf("Failed %q check", fe.Tag())
}
