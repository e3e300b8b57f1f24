// Package validation checks request payloads with go-playground/validator
// and turns failures into the client-facing messages declared on the
// payload types.
//
// Each field carries its message in a `msg` tag:
//
//	Company string `json:"company" validate:"required" msg:"company is required"`
//
// Messages are reported in field declaration order and joined with "; ".
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/go-playground/validator/v10"
)

// MsgNoFields is reported for a patch payload that sets nothing.
const MsgNoFields = "At least one field is required"

// Patch is implemented by partial-update payloads.
type Patch interface {
	Empty() bool
}

// Error lists every failed rule of one payload.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *Error) Is(target error) bool {
	return target == common.ErrorValidation
}

// NewError builds an Error from ready messages.
func NewError(messages ...string) *Error {
	return &Error{Messages: messages}
}

type Validator struct {
	v *validator.Validate
}

var (
	defaultOnce sync.Once
	defaultV    *Validator
)

// Default returns a process-wide Validator; validator.Validate caches
// struct metadata so sharing one instance is the intended use.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultV = New()
	})
	return defaultV
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// isodate is a calendar date in YYYY-MM-DD form
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})

	return &Validator{v: v}
}

// Struct validates s, which must be a struct or a pointer to one. The
// returned error is an *Error for rule failures.
func (v *Validator) Struct(s any) error {
	if p, ok := s.(Patch); ok && p.Empty() {
		return NewError(MsgNoFields)
	}

	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	res := &Error{}
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		msg := message(t, fe)
		if seen[msg] {
			continue
		}
		seen[msg] = true
		res.Messages = append(res.Messages, msg)
	}
	return res
}

func message(t reflect.Type, fe validator.FieldError) string {
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if msg := f.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
