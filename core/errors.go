package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Op       string
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d argument(s), got %d", e.Op, e.Expected, e.Got)
}

// TypeError reports an argument of the wrong kind.
type TypeError struct {
	Op   string
	Want string
	Got  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Want, e.Got)
}

// BoundsError reports a tuple/array index out of range.
type BoundsError struct {
	Op    string
	Index int
	Len   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: index %d out of range for length %d", e.Op, e.Index, e.Len)
}

// UndefinedError reports reading an uninitialized box or array slot.
type UndefinedError struct {
	Op string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("%s: value is undefined", e.Op)
}

// FieldError reports getfield/setfield on a non-struct or an unknown field.
type FieldError struct {
	Type  string
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("type %s has no field %q", e.Type, e.Field)
}

// ConversionError reports that convert could not produce a value of the
// target type.
type ConversionError struct {
	From string
	To   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
}

// PromotionError reports that no common embedding type exists.
type PromotionError struct {
	Types []string
}

func (e *PromotionError) Error() string {
	return fmt.Sprintf("no common type for %v", e.Types)
}

// SubtypingError reports an invalid supertype in a user type declaration.
type SubtypingError struct {
	Type  string
	Super string
	Why   string
}

func (e *SubtypingError) Error() string {
	return fmt.Sprintf("invalid supertype %s for %s: %s", e.Super, e.Type, e.Why)
}

// StateError reports an operation performed on a type or value in the wrong
// lifecycle state, e.g. new_struct_fields called twice.
type StateError struct {
	Op  string
	Why string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Why)
}

// NoMethodError reports that no registered method matches the argument
// types of a generic-function application.
type NoMethodError struct {
	Func string
	Args string
}

func (e *NoMethodError) Error() string {
	return fmt.Sprintf("no method %s matching argument types %s", e.Func, e.Args)
}

// AmbiguityError reports that dispatch could not find a unique most
// specific method.
type AmbiguityError struct {
	Func string
	Args string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous call to %s with argument types %s", e.Func, e.Args)
}

// AssertionError reports that typeassert's istype check failed.
type AssertionError struct {
	Value string
	Want  string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("typeassert: %s is not a %s", e.Value, e.Want)
}

// UserError carries a string payload. Context.Protect raises it for a panic
// recovered from its callback; no error() builtin is bound by Bootstrap.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// wrap attaches a stack trace to err via github.com/pkg/errors so that a
// caller handling the error can report where a failure originated without
// re-deriving it.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(err)
}
