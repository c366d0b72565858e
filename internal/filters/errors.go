package filters

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is matched by every TypeMismatchError via errors.Is
var ErrTypeMismatch = errors.New("type mismatch")

// TypeMismatchError reports a filter argument, or a value inside it, that
// has no size.
type TypeMismatchError struct {
	Filter string
	Key    any  // offending key, when the problem is a mapping value
	HasKey bool // false when the argument itself is not a mapping
	Value  any
}

func (e *TypeMismatchError) Error() string {
	if !e.HasKey {
		return fmt.Sprintf("%s: %v: expected a mapping, got %T", e.Filter, ErrTypeMismatch, e.Value)
	}
	return fmt.Sprintf("%s: %v: value for key %q has no size (%T)", e.Filter, ErrTypeMismatch, fmt.Sprint(e.Key), e.Value)
}

// Is reports whether target is ErrTypeMismatch
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
