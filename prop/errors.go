package prop

import (
	"errors"
	"fmt"
)

var (
	ErrWiring      = errors.New("wiring error")
	ErrConsistency = errors.New("consistency violation")
	ErrArgType     = errors.New("argument type mismatch")
)

// WiringError reports a malformed call to one of the wiring operations.
type WiringError struct {
	Op     string
	Reason string
}

func (e *WiringError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *WiringError) Is(target error) bool { return target == ErrWiring }

func wiringErr(op, format string, args ...any) *WiringError {
	return &WiringError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// ConsistencyError means a dependency changed outside the tracked channel:
// the old value carried by a notification is not the one that was cached.
type ConsistencyError struct {
	Accessor string
	Cached   any
	Observed any
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("cached value %v for %q does not match reported old value %v", e.Cached, e.Accessor, e.Observed)
}

func (e *ConsistencyError) Is(target error) bool { return target == ErrConsistency }

type ArgTypeError struct {
	Name     string
	Expected string
	Got      any
}

func (e *ArgTypeError) Error() string {
	return fmt.Sprintf("argument %q: expected %s, got %T", e.Name, e.Expected, e.Got)
}

func (e *ArgTypeError) Is(target error) bool { return target == ErrArgType }
