package evaluator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/funvibe/tessera/internal/typesystem"
)

// Error kinds. Every RuntimeError wraps exactly one of these, so callers
// can use errors.Is(err, ErrTypeMismatch) and friends.
var (
	ErrTypeMismatch            = errors.New("type mismatch")
	ErrUnboundName             = errors.New("unbound name")
	ErrImmutableAssignment     = errors.New("immutable assignment")
	ErrUnknownTypeclass        = errors.New("unknown typeclass")
	ErrInvalidCall             = errors.New("invalid call")
	ErrReferenceInThreadedCall = errors.New("reference passed to threaded call")
	ErrPoisonedLock            = errors.New("poisoned lock")
	ErrNonDuplicable           = errors.New("value cannot be duplicated")
	ErrInvalidReference        = errors.New("invalid reference")
	ErrInvalidInstance         = errors.New("invalid typeclass instance")
	ErrPoisonedPromise         = errors.New("poisoned promise")
)

// RuntimeError is the error returned by every failing core operation.
type RuntimeError struct {
	Kind     error  // One of the Err* sentinels above
	Name     string // Offending variable, function or class name
	Message  string
	Expected typesystem.Type // Set for type mismatches
	Actual   typesystem.Type
	Cause    error
}

func (e *RuntimeError) Error() string {
	var out strings.Builder
	out.WriteString(e.Kind.Error())
	if e.Name != "" {
		fmt.Fprintf(&out, " %q", e.Name)
	}
	if e.Message != "" {
		out.WriteString(": ")
		out.WriteString(e.Message)
	}
	switch {
	case e.Cause != nil:
		out.WriteString(": ")
		out.WriteString(e.Cause.Error())
	case e.Expected != nil || e.Actual != nil:
		fmt.Fprintf(&out, ": expected %s, got %s",
			typeName(e.Expected), typeName(e.Actual))
	}
	return out.String()
}

func (e *RuntimeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind error, name string, format string, a ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Name: name, Message: fmt.Sprintf(format, a...)}
}

// mismatch wraps the error of a failed typesystem.Check, keeping it as the
// cause and copying its types.
func mismatch(name string, err error, format string, a ...interface{}) *RuntimeError {
	rt := &RuntimeError{
		Kind:    ErrTypeMismatch,
		Name:    name,
		Message: fmt.Sprintf(format, a...),
		Cause:   err,
	}
	var me *typesystem.MismatchError
	if errors.As(err, &me) {
		rt.Expected = typesystem.OrAny(me.Expected)
		rt.Actual = typesystem.OrAny(me.Actual)
	}
	return rt
}

// withName fills in the offending name if the error is a RuntimeError without one.
func withName(err error, name string) error {
	var rt *RuntimeError
	if errors.As(err, &rt) && rt.Name == "" {
		cp := *rt
		cp.Name = name
		return &cp
	}
	return err
}

func typeName(t typesystem.Type) string {
	return typesystem.OrAny(t).String()
}
