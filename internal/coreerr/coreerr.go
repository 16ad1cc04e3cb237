// Package coreerr defines the closed error taxonomy of the animation core
// (spec §7): every fallible operation in the core returns one of these five
// kinds, wrapped with enough context to log and to compare with errors.Is.
package coreerr

import (
	"errors"
	"fmt"
)

// Kind identifies which of the five error categories a CoreError belongs to.
type Kind int

const (
	// Storage covers backend I/O failures: constraint violations,
	// corruption, connection loss.
	Storage Kind = iota
	// Serialization covers a malformed element/edit blob. The affected
	// object is treated as NotFound; the edit is still applied best-effort.
	Serialization
	// MissingElement covers a reference to an element absent from the
	// current keyframe; the referring edit is dropped with a warning.
	MissingElement
	// GeometricDegeneracy covers a path fit/offset/cut that produced an
	// empty or NaN result; the operation returns no updates.
	GeometricDegeneracy
	// Protocol covers an invariant violation in the binding graph or
	// render stream — a programmer error, fatal.
	Protocol
)

func (k Kind) String() string {
	switch k {
	case Storage:
		return "storage"
	case Serialization:
		return "serialization"
	case MissingElement:
		return "missing_element"
	case GeometricDegeneracy:
		return "geometric_degeneracy"
	case Protocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// CoreError wraps an underlying cause with a Kind and a message, the shape
// every core package returns from fallible operations.
type CoreError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *CoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error { return e.Cause }

// Is reports whether target is a *CoreError with the same Kind, so callers
// can write errors.Is(err, coreerr.New(coreerr.Storage, "", nil)) — or more
// idiomatically, use the Is* helpers below.
func (e *CoreError) Is(target error) bool {
	var other *CoreError
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// New constructs a CoreError of the given kind.
func New(kind Kind, message string, cause error) *CoreError {
	return &CoreError{Kind: kind, Message: message, Cause: cause}
}

// Wrap is shorthand for New(kind, message, cause) used at call sites that
// already have an error to attach.
func Wrap(kind Kind, cause error, format string, args ...any) *CoreError {
	return &CoreError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func sentinel(kind Kind) *CoreError { return &CoreError{Kind: kind} }

// IsStorage, IsSerialization, IsMissingElement, IsGeometricDegeneracy and
// IsProtocol report whether err is (or wraps) a CoreError of that kind.
func IsStorage(err error) bool             { return errors.Is(err, sentinel(Storage)) }
func IsSerialization(err error) bool       { return errors.Is(err, sentinel(Serialization)) }
func IsMissingElement(err error) bool      { return errors.Is(err, sentinel(MissingElement)) }
func IsGeometricDegeneracy(err error) bool { return errors.Is(err, sentinel(GeometricDegeneracy)) }
func IsProtocol(err error) bool            { return errors.Is(err, sentinel(Protocol)) }
