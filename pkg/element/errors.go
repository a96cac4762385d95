package element

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTagName is returned for tag names without a dash or with a
	// leading dash.
	ErrInvalidTagName = errors.New("custom element tag must contain \"-\" and must not start with it")

	// ErrAlreadyDefined is returned when a tag is registered twice.
	ErrAlreadyDefined = errors.New("custom element has already been defined")

	// ErrNilComponent is returned when registering without a component.
	ErrNilComponent = errors.New("a component is required to create an element")

	// ErrInvalidShadowMode is returned for shadow modes other than "open"
	// and "closed".
	ErrInvalidShadowMode = errors.New("shadow DOM mode must be \"open\" or \"closed\"")

	// ErrNotConnected is returned by operations that need a connected
	// element.
	ErrNotConnected = errors.New("element is not connected")
)

// ReservedNameError is returned for attributes named like a reserved prop.
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("element: attribute %q is reserved", e.Name)
}

// Code returns the webcomp error code.
func (e *ReservedNameError) Code() string { return "W020" }

// ProtectedMutationError is returned when attributes of a protected element
// change from the outside.
type ProtectedMutationError struct {
	Attributes []string
}

func (e *ProtectedMutationError) Error() string {
	return fmt.Sprintf("element: attempt to change attributes of a protected element (%s)",
		strings.Join(e.Attributes, ", "))
}

// Code returns the webcomp error code.
func (e *ProtectedMutationError) Code() string { return "W021" }

// TagError wraps ErrInvalidTagName or ErrAlreadyDefined with the offending
// tag.
type TagError struct {
	Tag string
	Err error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("element %q: %v", e.Tag, e.Err)
}

func (e *TagError) Unwrap() error { return e.Err }

// Code returns the webcomp error code.
func (e *TagError) Code() string {
	if errors.Is(e.Err, ErrAlreadyDefined) {
		return "W041"
	}
	return "W040"
}
