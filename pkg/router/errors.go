package router

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMode is returned for modes other than hash and history.
	ErrInvalidMode = errors.New("router mode must be \"hash\" or \"history\"")

	// ErrEmptyPath is returned when navigating to an empty path.
	ErrEmptyPath = errors.New("path must not be empty")

	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("route handler must not be nil")

	// ErrRouteComponentAndChild is returned by RouteView.Validate when both a
	// component and children are given.
	ErrRouteComponentAndChild = errors.New("route expects either a component or a child node, not both")

	// ErrRouteMultipleChildren is returned by RouteView.Validate for more than
	// one child.
	ErrRouteMultipleChildren = errors.New("route expects a single child node")
)

// ConfigurationError is returned when a write-once router field is set a
// second time.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("router: already configured for %s %q; configure it only once", e.Field, e.Value)
}

// Code returns the webcomp error code.
func (e *ConfigurationError) Code() string { return "W001" }

// HostContextError is returned when a browser-only operation runs without a
// host.
type HostContextError struct {
	Op string
}

func (e *HostContextError) Error() string {
	return fmt.Sprintf("router: %s is only available on the client side", e.Op)
}

// Code returns the webcomp error code.
func (e *HostContextError) Code() string { return "W030" }

// OperationUnsupportedError is returned for operations the active mode
// cannot perform.
type OperationUnsupportedError struct {
	Op   string
	Mode Mode
}

func (e *OperationUnsupportedError) Error() string {
	return fmt.Sprintf("router: %s is not possible in %s mode", e.Op, e.Mode)
}

// Code returns the webcomp error code.
func (e *OperationUnsupportedError) Code() string { return "W031" }
