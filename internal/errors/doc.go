// Package errors turns webcomp errors into actionable terminal messages.
//
// The public packages return small typed errors (router.ConfigurationError,
// routepath.PatternError, element.ReservedNameError, ...) that expose a
// Code method. This package maps those codes to a registry of templates
// with an explanation, a fix hint and a documentation link.
//
// # Error Codes
//
//   - W001-W019: router configuration and route patterns
//   - W020-W029: attributes
//   - W030-W039: navigation
//   - W040-W049: element registration
//   - W050-W059: configuration
//   - W060-W069: command line
//
// # Usage
//
//	_, err := router.New().On("user/:id", handler, false)
//	errors.Print(os.Stderr, err, "W060")
//	// Output:
//	// ERROR W010: Invalid route pattern
//	//
//	//   routepath: invalid pattern "user/:id": pattern must start with "/" or be "*"
//	//
//	//   Route patterns must be "*" or start with "/" and use Express syntax: ...
//	//
//	//   Hint: Check parameter names and parentheses in the pattern.
//	//
//	//   Learn more: https://webcomp.dev/docs/errors/W010
package errors
