package routepath

import "fmt"

// PatternError reports a route pattern that cannot be compiled.
type PatternError struct {
	Pattern string
	Reason  string
	Err     error
}

func (e *PatternError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("routepath: invalid pattern %q: %s: %v", e.Pattern, e.Reason, e.Err)
	}
	return fmt.Sprintf("routepath: invalid pattern %q: %s", e.Pattern, e.Reason)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Code returns the webcomp error code.
func (e *PatternError) Code() string { return "W010" }
