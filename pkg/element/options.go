package element

import "fmt"

// Shadow DOM modes.
const (
	ShadowOpen   = "open"
	ShadowClosed = "closed"
)

// Options configures how an element renders its component.
type Options struct {
	// AllowScripts keeps <script> nodes when converting the original
	// markup.
	AllowScripts bool

	// UseShadow attaches a shadow root of this mode. Empty renders into the
	// element itself.
	UseShadow string
}

// Validate checks the shadow mode.
func (o Options) Validate() error {
	switch o.UseShadow {
	case "", ShadowOpen, ShadowClosed:
		return nil
	}
	return fmt.Errorf("element: shadow mode %q: %w", o.UseShadow, ErrInvalidShadowMode)
}
