package element

import (
	"log/slog"
	"sync"
	"weak"

	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// Bridge keeps component props in sync with the attributes of a host
// element.
//
// Attributes become props or flags through Coerce. Batches are atomic: a
// batch with any invalid entry changes nothing. After a successful observed
// batch the props and flags are redelivered to the mounted instance.
type Bridge struct {
	mu    sync.Mutex
	props vdom.Props
	flags Flags
	ref   weak.Pointer[vdom.Instance]
	stop  func()

	logger  *slog.Logger
	onError func(error)
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithBridgeLogger sets the logger. Default: slog.Default().
func WithBridgeLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithErrorHandler sets the hook that receives errors from observed
// batches. Default: log at error level.
func WithErrorHandler(fn func(error)) BridgeOption {
	return func(b *Bridge) {
		b.onError = fn
	}
}

// NewBridge creates a bridge with empty props and flags.
func NewBridge(opts ...BridgeOption) *Bridge {
	b := &Bridge{
		props: vdom.Props{},
		flags: Flags{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.onError == nil {
		b.onError = func(err error) {
			b.logger.Error("attribute batch rejected", "error", err)
		}
	}
	return b
}

// Props returns a copy of the current props.
func (b *Bridge) Props() vdom.Props {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.props.Clone()
}

// Flags returns a copy of the current flags.
func (b *Bridge) Flags() Flags {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flags.Clone()
}

// ApplyAttributes coerces attrs and commits them as one update.
func (b *Bridge) ApplyAttributes(attrs []Attr) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applyLocked(attrs)
}

func (b *Bridge) applyLocked(attrs []Attr) error {
	props := b.props.Clone()
	flags := b.flags.Clone()
	for _, a := range attrs {
		e, err := Coerce(a.Name, a.Value)
		if err != nil {
			return err
		}
		if e.Kind == EntryFlag {
			flags[e.Name] = e.Value
		} else {
			props[e.Name] = e.Value
		}
	}
	b.props, b.flags = props, flags
	return nil
}

// Observe subscribes to attribute batches of el. A previous subscription
// is cancelled.
func (b *Bridge) Observe(el ObservableElement) {
	b.Disconnect()
	stop := el.ObserveAttributes(func(batch []MutationRecord) {
		if err := b.HandleMutations(el, batch); err != nil {
			b.onError(err)
		}
	})

	b.mu.Lock()
	b.stop = stop
	b.mu.Unlock()
}

// Disconnect stops observing. It is safe to call repeatedly.
func (b *Bridge) Disconnect() {
	b.mu.Lock()
	stop := b.stop
	b.stop = nil
	b.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Observing reports whether the bridge has an active subscription.
func (b *Bridge) Observing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stop != nil
}

// HandleMutations applies one batch of attribute changes, reading current
// values from el. Removed attributes read as empty. Protected elements
// reject every batch.
func (b *Bridge) HandleMutations(el AttributeReader, batch []MutationRecord) error {
	if len(batch) == 0 {
		return nil
	}

	attrs := make([]Attr, 0, len(batch))
	names := make([]string, 0, len(batch))
	for _, m := range batch {
		value, _ := el.Attribute(m.AttributeName)
		attrs = append(attrs, Attr{Name: m.AttributeName, Value: value})
		names = append(names, m.AttributeName)
	}

	b.mu.Lock()
	if b.flags.Bool(FlagProtected) {
		b.mu.Unlock()
		return &ProtectedMutationError{Attributes: names}
	}
	if err := b.applyLocked(attrs); err != nil {
		b.mu.Unlock()
		return err
	}
	next := b.props.Clone()
	next[FlagsProp] = b.flags.Clone()
	b.mu.Unlock()

	if inst := b.Mounted(); inst != nil {
		changed := RedeliverProps(inst, next)
		b.logger.Debug("attributes redelivered", "attributes", names, "changed", changed)
	}
	return nil
}

// Mount records inst as the mounted instance. The reference is weak: the
// bridge never keeps an instance alive.
func (b *Bridge) Mount(inst *vdom.Instance) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if inst == nil {
		b.ref = weak.Pointer[vdom.Instance]{}
		return
	}
	b.ref = weak.Make(inst)
}

// Mounted returns the mounted instance, or nil when none is mounted or it
// has been collected.
func (b *Bridge) Mounted() *vdom.Instance {
	b.mu.Lock()
	ref := b.ref
	b.mu.Unlock()
	return ref.Value()
}

// RedeliverProps merges props into the state of a mounted instance. Only
// changed keys trigger a re-render; the instance is never remounted. It
// returns the changed keys.
func RedeliverProps(ref *vdom.Instance, props vdom.Props) []string {
	if ref == nil {
		return nil
	}
	return ref.Update(props)
}
