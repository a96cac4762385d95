package element

import (
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// Definition is a registered custom element.
type Definition struct {
	Tag       string
	Component vdom.Component
	Options   Options
}

// Create builds a new element instance for host.
func (d *Definition) Create(host HostElement, renderer vdom.Renderer, opts ...ElementOption) (*Element, error) {
	return New(d.Tag, host, d.Component, renderer, d.Options, opts...)
}

// Registry is the host's custom element registry.
type Registry interface {
	Define(tag string, def *Definition) error
	Get(tag string) (*Definition, bool)
}

// MemoryRegistry is a Registry kept in process memory.
type MemoryRegistry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{defs: make(map[string]*Definition)}
}

// Define implements Registry.
func (r *MemoryRegistry) Define(tag string, def *Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[tag]; ok {
		return &TagError{Tag: tag, Err: ErrAlreadyDefined}
	}
	r.defs[tag] = def
	return nil
}

// Get implements Registry.
func (r *MemoryRegistry) Get(tag string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[tag]
	return def, ok
}

// Tags returns the defined tags in no particular order.
func (r *MemoryRegistry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.defs))
	for tag := range r.defs {
		out = append(out, tag)
	}
	return out
}

// Register defines comp as a custom element. An empty tag is derived from
// the component's type name, so MyCounter registers as "my-counter".
func Register(reg Registry, comp vdom.Component, tag string, opts Options) (*Definition, error) {
	if comp == nil {
		return nil, ErrNilComponent
	}
	if tag == "" {
		tag = TagFor(comp)
	}
	if err := ValidateTag(tag); err != nil {
		return nil, err
	}
	if _, ok := reg.Get(tag); ok {
		return nil, &TagError{Tag: tag, Err: ErrAlreadyDefined}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	def := &Definition{Tag: tag, Component: comp, Options: opts}
	if err := reg.Define(tag, def); err != nil {
		return nil, err
	}
	slog.Debug("custom element defined", "tag", tag)
	return def, nil
}

// ValidateTag checks the custom element naming rules.
func ValidateTag(tag string) error {
	if !strings.Contains(tag, "-") || strings.HasPrefix(tag, "-") {
		return &TagError{Tag: tag, Err: ErrInvalidTagName}
	}
	return nil
}

// TagFor derives a tag name from the type name of comp.
func TagFor(comp vdom.Component) string {
	t := reflect.TypeOf(comp)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.TrimPrefix(CamelToDash(t.Name()), "-")
}
