package element

import (
	"encoding/json"
	"strings"

	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

const (
	// FlagPrefix marks attributes that set element flags instead of props.
	FlagPrefix = "w:"

	// FlagsProp is the reserved prop holding the element flags.
	FlagsProp = "flags"

	// RootProp is the prop holding the *Element a component renders in.
	RootProp = "__wc_root_el__"
)

// Well-known flags.
const (
	FlagProtected      = "protected"
	FlagIgnoreChildren = "ignoreChildren"
)

// Attr is a host attribute.
type Attr struct {
	Name  string
	Value string
}

// EntryKind says where a coerced attribute is stored.
type EntryKind uint8

const (
	EntryProp EntryKind = iota
	EntryFlag
)

// Entry is a coerced attribute.
type Entry struct {
	Kind  EntryKind
	Name  string
	Value any
}

// Flags holds element flags set through FlagPrefix attributes.
type Flags map[string]any

// Bool reports whether the flag is set to a truthy value.
func (f Flags) Bool(name string) bool {
	switch v := f[name].(type) {
	case bool:
		return v
	case string:
		return v != ""
	case nil:
		return false
	default:
		return true
	}
}

// Clone returns a shallow copy of f.
func (f Flags) Clone() Flags {
	out := make(Flags, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Coerce converts an attribute into a prop or flag entry.
//
// Precedence: the reserved name "flags" fails; a FlagPrefix name becomes a
// flag; an empty value becomes true; a JSON value is parsed; anything else
// stays a string. Names are camel-cased. Flag values are never parsed.
func Coerce(name, raw string) (Entry, error) {
	if name == FlagsProp {
		return Entry{}, &ReservedNameError{Name: name}
	}

	if rest, ok := strings.CutPrefix(name, FlagPrefix); ok {
		return Entry{Kind: EntryFlag, Name: DashToCamel(rest), Value: implicitBool(raw)}, nil
	}

	e := Entry{Kind: EntryProp, Name: DashToCamel(name)}
	if raw == "" {
		e.Value = true
		return e, nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		e.Value = v
		return e, nil
	}
	e.Value = raw
	return e, nil
}

func implicitBool(raw string) any {
	if raw == "" {
		return true
	}
	return raw
}

// SplitProps separates the flags and the root element from component props.
// The returned props are a copy.
func SplitProps(props vdom.Props) (vdom.Props, Flags, *Element) {
	rest := props.Without(FlagsProp, RootProp)

	flags, _ := props[FlagsProp].(Flags)
	if flags == nil {
		flags = Flags{}
	}
	root, _ := props[RootProp].(*Element)
	return rest, flags, root
}
