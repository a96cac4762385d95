package element_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcomp-dev/webcomp/pkg/element"
	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name  string
		attr  string
		raw   string
		kind  element.EntryKind
		key   string
		value any
	}{
		{"number", "data-count", "5", element.EntryProp, "dataCount", float64(5)},
		{"empty", "disabled", "", element.EntryProp, "disabled", true},
		{"bool json", "open", "false", element.EntryProp, "open", false},
		{"object", "config", `{"a":1}`, element.EntryProp, "config", map[string]any{"a": float64(1)}},
		{"array", "items", `[1,"two"]`, element.EntryProp, "items", []any{float64(1), "two"}},
		{"null", "value", "null", element.EntryProp, "value", nil},
		{"plain string", "label", "hello world", element.EntryProp, "label", "hello world"},
		{"flag", "w:protected", "", element.EntryFlag, "protected", true},
		{"dashed flag", "w:ignore-children", "", element.EntryFlag, "ignoreChildren", true},
		{"flag value stays raw", "w:theme", "42", element.EntryFlag, "theme", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := element.Coerce(tt.attr, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.key, e.Name)
			assert.Equal(t, tt.value, e.Value)
		})
	}
}

func TestCoerceReservedName(t *testing.T) {
	_, err := element.Coerce("flags", `{"protected":true}`)

	var reserved *element.ReservedNameError
	require.ErrorAs(t, err, &reserved)
	assert.Equal(t, "flags", reserved.Name)
	assert.Equal(t, "W020", reserved.Code())
}

func TestFlagsBool(t *testing.T) {
	f := element.Flags{"on": true, "off": false, "text": "x", "blank": "", "num": 0.0}

	assert.True(t, f.Bool("on"))
	assert.False(t, f.Bool("off"))
	assert.True(t, f.Bool("text"))
	assert.False(t, f.Bool("blank"))
	assert.True(t, f.Bool("num"))
	assert.False(t, f.Bool("missing"))
}

func TestSplitProps(t *testing.T) {
	el := &element.Element{}
	props := vdom.Props{
		"count":           1,
		element.FlagsProp: element.Flags{"protected": true},
		element.RootProp:  el,
	}

	rest, flags, root := element.SplitProps(props)
	assert.Equal(t, vdom.Props{"count": 1}, rest)
	assert.True(t, flags.Bool("protected"))
	assert.Same(t, el, root)
	assert.Contains(t, props, element.FlagsProp, "input must not be modified")

	rest, flags, root = element.SplitProps(vdom.Props{"a": "b"})
	assert.Equal(t, vdom.Props{"a": "b"}, rest)
	assert.NotNil(t, flags)
	assert.Empty(t, flags)
	assert.Nil(t, root)
}

func TestDashToCamel(t *testing.T) {
	tests := map[string]string{
		"data-count":   "dataCount",
		"Data-Count":   "dataCount",
		"aria-label":   "ariaLabel",
		"plain":        "plain",
		"Plain":        "Plain",
		"x-1":          "x-1",
		"one-two-tree": "oneTwoTree",
	}
	for in, want := range tests {
		assert.Equal(t, want, element.DashToCamel(in), in)
	}
}

func TestCamelToDash(t *testing.T) {
	tests := map[string]string{
		"myCounter": "my-counter",
		"MyCounter": "-my-counter",
		"plain":     "plain",
		"aBC":       "a-b-c",
	}
	for in, want := range tests {
		assert.Equal(t, want, element.CamelToDash(in), in)
	}
}

func TestIsValidJSON(t *testing.T) {
	assert.True(t, element.IsValidJSON(`{"a":1}`))
	assert.True(t, element.IsValidJSON(`12`))
	assert.True(t, element.IsValidJSON(`"s"`))
	assert.False(t, element.IsValidJSON(`hello`))
	assert.False(t, element.IsValidJSON(``))
	assert.False(t, element.IsValidJSON(`{"a":`))
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, "W040", (&element.TagError{Tag: "x", Err: element.ErrInvalidTagName}).Code())
	assert.Equal(t, "W041", (&element.TagError{Tag: "x-y", Err: element.ErrAlreadyDefined}).Code())
	assert.Equal(t, "W021", (&element.ProtectedMutationError{Attributes: []string{"a"}}).Code())

	err := &element.TagError{Tag: "x", Err: element.ErrInvalidTagName}
	assert.True(t, errors.Is(err, element.ErrInvalidTagName))
	assert.Contains(t, err.Error(), `"x"`)
}
