package routepath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndExec(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    map[string]string
		match   bool
	}{
		{"static", "/about", "/about", map[string]string{}, true},
		{"static trailing slash", "/about", "/about/", map[string]string{}, true},
		{"static case insensitive", "/about", "/ABOUT", map[string]string{}, true},
		{"static mismatch", "/about", "/contact", nil, false},
		{"root", "/", "", map[string]string{}, true},
		{"root slash", "/", "/", map[string]string{}, true},
		{"param", "/user/:id", "/user/42", map[string]string{"id": "42"}, true},
		{"param one segment", "/user/:id", "/user/42/edit", nil, false},
		{"two params", "/blog/:year/:slug", "/blog/2024/hello", map[string]string{"year": "2024", "slug": "hello"}, true},
		{"param decoded", "/user/:name", "/user/jane%20doe", map[string]string{"name": "jane doe"}, true},
		{"param bad escape kept", "/user/:name", "/user/100%", map[string]string{"name": "100%"}, true},
		{"custom expression", `/item/:id(\d+)`, "/item/7", map[string]string{"id": "7"}, true},
		{"custom expression mismatch", `/item/:id(\d+)`, "/item/abc", nil, false},
		{"unnamed group", "/file/(.*)", "/file/a/b.txt", map[string]string{"0": "a/b.txt"}, true},
		{"wildcard suffix", "/static/*", "/static/css/app.css", map[string]string{"0": "css/app.css"}, true},
		{"query hint stripped", "/search?q", "/search", map[string]string{}, true},
		{"escaped colon", `/a\:b`, "/a:b", map[string]string{}, true},
		{"literal dot", "/file.json", "/filexjson", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			require.NoError(t, err)

			assert.Equal(t, tt.match, p.Test(tt.path))

			params, ok := p.Exec(tt.path)
			assert.Equal(t, tt.match, ok)
			assert.Equal(t, tt.want, params)
		})
	}
}

func TestCompileWildcard(t *testing.T) {
	p, err := Compile(Wildcard)
	require.NoError(t, err)

	for _, path := range []string{"", "/", "/anything/at/all", "no-slash"} {
		assert.True(t, p.Test(path), path)
		params, ok := p.Exec(path)
		assert.True(t, ok)
		assert.Empty(t, params)
	}
	assert.Empty(t, p.ParamNames())
}

func TestParamNamesOrder(t *testing.T) {
	p := MustCompile("/a/:first/(x|y)/:second/*")
	assert.Equal(t, []string{"first", "0", "second", "1"}, p.ParamNames())

	// The returned slice is a copy.
	names := p.ParamNames()
	names[0] = "changed"
	assert.Equal(t, "first", p.ParamNames()[0])
}

func TestExecKeysEqualParamNames(t *testing.T) {
	patterns := map[string]string{
		"/user/:id":               "/user/1",
		"/org/:org/repo/:repo":    "/org/acme/repo/web",
		`/v/:major(\d+)/:minor`:   "/v/1/2",
		"/mixed/:name/(a|b)/tail": "/mixed/x/b/tail",
	}
	for pattern, path := range patterns {
		p := MustCompile(pattern)
		params, ok := p.Exec(path)
		require.True(t, ok, pattern)

		keys := make([]string, 0, len(params))
		for _, name := range p.ParamNames() {
			_, present := params[name]
			assert.True(t, present, "%s missing %s", pattern, name)
			keys = append(keys, name)
		}
		assert.Len(t, params, len(keys))
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"no leading slash", "user/:id"},
		{"empty", ""},
		{"missing param name", "/user/:"},
		{"unbalanced close", "/user/a)"},
		{"unterminated group", "/user/(abc"},
		{"empty group", "/user/()"},
		{"nested capture", "/user/:id((a)b)"},
		{"duplicate param", "/a/:id/b/:id"},
		{"invalid expression", "/a/:id([)"},
		{"dangling escape", `/a\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			require.Error(t, err)
			assert.Nil(t, p)

			var perr *PatternError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.pattern, perr.Pattern)
			assert.Equal(t, "W010", perr.Code())
		})
	}
}

func TestQuestionMarkEndsCustomExpression(t *testing.T) {
	_, err := Compile("/doc/:kind((?:pdf|txt))")
	var perr *PatternError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "/doc/:kind((?:pdf|txt))", perr.Pattern)

	p, err := Compile("/doc/:kind(pdf|txt)")
	require.NoError(t, err)
	params, ok := p.Exec("/doc/txt")
	require.True(t, ok)
	assert.Equal(t, "txt", params["kind"])
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("nope") })
}

func TestSplitFragment(t *testing.T) {
	path, query := SplitFragment("/user/42?tab=info&x=1")
	assert.Equal(t, "/user/42", path)
	assert.Equal(t, "tab=info&x=1", query)

	path, query = SplitFragment("/plain")
	assert.Equal(t, "/plain", path)
	assert.Empty(t, query)
}

func TestTrimSlashes(t *testing.T) {
	assert.Equal(t, "/a", TrimSlashes("/a/"))
	assert.Equal(t, "/a/", TrimSlashes("/a//"))
	assert.Equal(t, "", TrimSlashes("/"))
	assert.Equal(t, "/a", TrimSlashes("/a"))
}
