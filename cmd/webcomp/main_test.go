package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestGolden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"match_params", []string{"match", "/users/:id", "/users/42?tab=posts&tags=a,b&debug"}},
		{"match_miss", []string{"match", "/users/:id", "/posts/1"}},
		{"attrs", []string{"attrs", "--tag", "my-counter",
			"data-count=5", "label=Clicks", "disabled", "w:protected", `config={"step":2}`}},
		{"version_short", []string{"version", "--short"}},
	}

	g := newGoldie(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := execute(t, tt.args...)
			require.Equal(t, 0, code, stderr)
			g.Assert(t, tt.name, []byte(stdout))
		})
	}
}

func TestMatchWildcard(t *testing.T) {
	c := &cli{}
	require.NoError(t, c.load(newRootCmd()))

	res, err := c.match("*", "/anything/at/all?x=1")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Empty(t, res.Params)
	assert.Equal(t, "/anything/at/all", res.Path)
	assert.Equal(t, "1", res.Query.Get("x"))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"invalid pattern", []string{"match", "users/:id", "/users/1"}, "W010"},
		{"missing argument", []string{"match", "/users/:id"}, "W060"},
		{"unknown command", []string{"build"}, "W060"},
		{"reserved attribute", []string{"attrs", "label=x", "flags=1"}, "W020"},
		{"invalid tag", []string{"attrs", "--tag", "counter", "x=1"}, "W040"},
		{"version ignores config", []string{"--log-level", "loud", "version"}, ""},
		{"bad log level for commands", []string{"--log-level", "loud", "attrs", "x=1"}, "W051"},
		{"missing config", []string{"--config", "does/not/exist", "attrs", "x=1"}, "W050"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := execute(t, tt.args...)
			if tt.code == "" {
				assert.Equal(t, 0, code, stderr)
				return
			}
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.code)
		})
	}
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "webcomp.json"),
		[]byte(`{"router": {"mode": "sideways"}}`), 0644))

	_, stderr, code := execute(t, "--config", dir, "attrs", "x=1")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "W051")
	assert.Contains(t, stderr, "router.mode")

	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("router:\n  mode: history\n  root: /app\n"), 0644))

	c := &cli{configPath: file}
	require.NoError(t, c.load(newRootCmd()))
	assert.Equal(t, "history", c.config.Router.Mode)

	res, err := c.match("/users/:id", "/users/7")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "7"}, res.Params)
}

func TestServe(t *testing.T) {
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html></html>"), 0644))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"serve", "--static", static, "--host", "127.0.0.1", "--port", "0", "--no-reload"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
	assert.Contains(t, out.String(), "serving "+static)
}

func TestServeMissingStatic(t *testing.T) {
	_, stderr, code := execute(t, "serve", "--static", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "W061")
}
