package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/webcomp-dev/webcomp/internal/errors"
	"github.com/webcomp-dev/webcomp/pkg/element"
	"github.com/webcomp-dev/webcomp/pkg/router"
)

// Config file names, in lookup order.
const (
	ConfigFileName = "webcomp.json"
	YAMLFileName   = "webcomp.yaml"
	YMLFileName    = "webcomp.yml"
)

// Default values.
const (
	DefaultPort      = 3000
	DefaultHost      = "localhost"
	DefaultStaticDir = "public"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// fileNames lists the config files Load looks for.
var fileNames = []string{ConfigFileName, YAMLFileName, YMLFileName}

// Config is the project configuration.
type Config struct {
	// Name is the project name shown by the CLI.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Router  RouterConfig  `json:"router" yaml:"router"`
	Element ElementConfig `json:"element" yaml:"element"`
	Dev     DevConfig     `json:"dev" yaml:"dev"`
	Log     LogConfig     `json:"log" yaml:"log"`

	configPath string
}

// RouterConfig seeds the router.
type RouterConfig struct {
	// Mode is "hash" or "history".
	Mode string `json:"mode" yaml:"mode"`

	// Root is the base path stripped in history mode.
	Root string `json:"root" yaml:"root"`

	// SkipInitial suppresses the dispatch of the location at startup.
	SkipInitial bool `json:"skipInitial,omitempty" yaml:"skipInitial,omitempty"`
}

// ElementConfig holds the default element options.
type ElementConfig struct {
	AllowScripts bool   `json:"allowScripts,omitempty" yaml:"allowScripts,omitempty"`
	UseShadow    string `json:"useShadow,omitempty" yaml:"useShadow,omitempty"`
}

// Options returns the element options.
func (e ElementConfig) Options() element.Options {
	return element.Options{AllowScripts: e.AllowScripts, UseShadow: e.UseShadow}
}

// DevConfig configures the development server.
type DevConfig struct {
	Port int    `json:"port" yaml:"port"`
	Host string `json:"host" yaml:"host"`

	// Static is the directory served by the dev server.
	Static string `json:"static" yaml:"static"`

	// Watch lists directories polled for changes. Defaults to Static.
	Watch []string `json:"watch,omitempty" yaml:"watch,omitempty"`

	HotReload bool `json:"hotReload" yaml:"hotReload"`
	Metrics   bool `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Open opens the browser when the server starts.
	Open bool `json:"open,omitempty" yaml:"open,omitempty"`
}

// LogConfig configures the slog handler built by Logger.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format"`
}

// New returns a configuration with default values.
func New() *Config {
	return &Config{
		Router: RouterConfig{
			Mode: string(router.ModeHash),
			Root: router.DefaultRoot,
		},
		Dev: DevConfig{
			Port:      DefaultPort,
			Host:      DefaultHost,
			Static:    DefaultStaticDir,
			HotReload: true,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads the first config file found in dir. Without one it returns
// the defaults.
func Load(dir string) (*Config, error) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from path. The format follows the file
// extension: .yaml and .yml are YAML, anything else is JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("W050").
			WithDetail("Could not read " + path).
			Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, parseError(path, yamlLine(err), err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, parseError(path, jsonLine(data, err), err)
		}
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

func parseError(path string, line int, err error) *errors.Error {
	e := errors.New("W050").
		WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
		WithSuggestion("Check the syntax of " + filepath.Base(path))
	if line > 0 {
		e = e.WithLocation(path, line, 1)
	}
	return e
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// yamlLine extracts the first line number from a yaml.v3 error message.
func yamlLine(err error) int {
	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// jsonLine converts the byte offset of a JSON error into a line number.
func jsonLine(data []byte, err error) int {
	var offset int64
	switch e := err.(type) {
	case *json.SyntaxError:
		offset = e.Offset
	case *json.UnmarshalTypeError:
		offset = e.Offset
	default:
		return 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return strings.Count(string(data[:offset]), "\n") + 1
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path, as YAML when the extension says
// so and as indented JSON otherwise.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("W050").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("W050").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Router.Mode == "" {
		c.Router.Mode = string(router.ModeHash)
	}
	if c.Router.Root == "" {
		c.Router.Root = router.DefaultRoot
	}

	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.Static == "" {
		c.Dev.Static = DefaultStaticDir
	}
	if len(c.Dev.Watch) == 0 {
		c.Dev.Watch = []string{c.Dev.Static}
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !router.Mode(c.Router.Mode).Valid() {
		return invalid("router.mode", c.Router.Mode, `Use "hash" or "history"`)
	}
	if !strings.HasPrefix(c.Router.Root, "/") {
		return invalid("router.root", c.Router.Root, `The root must start with "/"`)
	}
	if err := c.Element.Options().Validate(); err != nil {
		return invalid("element.useShadow", c.Element.UseShadow, `Use "open", "closed" or leave it empty`).Wrap(err)
	}
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return invalid("dev.port", strconv.Itoa(c.Dev.Port), "Port must be between 0 and 65535")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level, "Use debug, info, warn or error").Wrap(err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format", c.Log.Format, `Use "text" or "json"`)
	}
	return nil
}

func invalid(field, value, suggestion string) *errors.Error {
	return errors.New("W051").
		WithDetail(field + ": unexpected value " + strconv.Quote(value)).
		WithSuggestion(suggestion)
}

// ParseLevel parses a slog level name.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(name))
	return level, err
}

// Logger builds a slog logger writing to w with the configured level and
// format. An invalid level falls back to info.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if c.Log.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// RouterOptions returns the router options described by the configuration.
func (c *Config) RouterOptions() []router.Option {
	return []router.Option{
		router.WithMode(router.Mode(c.Router.Mode)),
		router.WithRoot(c.Router.Root),
		router.WithSkipInitial(c.Router.SkipInitial),
	}
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// StaticPath returns the absolute path to the static directory.
func (c *Config) StaticPath() string {
	return c.resolve(c.Dev.Static)
}

// WatchPaths returns the absolute paths of the watched directories.
func (c *Config) WatchPaths() []string {
	watch := c.Dev.Watch
	if len(watch) == 0 {
		watch = []string{c.Dev.Static}
	}
	out := make([]string, len(watch))
	for i, p := range watch {
		out[i] = c.resolve(p)
	}
	return out
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range fileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
