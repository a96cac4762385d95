package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/webcomp-dev/webcomp/internal/config"
	"github.com/webcomp-dev/webcomp/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦ ╦┌─┐┌┐ ┌─┐┌─┐┌┬┐┌─┐
  ║║║├┤ ├┴┐│  │ ││││├─┘
  ╚╩╝└─┘└─┘└─┘└─┘┴ ┴┴
`

// cli holds the state shared by all commands.
type cli struct {
	configPath string
	logLevel   string

	config *config.Config
	logger *slog.Logger
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		errors.Print(stderr, err, "W060")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "webcomp",
		Short: "Tooling for webcomp custom elements",
		Long: `webcomp builds browser custom elements from Go components.

The CLI helps while developing them:

  • match route patterns against paths
  • preview how element attributes become props
  • serve a project with live reload`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file or project directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from config)")

	rootCmd.AddCommand(
		matchCmd(c),
		attrsCmd(c),
		serveCmd(c),
		versionCmd(),
	)

	return rootCmd
}

// load reads the project configuration and builds the logger.
func (c *cli) load(cmd *cobra.Command) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.config = cfg
	c.logger = cfg.Logger(cmd.ErrOrStderr())
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load(".")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.New("W050").
			WithDetail(fmt.Sprintf("The config path %q does not exist.", path)).
			Wrap(err)
	}
	if info.IsDir() {
		return config.Load(path)
	}
	return config.LoadFile(path)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printBanner prints the webcomp ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
