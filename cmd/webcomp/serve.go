package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/webcomp-dev/webcomp/internal/config"
	"github.com/webcomp-dev/webcomp/internal/dev"
	"github.com/webcomp-dev/webcomp/internal/errors"
)

type serveFlags struct {
	port        int
	host        string
	static      string
	noReload    bool
	metrics     bool
	openBrowser bool
}

func serveCmd(c *cli) *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development server",
		Long: `Serve the static directory with live reload.

The dev server watches the static directory and the configured watch
paths. Changed stylesheets are swapped in place, any other change
reloads connected browsers. In history mode, paths under the router
root that match no file get the index page.

Examples:
  webcomp serve
  webcomp serve --port=8080
  webcomp serve --static=dist --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, c.config)
			if err := c.config.Validate(); err != nil {
				return err
			}
			return c.serve(cmd)
		},
	}

	cmd.Flags().IntVarP(&f.port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&f.host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().StringVar(&f.static, "static", "", "Directory to serve (default from config)")
	cmd.Flags().BoolVar(&f.noReload, "no-reload", false, "Disable live reload")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "Expose Prometheus metrics on "+dev.MetricsPath)
	cmd.Flags().BoolVarP(&f.openBrowser, "open", "o", false, "Open browser on start")

	return cmd
}

// apply copies the flags set on the command line into cfg.
func (f *serveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Dev.Port = f.port
	}
	if f.host != "" {
		cfg.Dev.Host = f.host
	}
	if f.static != "" {
		cfg.Dev.Static = f.static
	}
	if f.noReload {
		cfg.Dev.HotReload = false
	}
	if f.metrics {
		cfg.Dev.Metrics = true
	}
	if f.openBrowser {
		cfg.Dev.Open = true
	}
}

func (c *cli) serve(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	cfg := c.config

	if _, err := os.Stat(cfg.StaticPath()); err != nil {
		return errors.New("W061").
			WithDetail(fmt.Sprintf("The static directory %q cannot be served.", cfg.StaticPath())).
			WithSuggestion("Create the directory or point dev.static at your build output").
			Wrap(err)
	}

	printBanner(out)
	info(out, "serving %s", cfg.StaticPath())
	info(out, "listening on %s", cfg.DevURL())
	fmt.Fprintln(out)

	server := dev.NewServer(dev.ServerOptions{
		Config: cfg,
		Logger: c.logger,
		OnReload: func(clients int) {
			success(out, "Reloaded %d browsers", clients)
		},
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(out, "\n\n  Shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if cfg.Dev.Open {
		go openURL(cfg.DevURL())
	}

	if err := server.Start(ctx); err != nil {
		return errors.New("W061").Wrap(err)
	}
	return nil
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd

	switch {
	case commandExists("xdg-open"):
		cmd = exec.Command("xdg-open", url)
	case commandExists("open"):
		cmd = exec.Command("open", url)
	case commandExists("start"):
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}

	cmd.Start()
}

// commandExists checks if a command exists in PATH.
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
