// Package dev provides the development server and live reload.
//
// The development server consists of three parts:
//
//   - Watcher: polls the static directory and the configured watch paths
//   - ReloadServer: tells browsers to reload over a WebSocket
//   - Server: serves the static directory, with a single-page fallback
//     under the router root in history mode
//
// # Usage
//
//	srv := dev.NewServer(dev.ServerOptions{Config: cfg, Logger: logger})
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Reload Protocol
//
// Served HTML pages get a small script that connects to /_webcomp/reload.
// Messages are JSON-encoded:
//
//	{"type": "reload"}                      // full page reload
//	{"type": "css", "file": "app.css"}      // stylesheet-only reload
//
// Hot reload can be disabled with dev.hotReload=false. With dev.metrics
// the server also exposes Prometheus metrics on /metrics.
package dev
