package dev

import (
	"path/filepath"

	"github.com/webcomp-dev/webcomp/internal/config"
)

// CollectWatchPaths returns the static directory followed by the
// configured watch paths, cleaned and without duplicates.
func CollectWatchPaths(cfg *config.Config) []string {
	paths := append([]string{cfg.StaticPath()}, cfg.WatchPaths()...)

	unique := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		unique = append(unique, clean)
	}
	return unique
}
