// Package features provides higher-level abstractions for building webcomp
// components.
//
// # Subsystems
//
// Each subsystem is in its own sub-package and can be imported
// independently:
//
//   - context: named values shared across components, with providers that
//     re-render on every update
//
// # Usage
//
//	import wcctx "github.com/webcomp-dev/webcomp/pkg/features/context"
package features
