package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	DocURL     string
}

const docBase = "https://webcomp.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Router Errors (W001-W009, W030-W039)
	// ============================================

	"W001": {
		Category:   CategoryRouter,
		Message:    "Router already configured",
		Detail:     "The router mode and root can each be set only once per router.",
		Suggestion: "Configure the router once at startup, or call ResetAll in test teardown.",
		DocURL:     docBase + "W001",
	},
	"W030": {
		Category:   CategoryRouter,
		Message:    "Browser-only operation outside a browser",
		Detail:     "Navigation and location reads need a host. Routers without one run in server context.",
		Suggestion: "Pass router.WithHost(router.DefaultHost()) when running under js/wasm.",
		DocURL:     docBase + "W030",
	},
	"W031": {
		Category:   CategoryRouter,
		Message:    "Operation not supported in this router mode",
		Detail:     "Hash mode has no replace semantics.",
		Suggestion: "Use Push, or switch the router to history mode.",
		DocURL:     docBase + "W031",
	},

	// ============================================
	// Pattern Errors (W010-W019)
	// ============================================

	"W010": {
		Category:   CategoryPattern,
		Message:    "Invalid route pattern",
		Detail:     "Route patterns must be \"*\" or start with \"/\" and use Express syntax: /user/:id, /file/:name(\\w+), /static/*.",
		Suggestion: "Check parameter names and parentheses in the pattern.",
		DocURL:     docBase + "W010",
	},

	// ============================================
	// Element Errors (W020-W029, W040-W049)
	// ============================================

	"W020": {
		Category:   CategoryElement,
		Message:    "Reserved attribute name",
		Detail:     "The \"flags\" prop is filled from w: attributes and cannot be set directly.",
		Suggestion: "Rename the attribute, or use w:<name> to set a flag.",
		DocURL:     docBase + "W020",
	},
	"W021": {
		Category: CategoryElement,
		Message:  "Protected element mutated",
		Detail:   "Elements with the w:protected flag reject attribute changes from the outside.",
		DocURL:   docBase + "W021",
	},
	"W040": {
		Category:   CategoryElement,
		Message:    "Invalid custom element name",
		Detail:     "Custom element names must contain a dash and must not start with one.",
		Suggestion: "Use a name like \"my-counter\".",
		DocURL:     docBase + "W040",
	},
	"W041": {
		Category: CategoryElement,
		Message:  "Custom element already defined",
		Detail:   "A tag can be registered only once.",
		DocURL:   docBase + "W041",
	},

	// ============================================
	// Config Errors (W050-W059)
	// ============================================

	"W050": {
		Category: CategoryConfig,
		Message:  "Config file could not be read",
		Detail:   "webcomp.json, webcomp.yaml or webcomp.yml exists but is not valid.",
		DocURL:   docBase + "W050",
	},
	"W051": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   docBase + "W051",
	},

	// ============================================
	// CLI Errors (W060-W069)
	// ============================================

	"W060": {
		Category: CategoryCLI,
		Message:  "Invalid command arguments",
		DocURL:   docBase + "W060",
	},
	"W061": {
		Category: CategoryCLI,
		Message:  "Dev server failed",
		Detail:   "The development server stopped with an error.",
		DocURL:   docBase + "W061",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template Template) {
	registry[code] = template
}
