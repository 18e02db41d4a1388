package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Project config not found",
		Detail:   "No inertia.json was found. The CLI reads it to locate the build manifest, the root template, and the SSR renderer.",
		DocURL:   "https://inertia-go.dev/errors/E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Project config is not valid JSON",
		Detail:   "inertia.json exists but could not be parsed.",
		DocURL:   "https://inertia-go.dev/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A field in inertia.json is outside its allowed range.",
		DocURL:   "https://inertia-go.dev/errors/E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Config read failed",
		Detail:   "inertia.json exists but could not be read or written.",
		DocURL:   "https://inertia-go.dev/errors/E103",
	},

	// ============================================
	// Asset Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryAssets,
		Message:  "Build manifest not found",
		Detail:   "The Vite build manifest does not exist. Vite writes it during a production build when build.manifest is enabled.",
		DocURL:   "https://inertia-go.dev/errors/E120",
	},
	"E121": {
		Category: CategoryAssets,
		Message:  "Build manifest is not valid JSON",
		Detail:   "The manifest file exists but could not be parsed. It may be a partial write from an interrupted build.",
		DocURL:   "https://inertia-go.dev/errors/E121",
	},
	"E122": {
		Category: CategoryAssets,
		Message:  "Entry chunk missing from manifest",
		Detail:   "The configured entry is not a key in the build manifest, so no script or stylesheet tags can be rendered for it.",
		DocURL:   "https://inertia-go.dev/errors/E122",
	},
	"E123": {
		Category: CategoryAssets,
		Message:  "Root template not found",
		Detail:   "The HTML shell used for full page loads does not exist at the configured path.",
		DocURL:   "https://inertia-go.dev/errors/E123",
	},
	"E124": {
		Category: CategoryAssets,
		Message:  "Root template has no body directive",
		Detail:   "The root template must contain @inertia::body so the page container can be injected.",
		DocURL:   "https://inertia-go.dev/errors/E124",
	},

	// ============================================
	// SSR Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategorySSR,
		Message:  "SSR bundle not found",
		Detail:   "The server-side render bundle does not exist. It is produced by the client build's SSR target.",
		DocURL:   "https://inertia-go.dev/errors/E140",
	},
	"E141": {
		Category: CategorySSR,
		Message:  "SSR renderer unreachable",
		Detail:   "The renderer process did not answer its health endpoint. Pages will fall back to client-side rendering.",
		DocURL:   "https://inertia-go.dev/errors/E141",
	},
	"E142": {
		Category: CategorySSR,
		Message:  "SSR runtime not found",
		Detail:   "The JavaScript runtime configured for the renderer is not installed or not in PATH.",
		DocURL:   "https://inertia-go.dev/errors/E142",
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
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
