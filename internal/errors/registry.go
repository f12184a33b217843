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
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Element already attached",
		Detail:   "Attach was called on an element that is already part of the document tree.",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Element not attached",
		Detail:   "Detach was called on an element that is not part of the document tree.",
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "Task posted to stopped queue",
		Detail:   "The document's task queue has been shut down; the task was dropped.",
	},

	// ============================================
	// Loader Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryLoader,
		Message:  "Stylesheet fetch failed",
		Detail:   "The loader could not retrieve the stylesheet body from the resolved URL.",
	},
	"E021": {
		Category: CategoryLoader,
		Message:  "Integrity check failed",
		Detail:   "The fetched stylesheet body does not match the integrity metadata on the link element.",
	},
	"E022": {
		Category: CategoryLoader,
		Message:  "Import depth exceeded",
		Detail:   "A chain of nested stylesheet imports exceeded the loader's depth limit. The import was treated as a failed sub-load.",
	},
	"E023": {
		Category: CategoryLoader,
		Message:  "Unsupported URL scheme",
		Detail:   "No loader is registered for the URL's scheme. The load is reported as a single failed sub-load.",
	},
	"E024": {
		Category: CategoryLoader,
		Message:  "Malformed integrity metadata",
		Detail:   "The integrity attribute could not be parsed. Expected the form \"sha256-<base64 digest>\".",
	},
	"E025": {
		Category: CategoryLoader,
		Message:  "S3 object fetch failed",
		Detail:   "GetObject failed for the bucket and key encoded in the s3:// URL.",
	},

	// ============================================
	// Protocol Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryProtocol,
		Message:  "Load finished without a matching start",
		Detail:   "A loader reported a finished sub-load for a batch with no outstanding starts. This is a bug in the loader integration, not a recoverable runtime condition.",
	},
	"E041": {
		Category: CategoryProtocol,
		Message:  "Completion for unknown generation",
		Detail:   "A loader reported a completion tagged with a generation that never issued a load.",
	},
	"E042": {
		Category: CategoryProtocol,
		Message:  "Embedder bridge write failed",
		Detail:   "An icon notice could not be written to a connected embedder client. The connection is dropped.",
	},

	// ============================================
	// Configuration Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryConfig,
		Message:  "Invalid base URL",
		Detail:   "The document base URL could not be parsed or is not absolute.",
	},
	"E061": {
		Category: CategoryConfig,
		Message:  "Invalid listen address",
		Detail:   "The configured listen address is invalid or already in use.",
	},
	"E062": {
		Category: CategoryConfig,
		Message:  "Config file error",
		Detail:   "servoload.json could not be read, parsed, or written.",
	},

	// ============================================
	// CLI Errors (E080-E099)
	// ============================================

	"E080": {
		Category: CategoryCLI,
		Message:  "Invalid target URL",
		Detail:   "The URL argument could not be parsed. Pass an absolute http(s):// or s3:// URL.",
	},
	"E081": {
		Category: CategoryCLI,
		Message:  "Load timed out",
		Detail:   "The aggregate load outcome did not arrive within the configured timeout.",
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
