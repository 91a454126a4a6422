package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (R001-R009, R040-R049)
	// ============================================

	"R001": {
		Category: CategoryConfig,
		Message:  "Routes configuration missing",
		Detail:   "The router configuration must contain a routes sequence.",
	},
	"R002": {
		Category: CategoryConfig,
		Message:  "Duplicate route path",
		Detail:   "Two route definitions produce the same fully-qualified path. Paths must be unique among siblings.",
	},
	"R003": {
		Category: CategoryConfig,
		Message:  "Route children must be a sequence",
		Detail:   "The children field of a route definition must be an array of route definitions.",
	},
	"R004": {
		Category: CategoryConfig,
		Message:  "Invalid route segment",
		Detail:   "A route path segment contains characters the router cannot address.",
	},

	// ============================================
	// Lookup Errors (R010-R019)
	// ============================================

	"R010": {
		Category: CategoryNotFound,
		Message:  "Path not found",
		Detail:   "The requested path was never registered.",
	},
	"R011": {
		Category: CategoryNotFound,
		Message:  "Path prefix not found",
		Detail:   "Every prefix of a navigation path must be a registered route.",
	},

	// ============================================
	// Parameter Errors (R020-R029)
	// ============================================

	"R020": {
		Category: CategoryParam,
		Message:  "Missing required param: path",
		Detail:   "Navigation targets must name a path.",
	},

	// ============================================
	// State Errors (R030-R039)
	// ============================================

	"R030": {
		Category: CategoryState,
		Message:  "Component not registered",
		Detail:   "The component was removed twice or never registered with this router.",
	},
	"R031": {
		Category: CategoryState,
		Message:  "No router associated with component",
		Detail:   "The host could not resolve which router a mounting component belongs to.",
	},

	// ============================================
	// Configuration Source Errors (R040-R049)
	// ============================================

	"R040": {
		Category: CategoryConfig,
		Message:  "Route configuration unreadable",
	},
	"R041": {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Route configuration files must end in .json, .yaml, .yml or .toml.",
	},
	"R042": {
		Category: CategoryConfig,
		Message:  "Route configuration fetch failed",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
