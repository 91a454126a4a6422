// Package errors provides structured router errors.
//
// Every error carries a code (e.g. "R010") that maps to a registered
// template with a category, a short message and a longer explanation.
// Categories double as sentinel values, so callers can branch with the
// standard library:
//
//	if errors.Is(err, rterrors.ErrNotFound) {
//	    // unknown path
//	}
//
// # Error Categories
//
//   - config: malformed route configuration (missing routes, duplicate paths)
//   - not_found: a path or path prefix is not in the registry
//   - param: a navigation target lacks a path
//   - state: a lifecycle call does not match router state
//
// # Usage
//
//	err := errors.New("R010").
//	    WithPath("/list/detail").
//	    WithSuggestion("Declare the route in the routes configuration")
//
//	fmt.Println(err.Format())
//	// ERROR R010: Path not found
//	//
//	//   path: /list/detail
//	//
//	//   Hint: Declare the route in the routes configuration
package errors
