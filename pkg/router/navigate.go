package router

import (
	"context"
	"time"
)

// NavigationKind distinguishes push from replace.
type NavigationKind string

const (
	KindPush    NavigationKind = "push"
	KindReplace NavigationKind = "replace"
)

// NavigateOptions configures a navigation.
type NavigateOptions struct {
	// Replace replaces the most recent history entry instead of appending.
	Replace bool

	// Params override record fields on the resulting Route.
	Params map[string]any

	// Context is handed to middleware (e.g., as a tracing parent).
	// Defaults to context.Background().
	Context context.Context
}

// NavigateOption is a functional option for Push and Replace.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithParams sets caller overrides merged over the route record.
func WithParams(params map[string]any) NavigateOption {
	return func(o *NavigateOptions) {
		o.Params = params
	}
}

// WithContext attaches ctx to the navigation.
func WithContext(ctx context.Context) NavigateOption {
	return func(o *NavigateOptions) {
		o.Context = ctx
	}
}

// NavigationRequest is the object form of a navigation target:
// a path plus overrides.
type NavigationRequest struct {
	Path    string         `json:"path"`
	Params  map[string]any `json:"params,omitempty"`
	Replace bool           `json:"replace,omitempty"`
}

// Navigation describes one navigation as it passes through middleware.
// From, To and Chain are filled in once the path resolves.
type Navigation struct {
	Kind   NavigationKind
	Path   string
	Params map[string]any
	From   Route
	To     Route
	Chain  ComponentChain

	ctx       context.Context
	vetoed    bool
	committed bool
}

// Context returns the navigation's context.
func (n *Navigation) Context() context.Context {
	if n.ctx == nil {
		return context.Background()
	}
	return n.ctx
}

// SetContext replaces the navigation's context for middleware further down
// the chain.
func (n *Navigation) SetContext(ctx context.Context) {
	n.ctx = ctx
}

// Vetoed reports whether a before hook stopped the navigation.
func (n *Navigation) Vetoed() bool {
	return n.vetoed
}

// Committed reports whether the navigation updated the current route.
func (n *Navigation) Committed() bool {
	return n.committed
}

// Event is published to change listeners after a navigation commits.
type Event struct {
	Kind  NavigationKind `json:"kind"`
	From  string         `json:"from"`
	To    string         `json:"to"`
	Chain ComponentChain `json:"chain"`
	At    time.Time      `json:"at"`
}
