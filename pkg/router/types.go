package router

import (
	"github.com/vango-dev/vroute/pkg/clone"
)

// ChildTypeTab marks the direct children of a definition as sibling tabs
// rather than stacked pages.
const ChildTypeTab = "tab"

// MaxHistory bounds the number of routes kept in history.
const MaxHistory = 10

// RouteDefinition is a caller-supplied, declarative route.
type RouteDefinition struct {
	// Path is the segment this definition adds under its parent
	// (e.g., "/detail"). It must be unique among siblings.
	Path string `json:"path" yaml:"path" toml:"path"`

	// Component names the view rendered for this segment.
	// When empty, the segment name is used.
	Component string `json:"component,omitempty" yaml:"component,omitempty" toml:"component,omitempty"`

	// ChildType tags the direct children (e.g., ChildTypeTab).
	ChildType string `json:"childType,omitempty" yaml:"childType,omitempty" toml:"childType,omitempty"`

	// Children are nested definitions in declaration order.
	Children []RouteDefinition `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`

	// Meta is arbitrary route metadata merged into every Route for this path.
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

// Record is the registered, static form of a definition, keyed by its
// fully-qualified path.
type Record struct {
	// Key is the fully-qualified path (e.g., "/list/detail").
	Key string `json:"key"`

	// Segment is the definition's own path segment.
	Segment string `json:"segment"`

	Component string `json:"component,omitempty"`
	ChildType string `json:"childType,omitempty"`

	// Type is inherited from the parent's ChildType ("$type").
	Type string `json:"$type,omitempty"`

	Meta map[string]any `json:"meta,omitempty"`

	// Children holds the keys of direct children in declaration order.
	Children []string `json:"children,omitempty"`
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	out.Meta = clone.Map(r.Meta)
	if r.Children != nil {
		out.Children = append([]string(nil), r.Children...)
	}
	return out
}

// Route is a concrete navigation target: a path plus the merged fields of
// its record and any caller-supplied params.
type Route struct {
	Path      string         `json:"path"`
	Component string         `json:"component,omitempty"`
	ChildType string         `json:"childType,omitempty"`
	Type      string         `json:"$type,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
}

// newRoute merges rec with params into an isolated Route.
func newRoute(rec *Record, params map[string]any) Route {
	c := clone.New()
	return Route{
		Path:      rec.Key,
		Component: rec.Component,
		ChildType: rec.ChildType,
		Type:      rec.Type,
		Meta:      c.Map(rec.Meta),
		Params:    c.Map(params),
	}
}

// Clone returns a deep copy of the route. Values shared between Meta and
// Params stay shared in the copy.
func (r Route) Clone() Route {
	c := clone.New()
	out := r
	out.Meta = c.Map(r.Meta)
	out.Params = c.Map(r.Params)
	return out
}

// Value looks key up in Params, then Meta.
func (r Route) Value(key string) (any, bool) {
	if v, ok := r.Params[key]; ok {
		return v, true
	}
	v, ok := r.Meta[key]
	return v, ok
}

// Fields returns the merged view of the route: record fields and Meta,
// overridden by Params on key conflict.
func (r Route) Fields() map[string]any {
	c := clone.New()
	out := make(map[string]any, len(r.Meta)+len(r.Params)+4)
	out["path"] = r.Path
	if r.Component != "" {
		out["component"] = r.Component
	}
	if r.ChildType != "" {
		out["childType"] = r.ChildType
	}
	if r.Type != "" {
		out["$type"] = r.Type
	}
	for k, v := range r.Meta {
		out[k] = c.Value(v)
	}
	for k, v := range r.Params {
		out[k] = c.Value(v)
	}
	return out
}

// ComponentChain lists component names root-to-leaf, one per path segment.
type ComponentChain []string

// Clone returns a copy of the chain.
func (c ComponentChain) Clone() ComponentChain {
	if c == nil {
		return nil
	}
	return append(ComponentChain(nil), c...)
}

// Component is a live view owned by the host framework.
//
// The router selects which sub-view a component renders by assigning its
// slot; it never mounts or unmounts anything itself.
type Component interface {
	// ID is stable for the lifetime of the component.
	ID() string

	// Slot returns the currently rendered name.
	Slot() string

	// SetSlot assigns the name to render.
	SetSlot(name string)
}
