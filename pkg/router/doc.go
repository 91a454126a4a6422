// Package router implements hierarchical client-side routing for
// component-based UI hosts.
//
// The router provides:
//   - A route registry built from nested declarative definitions
//   - Resolution of a path into a root-to-leaf chain of component names
//   - Reconciliation of that chain against live components, re-rendering
//     only from the first component whose name changes
//   - Before/after navigation hooks and navigation middleware
//   - A bounded navigation history
//
// # Route Definitions
//
// Routes are nested definitions. A record's key is the concatenation of its
// ancestors' segments:
//
//	cfg := router.Config{
//	    Routes: []router.RouteDefinition{
//	        {Path: "/home"},
//	        {Path: "/list", ChildType: router.ChildTypeTab, Children: []router.RouteDefinition{
//	            {Path: "/detail", Component: "ListDetail"},
//	        }},
//	    },
//	}
//
// registers "/home", "/list" and "/list/detail". Direct children of a
// definition with ChildType "tab" are tagged with Type "tab".
//
// # Component Chains
//
// Resolving "/list/detail" yields the chain ["list", "ListDetail"]: one name
// per segment, using Component when set and the segment name otherwise.
//
// # Components
//
// The host framework owns components. It forwards "mounted" to
// RegisterComponent and "unmounting" to RemoveComponent. The router only
// ever calls SetSlot to choose which sub-view a component renders.
// Components are expected to register in depth order.
//
// # Usage
//
//	r, err := router.New(cfg)
//	if err != nil {
//	    return err
//	}
//
//	r.SetBeforeChange(func(from, to router.Route) bool {
//	    return to.Path != "/admin"
//	})
//
//	if err := r.Push("/list/detail", router.WithParams(map[string]any{"id": 7})); err != nil {
//	    // errors.Is(err, router.ErrNotFound) for unknown paths
//	}
package router
