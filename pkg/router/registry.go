package router

import (
	lru "github.com/hashicorp/golang-lru/v2"

	rterrors "github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/clone"
	"github.com/vango-dev/vroute/pkg/routepath"
)

// DefaultChainCacheSize is the number of resolved chains a Registry keeps.
const DefaultChainCacheSize = 256

// Registry stores records keyed by fully-qualified path.
//
// Records are immutable once registered and everything handed out is a
// copy, so resolved chains can be cached for the registry's lifetime.
// A Registry is not safe for concurrent use on its own; Router serializes
// access to the registry it owns.
type Registry struct {
	records map[string]*Record
	order   []string
	roots   []string
	chains  *lru.Cache[string, ComponentChain]
}

// NewRegistry builds a registry from defs.
func NewRegistry(defs []RouteDefinition) (*Registry, error) {
	return newRegistry(defs, DefaultChainCacheSize)
}

func newRegistry(defs []RouteDefinition, cacheSize int) (*Registry, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultChainCacheSize
	}
	chains, err := lru.New[string, ComponentChain](cacheSize)
	if err != nil {
		return nil, err
	}
	g := &Registry{
		records: make(map[string]*Record),
		chains:  chains,
	}
	if err := g.Register(defs); err != nil {
		return nil, err
	}
	return g, nil
}

// Register walks defs recursively and adds a record for every definition.
// Keys are parent key + segment, with an empty root parent. Direct children
// of a ChildTypeTab definition get Type "tab"; the tag is not inherited
// further down.
//
// Registration is all-or-nothing: a duplicate key leaves the registry as it
// was.
func (g *Registry) Register(defs []RouteDefinition) error {
	staged := &registration{
		records: make(map[string]*Record),
		taken:   g.records,
	}
	for i := range defs {
		if err := staged.walk(&defs[i], "", nil); err != nil {
			return err
		}
	}

	for _, key := range staged.order {
		g.records[key] = staged.records[key]
	}
	g.order = append(g.order, staged.order...)
	g.roots = append(g.roots, staged.roots...)
	return nil
}

// registration accumulates records before they are committed.
type registration struct {
	records map[string]*Record
	taken   map[string]*Record
	order   []string
	roots   []string
}

func (s *registration) walk(def *RouteDefinition, parentKey string, parent *RouteDefinition) error {
	key := routepath.Join(parentKey, def.Path)
	if _, dup := s.records[key]; dup {
		return rterrors.New("R002").WithPath(key)
	}
	if _, dup := s.taken[key]; dup {
		return rterrors.New("R002").WithPath(key)
	}

	rec := &Record{
		Key:       key,
		Segment:   def.Path,
		Component: def.Component,
		ChildType: def.ChildType,
		Meta:      clone.Map(def.Meta),
	}
	if parent != nil && parent.ChildType == ChildTypeTab {
		rec.Type = ChildTypeTab
	}

	s.records[key] = rec
	s.order = append(s.order, key)
	if parent == nil {
		s.roots = append(s.roots, key)
	} else if p, ok := s.records[parentKey]; ok {
		p.Children = append(p.Children, key)
	}

	for i := range def.Children {
		if err := s.walk(&def.Children[i], key, def); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns a copy of the record registered under path.
func (g *Registry) Lookup(path string) (Record, error) {
	rec, ok := g.records[path]
	if !ok {
		return Record{}, rterrors.New("R010").WithPath(path)
	}
	return rec.Clone(), nil
}

// Has reports whether path is registered.
func (g *Registry) Has(path string) bool {
	_, ok := g.records[path]
	return ok
}

// Records returns a deep copy of every record keyed by path. Mutating the
// result never affects the registry.
func (g *Registry) Records() map[string]Record {
	out := make(map[string]Record, len(g.records))
	for key, rec := range g.records {
		out[key] = rec.Clone()
	}
	return out
}

// Paths returns every registered key in registration order.
func (g *Registry) Paths() []string {
	return append([]string(nil), g.order...)
}

// Roots returns the keys of top-level definitions in declaration order.
func (g *Registry) Roots() []string {
	return append([]string(nil), g.roots...)
}

// Len returns the number of records.
func (g *Registry) Len() int {
	return len(g.records)
}
