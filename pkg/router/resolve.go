package router

import (
	rterrors "github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/routepath"
)

// Resolve returns the record registered under path and the component chain
// needed to render it.
//
// The chain is built by repeatedly splitting off the last segment of path,
// looking each shorter prefix up, and prepending the prefix record's
// Component (or its segment name when Component is empty), so the result is
// ordered root to leaf. Any unregistered prefix fails the whole resolution.
func (g *Registry) Resolve(path string) (Record, ComponentChain, error) {
	rec, ok := g.records[path]
	if !ok {
		return Record{}, nil, rterrors.New("R010").WithPath(path)
	}

	if chain, ok := g.chains.Get(path); ok {
		return rec.Clone(), chain.Clone(), nil
	}

	chain, err := g.chain(path)
	if err != nil {
		return Record{}, nil, err
	}
	g.chains.Add(path, chain)
	return rec.Clone(), chain.Clone(), nil
}

// chain walks path back to the root.
func (g *Registry) chain(path string) (ComponentChain, error) {
	prefixes := routepath.Prefixes(path)
	chain := make(ComponentChain, len(prefixes))

	for i, prefix := range prefixes {
		rec, ok := g.records[prefix]
		if !ok {
			return nil, rterrors.New("R011").
				WithPath(prefix).
				WithSuggestion("Register " + prefix + " as a parent of " + path)
		}
		name := rec.Component
		if name == "" {
			_, name = routepath.SplitLast(prefix)
		}
		chain[len(prefixes)-1-i] = name
	}
	return chain, nil
}
