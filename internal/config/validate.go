package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/routepath"
)

// Validate checks cfg without building a router and reports every problem
// it finds. Use multierr.Errors to list them.
//
// Checks:
//   - routes are present (R001)
//   - every segment is addressable (R004)
//   - fully-qualified keys are unique (R002)
//   - childType is empty or "tab" (R004)
//   - option.initPath, if set, is registered (R010)
func Validate(cfg router.Config) error {
	if cfg.Routes == nil {
		return errors.New("R001")
	}

	v := &validator{seen: make(map[string]bool)}
	for i := range cfg.Routes {
		v.walk(&cfg.Routes[i], "", false)
	}

	if initPath := cfg.Option.InitPath; initPath != "" && !v.seen[initPath] {
		v.err = multierr.Append(v.err, errors.New("R010").
			WithPath(initPath).
			WithDetail("option.initPath is not a registered route."))
	}
	return v.err
}

type validator struct {
	seen map[string]bool
	err  error
}

func (v *validator) walk(def *router.RouteDefinition, parent string, nested bool) {
	key := routepath.Join(parent, def.Path)

	if err := routepath.CheckSegment(def.Path, nested); err != nil {
		v.err = multierr.Append(v.err, errors.New("R004").
			WithPath(key).
			WithDetail(fmt.Sprintf("Segment %q: %v.", def.Path, err)).
			Wrap(err))
	}
	if v.seen[key] {
		v.err = multierr.Append(v.err, errors.New("R002").WithPath(key))
	}
	v.seen[key] = true

	if def.ChildType != "" && def.ChildType != router.ChildTypeTab {
		v.err = multierr.Append(v.err, errors.New("R004").
			WithPath(key).
			WithDetail(fmt.Sprintf("Unknown childType %q.", def.ChildType)).
			WithSuggestion(`Use childType "tab" or leave it empty`))
	}

	for i := range def.Children {
		v.walk(&def.Children[i], key, true)
	}
}
