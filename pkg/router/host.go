package router

import (
	rterrors "github.com/vango-dev/vroute/internal/errors"
)

// Routed is implemented by components that know which router they belong to.
type Routed interface {
	Component
	Router() *Router
}

// Mounted forwards a host "mounted" notification to the component's router.
// It fails if c cannot name a router.
func Mounted(c Component) error {
	r, err := routerOf(c)
	if err != nil {
		return err
	}
	r.RegisterComponent(c)
	return nil
}

// Unmounting forwards a host "unmounting" notification to the component's
// router.
func Unmounting(c Component) error {
	r, err := routerOf(c)
	if err != nil {
		return err
	}
	return r.RemoveComponent(c)
}

func routerOf(c Component) (*Router, error) {
	if rc, ok := c.(Routed); ok {
		if r := rc.Router(); r != nil {
			return r, nil
		}
	}
	return nil, rterrors.New("R031").
		WithPath(c.ID()).
		WithSuggestion("Implement Router() on the component or register it with Router.RegisterComponent directly")
}
