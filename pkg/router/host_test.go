package router

import (
	"errors"
	"testing"
)

type routedComponent struct {
	*fakeComponent
	router *Router
}

func (c routedComponent) Router() *Router { return c.router }

func TestHostMountedWithoutRouter(t *testing.T) {
	err := Mounted(newFake("orphan"))
	if !errors.Is(err, ErrState) {
		t.Errorf("Mounted() error = %v, want ErrState", err)
	}

	err = Mounted(routedComponent{fakeComponent: newFake("nil-router")})
	if !errors.Is(err, ErrState) {
		t.Errorf("Mounted() with nil router error = %v, want ErrState", err)
	}
}

func TestHostLifecycle(t *testing.T) {
	r := mustNew(t, scenarioConfig())
	c := routedComponent{fakeComponent: newFake("page"), router: r}

	if err := Mounted(c); err != nil {
		t.Fatalf("Mounted() error = %v", err)
	}
	if c.slot != "home" {
		t.Errorf("slot = %q, want home from the pending chain", c.slot)
	}
	if len(r.Components()) != 1 {
		t.Errorf("Components() = %v", r.Components())
	}

	if err := Unmounting(c); err != nil {
		t.Fatalf("Unmounting() error = %v", err)
	}
	if err := Unmounting(c); !errors.Is(err, ErrState) {
		t.Errorf("second Unmounting() error = %v, want ErrState", err)
	}
}
