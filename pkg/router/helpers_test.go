package router

import (
	"sync"
	"testing"
)

// fakeComponent records every slot assignment.
type fakeComponent struct {
	id    string
	slot  string
	sets  []string
	onSet func(name string)
}

func newFake(id string) *fakeComponent {
	return &fakeComponent{id: id}
}

func (c *fakeComponent) ID() string   { return c.id }
func (c *fakeComponent) Slot() string { return c.slot }

func (c *fakeComponent) SetSlot(name string) {
	c.slot = name
	c.sets = append(c.sets, name)
	if c.onSet != nil {
		c.onSet(name)
	}
}

// gatedComponent parks the SetSlot call for one name until release is
// closed, signalling entered once it is parked.
type gatedComponent struct {
	id      string
	gate    string
	entered chan struct{}
	release chan struct{}

	mu   sync.Mutex
	slot string
}

func newGated(id, gate string) *gatedComponent {
	return &gatedComponent{
		id:      id,
		gate:    gate,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (c *gatedComponent) ID() string { return c.id }

func (c *gatedComponent) Slot() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot
}

func (c *gatedComponent) SetSlot(name string) {
	if name == c.gate {
		close(c.entered)
		<-c.release
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slot = name
}

// scenarioConfig is the home/list/detail configuration used across tests.
func scenarioConfig() Config {
	return Config{
		Routes: []RouteDefinition{
			{Path: "/home"},
			{Path: "/list", Children: []RouteDefinition{
				{Path: "/detail"},
			}},
		},
	}
}

func mustNew(t *testing.T, cfg Config, opts ...Option) *Router {
	t.Helper()
	r, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func historyPaths(r *Router) []string {
	var out []string
	for _, route := range r.History() {
		out = append(out, route.Path)
	}
	return out
}
