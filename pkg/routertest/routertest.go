package routertest

import (
	"reflect"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/vango-dev/vroute/pkg/router"
)

// RouterBuilder provides a fluent API for building test routers.
type RouterBuilder struct {
	cfg  router.Config
	opts []router.Option
}

// NewRouter creates a new router builder with no routes.
func NewRouter() *RouterBuilder {
	return &RouterBuilder{cfg: router.Config{Routes: []router.RouteDefinition{}}}
}

// WithRoute adds a top-level route whose descendants form a single branch:
// WithRoute("/a", "/b", "/c") registers /a, /a/b and /a/b/c.
func (b *RouterBuilder) WithRoute(path string, nested ...string) *RouterBuilder {
	def := router.RouteDefinition{Path: path}
	if len(nested) > 0 {
		def.Children = branch(nested)
	}
	b.cfg.Routes = append(b.cfg.Routes, def)
	return b
}

// WithDefinition adds a complete route definition.
func (b *RouterBuilder) WithDefinition(def router.RouteDefinition) *RouterBuilder {
	b.cfg.Routes = append(b.cfg.Routes, def)
	return b
}

// WithInitPath sets the first navigation.
func (b *RouterBuilder) WithInitPath(path string) *RouterBuilder {
	b.cfg.Option.InitPath = path
	return b
}

// WithOption appends a router construction option.
func (b *RouterBuilder) WithOption(opts ...router.Option) *RouterBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Config returns the configuration built so far.
func (b *RouterBuilder) Config() router.Config {
	return b.cfg
}

// Build constructs the router, failing the test on error.
func (b *RouterBuilder) Build(t testing.TB) *router.Router {
	t.Helper()
	r, err := router.New(b.cfg, b.opts...)
	if err != nil {
		t.Fatalf("router.New: %v", err)
	}
	return r
}

func branch(segments []string) []router.RouteDefinition {
	def := router.RouteDefinition{Path: segments[0]}
	if len(segments) > 1 {
		def.Children = branch(segments[1:])
	}
	return []router.RouteDefinition{def}
}

// Slot is a fake host component that records every name it is assigned.
// It implements router.Routed when created with NewSlot.
type Slot struct {
	id     string
	router *router.Router

	mu          sync.Mutex
	name        string
	assignments []string
}

// NewSlot creates a slot bound to r with a random id.
func NewSlot(r *router.Router) *Slot {
	return &Slot{id: uuid.NewString(), router: r}
}

// ID implements router.Component.
func (s *Slot) ID() string { return s.id }

// Router implements router.Routed.
func (s *Slot) Router() *router.Router { return s.router }

// Slot returns the name currently displayed.
func (s *Slot) Slot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetSlot implements router.Component.
func (s *Slot) SetSlot(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	s.assignments = append(s.assignments, name)
}

// Assignments returns every name the slot was given, in order.
func (s *Slot) Assignments() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.assignments...)
}

// Mount creates n slots bound to r and mounts them in order, outermost first.
func Mount(r *router.Router, n int) []*Slot {
	slots := make([]*Slot, n)
	for i := range slots {
		slots[i] = NewSlot(r)
		// Slots always name their router, so Mounted cannot fail.
		_ = router.Mounted(slots[i])
	}
	return slots
}

// Recorder keeps the events of every committed navigation.
type Recorder struct {
	mu     sync.Mutex
	events []router.Event
	cancel func()
}

// Record subscribes a new Recorder to r.
func Record(r *router.Router) *Recorder {
	rec := &Recorder{}
	rec.cancel = r.OnChange(func(ev router.Event) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.events = append(rec.events, ev)
	})
	return rec
}

// Stop unsubscribes the recorder.
func (r *Recorder) Stop() {
	r.cancel()
}

// Events returns the recorded events.
func (r *Recorder) Events() []router.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]router.Event(nil), r.events...)
}

// Paths returns the destination path of each recorded event.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.To
	}
	return out
}

// ExpectSlots asserts that slots display want, in order.
func ExpectSlots(t testing.TB, slots []*Slot, want ...string) {
	t.Helper()
	got := make([]string, len(slots))
	for i, s := range slots {
		got[i] = s.Slot()
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("slots = %q, want %q", got, want)
	}
}

// ExpectCurrent asserts the router's current path.
func ExpectCurrent(t testing.TB, r *router.Router, want string) {
	t.Helper()
	if got := r.CurrentRoute().Path; got != want {
		t.Errorf("current route = %q, want %q", got, want)
	}
}

// ExpectHistory asserts the router's history paths, oldest first.
func ExpectHistory(t testing.TB, r *router.Router, want ...string) {
	t.Helper()
	hist := r.History()
	got := make([]string, len(hist))
	for i, route := range hist {
		got[i] = route.Path
	}
	ExpectPaths(t, got, want...)
}

// ExpectPaths asserts that got equals want.
func ExpectPaths(t testing.TB, got []string, want ...string) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("paths = %q, want %q", got, want)
	}
}
