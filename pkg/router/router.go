package router

import (
	"log/slog"
	"sync"
	"time"

	rterrors "github.com/vango-dev/vroute/internal/errors"
)

// DefaultInitPath is navigated to at construction when Options.InitPath is empty.
const DefaultInitPath = "/"

// Options holds optional router settings from the configuration document.
type Options struct {
	// InitPath is the first navigation performed by New.
	InitPath string `json:"initPath,omitempty" yaml:"initPath,omitempty" toml:"initPath,omitempty"`
}

// Config is the router configuration document.
type Config struct {
	// Routes is required.
	Routes []RouteDefinition `json:"routes" yaml:"routes" toml:"routes"`

	Option Options `json:"option,omitempty" yaml:"option,omitempty" toml:"option,omitempty"`
}

// Option configures a Router.
type Option func(*routerOptions)

type routerOptions struct {
	logger     *slog.Logger
	middleware []Middleware
	cacheSize  int
}

// WithLogger sets the logger. If unset, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *routerOptions) {
		o.logger = logger
	}
}

// WithMiddleware installs navigation middleware before the initial
// navigation runs, so it observes that one too.
func WithMiddleware(mw ...Middleware) Option {
	return func(o *routerOptions) {
		o.middleware = append(o.middleware, mw...)
	}
}

// WithChainCacheSize sets how many resolved chains are cached.
func WithChainCacheSize(n int) Option {
	return func(o *routerOptions) {
		o.cacheSize = n
	}
}

// Router owns a route registry, the live component set, the current route,
// history and navigation hooks.
//
// All methods are safe for concurrent use. Hooks, middleware, change
// listeners and Component.SetSlot run without the router lock held, so any
// of them may navigate or (de)register components; such a nested call runs
// to completion before the outer navigation continues, and whichever
// navigation commits last wins.
//
// Slot updates are applied by one goroutine at a time. A navigation that
// commits while another call is still setting slots returns without touching
// components; the busy call stops its stale assignments and reconciles the
// newest chain before it returns.
type Router struct {
	mu         sync.Mutex
	registry   *Registry
	views      *Reconciler
	guards     guards
	middleware []Middleware
	listeners  map[int]func(Event)
	nextID     int
	current    Route
	history    []Route
	logger     *slog.Logger

	gen      uint64         // commits so far
	applied  uint64         // commit whose chain was last reconciled
	chain    ComponentChain // chain of the newest commit
	queued   plan           // registration assignments not yet delivered
	applying bool
}

// New builds the registry from cfg and navigates to the initial path.
//
// When cfg.Option.InitPath is empty, "/" is used if registered, otherwise
// the first top-level route.
func New(cfg Config, opts ...Option) (*Router, error) {
	if cfg.Routes == nil {
		return nil, rterrors.New("R001").
			WithSuggestion(`Add a "routes" array to the router configuration`)
	}

	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	registry, err := newRegistry(cfg.Routes, o.cacheSize)
	if err != nil {
		return nil, err
	}

	r := &Router{
		registry:   registry,
		views:      NewReconciler(),
		middleware: o.middleware,
		listeners:  make(map[int]func(Event)),
		logger:     o.logger,
	}

	initPath := cfg.Option.InitPath
	if initPath == "" {
		initPath = DefaultInitPath
		if !registry.Has(initPath) {
			if roots := registry.Roots(); len(roots) > 0 {
				initPath = roots[0]
			}
		}
	}
	if err := r.Push(initPath); err != nil {
		return nil, err
	}
	return r, nil
}

// Push navigates to path and appends the new route to history.
func (r *Router) Push(path string, opts ...NavigateOption) error {
	_, err := r.navigate(path, opts)
	return err
}

// Replace navigates to path and replaces the most recent history entry.
func (r *Router) Replace(path string, opts ...NavigateOption) error {
	opts = append(opts[:len(opts):len(opts)], WithReplace())
	_, err := r.navigate(path, opts)
	return err
}

// Navigate performs the navigation described by req and returns its record.
func (r *Router) Navigate(req NavigationRequest, opts ...NavigateOption) (*Navigation, error) {
	opts = append([]NavigateOption{WithParams(req.Params)}, opts...)
	if req.Replace {
		opts = append(opts, WithReplace())
	}
	return r.navigate(req.Path, opts)
}

func (r *Router) navigate(path string, opts []NavigateOption) (*Navigation, error) {
	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}

	nav := &Navigation{
		Kind:   KindPush,
		Path:   path,
		Params: options.Params,
		ctx:    options.Context,
	}
	if options.Replace {
		nav.Kind = KindReplace
	}

	r.mu.Lock()
	mw := append([]Middleware(nil), r.middleware...)
	r.mu.Unlock()

	err := ComposeMiddleware(nav, mw, func() error {
		return r.run(nav)
	})
	return nav, err
}

// run resolves, guards, reconciles and commits a navigation.
func (r *Router) run(nav *Navigation) error {
	if nav.Path == "" {
		return rterrors.New("R020")
	}

	r.mu.Lock()
	rec, chain, err := r.registry.Resolve(nav.Path)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	nav.From = r.current.Clone()
	nav.To = newRoute(&rec, nav.Params)
	nav.Chain = chain
	hooks := r.guards.snapshot()
	r.mu.Unlock()

	if !hooks.runBefore(nav.From, nav.To) {
		nav.vetoed = true
		r.logger.Debug("navigation vetoed",
			"kind", nav.Kind,
			"from", nav.From.Path,
			"to", nav.To.Path)
		return nil
	}

	r.mu.Lock()
	r.gen++
	r.chain = chain
	r.current = nav.To.Clone()
	switch nav.Kind {
	case KindReplace:
		if len(r.history) > 0 {
			r.history = r.history[:len(r.history)-1]
		}
		r.history = append(r.history, nav.To.Clone())
	default:
		r.history = append(r.history, nav.To.Clone())
		if len(r.history) > MaxHistory {
			r.history = append([]Route(nil), r.history[len(r.history)-MaxHistory:]...)
		}
	}
	hooks = r.guards.snapshot()
	listeners := r.listenerSnapshot()
	claimed := r.claimViews()
	r.mu.Unlock()

	updated := 0
	if claimed {
		updated = r.applyViews()
	}
	nav.committed = true

	r.logger.Debug("navigation committed",
		"kind", nav.Kind,
		"from", nav.From.Path,
		"to", nav.To.Path,
		"chain", []string(chain),
		"updated", updated)

	ev := Event{
		Kind:  nav.Kind,
		From:  nav.From.Path,
		To:    nav.To.Path,
		Chain: chain,
		At:    time.Now(),
	}
	for _, fn := range listeners {
		fn(ev)
	}

	hooks.runAfter(nav.From, nav.To)
	return nil
}

// SetBeforeChange appends a before hook. Passing nil clears all before hooks.
func (r *Router) SetBeforeChange(fn BeforeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards.addBefore(fn)
}

// SetAfterChange appends an after hook. Passing nil clears all after hooks.
func (r *Router) SetAfterChange(fn AfterFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards.addAfter(fn)
}

// Use appends navigation middleware.
func (r *Router) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw...)
}

// OnChange registers fn to be called after every committed navigation.
// The returned function unregisters it.
func (r *Router) OnChange(fn func(Event)) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// listenerSnapshot returns listeners in registration order. Callers hold r.mu.
func (r *Router) listenerSnapshot() []func(Event) {
	out := make([]func(Event), 0, len(r.listeners))
	for id := 0; id < r.nextID; id++ {
		if fn, ok := r.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// RegisterComponent adds c to the live set. A component mounting after a
// navigation already computed its chain receives the next pending name.
func (r *Router) RegisterComponent(c Component) {
	r.mu.Lock()
	r.queued = append(r.queued, r.views.register(c)...)
	claimed := r.claimViews()
	r.mu.Unlock()
	if claimed {
		r.applyViews()
	}
}

// claimViews makes the caller responsible for applying slot updates unless
// another call already is. r.mu must be held.
func (r *Router) claimViews() bool {
	if r.applying {
		return false
	}
	r.applying = true
	return true
}

// applyViews delivers slot assignments until nothing newer is waiting and
// returns the number of SetSlot calls made. The newest committed chain is
// reconciled against current Slot values; queued registration assignments
// are delivered only while no newer chain has committed. A plan stops as
// soon as a later commit supersedes it.
func (r *Router) applyViews() int {
	updated := 0
	released := false
	defer func() {
		if !released {
			r.mu.Lock()
			r.applying = false
			r.mu.Unlock()
		}
	}()

	for {
		r.mu.Lock()
		var p plan
		switch {
		case r.applied != r.gen:
			r.applied = r.gen
			r.queued = nil
			p = r.views.apply(r.chain)
		case len(r.queued) > 0:
			p, r.queued = r.queued, nil
		default:
			r.applying = false
			released = true
			r.mu.Unlock()
			return updated
		}
		gen := r.gen
		r.mu.Unlock()

		for _, a := range p {
			if r.superseded(gen) {
				break
			}
			a.component.SetSlot(a.name)
			updated++
		}
	}
}

func (r *Router) superseded(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen != gen
}

// RemoveComponent drops c from the live set. It fails with a state error if
// c is not registered.
func (r *Router) RemoveComponent(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views.Remove(c)
}

// CurrentRoute returns a copy of the active route.
func (r *Router) CurrentRoute() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Clone()
}

// History returns copies of the recorded routes, oldest first.
func (r *Router) History() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Route, len(r.history))
	for i, route := range r.history {
		out[i] = route.Clone()
	}
	return out
}

// Records returns a deep copy of the route registry keyed by path.
func (r *Router) Records() map[string]Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registry.Records()
}

// Tree returns the registered routes as nested nodes.
func (r *Router) Tree() []TreeNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registry.Tree()
}

// Resolve returns the route and chain path would navigate to, without
// navigating.
func (r *Router) Resolve(path string) (Route, ComponentChain, error) {
	if path == "" {
		return Route{}, nil, rterrors.New("R020")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, chain, err := r.registry.Resolve(path)
	if err != nil {
		return Route{}, nil, err
	}
	return newRoute(&rec, nil), chain, nil
}

// Pending returns the names still waiting for components to register.
func (r *Router) Pending() ComponentChain {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views.Pending()
}

// Components returns live component ids in registration order.
func (r *Router) Components() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views.IDs()
}
