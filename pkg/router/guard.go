package router

// BeforeFunc inspects a pending navigation. Returning false vetoes it.
type BeforeFunc func(from, to Route) bool

// AfterFunc reacts to a committed navigation.
type AfterFunc func(from, to Route)

// guards holds the ordered before and after hooks.
type guards struct {
	before []BeforeFunc
	after  []AfterFunc
}

// addBefore appends fn; a nil fn clears every before hook.
func (g *guards) addBefore(fn BeforeFunc) {
	if fn == nil {
		g.before = nil
		return
	}
	g.before = append(g.before, fn)
}

// addAfter appends fn; a nil fn clears every after hook.
func (g *guards) addAfter(fn AfterFunc) {
	if fn == nil {
		g.after = nil
		return
	}
	g.after = append(g.after, fn)
}

// snapshot copies the hook slices so they can run without the router lock.
func (g *guards) snapshot() guards {
	return guards{
		before: append([]BeforeFunc(nil), g.before...),
		after:  append([]AfterFunc(nil), g.after...),
	}
}

// runBefore calls before hooks in order and stops at the first veto.
// With no hooks registered the navigation proceeds.
func (g guards) runBefore(from, to Route) bool {
	for _, fn := range g.before {
		if !fn(from.Clone(), to.Clone()) {
			return false
		}
	}
	return true
}

// runAfter calls every after hook. Panics are not recovered.
func (g guards) runAfter(from, to Route) {
	for _, fn := range g.after {
		fn(from.Clone(), to.Clone())
	}
}
