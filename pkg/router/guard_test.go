package router

import (
	"testing"
)

func TestGuardsRunBeforeShortCircuits(t *testing.T) {
	var g guards
	var calls []string
	g.addBefore(func(from, to Route) bool { calls = append(calls, "first"); return true })
	g.addBefore(func(from, to Route) bool { calls = append(calls, "second"); return false })
	g.addBefore(func(from, to Route) bool { calls = append(calls, "third"); return true })

	if g.runBefore(Route{Path: "/a"}, Route{Path: "/b"}) {
		t.Error("runBefore() = true, want false")
	}
	if len(calls) != 2 || calls[1] != "second" {
		t.Errorf("calls = %v, want [first second]", calls)
	}
}

func TestGuardsEmptyBeforeProceeds(t *testing.T) {
	var g guards
	if !g.runBefore(Route{}, Route{Path: "/a"}) {
		t.Error("runBefore() with no hooks should proceed")
	}
}

func TestGuardsNilClears(t *testing.T) {
	var g guards
	g.addBefore(func(from, to Route) bool { return false })
	g.addAfter(func(from, to Route) { t.Error("cleared after hook ran") })

	g.addBefore(nil)
	g.addAfter(nil)

	if !g.runBefore(Route{}, Route{}) {
		t.Error("cleared before hooks should not veto")
	}
	g.runAfter(Route{}, Route{})
}

func TestGuardsRunAfterCallsAll(t *testing.T) {
	var g guards
	count := 0
	for i := 0; i < 3; i++ {
		g.addAfter(func(from, to Route) { count++ })
	}

	g.runAfter(Route{Path: "/a"}, Route{Path: "/b"})
	if count != 3 {
		t.Errorf("after hooks called %d times, want 3", count)
	}
}

func TestGuardsReceiveCopies(t *testing.T) {
	var g guards
	g.addBefore(func(from, to Route) bool {
		to.Meta["title"] = "changed"
		return true
	})

	to := Route{Path: "/a", Meta: map[string]any{"title": "A"}}
	g.runBefore(Route{}, to)
	if to.Meta["title"] != "A" {
		t.Error("hooks should not be able to mutate the navigation target")
	}
}

func TestGuardsSnapshotIsolation(t *testing.T) {
	var g guards
	g.addBefore(func(from, to Route) bool { return true })
	snap := g.snapshot()

	g.addBefore(func(from, to Route) bool { return false })
	if !snap.runBefore(Route{}, Route{}) {
		t.Error("snapshot should not see hooks added later")
	}
}
