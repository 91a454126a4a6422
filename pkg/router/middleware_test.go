package router

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestComposeMiddlewareOrder(t *testing.T) {
	var order []string
	record := func(name string) Middleware {
		return MiddlewareFunc(func(nav *Navigation, next func() error) error {
			order = append(order, name+":before")
			err := next()
			order = append(order, name+":after")
			return err
		})
	}

	err := ComposeMiddleware(&Navigation{}, []Middleware{record("a"), record("b")}, func() error {
		order = append(order, "handler")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a:before", "b:before", "handler", "b:after", "a:after"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestComposeMiddlewareEmpty(t *testing.T) {
	called := false
	_ = ComposeMiddleware(&Navigation{}, nil, func() error {
		called = true
		return nil
	})
	if !called {
		t.Error("handler not called with empty middleware")
	}
}

func TestMiddlewareObservesNavigation(t *testing.T) {
	var seen []*Navigation
	observer := MiddlewareFunc(func(nav *Navigation, next func() error) error {
		err := next()
		seen = append(seen, nav)
		return err
	})

	r := mustNew(t, scenarioConfig(), WithMiddleware(observer))
	if len(seen) != 1 || seen[0].Path != "/home" || !seen[0].Committed() {
		t.Fatalf("initial navigation not observed: %+v", seen)
	}

	r.SetBeforeChange(func(from, to Route) bool { return to.Path != "/list" })
	_ = r.Push("/list")
	if last := seen[len(seen)-1]; !last.Vetoed() || last.Committed() {
		t.Errorf("vetoed navigation: Vetoed() = %v, Committed() = %v", last.Vetoed(), last.Committed())
	}

	err := r.Push("/missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Push() error = %v", err)
	}
	if last := seen[len(seen)-1]; last.Path != "/missing" || last.Committed() {
		t.Errorf("failed navigation observed as %+v", last)
	}
}

func TestMiddlewareCanDropNavigation(t *testing.T) {
	r := mustNew(t, scenarioConfig())
	r.Use(MiddlewareFunc(func(nav *Navigation, next func() error) error {
		if nav.Kind == KindReplace {
			return nil
		}
		return next()
	}))

	_ = r.Replace("/list")
	if r.CurrentRoute().Path != "/home" {
		t.Error("middleware that skips next should drop the navigation")
	}
	_ = r.Push("/list")
	if r.CurrentRoute().Path != "/list" {
		t.Error("push should pass through")
	}
}

func TestMiddlewareContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "trace")

	var got any
	r := mustNew(t, scenarioConfig())
	r.Use(MiddlewareFunc(func(nav *Navigation, next func() error) error {
		got = nav.Context().Value(key{})
		return next()
	}))

	_ = r.Push("/list", WithContext(ctx))
	if got != "trace" {
		t.Errorf("context value = %v, want trace", got)
	}

	_ = r.Push("/home")
	if got != nil {
		t.Errorf("default context value = %v, want nil", got)
	}
}

func TestChainAndOnly(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return MiddlewareFunc(func(nav *Navigation, next func() error) error {
			order = append(order, name)
			return next()
		})
	}

	onlyPush := Only(func(nav *Navigation) bool { return nav.Kind == KindPush }, mark("push-only"))
	mw := Chain(mark("first"), onlyPush)

	_ = mw.Handle(&Navigation{Kind: KindPush}, func() error { return nil })
	_ = mw.Handle(&Navigation{Kind: KindReplace}, func() error { return nil })

	want := []string{"first", "push-only", "first"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}
