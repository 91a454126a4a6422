package router_test

import (
	"fmt"

	"github.com/vango-dev/vroute/pkg/router"
)

// view is a minimal host component.
type view struct {
	id   string
	slot string
}

func (v *view) ID() string          { return v.id }
func (v *view) Slot() string        { return v.slot }
func (v *view) SetSlot(name string) { v.slot = name }

// Example demonstrates building a router, mounting components and navigating.
func Example() {
	r, err := router.New(router.Config{
		Routes: []router.RouteDefinition{
			{Path: "/home"},
			{Path: "/list", Component: "ListPage", Children: []router.RouteDefinition{
				{Path: "/detail"},
			}},
		},
	})
	if err != nil {
		panic(err)
	}

	outer, inner := &view{id: "outer"}, &view{id: "inner"}
	r.RegisterComponent(outer)
	r.RegisterComponent(inner)
	fmt.Println("after mount:", outer.slot)

	_ = r.Push("/list/detail")
	fmt.Println("after push:", outer.slot, r.Pending())

	// The host re-renders below the switched outer view.
	_ = r.RemoveComponent(inner)
	inner = &view{id: "inner"}
	r.RegisterComponent(inner)
	fmt.Println("remounted:", inner.slot)
	fmt.Println("current:", r.CurrentRoute().Path)

	// Output:
	// after mount: home
	// after push: ListPage [detail]
	// remounted: detail
	// current: /list/detail
}

// Example_guard demonstrates vetoing a navigation.
func Example_guard() {
	r, _ := router.New(router.Config{
		Routes: []router.RouteDefinition{{Path: "/home"}, {Path: "/admin"}},
	})

	r.SetBeforeChange(func(from, to router.Route) bool {
		if to.Path == "/admin" {
			fmt.Println("blocked", from.Path, "->", to.Path)
			return false
		}
		return true
	})
	r.SetAfterChange(func(from, to router.Route) {
		fmt.Println("changed", from.Path, "->", to.Path)
	})

	_ = r.Push("/admin")
	_ = r.Replace("/home")
	fmt.Println(len(r.History()), r.CurrentRoute().Path)

	// Output:
	// blocked /home -> /admin
	// changed /home -> /home
	// 1 /home
}
