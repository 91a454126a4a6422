// Package routertest provides testing helpers for code built on the router.
//
// The routertest package reduces boilerplate when testing navigation by
// providing a fluent router builder, fake host components and assertions.
//
// # Quick Start
//
//	func TestCheckout(t *testing.T) {
//	    r := routertest.NewRouter().
//	        WithRoute("/cart").
//	        WithRoute("/checkout", "/payment").
//	        Build(t)
//	    slots := routertest.Mount(r, 2)
//
//	    if err := r.Push("/checkout/payment"); err != nil {
//	        t.Fatal(err)
//	    }
//	    routertest.ExpectSlots(t, slots, "checkout", "payment")
//	}
//
// # Recording Navigations
//
// A Recorder subscribes to a router and keeps every committed event:
//
//	rec := routertest.Record(r)
//	defer rec.Stop()
//	_ = r.Push("/cart")
//	routertest.ExpectPaths(t, rec.Paths(), "/cart")
package routertest
