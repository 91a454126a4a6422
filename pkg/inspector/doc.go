// Package inspector serves a router's state over HTTP.
//
// The inspector is a development aid: it exposes the route registry, the
// current route and history as JSON, accepts navigation requests, streams
// committed navigations over a WebSocket and serves Prometheus metrics.
//
// # Endpoints
//
//	GET  /routes          registry records keyed by path
//	GET  /tree            registry as nested nodes
//	GET  /resolve?path=   route and component chain for path, without navigating
//	GET  /current         current route
//	GET  /history         history, oldest first
//	GET  /components      live component ids and pending names
//	POST /navigate        {"path": "/list", "params": {...}, "replace": false}
//	GET  /events          WebSocket stream of navigation messages
//	GET  /metrics         Prometheus metrics
//	GET  /healthz         liveness
//
// # Usage
//
//	srv := inspector.New(r, inspector.WithGatherer(reg))
//	defer srv.Close()
//	http.ListenAndServe(":7070", srv.Handler())
package inspector
