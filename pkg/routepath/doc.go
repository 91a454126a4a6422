// Package routepath implements the path arithmetic shared by the route
// registry, the resolver and the tooling around them.
//
// Route keys are built by plain concatenation of definition segments
// ("/list" + "/detail" = "/list/detail"), and resolution walks a key back
// to the root by repeatedly splitting off the last '/'-delimited segment.
// Both directions live here so they cannot drift apart.
package routepath
