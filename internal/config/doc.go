// Package config loads router configuration documents.
//
// A document holds the route tree and router options. It may be written as
// JSON, YAML or TOML; the format is chosen by file extension. Documents can
// also be fetched from S3 with an s3://bucket/key location.
//
// # Document Structure
//
//	{
//	  "routes": [
//	    {"path": "/home"},
//	    {
//	      "path": "/list",
//	      "component": "ListPage",
//	      "children": [{"path": "/detail"}]
//	    },
//	    {
//	      "path": "/settings",
//	      "childType": "tab",
//	      "children": [{"path": "/profile"}, {"path": "/billing"}],
//	      "meta": {"title": "Settings"}
//	    }
//	  ],
//	  "option": {"initPath": "/home"}
//	}
//
// The same document in YAML:
//
//	routes:
//	  - path: /home
//	  - path: /list
//	    component: ListPage
//	    children:
//	      - path: /detail
//	option:
//	  initPath: /home
//
// # Usage
//
//	cfg, err := config.LoadFile("routes.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := config.Validate(cfg); err != nil {
//	    log.Fatal(err)
//	}
//	r, err := router.New(cfg)
package config
