// Package vite integrates Vite-built assets with the Inertia controller.
//
// A Vite production build writes .vite/manifest.json mapping source
// modules to fingerprinted output files. This package parses that
// manifest, derives the asset version from it, renders the script and
// stylesheet tags an entry needs, and ships a root-document resolver that
// splices everything into an HTML template:
//
//	m, _ := vite.Load("dist/.vite/manifest.json")
//	r, _ := vite.NewResolver(vite.ResolverConfig{
//		TemplatePath: "web/root.html",
//		Manifest:     m,
//		Entry:        "src/main.tsx",
//	})
//	in, _ := inertia.New(inertia.Config{
//		Version:          r.Version(),
//		TemplateResolver: r.Resolve,
//	})
//
// The template marks its splice points with directives:
//
//	<!doctype html>
//	<html>
//	<head>
//	  @vite
//	  @inertia::head
//	</head>
//	<body>
//	  @inertia::body
//	</body>
//	</html>
//
// During development the resolver can point at a running Vite dev server
// instead of a manifest; tags then load source modules straight from the
// dev server and the asset version pins to "dev", so edits never force a
// client refresh.
package vite
