// Package scaffold renders starter files for new projects.
//
// A Template is a named set of files whose contents are text/template
// documents executed with a Config. The "minimal" template writes only
// the root HTML document; "chi" adds a runnable chi server wired to the
// controller. Scaffolding never writes inertia.json, the init command
// owns that file.
//
// Usage:
//
//	tmpl, err := scaffold.Get("chi")
//	if err != nil {
//		return err
//	}
//	err = tmpl.Create(".", scaffold.Config{
//		ProjectName: "storefront",
//		Entry:       "src/main.tsx",
//	}, false)
package scaffold
