// Package config provides parsing for inertia.json project files.
//
// The configuration lives at the project root and tells the CLI where
// the Vite build manifest, the root template, and the SSR renderer
// live. This package handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "name": "myapp",
//	  "entry": "src/main.tsx",
//	  "template": "web/root.html",
//	  "containerId": "app",
//	  "assets": {
//	    "manifest": "dist/.vite/manifest.json",
//	    "dist": "dist",
//	    "base": "/"
//	  },
//	  "dev": {
//	    "server": "http://localhost:5173",
//	    "reload": true,
//	    "debounceMs": 100
//	  },
//	  "ssr": {
//	    "enabled": false,
//	    "url": "http://127.0.0.1:13714",
//	    "bundle": "dist/ssr/ssr.js",
//	    "runtime": "node",
//	    "timeoutMs": 5000
//	  }
//	}
//
// Every field is optional; missing fields take the defaults above.
// Relative paths are resolved against the directory holding
// inertia.json.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Manifest:", cfg.ManifestPath())
package config
