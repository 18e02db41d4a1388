// Package dev provides the development-mode reload bridge.
//
// This package implements:
//   - Manifest watching for Vite rebuild detection
//   - WebSocket-based browser refresh
//   - Error overlay in browser
//
// # Architecture
//
// Two components cooperate:
//
//   - ManifestWatcher: watches the Vite manifest file and fires after a
//     rebuild settles
//   - ReloadServer: pushes rebuild results to connected browsers
//
// # Usage
//
//	reload := dev.NewReloadServer()
//	mux.HandleFunc(dev.ReloadPath, reload.HandleWebSocket)
//
//	watcher, err := dev.NewManifestWatcher(dev.ManifestWatcherConfig{
//	    Path: "dist/.vite/manifest.json",
//	})
//	if err != nil {
//	    return err
//	}
//	defer watcher.Stop()
//	watcher.OnChange(func() { reload.NotifyReload(version()) })
//	go watcher.Start(ctx)
//
// Inject DevClientScript into the root document in development so
// browsers connect.
//
// # Bridge Protocol
//
// The browser connects to /_inertia/reload via WebSocket. Messages are
// JSON-encoded:
//
//	{"type": "reload", "version": "3f2a9c"} // Refresh onto the new build
//	{"type": "error", "error": "..."}       // Show the error overlay
//
// A failed build is remembered and replayed to browsers that connect
// while it is broken; the overlay clears with the next successful build.
package dev
