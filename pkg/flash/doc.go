// Package flash carries the temporary session across one redirect
// boundary.
//
// When an asset-version mismatch forces an already-hydrated client to do a
// full reload, any user-visible state from the interrupted request (most
// importantly validation errors) would be lost. A Flash is that state: an
// error map plus the URL of the request that produced it. The controller
// persists it just before answering with the forced-refresh conflict, and
// the next request picks it up again so the client can redisplay the
// errors after reloading.
//
// Persistence is pluggable through Store, with read-once semantics: Take
// returns a flash at most once. MemoryStore suits single-server
// deployments; SQLStore works with any database/sql driver. CookieProvider
// ties flashes to a browser via an opaque cookie and adapts a Store to the
// loader/reflash hooks the controller consumes.
package flash
