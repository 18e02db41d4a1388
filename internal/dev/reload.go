package dev

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ReloadPath is where browsers connect for rebuild notifications.
const ReloadPath = "/_inertia/reload"

// ReloadMessageType discriminates bridge messages.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeError ReloadMessageType = "error"
)

// ReloadMessage tells a browser what happened to the asset build. Reload
// messages carry the version fingerprint of the build that landed, so the
// cause of a refresh is visible in the browser console.
type ReloadMessage struct {
	Type    ReloadMessageType `json:"type"`
	Version string            `json:"version,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// ReloadServer pushes rebuild results to connected browsers. It remembers
// the last failed build, so a browser opened while the build is broken
// still gets the error overlay.
type ReloadServer struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	conns   map[*websocket.Conn]struct{}
	lastErr string
}

// NewReloadServer creates an empty bridge. Mount HandleWebSocket at
// ReloadPath and inject DevClientScript into the root document.
func NewReloadServer() *ReloadServer {
	return &ReloadServer{
		conns: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The bridge only runs in development.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until
// the browser goes away. A pending build error is delivered immediately.
func (s *ReloadServer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	pending := s.lastErr
	s.mu.Unlock()

	if pending != "" {
		s.send(conn, ReloadMessage{Type: ReloadTypeError, Error: pending})
	}

	// Browsers never send anything meaningful; reading detects the
	// disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.drop(conn)
}

// NotifyReload tells every browser to refresh after a successful rebuild.
// version is the new asset fingerprint. A good build supersedes any
// stored error.
func (s *ReloadServer) NotifyReload(version string) {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()

	s.broadcast(ReloadMessage{Type: ReloadTypeFull, Version: version})
}

// NotifyError shows the build failure in every browser and stores it for
// browsers that connect later. The overlay disappears with the next
// successful rebuild.
func (s *ReloadServer) NotifyError(errMsg string) {
	s.mu.Lock()
	s.lastErr = errMsg
	s.mu.Unlock()

	s.broadcast(ReloadMessage{Type: ReloadTypeError, Error: errMsg})
}

func (s *ReloadServer) broadcast(msg ReloadMessage) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		s.send(c, msg)
	}
}

func (s *ReloadServer) send(conn *websocket.Conn, msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.drop(conn)
	}
}

func (s *ReloadServer) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close()
}

// ClientCount reports how many browsers are connected.
func (s *ReloadServer) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Close disconnects every browser.
func (s *ReloadServer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.Close()
		delete(s.conns, c)
	}
}

// DevClientScript is the browser half of the bridge. Splice it into the
// root document before </body> in development.
const DevClientScript = `
<script>
(function() {
    'use strict';

    var retryDelay = 1000;
    var MAX_RETRY_DELAY = 30000;
    var OVERLAY_ID = 'inertia-build-error';

    function dismissOverlay() {
        var el = document.getElementById(OVERLAY_ID);
        if (el) {
            el.remove();
        }
    }

    function showOverlay(message) {
        dismissOverlay();

        var overlay = document.createElement('div');
        overlay.id = OVERLAY_ID;
        overlay.style.cssText = 'position:fixed;inset:0;background:rgba(0,0,0,0.9);color:#fff;font-family:monospace;font-size:14px;padding:24px;overflow:auto;z-index:999999;';

        var box = document.createElement('div');
        box.style.cssText = 'max-width:800px;margin:0 auto;';

        var heading = document.createElement('h2');
        heading.style.cssText = 'color:#ff5555;margin:0 0 16px;';
        heading.textContent = 'Asset build failed';

        var detail = document.createElement('pre');
        detail.style.cssText = 'white-space:pre-wrap;word-wrap:break-word;background:#1a1a1a;padding:16px;border-radius:8px;border:1px solid #333;';
        detail.textContent = message;

        var footer = document.createElement('p');
        footer.style.cssText = 'margin-top:16px;color:#888;';
        footer.textContent = 'The page reloads on the next successful build.';

        box.appendChild(heading);
        box.appendChild(detail);
        box.appendChild(footer);
        overlay.appendChild(box);
        document.body.appendChild(overlay);
    }

    function handle(msg) {
        if (msg.type === 'reload') {
            console.log('[inertia] assets rebuilt (version ' + (msg.version || 'unknown') + '), reloading');
            location.reload();
        } else if (msg.type === 'error') {
            console.error('[inertia] build error:', msg.error);
            showOverlay(msg.error);
        }
    }

    function connect() {
        var scheme = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(scheme + '//' + location.host + '/_inertia/reload');

        ws.onopen = function() {
            console.log('[inertia] reload bridge connected');
            retryDelay = 1000;
            // A pending error is replayed right after connect, so a stale
            // overlay from a previous connection can go.
            dismissOverlay();
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            handle(msg);
        };

        ws.onclose = function() {
            setTimeout(function() {
                retryDelay = Math.min(retryDelay * 2, MAX_RETRY_DELAY);
                connect();
            }, retryDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
</script>
`
