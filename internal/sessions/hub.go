// Package sessions manages websocket reading sessions: one progress
// controller per connected client, with the scrollto/urlstate wire contract
// between the server controller and the client viewport observer.
package sessions

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"github.com/mwieland/lectern/internal/catechism"
	"github.com/mwieland/lectern/internal/reader"
)

// Settings are the per-session sync parameters, refreshed from config on
// each new session.
type Settings struct {
	HysteresisPages int
	DebounceMs      int
}

// Hub tracks live reading sessions.
type Hub struct {
	catalog  *catechism.Catalog
	settings func() Settings
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool
}

// NewHub creates a session hub. settings is consulted per new session so
// config hot-reloads apply without a restart.
func NewHub(catalog *catechism.Catalog, settings func() Settings, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		catalog:  catalog,
		settings: settings,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// ServeHTTP implements http.Handler.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Handle(w, r)
}

// Handle upgrades an HTTP request to a websocket reading session and blocks
// until the session ends. The initial page comes from the `page` query
// parameter with the usual soft-fail parse semantics.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	st := h.settings()
	sess := newSession(conn, st.DebounceMs, h.logger)
	sess.bind(reader.New(reader.Config{
		MaxPage:       h.catalog.MaxPage(),
		Hysteresis:    st.HysteresisPages,
		RequestedPage: r.URL.Query().Get("page"),
		OnURLState:    sess.queueURLState,
		Logger:        h.logger,
	}))

	if !h.add(sess) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	h.logger.Info("reading session opened",
		"session", sess.ID(), "page", sess.Position().Int())

	sess.run(r.Context())

	h.remove(sess.ID())
	conn.Close(websocket.StatusNormalClosure, "")
	h.logger.Info("reading session closed",
		"session", sess.ID(), "page", sess.Position().Int())
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close refuses new sessions and closes existing connections.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
}

func (h *Hub) add(s *Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[s.id] = s
	return true
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}
