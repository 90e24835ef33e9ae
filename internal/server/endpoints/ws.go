package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mwieland/lectern/internal/api"
	"github.com/mwieland/lectern/internal/svcctx"
)

// SessionEndpoint handles GET /ws/reader, the websocket reading session.
type SessionEndpoint struct{}

var _ api.Endpoint = (*SessionEndpoint)(nil)

func (e *SessionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ws/reader", e.handler
}

func (e *SessionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Reading session
//	@Description	Upgrade to a websocket reading session. The page query
//	@Description	parameter seeds the initial reading position.
//	@Tags			reader
//	@Param			page	query	int	false	"Initial page number"
//	@Router			/ws/reader [get]
func (e *SessionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	hub := svcctx.HubFrom(r.Context())
	if hub == nil {
		writeError(w, http.StatusServiceUnavailable, "session hub not initialized")
		return
	}
	hub.Handle(w, r)
}

func (e *SessionEndpoint) Command(_ func() string) *cobra.Command {
	return nil // websocket endpoint, no CLI form
}
