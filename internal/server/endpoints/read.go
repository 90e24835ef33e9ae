package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mwieland/lectern/internal/api"
	"github.com/mwieland/lectern/internal/reader"
	"github.com/mwieland/lectern/internal/render"
	"github.com/mwieland/lectern/internal/svcctx"
)

// ReadEndpoint handles GET /read, the server-rendered reading view.
type ReadEndpoint struct {
	// SocketPath is the websocket endpoint advertised to the client.
	SocketPath string
}

var _ api.Endpoint = (*ReadEndpoint)(nil)

func (e *ReadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/read", e.handler
}

func (e *ReadEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Reading view
//	@Description	Render the catechism reading view for a page. A missing or
//	@Description	unparsable page parameter silently falls back to page 1;
//	@Description	out-of-range pages are clamped.
//	@Tags			reader
//	@Produce		html
//	@Param			page	query	int	false	"Page (Lord's Day) number"
//	@Success		200		{string}	string
//	@Router			/read [get]
func (e *ReadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cat := svcctx.CatalogFrom(r.Context())
	rend := svcctx.RendererFrom(r.Context())
	if cat == nil || rend == nil {
		writeError(w, http.StatusServiceUnavailable, "reader not initialized")
		return
	}

	page := reader.ParsePage(r.URL.Query().Get("page"), cat.MaxPage())

	cfg := render.ClientConfig{SocketPath: e.SocketPath}
	if cm := svcctx.ConfigMgrFrom(r.Context()); cm != nil {
		rc := cm.Get().Reader
		cfg.HysteresisPages = rc.HysteresisPages
		cfg.IntersectThreshold = rc.IntersectThreshold
		cfg.IntersectMarginPx = rc.IntersectMarginPx
		cfg.DebounceMs = rc.DebounceMs
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rend.ReadingPage(w, page.Int(), cfg); err != nil {
		svcctx.LoggerFrom(r.Context()).Error("failed to render reading view",
			"page", page.Int(), "error", err)
	}
}

func (e *ReadEndpoint) Command(_ func() string) *cobra.Command {
	return nil // HTML view, no CLI form
}
