package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mwieland/lectern/internal/api"
	"github.com/mwieland/lectern/internal/svcctx"
)

// ReaderConfigResponse exposes the sync tuning the client observer uses.
type ReaderConfigResponse struct {
	MaxPage            int     `json:"max_page"`
	HysteresisPages    int     `json:"hysteresis_pages"`
	DebounceMs         int     `json:"debounce_ms"`
	IntersectThreshold float64 `json:"intersect_threshold"`
	IntersectMarginPx  int     `json:"intersect_margin_px"`
}

// ReaderConfigEndpoint handles GET /api/reader/config.
type ReaderConfigEndpoint struct{}

var _ api.Endpoint = (*ReaderConfigEndpoint)(nil)

func (e *ReaderConfigEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/reader/config", e.handler
}

func (e *ReaderConfigEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Reader configuration
//	@Description	Current scroll-sync tuning parameters
//	@Tags			reader
//	@Produce		json
//	@Success		200	{object}	ReaderConfigResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/reader/config [get]
func (e *ReaderConfigEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cat := svcctx.CatalogFrom(r.Context())
	cm := svcctx.ConfigMgrFrom(r.Context())
	if cat == nil || cm == nil {
		writeError(w, http.StatusServiceUnavailable, "reader not initialized")
		return
	}

	rc := cm.Get().Reader
	writeJSON(w, http.StatusOK, ReaderConfigResponse{
		MaxPage:            cat.MaxPage(),
		HysteresisPages:    rc.HysteresisPages,
		DebounceMs:         rc.DebounceMs,
		IntersectThreshold: rc.IntersectThreshold,
		IntersectMarginPx:  rc.IntersectMarginPx,
	})
}

func (e *ReaderConfigEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show reader sync configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ReaderConfigResponse
			if err := client.Get(cmd.Context(), "/api/reader/config", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
