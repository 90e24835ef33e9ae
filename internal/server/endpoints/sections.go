package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mwieland/lectern/internal/api"
	"github.com/mwieland/lectern/internal/catechism"
	"github.com/mwieland/lectern/internal/svcctx"
)

// SectionSummary is a brief listing entry for one Lord's Day.
type SectionSummary struct {
	Number    int    `json:"number"`
	Part      string `json:"part"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
}

// ListSectionsResponse is the response for listing sections.
type ListSectionsResponse struct {
	Sections []SectionSummary `json:"sections"`
	MaxPage  int              `json:"max_page"`
}

// ListSectionsEndpoint handles GET /api/sections.
type ListSectionsEndpoint struct{}

var _ api.Endpoint = (*ListSectionsEndpoint)(nil)

func (e *ListSectionsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/sections", e.handler
}

func (e *ListSectionsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List sections
//	@Description	List all catechism sections with part and title
//	@Tags			sections
//	@Produce		json
//	@Success		200	{object}	ListSectionsResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/sections [get]
func (e *ListSectionsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cat := svcctx.CatalogFrom(r.Context())
	if cat == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not initialized")
		return
	}

	sections := cat.Sections()
	resp := ListSectionsResponse{
		Sections: make([]SectionSummary, 0, len(sections)),
		MaxPage:  cat.MaxPage(),
	}
	for _, s := range sections {
		resp.Sections = append(resp.Sections, SectionSummary{
			Number:    s.Number,
			Part:      string(s.Part),
			Title:     s.Title,
			Questions: len(s.Questions),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *ListSectionsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List catechism sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListSectionsResponse
			if err := client.Get(cmd.Context(), "/api/sections", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetSectionEndpoint handles GET /api/sections/{num}.
type GetSectionEndpoint struct{}

var _ api.Endpoint = (*GetSectionEndpoint)(nil)

func (e *GetSectionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/sections/{num}", e.handler
}

func (e *GetSectionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get section
//	@Description	Get one Lord's Day with its questions and answers
//	@Tags			sections
//	@Produce		json
//	@Param			num	path		int	true	"Section (Lord's Day) number"
//	@Success		200	{object}	catechism.Section
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/sections/{num} [get]
func (e *GetSectionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cat := svcctx.CatalogFrom(r.Context())
	if cat == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not initialized")
		return
	}

	num, err := strconv.Atoi(r.PathValue("num"))
	if err != nil || num < 1 {
		writeError(w, http.StatusBadRequest, "num must be a positive integer")
		return
	}

	section, ok := cat.Section(num)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("section %d not found", num))
		return
	}

	writeJSON(w, http.StatusOK, section)
}

func (e *GetSectionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "section <num>",
		Short: "Show one Lord's Day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp catechism.Section
			if err := client.Get(cmd.Context(), "/api/sections/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
