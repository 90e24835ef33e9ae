// Package render produces the server-side reading view. Every renderable
// section becomes one identified DOM region the client observer can watch.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/mwieland/lectern/internal/catechism"
)

//go:embed templates
var templateFS embed.FS

// ClientConfig is the tuning blob embedded in the page for reader.js.
type ClientConfig struct {
	MaxPage            int     `json:"maxPage"`
	HysteresisPages    int     `json:"hysteresisPages"`
	IntersectThreshold float64 `json:"intersectThreshold"`
	IntersectMarginPx  int     `json:"intersectMarginPx"`
	DebounceMs         int     `json:"debounceMs"`
	// SocketPath is the websocket endpoint for the reading session.
	SocketPath string `json:"socketPath"`
	// ResumeKey is the local-storage key for the non-authoritative
	// resume hint.
	ResumeKey string `json:"resumeKey"`
}

// DefaultResumeKey for the client-side resume hint.
const DefaultResumeKey = "lectern.last_page"

// Renderer renders reading pages from a catalog.
type Renderer struct {
	catalog *catechism.Catalog
	tmpl    *template.Template
}

// New creates a renderer over the given catalog.
func New(catalog *catechism.Catalog) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{catalog: catalog, tmpl: tmpl}, nil
}

// readingData is the template payload for the reading view.
type readingData struct {
	Page       int
	MaxPage    int
	PartName   string
	Sections   []catechism.Section
	ConfigJSON template.JS
}

// ReadingPage writes the reading view for a page: the full content grouping
// the page belongs to, the progress slider, and the client config blob.
func (r *Renderer) ReadingPage(w io.Writer, page int, cfg ClientConfig) error {
	sections := r.catalog.Renderable(page)
	if len(sections) == 0 {
		return fmt.Errorf("no renderable sections for page %d", page)
	}

	cfg.MaxPage = r.catalog.MaxPage()
	if cfg.HysteresisPages <= 0 {
		cfg.HysteresisPages = 1
	}
	if cfg.ResumeKey == "" {
		cfg.ResumeKey = DefaultResumeKey
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal client config: %w", err)
	}

	data := readingData{
		Page:       page,
		MaxPage:    r.catalog.MaxPage(),
		PartName:   catechism.PartFor(page).LongName(),
		Sections:   sections,
		ConfigJSON: template.JS(cfgJSON),
	}
	if err := r.tmpl.ExecuteTemplate(w, "reading.html.tmpl", data); err != nil {
		return fmt.Errorf("failed to render reading view: %w", err)
	}
	return nil
}
