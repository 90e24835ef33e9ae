package endpoints

import (
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwieland/lectern/internal/api"
	"github.com/mwieland/lectern/web"
)

// StaticEndpoint serves the embedded client assets under /assets/ and
// redirects the root to the reading view.
type StaticEndpoint struct{}

var _ api.Endpoint = (*StaticEndpoint)(nil)

func (e *StaticEndpoint) Route() (string, string, http.HandlerFunc) {
	// Go 1.22 wildcard pattern catches all unmatched GET requests.
	return "GET", "/{path...}", e.handler
}

func (e *StaticEndpoint) RequiresInit() bool { return false }

func (e *StaticEndpoint) Command(_ func() string) *cobra.Command {
	return nil // No CLI command for static files
}

func (e *StaticEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" {
		// Preserve a deep-link query string across the redirect.
		target := "/read"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	distFS, err := web.DistFS()
	if err != nil {
		http.Error(w, "assets not available", http.StatusInternalServerError)
		return
	}

	assetPath := strings.TrimPrefix(path, "assets/")
	file, err := distFS.Open(assetPath)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	file.Close()

	r.URL.Path = "/" + assetPath
	http.FileServer(http.FS(distFS)).ServeHTTP(w, r)
}
