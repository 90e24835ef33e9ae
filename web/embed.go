// Package web provides embedded frontend assets for the Lectern reader.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:dist
var distFS embed.FS

// DistFS returns the embedded frontend assets as a filesystem.
// The returned FS has "dist" as the root, so files are accessed directly
// (e.g., "reader.js" not "dist/reader.js").
func DistFS() (fs.FS, error) {
	return fs.Sub(distFS, "dist")
}
