package site

import (
	"embed"
	"io/fs"
)

//go:embed static/index.html
var staticFS embed.FS

// indexPage is the welcome page served at GET /.
var indexPage = mustRead(staticFS, "static/index.html")

func mustRead(fsys fs.FS, name string) []byte {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		// Unreachable unless the embed directive and name drift apart.
		panic(err)
	}
	return b
}
