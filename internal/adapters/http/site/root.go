// Package site serves the welcome page that points readers at the API docs.
package site

import (
	"context"
	"net/http"

	"github.com/okian/coinrng/internal/adapters/http/middleware"
)

// Register attaches the welcome page to mux at exactly "/".
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /{$}", middleware.Metrics(NewRootHandler().HandleRoot, "root"))
}

// RootHandler handles root path requests
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests with the static welcome page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}
