// Package site handles the embedded landing page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded landing page routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded landing page at root /
	files := http.FileServer(FS())
	mux.Handle("/", files)
}
