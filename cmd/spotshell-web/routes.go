package main

import (
	"net/http"

	spotshell "github.com/spotshell/spotshell"
)

// newRouter sets up all routes using Go 1.22+ enhanced routing.
func newRouter(engine *spotshell.Engine) http.Handler {
	mux := http.NewServeMux()

	h := &handlers{engine: engine}

	mux.HandleFunc("POST /api/classify", h.handleClassify)

	mux.HandleFunc("GET /api/config", h.handleConfigGet)
	mux.HandleFunc("POST /api/config", h.handleConfigImport)
	mux.HandleFunc("DELETE /api/config", h.handleConfigClear)
	mux.HandleFunc("GET /api/config/export", h.handleConfigExport)

	mux.HandleFunc("GET /api/presets", h.handlePresetList)
	mux.HandleFunc("POST /api/presets/load", h.handlePresetLoad)

	mux.HandleFunc("GET /api/storage/health", h.handleStorageHealth)

	return mux
}
