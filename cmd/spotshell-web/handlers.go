package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	spotshell "github.com/spotshell/spotshell"
)

// maxImportSize bounds how large an imported configuration document may be.
const maxImportSize = 10 << 20 // 10 MiB

// handlers holds dependencies for all HTTP handler methods.
type handlers struct {
	engine *spotshell.Engine
}

// jsonResponse sends a standard JSON response
func jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse sends a standard error response
func errorResponse(w http.ResponseWriter, status int, msg string) {
	jsonResponse(w, status, map[string]interface{}{"error": msg})
}

// classifyError marks classification-path errors so clients know the
// heuristic path applies on their side too.
func classifyError(w http.ResponseWriter, status int, msg string) {
	jsonResponse(w, status, map[string]interface{}{"error": msg, "fallback": true})
}

// handleClassify classifies one question against the supplied model list.
// The response is always a usable classification unless the request itself
// is malformed.
func (h *handlers) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question        string          `json:"question"`
		AvailableModels json.RawMessage `json:"availableModels"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		classifyError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		classifyError(w, http.StatusBadRequest, "question is required")
		return
	}

	var models []spotshell.ModelDescriptor
	if len(req.AvailableModels) > 0 && string(req.AvailableModels) != "null" {
		if err := json.Unmarshal(req.AvailableModels, &models); err != nil {
			classifyError(w, http.StatusBadRequest, "availableModels must be an array")
			return
		}
	}

	result := h.engine.Classify(r.Context(), req.Question, models)

	// A credential-category fallback means no backend is usable at all;
	// surface that as a server error but still include the verdict.
	if strings.Contains(result.Reasoning, "credential") {
		jsonResponse(w, http.StatusInternalServerError, map[string]interface{}{
			"error":          "classification backend has no usable credential",
			"fallback":       true,
			"classification": result,
		})
		return
	}

	jsonResponse(w, http.StatusOK, result)
}

func (h *handlers) handleConfigGet(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.engine.Current())
}

// handleConfigImport replaces the configuration with the posted document.
// Rejections name the failing field.
func (h *handlers) handleConfigImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	rep, err := h.engine.ImportBytes(body)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, rep)
}

func (h *handlers) handleConfigClear(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.ClearAll(); err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *handlers) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	filename, data, err := h.engine.Export(r.URL.Query().Get("name"))
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *handlers) handlePresetList(w http.ResponseWriter, r *http.Request) {
	files, err := h.engine.ListPresets(r.Context())
	if err != nil {
		errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, files)
}

func (h *handlers) handlePresetLoad(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		errorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	rep, err := h.engine.LoadPreset(r.Context(), req.Name)
	if err != nil {
		var le *spotshell.LoadError
		if errors.As(err, &le) && le.Kind == spotshell.NetworkFailure {
			errorResponse(w, http.StatusBadGateway, err.Error())
			return
		}
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, rep)
}

func (h *handlers) handleStorageHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.engine.StorageHealth())
}
