package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"archcanvas/internal/codec"
	"archcanvas/internal/domain"
	"archcanvas/internal/render"
	"archcanvas/internal/session"
)

// maxEventBody bounds a single POST /api/events body
const maxEventBody = 1 << 20

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RouteResponse is returned by GET /api/route
type RouteResponse struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Path string `json:"path"`
}

// CanvasHandler handles canvas API requests
type CanvasHandler struct {
	sess     *session.Session
	snapshot render.Options
}

// NewCanvasHandler creates a new canvas handler
func NewCanvasHandler(sess *session.Session, snapshot render.Options) *CanvasHandler {
	return &CanvasHandler{sess: sess, snapshot: snapshot}
}

// Register mounts the canvas routes on mux
func (h *CanvasHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/frame", h.GetFrame)
	mux.HandleFunc("POST /api/events", h.PostEvents)
	mux.HandleFunc("GET /api/route", h.GetRoute)
	mux.HandleFunc("POST /api/reset", h.Reset)
	mux.HandleFunc("GET /api/export/yaml", h.ExportYAML)
	mux.HandleFunc("GET /api/export/json", h.ExportJSON)
	mux.HandleFunc("GET /api/export/png", h.ExportPNG)
}

// GetFrame returns the current frame
func (h *CanvasHandler) GetFrame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.sess.Frame(), http.StatusOK)
}

// PostEvents applies a batch of input events and returns the resulting frame
func (h *CanvasHandler) PostEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBody))
	if err != nil {
		writeError(w, "Failed to read request body", err.Error(), http.StatusBadRequest)
		return
	}

	inputs, err := decodeInputs(body)
	if err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	frame, err := h.sess.Dispatch(inputs...)
	if err != nil {
		writeError(w, "Invalid input event", err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, frame, http.StatusOK)
}

// GetRoute returns the connector path between two card indices
func (h *CanvasHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	from, err := strconv.Atoi(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, "Invalid from index", err.Error(), http.StatusBadRequest)
		return
	}
	to, err := strconv.Atoi(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, "Invalid to index", err.Error(), http.StatusBadRequest)
		return
	}

	path, err := h.sess.Route(from, to)
	if err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		writeError(w, "Failed to route connector", err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, RouteResponse{From: from, To: to, Path: path}, http.StatusOK)
}

// Reset discards drags and viewport changes
func (h *CanvasHandler) Reset(w http.ResponseWriter, r *http.Request) {
	frame, err := h.sess.Reset()
	if err != nil {
		log.Printf("Failed to reset canvas: %v", err)
		writeError(w, "Failed to reset canvas", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, frame, http.StatusOK)
}

// ExportYAML exports the current layout as YAML
func (h *CanvasHandler) ExportYAML(w http.ResponseWriter, r *http.Request) {
	h.exportLayout(w, "yaml", "application/x-yaml")
}

// ExportJSON exports the current layout as JSON
func (h *CanvasHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.exportLayout(w, "json", "application/json")
}

func (h *CanvasHandler) exportLayout(w http.ResponseWriter, format, contentType string) {
	c, err := codec.ForFormat(format)
	if err != nil {
		writeError(w, "Unsupported format", err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := c.Export(h.sess.Layout(), &buf); err != nil {
		log.Printf("Failed to export %s: %v", format, err)
		writeError(w, "Failed to export layout", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=layout.%s", format))
	w.Write(buf.Bytes())
}

// ExportPNG renders a snapshot of the current layout
func (h *CanvasHandler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := render.PNG(&buf, h.sess.Frame(), h.snapshot); err != nil {
		if errors.Is(err, render.ErrEmptyFrame) {
			writeError(w, "Nothing to export", err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, render.ErrTooLarge) {
			writeError(w, "Layout too large to snapshot", err.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.Printf("Failed to render snapshot: %v", err)
		writeError(w, "Failed to render snapshot", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// decodeInputs accepts either a JSON array of inputs or a single object
func decodeInputs(data []byte) ([]session.Input, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	if data[0] == '[' {
		var inputs []session.Input
		if err := json.Unmarshal(data, &inputs); err != nil {
			return nil, err
		}
		return inputs, nil
	}

	var in session.Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	return []session.Input{in}, nil
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
