package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dshills/healthmetrics/internal/metric"
	"github.com/dshills/healthmetrics/internal/render"
)

// LookupResponse is the body of GET /api/metrics/{metricID}.
type LookupResponse struct {
	CategoryID metric.CategoryID `json:"categoryId"`
	DataTypeID metric.DataTypeID `json:"dataTypeId"`
	Kind       metric.Kind       `json:"kind"`
	Path       string            `json:"path,omitempty"`
	Metric     metric.Record     `json:"metric"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := h.registry.Categories()
	out := make([]metric.CategoryRecord, 0, len(cats))
	for i := range cats {
		out = append(out, cats[i].Record())
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleDataType(w http.ResponseWriter, r *http.Request) {
	categoryID := metric.CategoryID(chi.URLParam(r, "categoryID"))
	dataTypeID := metric.DataTypeID(chi.URLParam(r, "dataTypeID"))
	dt, ok := h.registry.DataType(categoryID, dataTypeID)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown data type %s/%s", categoryID, dataTypeID))
		return
	}
	writeJSON(w, http.StatusOK, dt.Record())
}

func (h *Handler) handleMetric(w http.ResponseWriter, r *http.Request) {
	categoryID := metric.CategoryID(chi.URLParam(r, "categoryID"))
	dataTypeID := metric.DataTypeID(chi.URLParam(r, "dataTypeID"))
	kind := metric.Kind(chi.URLParam(r, "kind"))
	if _, ok := h.registry.DataType(categoryID, dataTypeID); !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown data type %s/%s", categoryID, dataTypeID))
		return
	}
	m, ok := h.registry.Metric(categoryID, dataTypeID, kind)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("data type %s/%s has no %s metric", categoryID, dataTypeID, kind))
		return
	}
	writeJSON(w, http.StatusOK, metric.ToRecord(m))
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	id := metric.ID(chi.URLParam(r, "metricID"))
	e, ok := h.registry.Lookup(id)
	h.metrics.IncrementLookup(ok)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown metric %s", id))
		return
	}
	writeJSON(w, http.StatusOK, LookupResponse{
		CategoryID: e.Category.ID,
		DataTypeID: e.DataType.DataTypeID,
		Kind:       e.Kind,
		Path:       e.Path,
		Metric:     metric.ToRecord(e.Metric),
	})
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	rd, err := render.NewRenderer(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := rd.Render(h.report)
	if err != nil {
		h.logger.Error("rendering report", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}
	writeBytes(w, contentType(format), out)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	ex, err := render.NewExporter(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := ex.Export(h.registry)
	if err != nil {
		h.logger.Error("exporting registry", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to export registry")
		return
	}
	writeBytes(w, contentType(format), out)
}

func (h *Handler) handleMenu(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, h.menu)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.menu.WriteHTML(w); err != nil {
		h.logger.Error("rendering menu", "err", err)
	}
}

func contentType(format string) string {
	switch format {
	case "md":
		return "text/markdown; charset=utf-8"
	case "yaml", "yml":
		return "application/yaml"
	}
	return "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
