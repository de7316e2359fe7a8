// Package reportapi serves the assembled financial health report.
package reportapi

import (
	"errors"
	"net/http"

	"sme_platform/pkg/core/pipeline"
	"sme_platform/pkg/core/report"
)

// Handler holds dependencies for report endpoints
type Handler struct {
	Orch *pipeline.Orchestrator
}

func NewHandler(orch *pipeline.Orchestrator) *Handler {
	return &Handler{Orch: orch}
}

// HandleReport renders the report as Markdown or HTML.
// Query params: company_id, language (en|hi), format (md|html).
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		http.Error(w, "company_id is required", http.StatusBadRequest)
		return
	}
	language := r.URL.Query().Get("language")
	if language == "" {
		language = "en"
	}

	md, err := h.Orch.BuildReport(r.Context(), companyID, language)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrCompanyNotFound):
			http.Error(w, "Company not found", http.StatusNotFound)
		case errors.Is(err, pipeline.ErrNoMetrics):
			http.Error(w, "No metrics computed yet", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if r.URL.Query().Get("format") == "html" {
		html, err := report.RenderHTML(md)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(md))
}
