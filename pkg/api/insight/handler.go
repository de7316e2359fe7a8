// Package insight exposes the analysis endpoints: latest metrics,
// credit assessment, recommendations and forecasts.
package insight

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"sme_platform/pkg/core/pipeline"
	"sme_platform/pkg/core/store"
	"sme_platform/pkg/models"
)

// Handler holds dependencies for insight endpoints
type Handler struct {
	Orch *pipeline.Orchestrator
	Repo store.Repository
}

func NewHandler(orch *pipeline.Orchestrator, repo store.Repository) *Handler {
	return &Handler{Orch: orch, Repo: repo}
}

func (h *Handler) HandleLatestMetrics(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		http.Error(w, "company_id is required", http.StatusBadRequest)
		return
	}

	metrics, err := h.Repo.LatestMetrics(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "No metrics computed yet", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

type assessRequest struct {
	CompanyID string `json:"company_id"`
}

func (h *Handler) HandleAssessCredit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	assessment, err := h.Orch.AssessCredit(r.Context(), req.CompanyID)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assessment)
}

type recommendRequest struct {
	CompanyID string `json:"company_id"`
	Language  string `json:"language"`
}

func (h *Handler) HandleGenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	recs, err := h.Orch.GenerateRecommendations(r.Context(), req.CompanyID, req.Language)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recs)
}

type forecastRequest struct {
	CompanyID string `json:"company_id"`
	Months    int    `json:"months"`
	Language  string `json:"language"`
}

func (h *Handler) HandleGenerateForecasts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req forecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Months <= 0 {
		req.Months = 12
	}
	if req.Language == "" {
		req.Language = "en"
	}

	forecasts, err := h.Orch.GenerateForecasts(r.Context(), req.CompanyID, req.Months, req.Language)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(forecasts)
}

func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrCompanyNotFound):
		http.Error(w, "Company not found", http.StatusNotFound)
	case errors.Is(err, pipeline.ErrNoMetrics):
		http.Error(w, "No metrics computed yet", http.StatusConflict)
	default:
		fmt.Printf("[INSIGHT] pipeline error: %v\n", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
