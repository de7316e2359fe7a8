// Package company exposes company registration and lookup endpoints.
package company

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"sme_platform/pkg/core/pipeline"
	"sme_platform/pkg/core/search"
	"sme_platform/pkg/core/store"
	"sme_platform/pkg/models"
)

// Handler holds dependencies for company endpoints
type Handler struct {
	Orch  *pipeline.Orchestrator
	Repo  store.Repository
	Index *search.Index // nil disables search indexing
}

func NewHandler(orch *pipeline.Orchestrator, repo store.Repository, index *search.Index) *Handler {
	return &Handler{Orch: orch, Repo: repo, Index: index}
}

type createRequest struct {
	Name               string   `json:"name"`
	Industry           string   `json:"industry"`
	RegistrationNumber string   `json:"registration_number"`
	GSTNumber          string   `json:"gst_number"`
	PANNumber          string   `json:"pan_number"`
	AnnualRevenue      *float64 `json:"annual_revenue"`
	EmployeeCount      int      `json:"employee_count"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
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

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	company, err := h.Orch.RegisterCompany(r.Context(), &models.Company{
		Name:               req.Name,
		Industry:           models.Industry(req.Industry),
		RegistrationNumber: req.RegistrationNumber,
		GSTNumber:          req.GSTNumber,
		PANNumber:          req.PANNumber,
		AnnualRevenue:      req.AnnualRevenue,
		EmployeeCount:      req.EmployeeCount,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.Index != nil {
		if err := h.Index.Add(company); err != nil {
			fmt.Printf("[COMPANY] search index update failed: %v\n", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(company)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	companies, err := h.Repo.ListCompanies(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(companies)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	company, err := h.Repo.GetCompany(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Company not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(company)
}
