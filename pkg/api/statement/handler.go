// Package statement exposes statement upload and processing endpoints.
package statement

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sme_platform/pkg/core/pipeline"
	"sme_platform/pkg/models"
)

// Handler holds dependencies for statement endpoints
type Handler struct {
	Orch *pipeline.Orchestrator
}

func NewHandler(orch *pipeline.Orchestrator) *Handler {
	return &Handler{Orch: orch}
}

// fileTypeFor maps an upload filename to a statement format.
func fileTypeFor(filename string) (models.FileType, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return models.FileTypeCSV, true
	case ".xlsx":
		return models.FileTypeXLSX, true
	case ".html", ".htm":
		return models.FileTypeHTML, true
	}
	return "", false
}

// HandleUpload accepts a multipart file upload and runs the full
// processing pipeline. Fields: company_id, file, and optional
// period_start/period_end dates (2006-01-02) for the statement period.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers
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

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	companyID := r.FormValue("company_id")
	if companyID == "" {
		http.Error(w, "company_id is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileType, ok := fileTypeFor(header.Filename)
	if !ok {
		http.Error(w, "Unsupported file type (csv, xlsx, html)", http.StatusBadRequest)
		return
	}

	periodStart, err := parseDateField(r.FormValue("period_start"))
	if err != nil {
		http.Error(w, "period_start must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	periodEnd, err := parseDateField(r.FormValue("period_end"))
	if err != nil {
		http.Error(w, "period_end must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	// Spool the upload so the parsers can work from a path.
	tmp, err := os.CreateTemp("", "statement-*"+filepath.Ext(header.Filename))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	tmp.Close()

	metrics, err := h.Orch.ProcessUpload(r.Context(), companyID, tmp.Name(), fileType, periodStart, periodEnd)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

type processRequest struct {
	CompanyID       string `json:"company_id"`
	FinancialDataID string `json:"financial_data_id"`
}

// HandleProcess recomputes metrics for an already-stored statement.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
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

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	metrics, err := h.Orch.ProcessStatement(r.Context(), req.CompanyID, req.FinancialDataID)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

// parseDateField reads an optional YYYY-MM-DD form value; empty means
// the pipeline picks its defaults.
func parseDateField(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}

func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrCompanyNotFound):
		http.Error(w, "Company not found", http.StatusNotFound)
	case errors.Is(err, pipeline.ErrEmptyStatement):
		http.Error(w, "Statement contains no data", http.StatusUnprocessableEntity)
	case errors.Is(err, pipeline.ErrNoMetrics):
		http.Error(w, "No metrics computed yet", http.StatusConflict)
	default:
		fmt.Printf("[STATEMENT] pipeline error: %v\n", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
