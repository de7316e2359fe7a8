// Package searchapi exposes full-text company search and industry
// benchmark lookup.
package searchapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sme_platform/pkg/core/benchmark"
	"sme_platform/pkg/core/search"
	"sme_platform/pkg/models"
)

// Handler holds dependencies for search and benchmark endpoints
type Handler struct {
	Index      *search.Index
	Benchmarks benchmark.Source
}

func NewHandler(index *search.Index, benchmarks benchmark.Source) *Handler {
	return &Handler{Index: index, Benchmarks: benchmarks}
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "q is required", http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	hits, err := h.Index.Query(q, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if hits == nil {
		hits = []search.Hit{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hits)
}

func (h *Handler) HandleBenchmark(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	industry := r.URL.Query().Get("industry")
	if industry == "" {
		http.Error(w, "industry is required", http.StatusBadRequest)
		return
	}

	b, err := h.Benchmarks.Lookup(r.Context(), models.Industry(industry))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if b == nil {
		http.Error(w, "No benchmark for industry", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}
