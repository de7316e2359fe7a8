package store

import (
	"context"
	"sort"
	"sync"

	"sme_platform/pkg/models"
)

// MemoryRepo keeps everything in process memory. Used in tests and
// when no database URL is configured. Same append-only and read
// semantics as the Postgres repo.
type MemoryRepo struct {
	mu sync.RWMutex

	companies       map[string]models.Company
	companyOrder    []string
	financialData   []models.FinancialData
	metrics         []models.FinancialMetrics
	assessments     []models.CreditAssessment
	recommendations []models.Recommendation
	forecasts       []models.Forecast
	benchmarks      map[models.Industry]models.IndustryBenchmark
}

var _ Repository = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		companies:  map[string]models.Company{},
		benchmarks: map[models.Industry]models.IndustryBenchmark{},
	}
}

func (r *MemoryRepo) SaveCompany(_ context.Context, c *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.companies[c.ID]; !exists {
		r.companyOrder = append(r.companyOrder, c.ID)
	}
	r.companies[c.ID] = *c
	return nil
}

func (r *MemoryRepo) GetCompany(_ context.Context, id string) (*models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *MemoryRepo) ListCompanies(_ context.Context) ([]models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Company, 0, len(r.companyOrder))
	for _, id := range r.companyOrder {
		out = append(out, r.companies[id])
	}
	return out, nil
}

func (r *MemoryRepo) SaveFinancialData(_ context.Context, d *models.FinancialData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.financialData = append(r.financialData, *d)
	return nil
}

func (r *MemoryRepo) GetFinancialData(_ context.Context, id string) (*models.FinancialData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.financialData {
		if r.financialData[i].ID == id {
			d := r.financialData[i]
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

// RecentFinancialData matches the Postgres query: processed statements
// only, newest period first, ties broken by most recent upload.
func (r *MemoryRepo) RecentFinancialData(_ context.Context, companyID string, limit int) ([]models.FinancialData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 {
		limit = 12
	}
	var out []models.FinancialData
	for i := len(r.financialData) - 1; i >= 0; i-- {
		if r.financialData[i].CompanyID == companyID && r.financialData[i].Processed {
			out = append(out, r.financialData[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PeriodEnd.After(out[j].PeriodEnd)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) SaveMetrics(_ context.Context, m *models.FinancialMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append(r.metrics, *m)
	return nil
}

func (r *MemoryRepo) LatestMetrics(_ context.Context, companyID string) (*models.FinancialMetrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.metrics) - 1; i >= 0; i-- {
		if r.metrics[i].CompanyID == companyID {
			m := r.metrics[i]
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepo) SaveAssessment(_ context.Context, a *models.CreditAssessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assessments = append(r.assessments, *a)
	return nil
}

func (r *MemoryRepo) LatestAssessment(_ context.Context, companyID string) (*models.CreditAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.assessments) - 1; i >= 0; i-- {
		if r.assessments[i].CompanyID == companyID {
			a := r.assessments[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepo) SaveRecommendations(_ context.Context, recs []models.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recommendations = append(r.recommendations, recs...)
	return nil
}

func (r *MemoryRepo) ListRecommendations(_ context.Context, companyID string) ([]models.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Recommendation
	for _, rec := range r.recommendations {
		if rec.CompanyID == companyID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemoryRepo) SaveForecast(_ context.Context, f *models.Forecast) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forecasts = append(r.forecasts, *f)
	return nil
}

func (r *MemoryRepo) ListForecasts(_ context.Context, companyID string) ([]models.Forecast, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Forecast
	for _, f := range r.forecasts {
		if f.CompanyID == companyID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *MemoryRepo) SaveBenchmark(_ context.Context, b *models.IndustryBenchmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.benchmarks[b.Industry] = *b
	return nil
}

func (r *MemoryRepo) GetBenchmark(_ context.Context, industry models.Industry) (*models.IndustryBenchmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.benchmarks[industry]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}
