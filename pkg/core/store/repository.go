package store

import (
	"context"
	"errors"

	"sme_platform/pkg/models"
)

// ErrNotFound reports a lookup that matched nothing. Callers branch on
// it with errors.Is.
var ErrNotFound = errors.New("not found")

// Repository is the persistence boundary for the platform. Writes are
// append-only; "latest" reads resolve by insertion time.
type Repository interface {
	SaveCompany(ctx context.Context, c *models.Company) error
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)

	SaveFinancialData(ctx context.Context, d *models.FinancialData) error
	GetFinancialData(ctx context.Context, id string) (*models.FinancialData, error)
	RecentFinancialData(ctx context.Context, companyID string, limit int) ([]models.FinancialData, error)

	SaveMetrics(ctx context.Context, m *models.FinancialMetrics) error
	LatestMetrics(ctx context.Context, companyID string) (*models.FinancialMetrics, error)

	SaveAssessment(ctx context.Context, a *models.CreditAssessment) error
	LatestAssessment(ctx context.Context, companyID string) (*models.CreditAssessment, error)

	SaveRecommendations(ctx context.Context, recs []models.Recommendation) error
	ListRecommendations(ctx context.Context, companyID string) ([]models.Recommendation, error)

	SaveForecast(ctx context.Context, f *models.Forecast) error
	ListForecasts(ctx context.Context, companyID string) ([]models.Forecast, error)

	SaveBenchmark(ctx context.Context, b *models.IndustryBenchmark) error
	GetBenchmark(ctx context.Context, industry models.Industry) (*models.IndustryBenchmark, error)
}
