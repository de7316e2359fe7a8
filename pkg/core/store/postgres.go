package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sme_platform/pkg/models"
)

// PostgresRepo persists every entity as a JSONB blob beside the key
// columns queries filter on. The blob is the source of truth; key
// columns exist for indexing only.
type PostgresRepo struct{}

var _ Repository = (*PostgresRepo)(nil)

func NewPostgresRepo() *PostgresRepo {
	return &PostgresRepo{}
}

func (r *PostgresRepo) SaveCompany(ctx context.Context, c *models.Company) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal company: %w", err)
	}

	query := `
		INSERT INTO companies (id, name, industry, company_json, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			industry = EXCLUDED.industry,
			company_json = EXCLUDED.company_json;
	`
	if _, err := pool.Exec(ctx, query, c.ID, c.Name, c.Industry, jsonData, c.CreatedAt); err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	if err := r.queryOne(ctx, &c, `SELECT company_json FROM companies WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepo) ListCompanies(ctx context.Context) ([]models.Company, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `SELECT company_json FROM companies ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, err
		}
		var c models.Company
		if err := json.Unmarshal(jsonData, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *PostgresRepo) SaveFinancialData(ctx context.Context, d *models.FinancialData) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal financial data: %w", err)
	}

	query := `
		INSERT INTO financial_data (id, company_id, data_json, period_start, period_end, processed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := pool.Exec(ctx, query, d.ID, d.CompanyID, jsonData, d.PeriodStart, d.PeriodEnd, d.Processed, d.UploadedAt); err != nil {
		return fmt.Errorf("failed to save financial data: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetFinancialData(ctx context.Context, id string) (*models.FinancialData, error) {
	var d models.FinancialData
	if err := r.queryOne(ctx, &d, `SELECT data_json FROM financial_data WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &d, nil
}

// RecentFinancialData returns the most recent processed statements for
// a company, newest period first. Uploads arriving out of period order
// still sort by period_end.
func (r *PostgresRepo) RecentFinancialData(ctx context.Context, companyID string, limit int) ([]models.FinancialData, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 12
	}

	query := `
		SELECT data_json FROM financial_data
		WHERE company_id = $1 AND processed
		ORDER BY period_end DESC, created_at DESC
		LIMIT $2;
	`
	rows, err := pool.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list financial data: %w", err)
	}
	defer rows.Close()

	var out []models.FinancialData
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, err
		}
		var d models.FinancialData
		if err := json.Unmarshal(jsonData, &d); err != nil {
			return nil, fmt.Errorf("failed to unmarshal financial data: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) SaveMetrics(ctx context.Context, m *models.FinancialMetrics) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	query := `
		INSERT INTO financial_metrics (id, company_id, financial_data_id, metrics_json, health_score, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := pool.Exec(ctx, query, m.ID, m.CompanyID, m.FinancialDataID, jsonData, m.HealthScore, m.CalculatedAt); err != nil {
		return fmt.Errorf("failed to save metrics: %w", err)
	}
	return nil
}

func (r *PostgresRepo) LatestMetrics(ctx context.Context, companyID string) (*models.FinancialMetrics, error) {
	var m models.FinancialMetrics
	query := `
		SELECT metrics_json FROM financial_metrics
		WHERE company_id = $1
		ORDER BY calculated_at DESC
		LIMIT 1;
	`
	if err := r.queryOne(ctx, &m, query, companyID); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepo) SaveAssessment(ctx context.Context, a *models.CreditAssessment) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	query := `
		INSERT INTO credit_assessments (id, company_id, assessment_json, assessed_at)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := pool.Exec(ctx, query, a.ID, a.CompanyID, jsonData, a.AssessedAt); err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

func (r *PostgresRepo) LatestAssessment(ctx context.Context, companyID string) (*models.CreditAssessment, error) {
	var a models.CreditAssessment
	query := `
		SELECT assessment_json FROM credit_assessments
		WHERE company_id = $1
		ORDER BY assessed_at DESC
		LIMIT 1;
	`
	if err := r.queryOne(ctx, &a, query, companyID); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepo) SaveRecommendations(ctx context.Context, recs []models.Recommendation) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	query := `
		INSERT INTO recommendations (id, company_id, recommendation_json, created_at)
		VALUES ($1, $2, $3, $4);
	`
	for i := range recs {
		jsonData, err := json.Marshal(&recs[i])
		if err != nil {
			return fmt.Errorf("failed to marshal recommendation: %w", err)
		}
		if _, err := pool.Exec(ctx, query, recs[i].ID, recs[i].CompanyID, jsonData, recs[i].CreatedAt); err != nil {
			return fmt.Errorf("failed to save recommendation: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepo) ListRecommendations(ctx context.Context, companyID string) ([]models.Recommendation, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT recommendation_json FROM recommendations
		WHERE company_id = $1
		ORDER BY created_at;
	`
	rows, err := pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	var out []models.Recommendation
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, err
		}
		var rec models.Recommendation
		if err := json.Unmarshal(jsonData, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recommendation: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) SaveForecast(ctx context.Context, f *models.Forecast) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal forecast: %w", err)
	}

	query := `
		INSERT INTO forecasts (id, company_id, scenario, forecast_json, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := pool.Exec(ctx, query, f.ID, f.CompanyID, f.Scenario, jsonData, f.CreatedAt); err != nil {
		return fmt.Errorf("failed to save forecast: %w", err)
	}
	return nil
}

func (r *PostgresRepo) ListForecasts(ctx context.Context, companyID string) ([]models.Forecast, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT forecast_json FROM forecasts
		WHERE company_id = $1
		ORDER BY created_at;
	`
	rows, err := pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}
	defer rows.Close()

	var out []models.Forecast
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, err
		}
		var f models.Forecast
		if err := json.Unmarshal(jsonData, &f); err != nil {
			return nil, fmt.Errorf("failed to unmarshal forecast: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) SaveBenchmark(ctx context.Context, b *models.IndustryBenchmark) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal benchmark: %w", err)
	}

	query := `
		INSERT INTO industry_benchmarks (industry, benchmark_json, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (industry)
		DO UPDATE SET
			benchmark_json = EXCLUDED.benchmark_json,
			updated_at = now();
	`
	if _, err := pool.Exec(ctx, query, b.Industry, jsonData); err != nil {
		return fmt.Errorf("failed to save benchmark: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetBenchmark(ctx context.Context, industry models.Industry) (*models.IndustryBenchmark, error) {
	var b models.IndustryBenchmark
	if err := r.queryOne(ctx, &b, `SELECT benchmark_json FROM industry_benchmarks WHERE industry = $1`, industry); err != nil {
		return nil, err
	}
	return &b, nil
}

// queryOne scans a single JSONB column into target, mapping pgx's
// no-rows error onto ErrNotFound.
func (r *PostgresRepo) queryOne(ctx context.Context, target interface{}, query string, args ...interface{}) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, query, args...).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("query failed: %w", err)
	}

	if err := json.Unmarshal(jsonData, target); err != nil {
		return fmt.Errorf("failed to unmarshal row: %w", err)
	}
	return nil
}
