// Package pipeline wires the processing stages together:
// ingest -> extract -> score -> assess -> advise -> forecast -> report.
// Each stage stays independently callable; the orchestrator only
// sequences them and talks to the repository.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sme_platform/pkg/core/advise"
	"sme_platform/pkg/core/benchmark"
	"sme_platform/pkg/core/credit"
	"sme_platform/pkg/core/extract"
	"sme_platform/pkg/core/forecast"
	"sme_platform/pkg/core/health"
	"sme_platform/pkg/core/ingest"
	"sme_platform/pkg/core/narrative"
	"sme_platform/pkg/core/report"
	"sme_platform/pkg/core/store"
	"sme_platform/pkg/models"
)

// Preconditions callers can branch on.
var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrNoMetrics       = errors.New("no metrics computed yet")
	ErrEmptyStatement  = errors.New("statement contains no data")
)

// Orchestrator sequences the processing stages for one company at a
// time. All dependencies are injected; tests swap in memory repos and
// nil providers.
type Orchestrator struct {
	repo       store.Repository
	ingestor   *ingest.Service
	creditEng  *credit.Engine
	forecaster *forecast.Engine
	narrator   *narrative.Service
	benchmarks benchmark.Source
}

func NewOrchestrator(repo store.Repository, narrator *narrative.Service, benchmarks benchmark.Source) *Orchestrator {
	return &Orchestrator{
		repo:       repo,
		ingestor:   ingest.NewService(),
		creditEng:  credit.NewEngine(),
		forecaster: forecast.NewEngine(),
		narrator:   narrator,
		benchmarks: benchmarks,
	}
}

// SetForecaster swaps the forecast engine (tests pin the clock).
func (o *Orchestrator) SetForecaster(e *forecast.Engine) {
	o.forecaster = e
}

// RegisterCompany stores a new company profile and returns it with an
// assigned ID.
func (o *Orchestrator) RegisterCompany(ctx context.Context, c *models.Company) (*models.Company, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if err := o.repo.SaveCompany(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}
	return c, nil
}

// ProcessUpload ingests a statement file, extracts values, computes
// metrics and persists everything. Returns the stored metrics.
// periodStart and periodEnd date the statement; zero values default to
// a one-year period ending at upload time.
func (o *Orchestrator) ProcessUpload(ctx context.Context, companyID, path string, fileType models.FileType, periodStart, periodEnd time.Time) (*models.FinancialMetrics, error) {
	company, err := o.repo.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	bundle, err := o.ingestor.ProcessFile(path, fileType)
	if err != nil {
		return nil, err
	}
	if !o.ingestor.Validate(bundle) {
		return nil, ErrEmptyStatement
	}

	for _, anomaly := range o.ingestor.DetectAnomalies(bundle) {
		fmt.Printf("[PIPELINE] anomaly for %s: %s\n", company.Name, anomaly)
	}

	uploadedAt := time.Now()
	if periodEnd.IsZero() {
		periodEnd = uploadedAt
	}
	if periodStart.IsZero() {
		periodStart = periodEnd.AddDate(-1, 0, 0)
	}

	data := &models.FinancialData{
		ID:          uuid.New().String(),
		CompanyID:   company.ID,
		FileType:    fileType,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Raw:         bundle,
		Processed:   true,
		UploadedAt:  uploadedAt,
	}
	if err := o.repo.SaveFinancialData(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to save financial data: %w", err)
	}

	return o.computeMetrics(ctx, company, data)
}

// ProcessStatement computes metrics for an already-stored statement.
func (o *Orchestrator) ProcessStatement(ctx context.Context, companyID, financialDataID string) (*models.FinancialMetrics, error) {
	company, err := o.repo.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	data, err := o.repo.GetFinancialData(ctx, financialDataID)
	if err != nil {
		return nil, err
	}
	if data.Raw.IsEmpty() {
		return nil, ErrEmptyStatement
	}

	return o.computeMetrics(ctx, company, data)
}

func (o *Orchestrator) computeMetrics(ctx context.Context, company *models.Company, data *models.FinancialData) (*models.FinancialMetrics, error) {
	values := extract.FromBundle(data.Raw)

	var bench *models.IndustryBenchmark
	if o.benchmarks != nil {
		b, err := o.benchmarks.Lookup(ctx, company.Industry)
		if err != nil {
			fmt.Printf("[PIPELINE] benchmark lookup failed for %s: %v\n", company.Industry, err)
		} else {
			bench = b
		}
	}

	metrics := health.Compute(company, data, values, bench)
	if err := o.repo.SaveMetrics(ctx, metrics); err != nil {
		return nil, fmt.Errorf("failed to save metrics: %w", err)
	}

	fmt.Printf("[PIPELINE] %s scored %d/100\n", company.Name, metrics.HealthScore)
	return metrics, nil
}

// AssessCredit runs a credit assessment against the latest metrics.
func (o *Orchestrator) AssessCredit(ctx context.Context, companyID string) (*models.CreditAssessment, error) {
	company, err := o.repo.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	metrics, err := o.repo.LatestMetrics(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoMetrics
		}
		return nil, err
	}

	assessment := o.creditEng.Assess(company, metrics)
	if err := o.repo.SaveAssessment(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	fmt.Printf("[PIPELINE] %s rated %s (%d/100)\n", company.Name, assessment.CreditRating, assessment.CreditScore)
	return assessment, nil
}

// GenerateRecommendations runs every rule generator against the latest
// metrics, optionally enhances the text, and persists the result.
func (o *Orchestrator) GenerateRecommendations(ctx context.Context, companyID, language string) ([]models.Recommendation, error) {
	company, err := o.repo.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	metrics, err := o.repo.LatestMetrics(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoMetrics
		}
		return nil, err
	}

	var recs []models.Recommendation
	recs = append(recs, advise.CostRecommendations(company, metrics)...)
	recs = append(recs, advise.WorkingCapitalRecommendations(company, metrics)...)
	recs = append(recs, advise.ComplianceRecommendations(company)...)

	if o.narrator != nil {
		recs = o.narrator.EnhanceRecommendations(ctx, company, recs, language)
	}
	for i := range recs {
		recs[i].Language = language
	}

	if err := o.repo.SaveRecommendations(ctx, recs); err != nil {
		return nil, fmt.Errorf("failed to save recommendations: %w", err)
	}
	return recs, nil
}

// GenerateForecasts projects best, base and worst scenarios from the
// recent statement history and persists all three.
func (o *Orchestrator) GenerateForecasts(ctx context.Context, companyID string, months int, language string) ([]models.Forecast, error) {
	company, err := o.repo.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	history, err := o.repo.RecentFinancialData(ctx, companyID, 12)
	if err != nil {
		return nil, err
	}

	forecasts := o.forecaster.Generate(company, history, months, language)
	for i := range forecasts {
		if err := o.repo.SaveForecast(ctx, &forecasts[i]); err != nil {
			return nil, fmt.Errorf("failed to save forecast: %w", err)
		}
	}
	return forecasts, nil
}

// BuildReport assembles the Markdown report from everything stored for
// the company. Sections without data are left out.
func (o *Orchestrator) BuildReport(ctx context.Context, companyID, language string) (string, error) {
	company, err := o.repo.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrCompanyNotFound
		}
		return "", err
	}

	metrics, err := o.repo.LatestMetrics(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNoMetrics
		}
		return "", err
	}

	assessment, err := o.repo.LatestAssessment(ctx, companyID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	recs, err := o.repo.ListRecommendations(ctx, companyID)
	if err != nil {
		return "", err
	}

	var narrativeText string
	if o.narrator != nil {
		narrativeText = o.narrator.Generate(ctx, company, metrics, language)
	}

	return report.BuildMarkdown(report.Input{
		Company:         company,
		Metrics:         metrics,
		Assessment:      assessment,
		Recommendations: recs,
		Narrative:       narrativeText,
	}), nil
}
