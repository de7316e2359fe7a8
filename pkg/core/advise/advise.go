// Package advise holds the rule-based recommendation generators: cost
// optimization, working capital, and compliance. Each generator is a
// pure rule table over the metrics; all qualifying rules fire
// independently and nothing deduplicates across generators.
package advise

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"sme_platform/pkg/models"
)

// present mirrors the scoring layers: a zero ratio reads as missing.
func present(p *float64) bool {
	return p != nil && *p != 0
}

func fmtNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// revenueFraction returns fraction * annual revenue, or nil when the
// revenue is unknown.
func revenueFraction(company *models.Company, fraction float64) *float64 {
	if company.AnnualRevenue == nil {
		return nil
	}
	impact := *company.AnnualRevenue * fraction
	return &impact
}

func newRec(company *models.Company, category models.RecommendationCategory, priority models.Priority, title, description string, impact *float64, effort string) models.Recommendation {
	return models.Recommendation{
		ID:                   uuid.New().String(),
		CompanyID:            company.ID,
		Category:             category,
		Priority:             priority,
		Title:                title,
		Description:          description,
		EstimatedImpact:      impact,
		ImplementationEffort: effort,
		Language:             "en",
		CreatedAt:            time.Now(),
	}
}
