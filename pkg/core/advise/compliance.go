package advise

import "sme_platform/pkg/models"

// ComplianceIssue is one detected statutory gap.
type ComplianceIssue struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// CheckCompliance flags missing statutory registrations.
func CheckCompliance(company *models.Company) []ComplianceIssue {
	issues := []ComplianceIssue{}

	if company.GSTNumber == "" {
		issues = append(issues, ComplianceIssue{
			Type: "GST", Severity: "high",
			Message: "GST registration number not provided",
		})
	}
	if company.PANNumber == "" {
		issues = append(issues, ComplianceIssue{
			Type: "PAN", Severity: "medium",
			Message: "PAN number not provided",
		})
	}
	if company.RegistrationNumber == "" {
		issues = append(issues, ComplianceIssue{
			Type: "Registration", Severity: "medium",
			Message: "Company registration number not provided",
		})
	}

	return issues
}

// ComplianceRecommendations turns compliance issues into advisory
// records. Only the GST gap carries a concrete action today.
func ComplianceRecommendations(company *models.Company) []models.Recommendation {
	recs := []models.Recommendation{}

	for _, issue := range CheckCompliance(company) {
		if issue.Type != "GST" {
			continue
		}
		recs = append(recs, newRec(company,
			models.CategoryCompliance, models.PriorityHigh,
			"Complete GST Registration",
			"GST registration is mandatory for businesses with turnover above ₹40 lakhs (₹20 lakhs for services). Ensure compliance to avoid penalties.",
			nil,
			"Low - 1-2 weeks"))
	}

	return recs
}
