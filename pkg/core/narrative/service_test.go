package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sme_platform/pkg/models"
)

func f(v float64) *float64 { return &v }

// stubProvider returns a canned response or error.
type stubProvider struct {
	response  string
	err       error
	gotPrompt string
}

func (s *stubProvider) GenerateResponse(_ context.Context, prompt, _ string, _ map[string]interface{}) (string, error) {
	s.gotPrompt = prompt
	return s.response, s.err
}

func (s *stubProvider) AdaptInstructions(raw string) string { return raw }

func testCompany() *models.Company {
	return &models.Company{ID: "c1", Name: "Sharma Textiles", Industry: models.IndustryManufacturing}
}

func TestGenerateWithoutProviderIsDeterministic(t *testing.T) {
	svc := NewService(nil)
	m := &models.FinancialMetrics{
		HealthScore:  78,
		CurrentRatio: f(1.8),
		NetMargin:    f(12.0),
	}

	first := svc.Generate(context.Background(), testCompany(), m, "en")
	second := svc.Generate(context.Background(), testCompany(), m, "en")
	if first != second {
		t.Fatal("template narrative must be deterministic")
	}

	for _, want := range []string{
		"Financial Health Summary for Sharma Textiles",
		"excellent financial health with a score of 78/100",
		"strong liquidity",
		"net profit margin is 12%, which is good",
	} {
		if !strings.Contains(first, want) {
			t.Errorf("narrative missing %q:\n%s", want, first)
		}
	}
}

func TestGenerateFallbackSkipsMissingMetrics(t *testing.T) {
	svc := NewService(nil)
	m := &models.FinancialMetrics{HealthScore: 40}

	got := svc.Generate(context.Background(), testCompany(), m, "en")
	if !strings.Contains(got, "needs attention with a financial health score of 40/100") {
		t.Errorf("low-score sentence missing:\n%s", got)
	}
	if strings.Contains(got, "liquidity") || strings.Contains(got, "margin") {
		t.Errorf("absent metrics should produce no sentences:\n%s", got)
	}
}

func TestGenerateZeroRatioTreatedAsMissing(t *testing.T) {
	svc := NewService(nil)
	m := &models.FinancialMetrics{HealthScore: 60, CurrentRatio: f(0)}

	got := svc.Generate(context.Background(), testCompany(), m, "en")
	if strings.Contains(got, "liquidity") {
		t.Errorf("zero current ratio should read as missing:\n%s", got)
	}
}

func TestGenerateHindi(t *testing.T) {
	svc := NewService(nil)
	m := &models.FinancialMetrics{HealthScore: 80, NetMargin: f(9.5)}

	got := svc.Generate(context.Background(), testCompany(), m, "hi")
	if !strings.Contains(got, "Sharma Textiles की वित्तीय स्थिति") {
		t.Errorf("Hindi header missing:\n%s", got)
	}
	if !strings.Contains(got, "स्कोर 80/100") {
		t.Errorf("Hindi score sentence missing:\n%s", got)
	}
	if !strings.Contains(got, "9.5%") {
		t.Errorf("Hindi margin sentence missing:\n%s", got)
	}
}

func TestGenerateProviderErrorFallsBack(t *testing.T) {
	stub := &stubProvider{err: errors.New("quota exceeded")}
	svc := NewService(stub)
	m := &models.FinancialMetrics{HealthScore: 65}

	got := svc.Generate(context.Background(), testCompany(), m, "en")
	if !strings.Contains(got, "good financial health with a score of 65/100") {
		t.Errorf("provider failure must fall back to template:\n%s", got)
	}
}

func TestGenerateUsesProviderAndCleansFences(t *testing.T) {
	stub := &stubProvider{response: "```markdown\nYour business looks healthy.\n```"}
	svc := NewService(stub)
	m := &models.FinancialMetrics{HealthScore: 70, CurrentRatio: f(1.2)}

	got := svc.Generate(context.Background(), testCompany(), m, "en")
	if got != "Your business looks healthy." {
		t.Errorf("Generate = %q", got)
	}
	if !strings.Contains(stub.gotPrompt, "Financial Health Score: 70/100") {
		t.Errorf("prompt missing score:\n%s", stub.gotPrompt)
	}
	if !strings.Contains(stub.gotPrompt, "Current Ratio: 1.2") {
		t.Errorf("prompt missing ratio:\n%s", stub.gotPrompt)
	}
}

func baseRecs() []models.Recommendation {
	return []models.Recommendation{
		{ID: "r1", Title: "Improve Gross Margin", Description: "Original text", Priority: models.PriorityHigh},
		{ID: "r2", Title: "Reduce Receivables", Description: "Original text 2", Priority: models.PriorityMedium},
	}
}

func TestEnhanceRecommendations(t *testing.T) {
	stub := &stubProvider{response: `[
		{"title": "Lift Your Gross Margin", "description": "Renegotiate supplier rates."},
		{"title": "", "description": "Call overdue customers weekly."}
	]`}
	svc := NewService(stub)

	got := svc.EnhanceRecommendations(context.Background(), testCompany(), baseRecs(), "en")
	if got[0].Title != "Lift Your Gross Margin" || got[0].Description != "Renegotiate supplier rates." {
		t.Errorf("first rec not enhanced: %+v", got[0])
	}
	// Empty fields keep original content.
	if got[1].Title != "Reduce Receivables" || got[1].Description != "Call overdue customers weekly." {
		t.Errorf("second rec wrong: %+v", got[1])
	}
	// Identity and priority survive enhancement.
	if got[0].ID != "r1" || got[0].Priority != models.PriorityHigh {
		t.Errorf("metadata not preserved: %+v", got[0])
	}
}

func TestEnhanceRecommendationsRepairsMalformedJSON(t *testing.T) {
	// Single quotes and trailing comma, as models tend to emit.
	stub := &stubProvider{response: "[{'title': 'Fixed', 'description': 'Repaired text',}, {'title': 'Second', 'description': 'More',}]"}
	svc := NewService(stub)

	got := svc.EnhanceRecommendations(context.Background(), testCompany(), baseRecs(), "en")
	if got[0].Title != "Fixed" {
		t.Errorf("malformed JSON should be repaired, got %+v", got[0])
	}
}

func TestEnhanceRecommendationsCountMismatchKeepsOriginals(t *testing.T) {
	stub := &stubProvider{response: `[{"title": "Only one", "description": "x"}]`}
	svc := NewService(stub)

	recs := baseRecs()
	got := svc.EnhanceRecommendations(context.Background(), testCompany(), recs, "en")
	if got[0].Title != recs[0].Title || got[1].Title != recs[1].Title {
		t.Errorf("count mismatch must keep originals: %+v", got)
	}
}

func TestEnhanceRecommendationsProviderError(t *testing.T) {
	stub := &stubProvider{err: errors.New("timeout")}
	svc := NewService(stub)

	recs := baseRecs()
	got := svc.EnhanceRecommendations(context.Background(), testCompany(), recs, "en")
	if len(got) != 2 || got[0].Description != "Original text" {
		t.Errorf("provider error must keep originals: %+v", got)
	}
}

func TestTranslate(t *testing.T) {
	svc := NewService(nil)
	if got := svc.Translate(context.Background(), "hello", "hi"); got != "hello" {
		t.Errorf("no provider should return input, got %q", got)
	}

	stub := &stubProvider{response: "नमस्ते"}
	svc = NewService(stub)
	if got := svc.Translate(context.Background(), "hello", "hi"); got != "नमस्ते" {
		t.Errorf("Translate = %q", got)
	}
	if got := svc.Translate(context.Background(), "hello", "en"); got != "hello" {
		t.Errorf("English target must be a no-op, got %q", got)
	}
}
