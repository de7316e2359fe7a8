// Package narrative turns computed metrics into plain-language
// summaries for business owners. A configured LLM provider improves
// the text; without one, or when the provider fails, a deterministic
// template fallback produces the same facts in fixed wording.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"sme_platform/pkg/core/llm"
	"sme_platform/pkg/core/utils"
	"sme_platform/pkg/models"
)

// Service generates narratives and enhances recommendation text.
type Service struct {
	provider llm.Provider // nil means template-only mode
}

func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Generate produces a plain-language financial health narrative.
// language is "en" or "hi".
func (s *Service) Generate(ctx context.Context, company *models.Company, metrics *models.FinancialMetrics, language string) string {
	if s.provider == nil {
		return simpleNarrative(company, metrics, language)
	}

	prompt := buildNarrativePrompt(company, metrics, language)
	text, err := s.provider.GenerateResponse(ctx, prompt, "", nil)
	if err != nil || strings.TrimSpace(text) == "" {
		fmt.Printf("[NARRATIVE] provider failed, using template: %v\n", err)
		return simpleNarrative(company, metrics, language)
	}
	return utils.CleanMarkdown(text)
}

// enhancedRec is the shape the model is asked to return per item.
type enhancedRec struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// EnhanceRecommendations rewrites recommendation descriptions with the
// provider. The input order and every field except title/description
// are preserved. Any provider or decode failure returns the input
// unchanged.
func (s *Service) EnhanceRecommendations(ctx context.Context, company *models.Company, recs []models.Recommendation, language string) []models.Recommendation {
	if s.provider == nil || len(recs) == 0 {
		return recs
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a financial advisor for %s (%s industry).\n", company.Name, company.Industry)
	sb.WriteString("Rewrite each recommendation below so a non-technical business owner can act on it")
	if language == "hi" {
		sb.WriteString(", in Hindi")
	}
	sb.WriteString(". Respond with a JSON array of objects with keys \"title\" and \"description\", one per input, in the same order.\n\n")
	for i, r := range recs {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, r.Title, r.Description)
	}

	text, err := s.provider.GenerateResponse(ctx, sb.String(), "", map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		fmt.Printf("[NARRATIVE] enhance failed, keeping originals: %v\n", err)
		return recs
	}

	var enhanced []enhancedRec
	if err := utils.DecodeLenient(text, &enhanced); err != nil || len(enhanced) != len(recs) {
		return recs
	}

	out := make([]models.Recommendation, len(recs))
	copy(out, recs)
	for i, e := range enhanced {
		if e.Title != "" {
			out[i].Title = e.Title
		}
		if e.Description != "" {
			out[i].Description = e.Description
		}
	}
	return out
}

// Translate converts text to the target language via the provider.
// English targets and provider failures return the text unchanged.
func (s *Service) Translate(ctx context.Context, text, targetLanguage string) string {
	if s.provider == nil || targetLanguage == "en" {
		return text
	}

	prompt := "Translate the following text to Hindi, maintaining financial terminology accuracy:\n\n" + text
	translated, err := s.provider.GenerateResponse(ctx, prompt, "", nil)
	if err != nil || strings.TrimSpace(translated) == "" {
		return text
	}
	return translated
}

func buildNarrativePrompt(company *models.Company, metrics *models.FinancialMetrics, language string) string {
	langInstruction := "in English"
	if language == "hi" {
		langInstruction = "in Hindi"
	}

	return fmt.Sprintf(`
You are a financial advisor explaining a company's financial health to a non-technical business owner %s.

Company: %s
Industry: %s
Financial Health Score: %d/100

Key Metrics:
- Current Ratio: %s
- Net Margin: %s%%
- Debt to Equity: %s
- Receivables Days: %s

Generate a clear, simple explanation of the company's financial health. Use simple language, avoid jargon, and provide actionable insights. Keep it under 200 words.
`,
		langInstruction,
		company.Name,
		company.Industry,
		metrics.HealthScore,
		fmtMetric(metrics.CurrentRatio),
		fmtMetric(metrics.NetMargin),
		fmtMetric(metrics.DebtToEquity),
		fmtMetric(metrics.ReceivablesDays),
	)
}

func fmtMetric(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%g", *p)
}
