// One-shot pipeline runner: registers a company, processes a statement
// file and prints the full analysis without an HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"sme_platform/pkg/config"
	"sme_platform/pkg/core/benchmark"
	"sme_platform/pkg/core/narrative"
	"sme_platform/pkg/core/pipeline"
	"sme_platform/pkg/core/store"
	"sme_platform/pkg/models"
)

func main() {
	godotenv.Load()

	var (
		name     = flag.String("name", "", "company name")
		industry = flag.String("industry", "services", "industry (manufacturing|retail|agriculture|services|logistics|ecommerce)")
		file     = flag.String("file", "", "statement file (csv, xlsx or html)")
		fileType = flag.String("type", "csv", "file type")
		language = flag.String("language", "en", "report language (en|hi)")
		months   = flag.Int("months", 12, "forecast horizon in months")
	)
	flag.Parse()

	if *name == "" || *file == "" {
		fmt.Println("Usage: pipeline -name <company> -file <statement.csv> [-industry retail] [-language hi]")
		os.Exit(2)
	}

	cfg, err := config.Load("config/platform.yaml")
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repo := store.NewMemoryRepo()
	narrator := narrative.NewService(nil)
	benchmarks := benchmark.NewFileSource(cfg.Benchmarks.File)
	orch := pipeline.NewOrchestrator(repo, narrator, benchmarks)

	company, err := orch.RegisterCompany(ctx, &models.Company{
		Name:     *name,
		Industry: models.Industry(*industry),
	})
	if err != nil {
		fatal(err)
	}

	// Zero dates: the pipeline dates the period at upload time.
	metrics, err := orch.ProcessUpload(ctx, company.ID, *file, models.FileType(*fileType), time.Time{}, time.Time{})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Health score: %d/100\n", metrics.HealthScore)

	assessment, err := orch.AssessCredit(ctx, company.ID)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Credit rating: %s (%d/100)\n", assessment.CreditRating, assessment.CreditScore)

	if _, err := orch.GenerateRecommendations(ctx, company.ID, *language); err != nil {
		fatal(err)
	}
	if _, err := orch.GenerateForecasts(ctx, company.ID, *months, *language); err != nil {
		fatal(err)
	}

	md, err := orch.BuildReport(ctx, company.ID, *language)
	if err != nil {
		fatal(err)
	}
	fmt.Println()
	fmt.Println(md)
}

func fatal(err error) {
	fmt.Printf("[FATAL] %v\n", err)
	os.Exit(1)
}
