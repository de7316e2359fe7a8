// Seed populates the database with sample companies, metrics and
// industry benchmarks for local testing.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"sme_platform/pkg/config"
	"sme_platform/pkg/core/benchmark"
	"sme_platform/pkg/core/store"
	"sme_platform/pkg/models"
)

func f(v float64) *float64 { return &v }

type seedCompany struct {
	company models.Company
	metrics models.FinancialMetrics
}

var samples = []seedCompany{
	{
		company: models.Company{
			Name:               "TechManufacturing Pvt Ltd",
			Industry:           models.IndustryManufacturing,
			RegistrationNumber: "MFG2020001",
			GSTNumber:          "29ABCDE1234F1Z5",
			PANNumber:          "ABCDE1234F",
			AnnualRevenue:      f(50000000),
			EmployeeCount:      150,
		},
		metrics: models.FinancialMetrics{
			CurrentRatio: f(1.8), QuickRatio: f(1.2),
			GrossMargin: f(28.5), NetMargin: f(12.3),
			ROA: f(9.5), ROE: f(16.8),
			InventoryTurnover: f(6.5), ReceivablesDays: f(42.0), PayablesDays: f(35.0),
			DebtToEquity: f(0.9), InterestCoverage: f(5.2),
			CashFlowStability: f(78.5), CashConversionCycle: f(45.0),
			HealthScore: 82,
		},
	},
	{
		company: models.Company{
			Name:               "RetailMart India",
			Industry:           models.IndustryRetail,
			RegistrationNumber: "RET2019045",
			GSTNumber:          "27FGHIJ5678K2L9",
			PANNumber:          "FGHIJ5678K",
			AnnualRevenue:      f(35000000),
			EmployeeCount:      85,
		},
		metrics: models.FinancialMetrics{
			CurrentRatio: f(1.4), QuickRatio: f(0.9),
			GrossMargin: f(32.0), NetMargin: f(6.8),
			ROA: f(7.2), ROE: f(13.5),
			InventoryTurnover: f(8.2), ReceivablesDays: f(28.0), PayablesDays: f(40.0),
			DebtToEquity: f(1.3), InterestCoverage: f(4.1),
			CashFlowStability: f(72.0), CashConversionCycle: f(38.0),
			HealthScore: 75,
		},
	},
	{
		company: models.Company{
			Name:               "AgriGrow Solutions",
			Industry:           models.IndustryAgriculture,
			RegistrationNumber: "AGR2021023",
			GSTNumber:          "36KLMNO9012P3Q4",
			PANNumber:          "KLMNO9012P",
			AnnualRevenue:      f(25000000),
			EmployeeCount:      60,
		},
		metrics: models.FinancialMetrics{
			CurrentRatio: f(1.6), QuickRatio: f(1.0),
			GrossMargin: f(22.0), NetMargin: f(8.5),
			ROA: f(6.8), ROE: f(11.2),
			InventoryTurnover: f(5.5), ReceivablesDays: f(55.0), PayablesDays: f(45.0),
			DebtToEquity: f(1.1), InterestCoverage: f(3.8),
			CashFlowStability: f(68.5), CashConversionCycle: f(52.0),
			HealthScore: 70,
		},
	},
	{
		company: models.Company{
			Name:               "ServicePro Consulting",
			Industry:           models.IndustryServices,
			RegistrationNumber: "SRV2018067",
			GSTNumber:          "07RSTUV3456W7X8",
			PANNumber:          "RSTUV3456W",
			AnnualRevenue:      f(45000000),
			EmployeeCount:      120,
		},
		metrics: models.FinancialMetrics{
			CurrentRatio: f(2.1), QuickRatio: f(1.8),
			GrossMargin: f(42.0), NetMargin: f(16.5),
			ROA: f(11.2), ROE: f(19.5),
			InventoryTurnover: f(12.0), ReceivablesDays: f(58.0), PayablesDays: f(30.0),
			DebtToEquity: f(0.7), InterestCoverage: f(6.5),
			CashFlowStability: f(85.0), CashConversionCycle: f(60.0),
			HealthScore: 88,
		},
	},
}

func main() {
	godotenv.Load()

	cfg, err := config.Load("config/platform.yaml")
	if err != nil {
		fatal(err)
	}
	if cfg.Database.URL == "" {
		fmt.Println("[FATAL] DATABASE_URL must be set to seed")
		os.Exit(1)
	}

	ctx := context.Background()
	if err := store.InitDB(ctx, cfg.Database.URL); err != nil {
		fatal(err)
	}
	defer store.Close()
	if err := store.Migrate(cfg.Database.URL); err != nil {
		fatal(err)
	}
	repo := store.NewPostgresRepo()

	fmt.Println("Creating sample companies...")
	now := time.Now()
	for _, s := range samples {
		company := s.company
		company.ID = uuid.New().String()
		company.CreatedAt = now
		if err := repo.SaveCompany(ctx, &company); err != nil {
			fatal(err)
		}

		data := models.FinancialData{
			ID:          uuid.New().String(),
			CompanyID:   company.ID,
			FileType:    models.FileTypeCSV,
			PeriodStart: now.AddDate(-1, 0, 0),
			PeriodEnd:   now,
			Processed:   true,
			UploadedAt:  now,
		}
		if err := repo.SaveFinancialData(ctx, &data); err != nil {
			fatal(err)
		}

		metrics := s.metrics
		metrics.ID = uuid.New().String()
		metrics.CompanyID = company.ID
		metrics.FinancialDataID = data.ID
		metrics.CalculatedAt = now
		if err := repo.SaveMetrics(ctx, &metrics); err != nil {
			fatal(err)
		}

		fmt.Printf("  created %s (score %d)\n", company.Name, metrics.HealthScore)
	}

	fmt.Println("Loading industry benchmarks...")
	file := benchmark.NewFileSource(cfg.Benchmarks.File)
	count := 0
	for _, industry := range []models.Industry{
		models.IndustryManufacturing, models.IndustryRetail, models.IndustryAgriculture,
		models.IndustryServices, models.IndustryLogistics, models.IndustryEcommerce,
	} {
		b, err := file.Lookup(ctx, industry)
		if err != nil {
			fatal(err)
		}
		if b == nil {
			continue
		}
		if err := repo.SaveBenchmark(ctx, b); err != nil {
			fatal(err)
		}
		count++
	}
	fmt.Printf("  stored %d benchmarks\n", count)

	fmt.Println("Seeding complete.")
}

func fatal(err error) {
	fmt.Printf("[FATAL] %v\n", err)
	os.Exit(1)
}
