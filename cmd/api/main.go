package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"sme_platform/pkg/api/company"
	"sme_platform/pkg/api/insight"
	"sme_platform/pkg/api/reportapi"
	"sme_platform/pkg/api/searchapi"
	"sme_platform/pkg/api/statement"
	"sme_platform/pkg/config"
	"sme_platform/pkg/core/benchmark"
	"sme_platform/pkg/core/llm"
	"sme_platform/pkg/core/narrative"
	"sme_platform/pkg/core/pipeline"
	"sme_platform/pkg/core/search"
	"sme_platform/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load("config/platform.yaml")
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Repository: Postgres when configured, memory otherwise.
	var repo store.Repository
	if cfg.Database.URL != "" {
		if err := store.InitDB(ctx, cfg.Database.URL); err != nil {
			fmt.Printf("[FATAL] Database init failed: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.Migrate(cfg.Database.URL); err != nil {
			fmt.Printf("[FATAL] Migration failed: %v\n", err)
			os.Exit(1)
		}
		repo = store.NewPostgresRepo()
		fmt.Println("[STORE] Using Postgres repository")
	} else {
		repo = store.NewMemoryRepo()
		fmt.Println("[STORE] No DATABASE_URL set, using in-memory repository")
	}

	// LLM provider is optional; without a key the narrative service
	// serves template text.
	var provider llm.Provider
	if cfg.Gemini.APIKey != "" {
		provider = &llm.GeminiProvider{APIKey: cfg.Gemini.APIKey, Model: cfg.Gemini.Model}
		fmt.Println("[LLM] Gemini provider configured")
	} else {
		fmt.Println("[LLM] No API key, narratives use templates")
	}
	narrator := narrative.NewService(provider)

	benchmarks := buildBenchmarkChain(cfg)

	orch := pipeline.NewOrchestrator(repo, narrator, benchmarks)

	// Search index over the current company roster.
	companies, err := repo.ListCompanies(ctx)
	if err != nil {
		fmt.Printf("[FATAL] Failed to list companies: %v\n", err)
		os.Exit(1)
	}
	index, err := search.NewIndex(companies)
	if err != nil {
		fmt.Printf("[FATAL] Search index init failed: %v\n", err)
		os.Exit(1)
	}
	defer index.Close()
	fmt.Printf("[SEARCH] Indexed %d companies\n", len(companies))

	// Company endpoints
	companyHandler := company.NewHandler(orch, repo, index)
	http.HandleFunc("/api/companies/create", companyHandler.HandleCreate)
	http.HandleFunc("/api/companies", companyHandler.HandleList)
	http.HandleFunc("/api/companies/get", companyHandler.HandleGet)

	// Statement endpoints
	statementHandler := statement.NewHandler(orch)
	http.HandleFunc("/api/statements/upload", statementHandler.HandleUpload)
	http.HandleFunc("/api/statements/process", statementHandler.HandleProcess)

	// Insight endpoints
	insightHandler := insight.NewHandler(orch, repo)
	http.HandleFunc("/api/metrics/latest", insightHandler.HandleLatestMetrics)
	http.HandleFunc("/api/credit/assess", insightHandler.HandleAssessCredit)
	http.HandleFunc("/api/recommendations/generate", insightHandler.HandleGenerateRecommendations)
	http.HandleFunc("/api/forecasts/generate", insightHandler.HandleGenerateForecasts)

	// Report endpoint
	reportHandler := reportapi.NewHandler(orch)
	http.HandleFunc("/api/reports/generate", reportHandler.HandleReport)

	// Search and benchmark endpoints
	searchHandler := searchapi.NewHandler(index, benchmarks)
	http.HandleFunc("/api/companies/search", searchHandler.HandleSearch)
	http.HandleFunc("/api/benchmarks/by-industry", searchHandler.HandleBenchmark)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - POST /api/companies/create")
	fmt.Println("  - GET  /api/companies")
	fmt.Println("  - GET  /api/companies/get")
	fmt.Println("  - POST /api/statements/upload  (multipart: company_id, file)")
	fmt.Println("  - POST /api/statements/process")
	fmt.Println("  - GET  /api/metrics/latest")
	fmt.Println("  - POST /api/credit/assess")
	fmt.Println("  - POST /api/recommendations/generate")
	fmt.Println("  - POST /api/forecasts/generate")
	fmt.Println("  - GET  /api/reports/generate  (format=md|html)")
	fmt.Println("  - GET  /api/companies/search")
	fmt.Println("  - GET  /api/benchmarks/by-industry")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

// buildBenchmarkChain assembles the benchmark lookup chain from what
// the config enables: redis cache around the remote source, then the
// bundled file as terminal fallback.
func buildBenchmarkChain(cfg *config.Config) benchmark.Source {
	var sources []benchmark.Source

	if cfg.Benchmarks.RemoteURL != "" {
		var remote benchmark.Source = benchmark.NewRemoteSource(cfg.Benchmarks.RemoteURL)
		if cfg.Benchmarks.RedisAddr != "" {
			cached, err := benchmark.NewCachedSource(cfg.Benchmarks.RedisAddr, remote)
			if err != nil {
				fmt.Printf("[BENCHMARK] Redis unavailable, querying remote directly: %v\n", err)
			} else {
				remote = cached
			}
		}
		sources = append(sources, remote)
	}

	sources = append(sources, benchmark.NewFileSource(cfg.Benchmarks.File))
	return benchmark.NewChain(sources...)
}
