package benchmark

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"sme_platform/pkg/models"
)

// RemoteSource fetches benchmarks from an HTTP endpoint that serves
// one JSON document per industry at GET <base>/benchmarks/<industry>.
// Requests are rate limited so a batch run cannot hammer the provider.
type RemoteSource struct {
	client  *resty.Client
	limiter *rate.Limiter
}

func NewRemoteSource(baseURL string) *RemoteSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &RemoteSource{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

func (r *RemoteSource) Lookup(ctx context.Context, industry models.Industry) (*models.IndustryBenchmark, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var b models.IndustryBenchmark
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&b).
		Get("/benchmarks/" + string(industry))
	if err != nil {
		return nil, fmt.Errorf("benchmark_remote: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("benchmark_remote: status %d", resp.StatusCode())
	}

	b.Industry = industry
	return &b, nil
}
