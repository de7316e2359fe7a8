// Package benchmark resolves industry benchmark figures used to
// normalize company ratios. Sources are composable: a chain asks each
// source in order and returns the first hit. A missing industry is
// (nil, nil), never an error.
package benchmark

import (
	"context"

	"sme_platform/pkg/models"
)

// Source looks up benchmark figures for an industry.
type Source interface {
	Lookup(ctx context.Context, industry models.Industry) (*models.IndustryBenchmark, error)
}

// Chain queries sources in order and returns the first non-nil result.
type Chain struct {
	sources []Source
}

func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

func (c *Chain) Lookup(ctx context.Context, industry models.Industry) (*models.IndustryBenchmark, error) {
	for _, src := range c.sources {
		b, err := src.Lookup(ctx, industry)
		if err != nil {
			return nil, err
		}
		if b != nil {
			return b, nil
		}
	}
	return nil, nil
}

// Static serves a fixed in-memory table. Used for tests and as the
// terminal fallback in a chain.
type Static struct {
	Table map[models.Industry]*models.IndustryBenchmark
}

func (s *Static) Lookup(_ context.Context, industry models.Industry) (*models.IndustryBenchmark, error) {
	return s.Table[industry], nil
}
