package benchmark

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/hjson/hjson-go/v4"

	"sme_platform/pkg/models"
)

// FileSource loads benchmarks from an HJSON file keyed by industry.
// The file is read once on first lookup and held in memory.
type FileSource struct {
	Path string

	once  sync.Once
	table map[models.Industry]*models.IndustryBenchmark
	err   error
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Lookup(_ context.Context, industry models.Industry) (*models.IndustryBenchmark, error) {
	f.once.Do(f.load)
	if f.err != nil {
		return nil, f.err
	}
	return f.table[industry], nil
}

func (f *FileSource) load() {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		f.err = fmt.Errorf("benchmark_file_read: %w", err)
		return
	}

	var raw map[string]models.IndustryBenchmark
	if err := hjson.Unmarshal(data, &raw); err != nil {
		f.err = fmt.Errorf("benchmark_file_parse: %w", err)
		return
	}

	f.table = make(map[models.Industry]*models.IndustryBenchmark, len(raw))
	for key, b := range raw {
		b := b
		b.Industry = models.Industry(key)
		f.table[b.Industry] = &b
	}
}
