// Package search provides full-text company lookup over an in-memory
// Bleve index. The index is rebuilt from the store at startup and kept
// current as companies are registered.
package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"sme_platform/pkg/models"
)

// companyDoc is the indexed projection of a company.
type companyDoc struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	GST      string `json:"gst"`
}

// Hit is one search result.
type Hit struct {
	CompanyID string  `json:"company_id"`
	Name      string  `json:"name"`
	Industry  string  `json:"industry"`
	Score     float64 `json:"score"`
}

type Index struct {
	index bleve.Index
}

// NewIndex builds an in-memory index over the given companies.
func NewIndex(companies []models.Company) (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("search_index_create: %w", err)
	}

	idx := &Index{index: index}
	batch := index.NewBatch()
	for _, c := range companies {
		if err := batch.Index(c.ID, toDoc(&c)); err != nil {
			return nil, fmt.Errorf("search_index_batch: %w", err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("search_index_batch: %w", err)
	}
	return idx, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	companyMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Store = true
	textFieldMapping.Index = true
	companyMapping.AddFieldMappingsAt("name", textFieldMapping)
	companyMapping.AddFieldMappingsAt("industry", textFieldMapping)
	companyMapping.AddFieldMappingsAt("gst", textFieldMapping)

	indexMapping.AddDocumentMapping("_default", companyMapping)
	return indexMapping
}

func toDoc(c *models.Company) companyDoc {
	return companyDoc{
		Name:     c.Name,
		Industry: string(c.Industry),
		GST:      c.GSTNumber,
	}
}

// Add indexes or reindexes one company.
func (x *Index) Add(c *models.Company) error {
	if err := x.index.Index(c.ID, toDoc(c)); err != nil {
		return fmt.Errorf("search_index_add: %w", err)
	}
	return nil
}

// Query searches name, industry and GST number. Name matches rank
// highest, then prefix and substring matches.
func (x *Index) Query(q string, limit int) ([]Hit, error) {
	lower := strings.ToLower(strings.TrimSpace(q))
	if lower == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	nameMatch := bleve.NewMatchQuery(q)
	nameMatch.SetField("name")
	nameMatch.SetBoost(5.0)

	namePrefix := bleve.NewPrefixQuery(lower)
	namePrefix.SetField("name")
	namePrefix.SetBoost(3.0)

	nameWildcard := bleve.NewWildcardQuery("*" + lower + "*")
	nameWildcard.SetField("name")
	nameWildcard.SetBoost(2.0)

	industryTerm := bleve.NewTermQuery(lower)
	industryTerm.SetField("industry")
	industryTerm.SetBoost(1.5)

	gstTerm := bleve.NewTermQuery(lower)
	gstTerm.SetField("gst")
	gstTerm.SetBoost(1.0)

	searchQuery := bleve.NewDisjunctionQuery(
		nameMatch,
		namePrefix,
		nameWildcard,
		industryTerm,
		gstTerm,
	)

	request := bleve.NewSearchRequest(searchQuery)
	request.Fields = []string{"name", "industry"}
	request.Size = limit

	results, err := x.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search_query: %w", err)
	}

	hits := make([]Hit, 0, len(results.Hits))
	for _, hit := range results.Hits {
		hits = append(hits, Hit{
			CompanyID: hit.ID,
			Name:      fieldString(hit.Fields, "name"),
			Industry:  fieldString(hit.Fields, "industry"),
			Score:     hit.Score,
		})
	}
	return hits, nil
}

func fieldString(fields map[string]interface{}, key string) string {
	if val, ok := fields[key].(string); ok {
		return val
	}
	return ""
}

func (x *Index) Close() error {
	return x.index.Close()
}
