// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package present

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-search/internal/category"
	"github.com/pdiddy/arxiv-search/pkg/types"
)

// ExportFile is the on-disk record of one search: the parameters sent
// upstream, the facet applied, and the papers shown. It is written for
// the user to keep; the tool never reads it back to answer a search.
type ExportFile struct {
	Query   types.SearchQuery `yaml:"query"`
	Facet   category.Facet    `yaml:"category"`
	Papers  []types.Paper     `yaml:"papers"`
	Summary ExportSummary     `yaml:"summary"`
}

// ExportSummary stores result statistics and a timestamp.
type ExportSummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteExport saves a result set to a YAML file.
func WriteExport(path string, q types.SearchQuery, facet category.Facet, papers []types.Paper) error {
	ef := ExportFile{
		Query:  q,
		Facet:  facet,
		Papers: papers,
		Summary: ExportSummary{
			Total:     len(papers),
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&ef)
	if err != nil {
		return fmt.Errorf("marshaling export file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}
