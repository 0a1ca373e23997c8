package catalog

import (
	"fmt"
	"time"

	"alltagslabor/internal/domain"

	"github.com/goccy/go-json"
)

// Dataset is an immutable snapshot of one language's catalog together with
// the views derived from it.
type Dataset struct {
	Language domain.Language
	All      []domain.Experiment
	Visible  []domain.Experiment
	Facets   Facets
	LoadedAt time.Time
}

// NewDataset derives the visible subset and facet domains of all.
func NewDataset(lang domain.Language, all []domain.Experiment, loadedAt time.Time) *Dataset {
	visible := VisibleExperiments(all)
	facets := EmptyFacets()
	if len(all) > 0 {
		facets = BuildFacets(visible)
	}
	return &Dataset{
		Language: lang,
		All:      all,
		Visible:  visible,
		Facets:   facets,
		LoadedAt: loadedAt,
	}
}

// DecodeExperiments parses a JSON array of experiments. Unknown fields are
// ignored and missing ones keep their zero value.
func DecodeExperiments(data []byte) ([]domain.Experiment, error) {
	var experiments []domain.Experiment
	if err := json.Unmarshal(data, &experiments); err != nil {
		return nil, fmt.Errorf("failed to decode experiments: %w", err)
	}
	if experiments == nil {
		experiments = []domain.Experiment{}
	}
	return experiments, nil
}
