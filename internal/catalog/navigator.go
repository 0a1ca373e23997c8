package catalog

import (
	"strings"

	"alltagslabor/internal/domain"
)

// ResolutionKind tells which arm of a Resolution is populated.
type ResolutionKind int

const (
	ResolutionSingle ResolutionKind = iota
	ResolutionSet
)

func (k ResolutionKind) String() string {
	if k == ResolutionSet {
		return "set"
	}
	return "single"
}

// Resolution is the outcome of opening a category entry. Theory and tasks
// entries yield Experiment, the experiments entry yields Experiments.
type Resolution struct {
	Kind        ResolutionKind
	Category    domain.Category
	Entry       domain.EntryKind
	Experiment  domain.Experiment
	Experiments []domain.Experiment
}

// ResolveEntry maps a category entry onto the visible records. A miss is
// reported as a CONTENT_NOT_FOUND or TOPIC_EMPTY domain error, which callers
// surface as information rather than failure.
func ResolveEntry(experiments []domain.Experiment, key domain.CategoryKey, entry domain.EntryKind) (Resolution, error) {
	category, ok := domain.LookupCategory(key)
	if !ok {
		return Resolution{}, domain.NewInvalidCategoryError(string(key))
	}

	switch entry {
	case domain.EntryTheory, domain.EntryTasks:
		found, ok := FindByNormalizedTitle(experiments, category.TitleFor(entry))
		if !ok {
			return Resolution{}, domain.NewContentNotFoundError(key, entry)
		}
		return Resolution{Kind: ResolutionSingle, Category: category, Entry: entry, Experiment: found}, nil

	case domain.EntryExperiments:
		matching := CategoryExperiments(experiments, category)
		if len(matching) == 0 {
			return Resolution{}, domain.NewTopicEmptyError(key)
		}
		return Resolution{Kind: ResolutionSet, Category: category, Entry: entry, Experiments: matching}, nil

	default:
		return Resolution{}, domain.NewInvalidEntryError(string(entry))
	}
}

// FindByNormalizedTitle returns the first visible record whose normalized
// title equals the normalized title.
func FindByNormalizedTitle(experiments []domain.Experiment, title string) (domain.Experiment, bool) {
	target := NormalizeValue(title)
	for _, e := range experiments {
		if ShouldHideExperiment(e) {
			continue
		}
		if NormalizeValue(e.Title) == target {
			return e, true
		}
	}
	return domain.Experiment{}, false
}

// FindByTitle returns the first visible record with exactly this title.
func FindByTitle(experiments []domain.Experiment, title string) (domain.Experiment, bool) {
	for _, e := range experiments {
		if !ShouldHideExperiment(e) && e.Title == title {
			return e, true
		}
	}
	return domain.Experiment{}, false
}

// CategoryExperiments selects the numbered experiments of a category: the
// normalized title starts with the category prefix and, after optional
// whitespace, continues with a digit ("Mechanik 1: Hebel"). The theory and
// tasks records are never part of the set.
func CategoryExperiments(experiments []domain.Experiment, category domain.Category) []domain.Experiment {
	prefix := NormalizeValue(category.ExperimentsPrefix)
	theory := NormalizeValue(category.TheoryTitle)
	tasks := NormalizeValue(category.TasksTitle)

	var matching []domain.Experiment
	for _, e := range experiments {
		if ShouldHideExperiment(e) {
			continue
		}
		title := NormalizeValue(e.Title)
		if title == theory || title == tasks {
			continue
		}
		if !strings.HasPrefix(title, prefix) {
			continue
		}
		remainder := strings.TrimLeft(title[len(prefix):], " \t\n\r")
		if remainder == "" || remainder[0] < '0' || remainder[0] > '9' {
			continue
		}
		matching = append(matching, e)
	}
	return matching
}
