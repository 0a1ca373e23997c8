package catalog

import (
	"sort"
	"strconv"

	"alltagslabor/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Facets are the selectable values per filter dimension. Each list starts
// with WildcardOption.
type Facets struct {
	SchoolTypes []string `json:"schoolTypes"`
	Subjects    []string `json:"subjects"`
	Grades      []string `json:"grades"`
}

// EmptyFacets is the facet state of an empty dataset.
func EmptyFacets() Facets {
	return Facets{
		SchoolTypes: []string{WildcardOption},
		Subjects:    []string{WildcardOption},
		Grades:      []string{WildcardOption},
	}
}

// BuildFacets collects the distinct non-empty facet values of the visible
// records of experiments.
func BuildFacets(experiments []domain.Experiment) Facets {
	var schools, subjects, grades []string
	for _, e := range experiments {
		if ShouldHideExperiment(e) {
			continue
		}
		schools = append(schools, e.SchoolType)
		subjects = append(subjects, e.Subject)
		grades = append(grades, e.GradeLevel)
	}
	return Facets{
		SchoolTypes: withWildcard(uniqueSorted(schools)),
		Subjects:    withWildcard(uniqueSorted(subjects)),
		Grades:      withWildcard(uniqueSorted(grades)),
	}
}

// Grades lists the distinct grade levels of the visible records: numeric
// grades ascending, then the remaining values in collation order.
func Grades(experiments []domain.Experiment) []string {
	var values []string
	for _, e := range experiments {
		if !ShouldHideExperiment(e) {
			values = append(values, e.GradeLevel)
		}
	}
	grades := uniqueSorted(values)

	sort.SliceStable(grades, func(i, j int) bool {
		a, errA := strconv.Atoi(grades[i])
		b, errB := strconv.Atoi(grades[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		default:
			return false
		}
	})
	return grades
}

// newCollator returns a German, numeric-aware, case and accent insensitive
// collator. Collators keep internal buffers, so each sort builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.German, collate.Numeric, collate.IgnoreCase, collate.IgnoreDiacritics)
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	col := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		if c := col.CompareString(out[i], out[j]); c != 0 {
			return c < 0
		}
		return out[i] < out[j]
	})
	return out
}

func withWildcard(values []string) []string {
	return append([]string{WildcardOption}, values...)
}
