package catalog

import (
	"strings"

	"alltagslabor/internal/domain"
)

// WildcardOption is the facet value that matches every record.
const WildcardOption = "Alle"

// Query is the free-text search plus the three facet selections.
type Query struct {
	Text       string `json:"text"`
	SchoolType string `json:"schoolType"`
	Subject    string `json:"subject"`
	Grade      string `json:"grade"`
}

// DefaultQuery matches every visible record.
func DefaultQuery() Query {
	return Query{
		SchoolType: WildcardOption,
		Subject:    WildcardOption,
		Grade:      WildcardOption,
	}
}

// WithDefaults replaces unset facets with the wildcard.
func (q Query) WithDefaults() Query {
	if q.SchoolType == "" {
		q.SchoolType = WildcardOption
	}
	if q.Subject == "" {
		q.Subject = WildcardOption
	}
	if q.Grade == "" {
		q.Grade = WildcardOption
	}
	return q
}

// ResetFacets keeps the text and clears every facet selection.
func (q Query) ResetFacets() Query {
	reset := DefaultQuery()
	reset.Text = q.Text
	return reset
}

// IsDefault reports whether q would match every visible record.
func (q Query) IsDefault() bool {
	return strings.TrimSpace(q.Text) == "" &&
		q.SchoolType == WildcardOption &&
		q.Subject == WildcardOption &&
		q.Grade == WildcardOption
}

// Filter returns the records of experiments matching q, keeping their order.
// Hidden records never match.
func Filter(experiments []domain.Experiment, q Query) []domain.Experiment {
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	matched := make([]domain.Experiment, 0, len(experiments))
	for _, e := range experiments {
		if ShouldHideExperiment(e) {
			continue
		}
		if !matchesText(e, needle) {
			continue
		}
		if !matchesFacet(q.SchoolType, e.SchoolType) ||
			!matchesFacet(q.Subject, e.Subject) ||
			!matchesFacet(q.Grade, e.GradeLevel) {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

// Matches reports whether a single record satisfies q.
func Matches(e domain.Experiment, q Query) bool {
	return len(Filter([]domain.Experiment{e}, q)) == 1
}

func matchesText(e domain.Experiment, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(SanitizeHTML(e.ShortDescription)), needle) ||
		strings.Contains(strings.ToLower(e.Subject), needle)
}

func matchesFacet(selected, value string) bool {
	return selected == WildcardOption || selected == value
}
