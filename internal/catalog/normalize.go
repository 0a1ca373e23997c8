// Package catalog holds the pure browsing engine: normalization helpers,
// the search/filter engine, facet domains, the category navigator and the
// tutorial step navigator. Nothing in this package performs I/O.
package catalog

import (
	"regexp"
	"strings"

	"alltagslabor/internal/domain"
)

// DefaultAssetBaseURL is where the dataset's images and audio files live.
const DefaultAssetBaseURL = "https://gitlab.com/Datenflix007/alltagslabordata/-/raw/main"

const (
	hiddenPrefix   = "__"
	tutorialPrefix = "_"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// NormalizeValue folds a title into a comparison key: lowercase, German
// umlauts and sharp s spelled out, anything outside [a-z0-9] turned into a
// separator, separators collapsed. The result is a fixed point of the function.
func NormalizeValue(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range strings.ToLower(value) {
		switch {
		case r == 'ä':
			b.WriteString("ae")
		case r == 'ö':
			b.WriteString("oe")
		case r == 'ü':
			b.WriteString("ue")
		case r == 'ß':
			b.WriteString("ss")
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// SanitizeHTML drops tag-like substrings. Entities are left as they are.
func SanitizeHTML(value string) string {
	if value == "" {
		return ""
	}
	return htmlTagPattern.ReplaceAllString(value, "")
}

// DisplayTitle strips the underscore markers from a title for presentation.
func DisplayTitle(title string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(title), "_"))
}

// ResolveAssetURL turns a dataset asset path into a fetchable URL. Absolute
// http(s) URLs pass through; empty input yields "" which means "no asset".
func ResolveAssetURL(baseURL, path string) string {
	if path == "" {
		return ""
	}
	lower := strings.ToLower(path)
	if strings.HasPrefix(lower, "http:") || strings.HasPrefix(lower, "https:") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// ShouldHideExperiment reports whether e is internal placeholder data.
func ShouldHideExperiment(e domain.Experiment) bool {
	return strings.HasPrefix(strings.TrimSpace(e.Title), hiddenPrefix)
}

// IsTutorialExperiment reports whether e is presented step by step.
func IsTutorialExperiment(e domain.Experiment) bool {
	return strings.HasPrefix(strings.TrimSpace(e.Title), tutorialPrefix)
}

// VisibleExperiments returns the records of all that may be listed, in order.
func VisibleExperiments(all []domain.Experiment) []domain.Experiment {
	visible := make([]domain.Experiment, 0, len(all))
	for _, e := range all {
		if !ShouldHideExperiment(e) {
			visible = append(visible, e)
		}
	}
	return visible
}
