package catalog

import (
	"testing"

	"alltagslabor/internal/domain"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func sampleExperiments() []domain.Experiment {
	return []domain.Experiment{
		{Title: "Mechanik 1: Hebel", ShortDescription: "Der <b>Hebel</b> im Alltag", Subject: "Physik", GradeLevel: "7", SchoolType: "Gymnasium"},
		{Title: "Optik 1: Lochkamera", ShortDescription: "Licht und Schatten", Subject: "Physik", GradeLevel: "9", SchoolType: "Regelschule"},
		{Title: "__Beispiel Versteckt", ShortDescription: "Hebel", Subject: "Physik", GradeLevel: "7", SchoolType: "Gymnasium"},
		{Title: "Chemie im Alltag", ShortDescription: "Backpulver", Subject: "Chemie", GradeLevel: "10", SchoolType: "Gymnasium"},
		{Title: "_Beispiel Tutorial", ShortDescription: "Schritt für Schritt", Subject: "Physik", GradeLevel: "10", SchoolType: "Gymnasium"},
	}
}

func TestFilter_DefaultQueryReturnsVisible(t *testing.T) {
	all := sampleExperiments()
	got := Filter(all, DefaultQuery())
	assert.Equal(t, VisibleExperiments(all), got)
}

func TestFilter_Text(t *testing.T) {
	all := sampleExperiments()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"title match", "LOCHKAMERA", []string{"Optik 1: Lochkamera"}},
		{"sanitized description match", "hebel im", []string{"Mechanik 1: Hebel"}},
		{"markup is not searchable", "<b>", nil},
		{"subject match", "chemie", []string{"Chemie im Alltag"}},
		{"whitespace only matches all", "   ", []string{"Mechanik 1: Hebel", "Optik 1: Lochkamera", "Chemie im Alltag", "_Beispiel Tutorial"}},
		{"trimmed before matching", "  schatten ", []string{"Optik 1: Lochkamera"}},
		{"no match", "quanten", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := DefaultQuery()
			q.Text = tt.text
			got := titles(Filter(all, q))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_Facets(t *testing.T) {
	all := sampleExperiments()

	q := DefaultQuery()
	q.SchoolType = "Gymnasium"
	assert.Equal(t, []string{"Mechanik 1: Hebel", "Chemie im Alltag", "_Beispiel Tutorial"}, titles(Filter(all, q)))

	q.Grade = "10"
	assert.Equal(t, []string{"Chemie im Alltag", "_Beispiel Tutorial"}, titles(Filter(all, q)))

	q.Subject = "Physik"
	assert.Equal(t, []string{"_Beispiel Tutorial"}, titles(Filter(all, q)))

	// Facets compare exactly, case included.
	q = DefaultQuery()
	q.Subject = "physik"
	assert.Empty(t, Filter(all, q))

	q = DefaultQuery()
	q.Text = "alltag"
	q.Subject = "Chemie"
	assert.Equal(t, []string{"Chemie im Alltag"}, titles(Filter(all, q)))
}

func TestQueryHelpers(t *testing.T) {
	q := Query{Text: "licht"}.WithDefaults()
	assert.Equal(t, WildcardOption, q.SchoolType)
	assert.Equal(t, WildcardOption, q.Subject)
	assert.Equal(t, WildcardOption, q.Grade)
	assert.False(t, q.IsDefault())

	q.Grade = "7"
	reset := q.ResetFacets()
	assert.Equal(t, "licht", reset.Text)
	assert.Equal(t, WildcardOption, reset.Grade)
	assert.True(t, DefaultQuery().IsDefault())
}

func genExperiment() *rapid.Generator[domain.Experiment] {
	return rapid.Custom(func(t *rapid.T) domain.Experiment {
		prefix := rapid.SampledFrom([]string{"", "_", "__", " __"}).Draw(t, "prefix")
		return domain.Experiment{
			Title:            prefix + rapid.StringMatching(`[A-Za-z0-9 ]{0,12}`).Draw(t, "title"),
			ShortDescription: rapid.StringMatching(`[a-z <>/]{0,16}`).Draw(t, "description"),
			Subject:          rapid.SampledFrom([]string{"Physik", "Chemie", ""}).Draw(t, "subject"),
			GradeLevel:       rapid.SampledFrom([]string{"5", "7", "10", ""}).Draw(t, "grade"),
			SchoolType:       rapid.SampledFrom([]string{"Gymnasium", "Regelschule"}).Draw(t, "school"),
		}
	})
}

func genQuery() *rapid.Generator[Query] {
	return rapid.Custom(func(t *rapid.T) Query {
		return Query{
			Text:       rapid.StringMatching(`[a-z ]{0,3}`).Draw(t, "text"),
			SchoolType: rapid.SampledFrom([]string{WildcardOption, "Gymnasium", "Regelschule"}).Draw(t, "schoolFacet"),
			Subject:    rapid.SampledFrom([]string{WildcardOption, "Physik", "Chemie"}).Draw(t, "subjectFacet"),
			Grade:      rapid.SampledFrom([]string{WildcardOption, "5", "7", "10"}).Draw(t, "gradeFacet"),
		}
	})
}

func TestFilter_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		all := rapid.SliceOf(genExperiment()).Draw(t, "dataset")
		q := genQuery().Draw(t, "query")

		got := Filter(all, q)

		// Never returns hidden records and preserves relative order.
		visible := VisibleExperiments(all)
		j := 0
		for _, e := range got {
			if ShouldHideExperiment(e) {
				t.Fatalf("hidden record %q in result", e.Title)
			}
			for j < len(visible) && visible[j].Title != e.Title {
				j++
			}
			if j == len(visible) {
				t.Fatalf("result is not an ordered subsequence of the visible set")
			}
			j++
		}

		if !q.IsDefault() {
			return
		}
		if len(got) != len(visible) {
			t.Fatalf("default query returned %d of %d visible records", len(got), len(visible))
		}
	})
}
