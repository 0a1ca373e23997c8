package session

import "alltagslabor/internal/domain"

// Mode names the view a session is in.
type Mode string

const (
	ModeCategoryBrowse Mode = "categoryBrowse"
	ModeFlatList       Mode = "flatList"
)

// view is the mode together with its payload. Only the two implementations
// below exist, so a category can never be active outside a flat list.
type view interface {
	mode() Mode
}

// categoryBrowse shows the category grid and has no payload.
type categoryBrowse struct{}

func (categoryBrowse) mode() Mode { return ModeCategoryBrowse }

// flatList shows a list of records, either search results or the experiment
// set of category.
type flatList struct {
	items    []domain.Experiment
	category *domain.Category
}

func (flatList) mode() Mode { return ModeFlatList }
