package dto

import "time"

// APIInfoResponse is returned by the API root.
type APIInfoResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// LanguageResponse describes one dataset language.
// @Description Dataset language
type LanguageResponse struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	File       string `json:"file"`
	Translated bool   `json:"translated"`
}

// UIStringsResponse carries the localized navigation labels.
type UIStringsResponse struct {
	Language         string            `json:"language"`
	CategoryLabels   map[string]string `json:"categoryLabels"`
	EntryLabels      map[string]string `json:"entryLabels"`
	IntroText        string            `json:"introText"`
	BackToCategories string            `json:"backToCategories"`
	ThemePrefix      string            `json:"themePrefix"`
}

// CategoryEntryResponse is one entry of a category tile.
type CategoryEntryResponse struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// CategoryResponse represents a category in the API response
// @Description Category of the experiment catalog
type CategoryResponse struct {
	Key               string                  `json:"key"`
	Label             string                  `json:"label"`
	TheoryTitle       string                  `json:"theoryTitle"`
	TasksTitle        string                  `json:"tasksTitle"`
	ExperimentsPrefix string                  `json:"experimentsPrefix"`
	Entries           []CategoryEntryResponse `json:"entries"`
}

// ExperimentResponse is a list item.
// @Description Experiment list item
type ExperimentResponse struct {
	Title            string `json:"title"`
	DisplayTitle     string `json:"displayTitle"`
	ShortDescription string `json:"shortDescription"`
	Description      string `json:"description"`
	Subject          string `json:"subject"`
	GradeLevel       string `json:"gradeLevel"`
	SchoolType       string `json:"schoolType"`
	Tutorial         bool   `json:"tutorial"`
	StepCount        int    `json:"stepCount"`
}

// ExperimentListResponse wraps a list of experiments.
type ExperimentListResponse struct {
	Language    string               `json:"language"`
	Count       int                  `json:"count"`
	Experiments []ExperimentResponse `json:"experiments"`
	LoadedAt    time.Time            `json:"loadedAt"`
}

// StepResponse is a rendered step.
type StepResponse struct {
	Index    int    `json:"index"`
	Type     string `json:"type"`
	Label    string `json:"label,omitempty"`
	Text     string `json:"text,omitempty"`
	AssetURL string `json:"assetUrl,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// ProgressResponse is the tutorial cursor.
type ProgressResponse struct {
	Position int    `json:"position"`
	Total    int    `json:"total"`
	Label    string `json:"label"`
}

// ExperimentDetailResponse is an opened record.
// @Description Opened experiment with rendered steps
type ExperimentDetailResponse struct {
	Title        string            `json:"title"`
	DisplayTitle string            `json:"displayTitle"`
	Description  string            `json:"description"`
	Subject      string            `json:"subject"`
	GradeLevel   string            `json:"gradeLevel"`
	SchoolType   string            `json:"schoolType"`
	Tutorial     bool              `json:"tutorial"`
	Steps        []StepResponse    `json:"steps"`
	Progress     *ProgressResponse `json:"progress,omitempty"`
	CanAdvance   bool              `json:"canAdvance"`
	CanRetreat   bool              `json:"canRetreat"`
}

// EntryResolutionResponse is the outcome of opening a category entry.
// Exactly one of Experiment and Experiments is set.
type EntryResolutionResponse struct {
	Category    string                    `json:"category"`
	Entry       string                    `json:"entry"`
	Kind        string                    `json:"kind"`
	Experiment  *ExperimentDetailResponse `json:"experiment,omitempty"`
	Experiments []ExperimentResponse      `json:"experiments,omitempty"`
}

// FacetsResponse lists the facet options, wildcard first.
type FacetsResponse struct {
	SchoolTypes []string `json:"schoolTypes"`
	Subjects    []string `json:"subjects"`
	Grades      []string `json:"grades"`
}

// GradesResponse lists distinct grade levels, numeric ones first.
type GradesResponse struct {
	Grades []string `json:"grades"`
}

// AssetURLResponse is the resolved URL of a step asset.
type AssetURLResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// ImpressumResponse carries the legal notice as plain text.
type ImpressumResponse struct {
	Content string `json:"content"`
}

// SearchParams are the query parameters of the search endpoint.
type SearchParams struct {
	FreeText   string `query:"freetext"`
	Subject    string `query:"subject"`
	GradeLevel string `query:"gradeLevel"`
	SchoolType string `query:"schoolType"`
}
