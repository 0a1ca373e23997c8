package catalog

import (
	"alltagslabor/internal/domain"
)

// Fixed step labels.
const (
	LabelTask    = "Aufgabe:"
	LabelKeyFact = "Merksatz:"
	LabelAudio   = "Audio"
)

// RenderedStep is a step ready for display: markup stripped and asset paths
// resolved.
type RenderedStep struct {
	Index    int             `json:"index"`
	Kind     domain.StepKind `json:"-"`
	Type     string          `json:"type"`
	Label    string          `json:"label,omitempty"`
	Text     string          `json:"text,omitempty"`
	AssetURL string          `json:"assetUrl,omitempty"`
	Caption  string          `json:"caption,omitempty"`
}

// Renderer turns steps into RenderedSteps against one asset base URL.
type Renderer struct {
	AssetBaseURL string
}

// NewRenderer falls back to DefaultAssetBaseURL for an empty base.
func NewRenderer(assetBaseURL string) Renderer {
	if assetBaseURL == "" {
		assetBaseURL = DefaultAssetBaseURL
	}
	return Renderer{AssetBaseURL: assetBaseURL}
}

// RenderStep dispatches on the step kind. Unknown kinds render as plain text.
func (r Renderer) RenderStep(index int, step domain.ExperimentStep) RenderedStep {
	kind := step.Kind()
	out := RenderedStep{Index: index, Kind: kind, Type: kind.String()}

	switch kind {
	case domain.StepImage:
		out.AssetURL = ResolveAssetURL(r.AssetBaseURL, step.Content)
		out.Caption = SanitizeHTML(step.Description)
	case domain.StepAudio:
		out.Label = LabelAudio
		out.AssetURL = ResolveAssetURL(r.AssetBaseURL, step.Content)
		out.Caption = SanitizeHTML(step.Description)
	case domain.StepTask:
		out.Label = LabelTask
		out.Text = SanitizeHTML(step.Content)
	case domain.StepKeyFact:
		out.Label = LabelKeyFact
		out.Text = SanitizeHTML(step.Content)
	default:
		out.Text = SanitizeHTML(step.Content)
	}
	return out
}

// RenderSteps renders every step in order.
func (r Renderer) RenderSteps(steps []domain.ExperimentStep) []RenderedStep {
	out := make([]RenderedStep, 0, len(steps))
	for i, step := range steps {
		out = append(out, r.RenderStep(i, step))
	}
	return out
}

// Detail is the opened view of a record. Tutorial records carry only the
// current step plus progress; other records carry all steps.
type Detail struct {
	Title        string         `json:"title"`
	DisplayTitle string         `json:"displayTitle"`
	Description  string         `json:"description"`
	Subject      string         `json:"subject"`
	GradeLevel   string         `json:"gradeLevel"`
	SchoolType   string         `json:"schoolType"`
	Tutorial     bool           `json:"tutorial"`
	Steps        []RenderedStep `json:"steps"`
	Progress     *Progress      `json:"progress,omitempty"`
	CanAdvance   bool           `json:"canAdvance"`
	CanRetreat   bool           `json:"canRetreat"`
}

// RenderDetail builds the detail view of e. nav is consulted only for
// tutorial records and may be nil otherwise.
func (r Renderer) RenderDetail(e domain.Experiment, nav *TutorialNavigator) Detail {
	d := Detail{
		Title:        e.Title,
		DisplayTitle: DisplayTitle(e.Title),
		Description:  SanitizeHTML(e.ShortDescription),
		Subject:      e.Subject,
		GradeLevel:   e.GradeLevel,
		SchoolType:   e.SchoolType,
		Tutorial:     IsTutorialExperiment(e),
	}

	if !d.Tutorial {
		d.Steps = r.RenderSteps(e.Steps)
		return d
	}

	if nav == nil {
		nav = NewTutorialNavigator(e.Steps)
	}
	d.Steps = []RenderedStep{}
	if step, ok := nav.Current(); ok {
		d.Steps = append(d.Steps, r.RenderStep(nav.Index(), step))
	}
	progress := nav.Progress()
	d.Progress = &progress
	d.CanAdvance = nav.CanAdvance()
	d.CanRetreat = nav.CanRetreat()
	return d
}
