package domain

// StepKind is the closed set of step variants an experiment can contain.
// Unknown tags decode to StepPlain so every step stays renderable.
type StepKind int

const (
	StepPlain StepKind = iota
	StepText
	StepTask    // "aufgabe"
	StepKeyFact // "merksatz"
	StepImage
	StepAudio
)

// Raw type tags as they appear in the dataset.
const (
	StepTagText     = "text"
	StepTagTask     = "aufgabe"
	StepTagKeyFact  = "merksatz"
	StepTagImage    = "image"
	StepTagAudio    = "audio"
	stepTagFallback = "plain"
)

// ParseStepKind maps a raw type tag to its StepKind.
func ParseStepKind(tag string) StepKind {
	switch tag {
	case StepTagText:
		return StepText
	case StepTagTask:
		return StepTask
	case StepTagKeyFact:
		return StepKeyFact
	case StepTagImage:
		return StepImage
	case StepTagAudio:
		return StepAudio
	default:
		return StepPlain
	}
}

func (k StepKind) String() string {
	switch k {
	case StepText:
		return StepTagText
	case StepTask:
		return StepTagTask
	case StepKeyFact:
		return StepTagKeyFact
	case StepImage:
		return StepTagImage
	case StepAudio:
		return StepTagAudio
	default:
		return stepTagFallback
	}
}

// IsAsset reports whether the step content is a path to an image or audio file.
func (k StepKind) IsAsset() bool {
	return k == StepImage || k == StepAudio
}

// ExperimentStep is one content block of an experiment.
type ExperimentStep struct {
	Type        string `json:"type"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

// Kind returns the decoded variant of the step's type tag.
func (s ExperimentStep) Kind() StepKind {
	return ParseStepKind(s.Type)
}

// Experiment is a single catalog entry. Records are read-only once decoded.
type Experiment struct {
	Title            string           `json:"title"`
	ShortDescription string           `json:"shortDescription"`
	Subject          string           `json:"subject"`
	GradeLevel       string           `json:"gradeLevel"`
	SchoolType       string           `json:"schoolType"`
	Steps            []ExperimentStep `json:"steps"`
}
