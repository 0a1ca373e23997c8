package catalog

import (
	"fmt"

	"alltagslabor/internal/domain"
)

// Progress is the 1-based position inside a tutorial.
type Progress struct {
	Position int `json:"position"`
	Total    int `json:"total"`
}

func (p Progress) String() string {
	return fmt.Sprintf("%d/%d", p.Position, p.Total)
}

// TutorialNavigator walks the steps of a tutorial record one at a time.
// Both directions saturate at the ends; there is no wraparound.
type TutorialNavigator struct {
	steps []domain.ExperimentStep
	index int
}

// NewTutorialNavigator starts at the first step.
func NewTutorialNavigator(steps []domain.ExperimentStep) *TutorialNavigator {
	return &TutorialNavigator{steps: steps}
}

// Advance moves to the next step unless the last one is showing.
func (n *TutorialNavigator) Advance() {
	if n.index < len(n.steps)-1 {
		n.index++
	}
}

// Retreat moves to the previous step unless the first one is showing.
func (n *TutorialNavigator) Retreat() {
	if n.index > 0 {
		n.index--
	}
}

// Reset returns to the first step.
func (n *TutorialNavigator) Reset() {
	n.index = 0
}

func (n *TutorialNavigator) Index() int { return n.index }

func (n *TutorialNavigator) Len() int { return len(n.steps) }

func (n *TutorialNavigator) CanAdvance() bool { return n.index < len(n.steps)-1 }

func (n *TutorialNavigator) CanRetreat() bool { return n.index > 0 }

// Current returns the showing step; ok is false for a tutorial without steps.
func (n *TutorialNavigator) Current() (step domain.ExperimentStep, ok bool) {
	if len(n.steps) == 0 {
		return domain.ExperimentStep{}, false
	}
	return n.steps[n.index], true
}

// Progress reports the position for display, e.g. "3/3".
func (n *TutorialNavigator) Progress() Progress {
	if len(n.steps) == 0 {
		return Progress{}
	}
	return Progress{Position: n.index + 1, Total: len(n.steps)}
}
