package main

import (
	"fmt"
	"io"
	"strings"

	"alltagslabor/internal/catalog"
	"alltagslabor/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Padding(1, 0, 0, 0)
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func printExperiments(w io.Writer, heading string, experiments []domain.Experiment) {
	fmt.Fprintln(w, titleStyle.Render(heading))
	if len(experiments) == 0 {
		fmt.Fprintln(w, infoStyle.Render("No experiments found."))
		return
	}
	for _, e := range experiments {
		marker := ""
		if catalog.IsTutorialExperiment(e) {
			marker = labelStyle.Render(" [Tutorial]")
		}
		fmt.Fprintf(w, "• %s%s\n", catalog.DisplayTitle(e.Title), marker)
		fmt.Fprintf(w, "  %s\n", metaStyle.Render(meta(e.Subject, e.GradeLevel, e.SchoolType)))
		if desc := catalog.SanitizeHTML(e.ShortDescription); desc != "" {
			fmt.Fprintf(w, "  %s\n", desc)
		}
	}
	fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("%d experiment(s)", len(experiments))))
}

func meta(subject, grade, school string) string {
	parts := []string{}
	for _, p := range []string{subject, grade, school} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

func printDetail(w io.Writer, d catalog.Detail) {
	fmt.Fprintln(w, titleStyle.Render(d.DisplayTitle))
	if m := meta(d.Subject, d.GradeLevel, d.SchoolType); m != "" {
		fmt.Fprintln(w, metaStyle.Render(m))
	}
	if d.Description != "" {
		fmt.Fprintln(w, d.Description)
	}
	if d.Progress != nil {
		fmt.Fprintln(w, headingStyle.Render("Schritt "+d.Progress.String()))
	}
	for _, s := range d.Steps {
		printStep(w, s)
	}
}

func printStep(w io.Writer, s catalog.RenderedStep) {
	fmt.Fprintln(w)
	switch s.Kind {
	case domain.StepImage:
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Bild:"), s.AssetURL)
	case domain.StepAudio:
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(s.Label+":"), s.AssetURL)
	default:
		if s.Label != "" {
			fmt.Fprintln(w, labelStyle.Render(s.Label))
		}
		fmt.Fprintln(w, s.Text)
	}
	if s.Caption != "" {
		fmt.Fprintln(w, captionStyle.Render(s.Caption))
	}
}

func printFacets(w io.Writer, f catalog.Facets) {
	fmt.Fprintln(w, titleStyle.Render("Filter"))
	fmt.Fprintf(w, "%s %s\n", headingStyle.Render("Schulform:"), strings.Join(f.SchoolTypes, ", "))
	fmt.Fprintf(w, "%s %s\n", headingStyle.Render("Fach:"), strings.Join(f.Subjects, ", "))
	fmt.Fprintf(w, "%s %s\n", headingStyle.Render("Klassenstufe:"), strings.Join(f.Grades, ", "))
}
