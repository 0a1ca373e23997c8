package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"alltagslabor/internal/audio"
	"alltagslabor/internal/catalog"
	"alltagslabor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaybackURI(t *testing.T) {
	base := "https://assets.example.org/raw"

	assert.Equal(t, "https://cdn.example.org/a.mp3", playbackURI(base, "https://cdn.example.org/a.mp3"))
	assert.Equal(t, base+"/audio/hebel.mp3", playbackURI(base, "audio/hebel.mp3"))

	local := filepath.Join(t.TempDir(), "clip.mp3")
	require.NoError(t, os.WriteFile(local, []byte("x"), 0o600))
	assert.Equal(t, local, playbackURI(base, local))
}

func TestPrintExperiments(t *testing.T) {
	var buf bytes.Buffer
	printExperiments(&buf, "Suchergebnisse", []domain.Experiment{
		{Title: "Mechanik 1: Hebel", ShortDescription: "<b>Kraft</b> mal Arm", Subject: "Physik", GradeLevel: "7"},
		{Title: "_Einführung", Steps: []domain.ExperimentStep{{Type: "text", Content: "Hallo"}}},
	})

	out := buf.String()
	assert.Contains(t, out, "Hebel")
	assert.Contains(t, out, "Kraft mal Arm")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "Physik | 7")
	assert.Contains(t, out, "[Tutorial]")
	assert.Contains(t, out, "2 experiment(s)")
}

func TestPrintExperimentsEmpty(t *testing.T) {
	var buf bytes.Buffer
	printExperiments(&buf, "Suchergebnisse", nil)
	assert.Contains(t, buf.String(), "No experiments found.")
}

func TestPrintDetail(t *testing.T) {
	r := catalog.NewRenderer("https://assets.example.org/raw")
	e := domain.Experiment{
		Title: "Optik 1: Spiegel",
		Steps: []domain.ExperimentStep{
			{Type: "aufgabe", Content: "Miss den Winkel."},
			{Type: "image", Content: "img/spiegel.png", Description: "Aufbau"},
		},
	}

	var buf bytes.Buffer
	printDetail(&buf, r.RenderDetail(e, nil))
	out := buf.String()

	assert.Contains(t, out, catalog.LabelTask)
	assert.Contains(t, out, "Miss den Winkel.")
	assert.Contains(t, out, "https://assets.example.org/raw/img/spiegel.png")
	assert.Contains(t, out, "Aufbau")
}

func TestMeta(t *testing.T) {
	assert.Equal(t, "Physik | Gymnasium", meta("Physik", " ", "Gymnasium"))
	assert.Equal(t, "", meta("", "", ""))
}

func TestReportPlayback(t *testing.T) {
	var buf bytes.Buffer
	reportPlayback(&buf, nil)
	assert.Empty(t, buf.String())

	reportPlayback(&buf, errors.New("exit status 1"))
	assert.Contains(t, buf.String(), audio.FailureMessage)
}

func TestPrintImpressum(t *testing.T) {
	var buf bytes.Buffer
	printImpressum(&buf, "\nAlltagslabor\nMusterstraße 1\n\n")

	out := buf.String()
	assert.Contains(t, out, "Impressum")
	assert.Contains(t, out, "Alltagslabor\nMusterstraße 1\n")
}
