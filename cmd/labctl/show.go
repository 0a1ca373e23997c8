package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"alltagslabor/internal/audio"
	"alltagslabor/internal/catalog"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/validation"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var noInteractive bool

const (
	actionNext  = "next"
	actionBack  = "back"
	actionAudio = "audio"
	actionQuit  = "quit"
)

var showCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Show one experiment by its exact title",
	Long: `Show prints an experiment with all of its steps. Tutorial records are
stepped through one step at a time when a terminal is attached.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]
		if errs := validation.NewValidator().ValidateTitle(title); len(errs) > 0 {
			return errs
		}

		e, err := newEnv()
		if err != nil {
			return err
		}
		ds, err := e.dataset(cmd.Context())
		if err != nil {
			return err
		}

		exp, ok := catalog.FindByTitle(ds.Visible, title)
		if !ok {
			return domain.NewExperimentNotFoundError(title)
		}
		return showExperiment(cmd, e, exp)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Print every step instead of stepping through tutorials")
}

func interactive() bool {
	return !noInteractive && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func showExperiment(cmd *cobra.Command, e *env, exp domain.Experiment) error {
	w := cmd.OutOrStdout()
	if !catalog.IsTutorialExperiment(exp) || !interactive() {
		d := e.renderer.RenderDetail(exp, nil)
		if d.Tutorial {
			d.Steps = e.renderer.RenderSteps(exp.Steps)
			d.Progress = nil
		}
		printDetail(w, d)
		return nil
	}
	return runTutorial(cmd.Context(), cmd, e, exp)
}

// runTutorial is the Next/Back/Quit loop over a tutorial record. Audio steps
// offer play and pause through the configured player.
func runTutorial(ctx context.Context, cmd *cobra.Command, e *env, exp domain.Experiment) error {
	w := cmd.OutOrStdout()
	nav := catalog.NewTutorialNavigator(exp.Steps)

	var player *audio.Player
	defer func() {
		if player != nil {
			reportPlayback(w, player.Unload(context.Background()))
		}
	}()

	for {
		d := e.renderer.RenderDetail(exp, nav)
		printDetail(w, d)

		var audioURL string
		if len(d.Steps) == 1 && d.Steps[0].Kind == domain.StepAudio {
			audioURL = d.Steps[0].AssetURL
		}

		options := []huh.Option[string]{}
		if d.CanAdvance {
			options = append(options, huh.NewOption("Weiter", actionNext))
		}
		if d.CanRetreat {
			options = append(options, huh.NewOption("Zurück", actionBack))
		}
		if audioURL != "" {
			label := "Abspielen"
			if player != nil && player.URI() == audioURL && player.IsPlaying() {
				label = "Pause"
			}
			options = append(options, huh.NewOption(label, actionAudio))
		}
		options = append(options, huh.NewOption("Beenden", actionQuit))

		var action string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("%s (%s)", d.DisplayTitle, d.Progress)).
					Options(options...).
					Value(&action),
			),
		)
		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch action {
		case actionNext, actionBack:
			if player != nil {
				reportPlayback(w, player.Stop(ctx))
			}
			if action == actionNext {
				nav.Advance()
			} else {
				nav.Retreat()
			}
		case actionAudio:
			if player == nil || player.URI() != audioURL {
				if player != nil {
					reportPlayback(w, player.Unload(ctx))
				}
				player = newPlayer(ctx, e, audioURL)
			}
			reportPlayback(w, player.Toggle(ctx))
		default:
			return nil
		}
	}
}

// reportPlayback shows the playback failure message for a failed transport
// call.
func reportPlayback(w io.Writer, err error) {
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render(audio.FailureMessage))
	}
}
