package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"alltagslabor/internal/audio"
	"alltagslabor/internal/catalog"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <path-or-url>",
	Short: "Play an audio file",
	Long: `Play resolves a step content path against the asset base URL and plays it
with the configured player command. Local files and full URLs are played as is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		uri := playbackURI(e.renderer.AssetBaseURL, args[0])
		player := newPlayer(ctx, e, uri)

		// Loading passes through Ready, so only a Ready after Playing means
		// the sound has finished.
		var started atomic.Bool
		done := make(chan struct{}, 1)
		unsubscribe := player.Subscribe(func(s audio.State) {
			switch {
			case s == audio.StatePlaying:
				started.Store(true)
			case s == audio.StateFailed, s == audio.StateReady && started.Load():
				select {
				case done <- struct{}{}:
				default:
				}
			}
		})
		defer unsubscribe()

		if err := player.Toggle(ctx); err != nil {
			return fmt.Errorf("%s: %w", audio.FailureMessage, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("Playing "+uri))

		select {
		case <-done:
		case <-ctx.Done():
		}
		return player.Unload(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// playbackURI keeps URLs and existing local files and resolves everything
// else as an asset path.
func playbackURI(assetBaseURL, arg string) string {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return arg
	}
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	return catalog.ResolveAssetURL(assetBaseURL, arg)
}

func newPlayer(ctx context.Context, e *env, uri string) *audio.Player {
	transport := audio.NewExecTransport(e.cfg.Player.Command, e.cfg.Player.Args...)
	player := audio.NewPlayer(transport, uri)
	transport.OnFinish(func() { player.Finished(ctx) })
	return player
}
