//go:build unix

package audio

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecTransport_PlayPauseStop(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	ctx := context.Background()
	tr := NewExecTransport("sleep")

	assert.ErrorIs(t, tr.Play(ctx), ErrNotLoaded)

	require.NoError(t, tr.Load(ctx, "30"))
	require.NoError(t, tr.Play(ctx))
	st, err := tr.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, TransportStatus{Loaded: true, Playing: true}, st)

	require.NoError(t, tr.Pause(ctx))
	st, _ = tr.Status(ctx)
	assert.False(t, st.Playing)

	require.NoError(t, tr.Play(ctx))
	require.NoError(t, tr.Stop(ctx))
	st, _ = tr.Status(ctx)
	assert.Equal(t, TransportStatus{Loaded: true, Playing: false}, st)

	require.NoError(t, tr.Unload(ctx))
	st, _ = tr.Status(ctx)
	assert.False(t, st.Loaded)
}

func TestExecTransport_FinishDrivesPlayer(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	ctx := context.Background()
	tr := NewExecTransport("sleep")
	p := NewPlayer(tr, "0.3")
	tr.OnFinish(func() { p.Finished(context.Background()) })

	require.NoError(t, p.Toggle(ctx))
	assert.Eventually(t, func() bool { return p.State() == StateReady }, 3*time.Second, 10*time.Millisecond)
}

func TestExecTransport_MissingCommand(t *testing.T) {
	tr := NewExecTransport("definitely-not-a-player-binary")
	assert.Error(t, tr.Load(context.Background(), "a.mp3"))
}
