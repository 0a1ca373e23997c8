package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"
)

// ErrNotLoaded is returned by transport calls that need a loaded sound.
var ErrNotLoaded = errors.New("audio: no sound loaded")

// ExecTransport plays sounds by running an external player program such as
// mpv or ffplay with the sound URI as last argument. Pause and resume
// suspend and continue the process.
type ExecTransport struct {
	command string
	args    []string

	mu       sync.Mutex
	uri      string
	cmd      *exec.Cmd
	done     chan struct{}
	paused   bool
	stopping bool
	onFinish func()
}

func NewExecTransport(command string, args ...string) *ExecTransport {
	return &ExecTransport{command: command, args: args}
}

// OnFinish registers fn to run when the player process exits on its own.
func (t *ExecTransport) OnFinish(fn func()) {
	t.mu.Lock()
	t.onFinish = fn
	t.mu.Unlock()
}

func (t *ExecTransport) Load(ctx context.Context, uri string) error {
	if uri == "" {
		return errors.New("audio: empty uri")
	}
	if _, err := exec.LookPath(t.command); err != nil {
		return fmt.Errorf("audio player %q not found: %w", t.command, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.uri = uri
	return nil
}

func (t *ExecTransport) Play(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.uri == "" {
		return ErrNotLoaded
	}
	if t.cmd != nil {
		if !t.paused {
			return nil
		}
		if err := resume(t.cmd.Process); err != nil {
			return err
		}
		t.paused = false
		return nil
	}

	args := append(append([]string{}, t.args...), t.uri)
	cmd := exec.Command(t.command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", t.command, err)
	}
	t.cmd = cmd
	t.done = make(chan struct{})
	t.paused = false
	t.stopping = false
	go t.wait(cmd, t.done)
	return nil
}

func (t *ExecTransport) wait(cmd *exec.Cmd, done chan struct{}) {
	_ = cmd.Wait()

	t.mu.Lock()
	finished := !t.stopping
	if t.cmd == cmd {
		t.cmd = nil
		t.paused = false
	}
	onFinish := t.onFinish
	t.mu.Unlock()
	close(done)

	if finished && onFinish != nil {
		onFinish()
	}
}

func (t *ExecTransport) Pause(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cmd == nil {
		return ErrNotLoaded
	}
	if t.paused {
		return nil
	}
	if err := suspend(t.cmd.Process); err != nil {
		return err
	}
	t.paused = true
	return nil
}

// Stop ends the player process. The sound stays loaded and the next Play
// starts from the beginning.
func (t *ExecTransport) Stop(ctx context.Context) error {
	t.mu.Lock()
	cmd, done, paused := t.cmd, t.done, t.paused
	if cmd == nil {
		t.mu.Unlock()
		return nil
	}
	t.stopping = true
	t.mu.Unlock()

	if paused {
		_ = resume(cmd.Process)
	}
	if err := cmd.Process.Signal(os.Interrupt); err != nil && !errors.Is(err, os.ErrProcessDone) {
		_ = cmd.Process.Kill()
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		_ = cmd.Process.Kill()
		<-done
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		return ctx.Err()
	}
	return nil
}

func (t *ExecTransport) Status(ctx context.Context) (TransportStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TransportStatus{
		Loaded:  t.uri != "",
		Playing: t.cmd != nil && !t.paused,
	}, nil
}

func (t *ExecTransport) Unload(ctx context.Context) error {
	err := t.Stop(ctx)
	t.mu.Lock()
	t.uri = ""
	t.mu.Unlock()
	return err
}
