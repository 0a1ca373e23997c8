// Package audio plays audio steps through a pluggable transport.
package audio

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"alltagslabor/internal/domain"
	"alltagslabor/internal/logger"

	"go.uber.org/zap"
)

// State is the playback state of a Player.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StatePlaying
	StatePaused
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FailureMessage is shown to users when playback fails.
const FailureMessage = "Audiodatei konnte nicht abgespielt werden."

// ErrBusy rejects a transport call while another one is in flight.
var ErrBusy = domain.NewError(domain.CodePlayerBusy, "audio transport call already in flight", nil)

// TransportStatus is what the transport reports about the loaded sound.
type TransportStatus struct {
	Loaded  bool
	Playing bool
}

// Transport is the sound backend driven by a Player.
type Transport interface {
	Load(ctx context.Context, uri string) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Stop(ctx context.Context) error
	Status(ctx context.Context) (TransportStatus, error)
	Unload(ctx context.Context) error
}

// Player is the play/pause control of one audio step.
type Player struct {
	transport Transport
	uri       string
	busy      atomic.Bool

	mu     sync.Mutex
	state  State
	loaded bool
	nextID int
	subs   map[int]func(State)
}

func NewPlayer(transport Transport, uri string) *Player {
	return &Player{
		transport: transport,
		uri:       uri,
		state:     StateIdle,
		subs:      make(map[int]func(State)),
	}
}

// URI returns the sound the player controls.
func (p *Player) URI() string {
	return p.uri
}

// State returns the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// IsPlaying reports whether sound is audible. Failed counts as not playing.
func (p *Player) IsPlaying() bool {
	return p.State() == StatePlaying
}

// IsLoading reports whether the first load is in progress.
func (p *Player) IsLoading() bool {
	return p.State() == StateLoading
}

// Subscribe registers fn for state changes and returns a function removing
// it. fn runs on the goroutine that caused the change.
func (p *Player) Subscribe(fn func(State)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Toggle loads and starts the sound on first use, then alternates between
// pause and resume. A transport that reports the sound as unloaded is
// released and the player returns to Idle.
func (p *Player) Toggle(ctx context.Context) error {
	if !p.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer p.busy.Store(false)

	if !p.isLoaded() {
		p.setState(StateLoading)
		if err := p.transport.Load(ctx, p.uri); err != nil {
			return p.fail("load", err)
		}
		p.markLoaded(true)
		p.setState(StateReady)
		if err := p.transport.Play(ctx); err != nil {
			return p.fail("play", err)
		}
		p.setState(StatePlaying)
		return nil
	}

	status, err := p.transport.Status(ctx)
	if err != nil {
		return p.fail("status", err)
	}
	switch {
	case !status.Loaded:
		if err := p.transport.Unload(ctx); err != nil {
			return p.fail("unload", err)
		}
		p.markLoaded(false)
		p.setState(StateIdle)
	case status.Playing:
		if err := p.transport.Pause(ctx); err != nil {
			return p.fail("pause", err)
		}
		p.setState(StatePaused)
	default:
		if err := p.transport.Play(ctx); err != nil {
			return p.fail("play", err)
		}
		p.setState(StatePlaying)
	}
	return nil
}

// Finished handles the transport's end-of-sound event: the sound is stopped
// and rewound, and the player is Ready again.
func (p *Player) Finished(ctx context.Context) {
	p.setState(StateReady)
	if err := p.transport.Stop(ctx); err != nil {
		logger.Get().Debug("Stop after finish failed", zap.String("uri", p.uri), zap.Error(err))
	}
}

// Stop halts playback and keeps the sound loaded.
func (p *Player) Stop(ctx context.Context) error {
	if !p.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer p.busy.Store(false)

	if !p.isLoaded() {
		return nil
	}
	if err := p.transport.Stop(ctx); err != nil {
		return p.fail("stop", err)
	}
	p.setState(StateReady)
	return nil
}

// Unload releases the sound. The next Toggle loads it again.
func (p *Player) Unload(ctx context.Context) error {
	if !p.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer p.busy.Store(false)

	if !p.isLoaded() {
		p.setState(StateIdle)
		return nil
	}
	err := p.transport.Unload(ctx)
	p.markLoaded(false)
	p.setState(StateIdle)
	if err != nil {
		return fmt.Errorf("failed to unload %s: %w", p.uri, err)
	}
	return nil
}

func (p *Player) isLoaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

func (p *Player) markLoaded(loaded bool) {
	p.mu.Lock()
	p.loaded = loaded
	p.mu.Unlock()
}

func (p *Player) fail(op string, err error) error {
	logger.Get().Error("Audio playback error",
		zap.String("op", op),
		zap.String("uri", p.uri),
		zap.Error(err))
	p.setState(StateFailed)
	return domain.NewError(domain.CodePlaybackFailed, FailureMessage, fmt.Errorf("%s: %w", op, err)).
		WithContext("uri", p.uri)
}

func (p *Player) setState(s State) {
	p.mu.Lock()
	if p.state == s {
		p.mu.Unlock()
		return
	}
	p.state = s
	subs := make([]func(State), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
