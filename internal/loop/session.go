// Package loop runs one interactive banner session on a terminal.
package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/tomz197/asshbanner/internal/banner"
	"github.com/tomz197/asshbanner/internal/draw"
	"github.com/tomz197/asshbanner/internal/input"
	"github.com/tomz197/asshbanner/internal/loop/config"
	"github.com/tomz197/asshbanner/internal/particle"
	"github.com/tomz197/asshbanner/internal/settings"
)

// Session handles rendering and input for a single terminal.
type Session struct {
	state        *State
	engine       *particle.Engine
	banner       *banner.Banner
	styles       panelStyles
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	idleTimeout  time.Duration
	logger       *log.Logger
	ctx          context.Context
	cancel       context.CancelFunc

	width, height int // Last seen terminal size
	scroll        int // First visible panel field
}

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Settings     *settings.Settings // Starting values; defaults when nil
	Logger       *log.Logger
	Rand         *rand.Rand    // Particle randomness; time-seeded when nil
	IdleTimeout  time.Duration // Disconnect after this long without input; 0 disables
}

// NewSession creates a session reading keys from r and drawing to w.
// The particle timer stops when ctx is cancelled or the session ends.
func NewSession(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) *Session {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	seed := settings.Default()
	if opts.Settings != nil {
		seed = *opts.Settings
	}

	ctx, cancel := context.WithCancel(ctx)

	panel := lipgloss.NewRenderer(w)
	panel.SetColorProfile(termenv.TrueColor)

	return &Session{
		state:        NewState(seed),
		engine:       particle.NewEngine(ctx, opts.Rand, logger),
		banner:       banner.New(w),
		styles:       newPanelStyles(panel),
		chunkWriter:  draw.NewChunkWriter(w, 0, 0),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		idleTimeout:  opts.IdleTimeout,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Run starts the session loop. Blocks until the user quits, the input ends,
// the session idles out or its context is cancelled.
func (s *Session) Run() error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	defer func() {
		s.engine.Close()
		s.cancel()
	}()

	for s.state.Running {
		frameStart := time.Now()

		// Process input
		s.processInput(frameStart)

		// Push particle parameter changes into the animator
		s.applyParticles()

		// Handle screen resize
		s.updateScreen()

		// Draw frame
		if err := s.drawFrame(frameStart); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(s.writer)
	return nil
}

// processInput applies pending keys and tracks inactivity.
func (s *Session) processInput(now time.Time) {
	keys := input.ReadKeys(s.inputStream)
	for _, k := range keys {
		s.state.HandleKey(k)
	}

	if s.inputStream.Closed() || s.ctx.Err() != nil {
		s.state.Running = false
		return
	}

	if len(keys) > 0 {
		s.state.lastInput = now
		s.state.isInactive = false
		return
	}
	if s.idleTimeout <= 0 {
		return
	}
	idle := now.Sub(s.state.lastInput)
	if idle > s.idleTimeout {
		s.logger.Info("disconnecting idle session", "idle", idle.Round(time.Second))
		s.state.Running = false
	} else if idle > s.idleTimeout-config.InactivityWarning {
		s.state.isInactive = true
	}
}

// applyParticles reconfigures the engine when particle settings changed.
func (s *Session) applyParticles() {
	if !s.state.takeDirty() {
		return
	}
	change := s.engine.Apply(s.state.Settings.ParticleParams())
	if change == particle.ChangeReinit || change == particle.ChangeCleared {
		s.logger.Debug("particle set rebuilt", "change", change, "count", s.engine.Animator().Len())
	}
}

// updateScreen tracks terminal size; a size change forces a full clear so
// stale cells from the previous layout disappear.
func (s *Session) updateScreen() {
	width, height, err := s.termSizeFunc()
	if err != nil {
		return
	}
	if width != s.width || height != s.height {
		draw.ClearScreen(s.chunkWriter)
		s.width, s.height = width, height
	}
}
