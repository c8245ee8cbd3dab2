// Package blockfall drives the engine in real time. It turns input frames
// into engine actions, runs gravity and the animation timers on a fixed
// tick, and draws the board into a core.Screen.
package blockfall

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Mode selects the win condition.
type Mode string

const (
	// ModeMarathon runs until the stack tops out.
	ModeMarathon Mode = "marathon"
	// ModeSprint ends once the configured number of lines is cleared.
	ModeSprint Mode = "sprint"
)

// Minimum screen size for the full layout.
const (
	minScreenW = 50
	minScreenH = 24
)

var (
	configMu      sync.RWMutex
	defaultConfig = config.Default()
)

// SetDefaultConfig sets the configuration used by games created afterwards.
func SetDefaultConfig(cfg config.Config) {
	configMu.Lock()
	defer configMu.Unlock()
	defaultConfig = cfg
}

func currentConfig() config.Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return defaultConfig
}

// Game is one play session in a given mode.
type Game struct {
	mode     Mode
	cfg      config.Config
	settings engine.Settings
	logger   *log.Logger

	state   engine.State
	tick    uint64
	tickDur time.Duration
	elapsed time.Duration // time spent Playing
	gravity time.Duration // accumulated since the last gravity step
	anim    animationTimer

	screenW  int
	screenH  int
	tooSmall bool
	finished bool // sprint goal reached
}

// New creates a game in the given mode using the current default config.
func New(mode Mode) *Game {
	cfg := currentConfig()
	return &Game{
		mode:     mode,
		cfg:      cfg,
		settings: cfg.Controls,
		logger:   log.New(io.Discard),
	}
}

func init() {
	registry.Register(string(ModeMarathon), func() registry.Game { return New(ModeMarathon) })
	registry.Register(string(ModeSprint), func() registry.Game { return New(ModeSprint) })
}

// ID returns the mode identifier.
func (g *Game) ID() string { return string(g.mode) }

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSprint {
		return "Blockfall Sprint"
	}
	return "Blockfall Marathon"
}

// SetLogger routes debug output (dispatched actions, status and animation
// changes) to l.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// SetSettings sets the key bindings used by the next Reset.
func (g *Game) SetSettings(s engine.Settings) {
	g.settings = s
}

// Reset starts a fresh session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tickDur = time.Second / time.Duration(tickRate)
	g.state = engine.InitWithSettings(cfg.Seed, g.settings)
	g.tick = 0
	g.resetTimers()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.logger.Debug("reset", "mode", g.mode, "seed", cfg.Seed, "tick_rate", tickRate)
}

func (g *Game) resetTimers() {
	g.elapsed = 0
	g.gravity = 0
	g.anim = animationTimer{}
	g.finished = false
}

// Resize updates the screen size without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && (g.finished || g.state.Status == engine.StatusGameOver) {
		g.dispatch(engine.Restart())
		g.resetTimers()
		return core.StepResult{State: g.State()}
	}
	if g.finished {
		return core.StepResult{State: g.State()}
	}
	if g.tooSmall {
		// Frozen, but an armed animation is never drawn and must still finish.
		g.advanceAnimation()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.state.SettingsModalOpen {
		switch g.state.Status {
		case engine.StatusPlaying:
			g.dispatch(engine.Pause())
		case engine.StatusPaused:
			g.dispatch(engine.Resume())
		}
	}

	if g.state.Status == engine.StatusPlaying {
		g.elapsed += g.tickDur
		g.applyInput(in)
	}
	g.advanceAnimation()
	g.advanceGravity()

	if g.mode == ModeSprint && g.state.LinesCleared >= g.cfg.Sprint.Lines && !g.finished {
		g.finished = true
		g.logger.Debug("sprint finished", "lines", g.state.LinesCleared, "elapsed", g.elapsed)
	}
	return core.StepResult{State: g.State()}
}

// inputActions maps intents to engine actions in the order they apply
// within a single tick.
var inputActions = []struct {
	intent core.Action
	action func() engine.Action
}{
	{core.ActionHold, engine.Hold},
	{core.ActionRotateLeft, engine.RotateLeft},
	{core.ActionRotateRight, engine.RotateRight},
	{core.ActionMoveLeft, engine.MoveLeft},
	{core.ActionMoveRight, engine.MoveRight},
	{core.ActionSoftDrop, engine.MoveDown},
	{core.ActionHardDrop, engine.HardDrop},
}

func (g *Game) applyInput(in core.InputFrame) {
	for _, m := range inputActions {
		if !in.Has(m.intent) {
			continue
		}
		g.dispatch(m.action())
		if m.intent == core.ActionSoftDrop {
			g.gravity = 0
		}
	}
}

// advanceGravity runs the gravity timer and the per-tick lock delay update.
func (g *Game) advanceGravity() {
	if g.state.Status != engine.StatusPlaying || g.state.Animation != engine.AnimationNone {
		return
	}
	g.gravity += g.tickDur
	if g.gravity >= engine.GravityInterval(g.state.Level()) {
		g.gravity = 0
		g.dispatch(engine.Tick())
	}
	g.dispatch(engine.UpdateLockDelay())
}

func (g *Game) dispatch(a engine.Action) {
	prev := g.state
	g.state = engine.Reduce(g.state, a)

	if a.Type != engine.ActionTick && a.Type != engine.ActionUpdateLockDelay {
		g.logger.Debug("dispatch", "tick", g.tick, "action", a)
	}
	if prev.Status != g.state.Status {
		g.logger.Debug("status", "from", prev.Status, "to", g.state.Status, "score", g.state.Score)
	}
	if prev.Animation != g.state.Animation {
		g.logger.Debug("animation", "from", prev.Animation, "to", g.state.Animation)
	}
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		Lines:    g.state.LinesCleared,
		Level:    g.state.Level(),
		GameOver: g.finished || g.state.Status == engine.StatusGameOver,
		Paused:   g.state.Status == engine.StatusPaused || g.tooSmall,
	}
}

// Engine returns the current engine state.
func (g *Game) Engine() engine.State { return g.state }

// Elapsed returns the time spent playing so far.
func (g *Game) Elapsed() time.Duration { return g.elapsed }

// Finished reports whether a sprint has reached its goal.
func (g *Game) Finished() bool { return g.finished }

// Settings returns the active key bindings.
func (g *Game) Settings() engine.Settings { return g.state.Settings }

// SettingsOpen reports whether the settings modal is showing.
func (g *Game) SettingsOpen() bool { return g.state.SettingsModalOpen }

// OpenSettings shows the settings modal, pausing a running game.
func (g *Game) OpenSettings() { g.dispatch(engine.OpenSettings()) }

// SaveSettings replaces the key bindings of the running game.
func (g *Game) SaveSettings(s engine.Settings) {
	g.settings = s
	g.dispatch(engine.SaveSettings(s))
}

// CloseSettings hides the modal and resumes a game it paused.
func (g *Game) CloseSettings() { g.dispatch(engine.CloseSettings()) }
