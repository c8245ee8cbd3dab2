package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// Optional capabilities a game may implement on top of registry.Game.
type (
	settingsGame interface {
		Settings() engine.Settings
		SettingsOpen() bool
		OpenSettings()
		SaveSettings(engine.Settings)
		CloseSettings()
	}
	bindableGame interface {
		SetSettings(engine.Settings)
	}
	resizableGame interface {
		Resize(w, h int)
	}
	loggingGame interface {
		SetLogger(*log.Logger)
	}
	timedGame interface {
		Elapsed() time.Duration
	}
)

// Options carries the per-run extras of a Model.
type Options struct {
	// Logger receives game and platform events. Nil discards them.
	Logger *log.Logger
	// SessionID tags saved scores; empty for local play.
	SessionID string
	// Owner keys the stored key bindings; storage.LocalOwner for local play.
	Owner string
	// Renderer styles the frame. Nil means lipgloss.DefaultRenderer().
	Renderer *lipgloss.Renderer
	// Defaults are the bindings the settings modal resets to.
	// The zero value means config.Default().Controls.
	Defaults engine.Settings
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keys       *KeyMapper
	render     *ScreenRenderer
	inputFrame core.InputFrame
	gameState  core.GameState
	modal      *settingsModal
	startedAt  time.Time
	quitting   bool
	exited     bool // left to the menu
	scoreSaved bool // score recorded for the current game over
	autoPaused bool // paused by losing terminal focus
}

// NewModel prepares game for play. Stored key bindings, if any, replace the
// configured ones before the game is reset.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Defaults == (engine.Settings{}) {
		opts.Defaults = config.Default().Controls
	}

	if lg, ok := game.(loggingGame); ok {
		lg.SetLogger(logger)
	}
	if bg, ok := game.(bindableGame); ok && store != nil {
		settings, found, err := store.LoadKeyBindings(opts.Owner)
		switch {
		case err != nil:
			logger.Warn("cannot load key bindings", "err", err)
		case found:
			bg.SetSettings(settings)
		}
	}
	game.Reset(cfg)

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger,
		render:     NewScreenRenderer(opts.Renderer),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		startedAt:  time.Now(),
	}
	m.keys = NewKeyMapper(m.bindings())
	logger.Info("game started", "game", game.ID(), "seed", cfg.Seed, "session", opts.SessionID)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.BlurMsg:
		m.handleBlur()

	case tea.FocusMsg:
		m.handleFocus()

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleBlur pauses a running game when the terminal loses focus.
func (m *Model) handleBlur() {
	if m.autoPaused || m.modal != nil || m.gameState.Paused || m.gameState.GameOver {
		return
	}
	m.inputFrame.Set(core.ActionPause)
	m.autoPaused = true
	m.logger.Debug("focus lost, pausing", "session", m.opts.SessionID)
}

// handleFocus resumes a game that handleBlur paused. A game the player
// paused, or one with the settings modal open, stays paused.
func (m *Model) handleFocus() {
	if !m.autoPaused {
		return
	}
	m.autoPaused = false

	switch {
	case m.inputFrame.Has(core.ActionPause):
		// No tick ran in between.
		delete(m.inputFrame.Actions, core.ActionPause)
	case m.modal == nil && m.gameState.Paused && !m.gameState.GameOver:
		m.inputFrame.Set(core.ActionPause)
		m.logger.Debug("focus regained, resuming", "session", m.opts.SessionID)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.modal != nil {
		if m.modal.update(msg) {
			m.closeSettings()
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionSettings:
		m.openSettings()
	case action == core.ActionBack:
		if m.gameState.Paused || m.gameState.GameOver {
			m.exited = true
			return m, tea.Quit
		}
		m.inputFrame.Set(core.ActionPause)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m *Model) openSettings() {
	sg, ok := m.game.(settingsGame)
	if !ok || m.gameState.GameOver {
		return
	}
	sg.OpenSettings()
	if sg.SettingsOpen() {
		m.modal = newSettingsModal(sg.Settings(), m.opts.Defaults)
	}
}

func (m *Model) closeSettings() {
	modal := m.modal
	m.modal = nil
	sg, ok := m.game.(settingsGame)
	if !ok {
		return
	}
	sg.SaveSettings(modal.settings)
	sg.CloseSettings()
	m.keys = NewKeyMapper(modal.settings)

	if !modal.changed() {
		return
	}
	m.logger.Info("key bindings changed", "session", m.opts.SessionID, "owner", m.opts.Owner)
	if m.store != nil {
		if err := m.store.SaveKeyBindings(m.opts.Owner, modal.settings); err != nil {
			m.logger.Warn("cannot save key bindings", "err", err)
		}
	}
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	if rg, ok := m.game.(resizableGame); ok {
		rg.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.startedAt = time.Now()
		m.scoreSaved = false
		m.logger.Info("game restarted", "game", m.game.ID(), "session", m.opts.SessionID)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished game. Zero scores are not kept.
func (m *Model) saveScore() {
	st := m.gameState
	duration := time.Since(m.startedAt)
	if tg, ok := m.game.(timedGame); ok {
		duration = tg.Elapsed()
	}
	m.logger.Info("game over", "game", m.game.ID(), "score", st.Score, "lines", st.Lines,
		"level", st.Level, "duration", duration, "session", m.opts.SessionID)

	if m.store == nil || st.Score <= 0 {
		return
	}
	_, err := m.store.SaveScore(storage.Result{
		GameID:    m.game.ID(),
		Score:     st.Score,
		Lines:     st.Lines,
		Level:     st.Level,
		Duration:  duration,
		SessionID: m.opts.SessionID,
	})
	if err != nil {
		m.logger.Warn("cannot save score", "err", err)
	}
}

// bindings returns the game's active key bindings.
func (m Model) bindings() engine.Settings {
	if sg, ok := m.game.(settingsGame); ok {
		return sg.Settings()
	}
	return m.opts.Defaults
}

// saveScreenshot writes the current frame as plain text under
// ~/.blockfall/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current frame, with the settings modal on top when open.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	frame := m.render.Render(m.screen)
	if m.modal == nil {
		return frame
	}
	return lipgloss.Place(m.screen.Width(), m.screen.Height(),
		lipgloss.Center, lipgloss.Center, m.modal.View())
}

// Exited reports whether the player left the game for the menu.
func (m Model) Exited() bool { return m.exited }

// Quitting reports whether the player asked to quit.
func (m Model) Quitting() bool { return m.quitting }

// Run plays game in the current terminal until the player quits or leaves.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
