package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(TickMsg(time.Now()))
	require.NotNil(t, cmd, "tick loop continues")
	return next.(Model)
}

// stubGame reports whatever state the test sets.
type stubGame struct {
	state   core.GameState
	elapsed time.Duration
	steps   int
}

func (g *stubGame) ID() string               { return "marathon" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }
func (g *stubGame) Render(dst *core.Screen)  { dst.Clear() }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Elapsed() time.Duration   { return g.elapsed }
func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.state}
}

func TestModelPauseAndLeave(t *testing.T) {
	game := blockfall.New(blockfall.ModeMarathon)
	m := NewModel(game, nil, testConfig, Options{})

	m, cmd := press(t, m, "esc")
	assert.Nil(t, cmd)
	m = tick(t, m)
	require.Equal(t, engine.StatusPaused, game.Engine().Status, "esc pauses a running game")

	m, cmd = press(t, m, "esc")
	assert.NotNil(t, cmd)
	assert.True(t, m.Exited())
	assert.False(t, m.Quitting())
}

func focus(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	assert.Nil(t, cmd)
	return next.(Model)
}

func TestModelPausesWhileUnfocused(t *testing.T) {
	game := blockfall.New(blockfall.ModeMarathon)
	m := tick(t, NewModel(game, nil, testConfig, Options{}))

	m = tick(t, focus(t, m, tea.BlurMsg{}))
	require.Equal(t, engine.StatusPaused, game.Engine().Status)

	m = tick(t, focus(t, m, tea.FocusMsg{}))
	assert.Equal(t, engine.StatusPlaying, game.Engine().Status)
	assert.False(t, m.autoPaused)
}

func TestModelFocusKeepsPlayerPause(t *testing.T) {
	game := blockfall.New(blockfall.ModeMarathon)
	m := NewModel(game, nil, testConfig, Options{})

	m, _ = press(t, m, "p")
	m = tick(t, m)
	require.Equal(t, engine.StatusPaused, game.Engine().Status)

	m = tick(t, focus(t, m, tea.BlurMsg{}))
	tick(t, focus(t, m, tea.FocusMsg{}))
	assert.Equal(t, engine.StatusPaused, game.Engine().Status, "only a blur pause is undone by focus")
}

func TestModelFocusWithSettingsOpen(t *testing.T) {
	game := blockfall.New(blockfall.ModeMarathon)
	m := tick(t, NewModel(game, nil, testConfig, Options{}))

	m = tick(t, focus(t, m, tea.BlurMsg{}))
	require.Equal(t, engine.StatusPaused, game.Engine().Status)

	m, _ = press(t, m, "s")
	require.NotNil(t, m.modal)
	tick(t, focus(t, m, tea.FocusMsg{}))
	assert.Equal(t, engine.StatusPaused, game.Engine().Status)
	assert.True(t, game.SettingsOpen())
}

func TestModelBlurAndFocusWithinOneTick(t *testing.T) {
	game := blockfall.New(blockfall.ModeMarathon)
	m := tick(t, NewModel(game, nil, testConfig, Options{}))

	m = focus(t, m, tea.BlurMsg{})
	m = focus(t, m, tea.FocusMsg{})
	tick(t, m)
	assert.Equal(t, engine.StatusPlaying, game.Engine().Status)
}

func TestModelQuit(t *testing.T) {
	m := NewModel(blockfall.New(blockfall.ModeMarathon), nil, testConfig, Options{})
	m, cmd := press(t, m, "q")
	assert.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())
}

func TestModelMovesPiece(t *testing.T) {
	game := blockfall.New(blockfall.ModeMarathon)
	m := NewModel(game, nil, testConfig, Options{})
	x := game.Engine().Current.Position.X

	m, _ = press(t, m, "left")
	tick(t, m)
	assert.Equal(t, x-1, game.Engine().Current.Position.X)
}

func TestModelSettingsRebind(t *testing.T) {
	store := openTestStore(t)
	game := blockfall.New(blockfall.ModeMarathon)
	m := NewModel(game, store, testConfig, Options{})

	m, _ = press(t, m, "s")
	require.NotNil(t, m.modal)
	assert.True(t, game.SettingsOpen())
	assert.Equal(t, engine.StatusPaused, game.Engine().Status)
	assert.Contains(t, m.View(), "SETTINGS")

	// move_left is the first control.
	m, _ = press(t, m, "enter", "x", "esc")
	assert.Nil(t, m.modal)
	assert.False(t, game.SettingsOpen())
	assert.Equal(t, engine.StatusPlaying, game.Engine().Status)
	assert.Equal(t, "x", game.Settings().MoveLeft)

	action, _ := m.keys.MapKey(keyMsg("x"))
	assert.Equal(t, core.ActionMoveLeft, action)

	saved, found, err := store.LoadKeyBindings(storage.LocalOwner)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "x", saved.MoveLeft)
}

func TestModelLoadsStoredBindings(t *testing.T) {
	store := openTestStore(t)
	custom := engine.DefaultSettings()
	custom.HoldPiece = "h"
	require.NoError(t, store.SaveKeyBindings(storage.LocalOwner, custom))

	game := blockfall.New(blockfall.ModeSprint)
	m := NewModel(game, store, testConfig, Options{})
	assert.Equal(t, "h", game.Settings().HoldPiece)

	action, _ := m.keys.MapKey(keyMsg("h"))
	assert.Equal(t, core.ActionHold, action)
}

func TestModelBindingsStayWithTheirOwner(t *testing.T) {
	store := openTestStore(t)
	alice := BindingOwner("alice")
	bob := BindingOwner("bob")

	aliceGame := blockfall.New(blockfall.ModeMarathon)
	m := NewModel(aliceGame, store, testConfig, Options{SessionID: "a", Owner: alice})
	// hard_drop is the sixth control.
	m, _ = press(t, m, "s", "down", "down", "down", "down", "down", "enter", "x", "esc")
	require.Nil(t, m.modal)
	require.Equal(t, "x", aliceGame.Settings().HardDrop)

	bobGame := blockfall.New(blockfall.ModeMarathon)
	bm := NewModel(bobGame, store, testConfig, Options{SessionID: "b", Owner: bob})
	assert.Equal(t, " ", bobGame.Settings().HardDrop)
	action, _ := bm.keys.MapKey(keyMsg(" "))
	assert.Equal(t, core.ActionHardDrop, action)

	localGame := blockfall.New(blockfall.ModeMarathon)
	NewModel(localGame, store, testConfig, Options{})
	assert.Equal(t, " ", localGame.Settings().HardDrop)

	againGame := blockfall.New(blockfall.ModeSprint)
	NewModel(againGame, store, testConfig, Options{SessionID: "c", Owner: alice})
	assert.Equal(t, "x", againGame.Settings().HardDrop, "alice's binding survives a new session")
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{}
	m := NewModel(game, store, testConfig, Options{SessionID: "abc"})

	m = tick(t, m)
	game.state = core.GameState{Score: 1200, Lines: 4, Level: 0, GameOver: true}
	game.elapsed = 90 * time.Second
	m = tick(t, m)
	m = tick(t, m)

	scores, err := store.TopScores("marathon", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 1200, scores[0].Score)
	assert.Equal(t, 4, scores[0].Lines)
	assert.Equal(t, 90*time.Second, scores[0].Duration)
	assert.Equal(t, "abc", scores[0].SessionID)

	// A restart arms saving again.
	m, _ = press(t, m, "r")
	game.state = core.GameState{}
	m = tick(t, m)
	game.state = core.GameState{Score: 40, Lines: 1, GameOver: true}
	tick(t, m)

	scores, err = store.TopScores("marathon", 10)
	require.NoError(t, err)
	assert.Len(t, scores, 2)
}

func TestModelSkipsZeroScore(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{state: core.GameState{GameOver: true}}
	m := NewModel(game, store, testConfig, Options{})
	game.state.GameOver = true
	tick(t, m)

	scores, err := store.TopScores("marathon", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := blockfall.New(blockfall.ModeMarathon)
	m := NewModel(game, nil, testConfig, Options{})
	m, _ = press(t, m, "left")
	m = tick(t, m)
	before := game.Engine()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	assert.Equal(t, before.Current, game.Engine().Current)
	assert.Equal(t, 100, m.screen.Width())

	view := m.View()
	assert.True(t, strings.Contains(view, "BLOCKFALL"), "full layout at 100x30")
}
