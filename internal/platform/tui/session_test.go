package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/session"
)

func sessionPress(t *testing.T, m SessionModel, keys ...string) (SessionModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(SessionModel)
	}
	return m, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	reg := session.NewRegistry()
	info := reg.Open("alice", "127.0.0.1:5000")
	m := NewSessionModel(nil, testConfig, SessionOptions{ID: info.ID, Registry: reg})
	assert.Contains(t, m.View(), "B L O C K F A L L")

	m, cmd := sessionPress(t, m, "enter")
	require.Equal(t, screenGame, m.screen)
	assert.NotNil(t, cmd, "game tick loop starts")
	got, _ := reg.Get(info.ID)
	assert.Equal(t, "marathon", got.Mode)

	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(SessionModel)
	assert.Contains(t, m.View(), "MARATHON")

	// Pause, let a tick apply it, then leave.
	m, _ = sessionPress(t, m, "p")
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(SessionModel)
	m, _ = sessionPress(t, m, "esc")
	assert.Equal(t, screenMenu, m.screen)
	assert.False(t, m.quitting)
	got, _ = reg.Get(info.ID)
	assert.Empty(t, got.Mode)

	// Ticks left over from the game are ignored by the menu.
	next, cmd = m.Update(TickMsg(time.Now()))
	assert.Nil(t, cmd)
	assert.Equal(t, screenMenu, next.(SessionModel).screen)
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(nil, testConfig, SessionOptions{})

	m, _ = sessionPress(t, m, "tab")
	require.Equal(t, screenScores, m.screen)
	assert.Contains(t, m.View(), "HIGH SCORES")

	m, _ = sessionPress(t, m, "esc")
	assert.Equal(t, screenMenu, m.screen)
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig, SessionOptions{})
	m, cmd := sessionPress(t, m, "q")
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestSessionQuitFromGame(t *testing.T) {
	m := NewSessionModel(nil, testConfig, SessionOptions{})
	m, _ = sessionPress(t, m, "down", "enter")
	require.Equal(t, screenGame, m.screen)

	m, cmd := sessionPress(t, m, "q")
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

func TestMenuResult(t *testing.T) {
	m := NewMenuModel(nil, testConfig)
	next, _ := m.Update(keyMsg("enter"))
	r := next.(MenuModel).result()
	assert.Equal(t, "marathon", r.GameID)

	m = NewMenuModel(nil, testConfig)
	next, _ = m.Update(keyMsg("down"))
	next, _ = next.(MenuModel).Update(keyMsg("enter"))
	assert.Equal(t, "sprint", next.(MenuModel).result().GameID)

	m = NewMenuModel(nil, testConfig)
	for range 3 {
		next, _ = m.Update(keyMsg("down"))
		m = next.(MenuModel)
	}
	next, _ = m.Update(keyMsg("enter"))
	assert.True(t, next.(MenuModel).result().Quit)
}

func TestSessionGameUsesOwnerBindings(t *testing.T) {
	store := openTestStore(t)
	custom := engine.DefaultSettings()
	custom.HardDrop = "x"
	require.NoError(t, store.SaveKeyBindings(BindingOwner("alice"), custom))

	alice := NewSessionModel(store, testConfig, SessionOptions{Owner: BindingOwner("alice")})
	alice, _ = sessionPress(t, alice, "enter")
	require.Equal(t, screenGame, alice.screen)
	action, _ := alice.game.keys.MapKey(keyMsg("x"))
	assert.Equal(t, core.ActionHardDrop, action)

	bob := NewSessionModel(store, testConfig, SessionOptions{Owner: BindingOwner("bob")})
	bob, _ = sessionPress(t, bob, "enter")
	require.Equal(t, screenGame, bob.screen)
	action, _ = bob.game.keys.MapKey(keyMsg(" "))
	assert.Equal(t, core.ActionHardDrop, action)
}
