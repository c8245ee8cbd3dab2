package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/engine"
)

func TestSettingsModalNavigation(t *testing.T) {
	m := newSettingsModal(engine.DefaultSettings(), engine.DefaultSettings())

	m.update(keyMsg("up"))
	assert.Equal(t, 0, m.cursor)
	for range 10 {
		m.update(keyMsg("down"))
	}
	assert.Equal(t, 6, m.cursor, "stops at the last control")

	assert.True(t, m.update(keyMsg("esc")))
}

func TestSettingsModalRebind(t *testing.T) {
	m := newSettingsModal(engine.DefaultSettings(), engine.DefaultSettings())
	m.update(keyMsg("down")) // move_right

	require.False(t, m.update(keyMsg("enter")))
	require.True(t, m.capturing)
	assert.Contains(t, m.View(), "press a key")

	m.update(keyMsg("d"))
	assert.False(t, m.capturing)
	assert.Equal(t, "d", m.settings.MoveRight)
	assert.True(t, m.changed())
}

func TestSettingsModalRejectsDuplicate(t *testing.T) {
	m := newSettingsModal(engine.DefaultSettings(), engine.DefaultSettings())

	m.update(keyMsg("enter"))
	m.update(keyMsg("right")) // already move_right
	require.Error(t, m.err)
	assert.Equal(t, "left", m.settings.MoveLeft)
	assert.False(t, m.changed())
	assert.Contains(t, m.View(), "both use")
}

func TestSettingsModalRejectsReserved(t *testing.T) {
	m := newSettingsModal(engine.DefaultSettings(), engine.DefaultSettings())

	m.update(keyMsg("enter"))
	m.update(keyMsg("f2"))
	require.Error(t, m.err)
	assert.Equal(t, "left", m.settings.MoveLeft)
}

func TestSettingsModalCancelCapture(t *testing.T) {
	m := newSettingsModal(engine.DefaultSettings(), engine.DefaultSettings())

	m.update(keyMsg("enter"))
	assert.False(t, m.update(keyMsg("esc")), "esc while capturing only cancels")
	assert.False(t, m.capturing)
	assert.NoError(t, m.err)
	assert.False(t, m.changed())
}

func TestSettingsModalDefaults(t *testing.T) {
	custom := engine.DefaultSettings()
	custom.HardDrop = "x"
	m := newSettingsModal(custom, engine.DefaultSettings())

	m.update(keyMsg("d"))
	assert.Equal(t, engine.DefaultSettings(), m.settings)
	assert.True(t, m.changed())
}

func TestControlLabel(t *testing.T) {
	assert.Equal(t, "Rotate left", controlLabel("rotate_left"))
	assert.Equal(t, "", controlLabel(""))
}
