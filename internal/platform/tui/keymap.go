package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// KeyMapper translates key presses into game actions. Play controls come
// from the player's key bindings; the remaining keys are fixed.
type KeyMapper struct {
	play map[string]core.Action
}

// NewKeyMapper builds a mapper for the given bindings.
func NewKeyMapper(s engine.Settings) *KeyMapper {
	return &KeyMapper{play: map[string]core.Action{
		s.MoveLeft:    core.ActionMoveLeft,
		s.MoveRight:   core.ActionMoveRight,
		s.MoveDown:    core.ActionSoftDrop,
		s.RotateLeft:  core.ActionRotateLeft,
		s.RotateRight: core.ActionRotateRight,
		s.HardDrop:    core.ActionHardDrop,
		s.HoldPiece:   core.ActionHold,
	}}
}

// MapKey returns the action for msg (possibly ActionNone) and whether it
// asks to quit. Bound play keys win over the fixed ones, except ctrl+c.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return core.ActionQuit, true
	}
	if a, ok := km.play[key]; ok && key != "" {
		return a, false
	}

	switch key {
	case "q":
		return core.ActionQuit, true
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "s", "f2":
		return core.ActionSettings, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MenuAction is a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
