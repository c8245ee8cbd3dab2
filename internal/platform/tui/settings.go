package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
)

// reservedKeys cannot be bound to a play control.
var reservedKeys = map[string]bool{
	"ctrl+c": true,
	"esc":    true,
	"f2":     true,
}

// SettingsKeyMap defines the keys of the settings modal.
type SettingsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Rebind   key.Binding
	Defaults key.Binding
	Close    key.Binding
}

// DefaultSettingsKeyMap returns the modal's stock keys.
func DefaultSettingsKeyMap() SettingsKeyMap {
	return SettingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Rebind: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "rebind"),
		),
		Defaults: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "defaults"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "f2"),
			key.WithHelp("esc", "save & close"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k SettingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Rebind, k.Defaults, k.Close}
}

// FullHelp implements help.KeyMap.
func (k SettingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	settingsBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("6")).
				Padding(1, 2)
	settingsTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	settingsSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	settingsKeyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	settingsErrStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	settingsHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// settingsModal edits key bindings. While capturing, the next key press
// becomes the binding of the selected control.
type settingsModal struct {
	settings  engine.Settings
	initial   engine.Settings
	defaults  engine.Settings
	cursor    int
	capturing bool
	err       error
	keys      SettingsKeyMap
	help      help.Model
}

func newSettingsModal(current, defaults engine.Settings) *settingsModal {
	return &settingsModal{
		settings: current,
		initial:  current,
		defaults: defaults,
		keys:     DefaultSettingsKeyMap(),
		help:     help.New(),
	}
}

// update handles one key press and reports whether the modal is done.
func (m *settingsModal) update(msg tea.KeyMsg) bool {
	if m.capturing {
		m.capture(msg.String())
		return false
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(config.Bindings(m.settings))-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Rebind):
		m.capturing = true
		m.err = nil
	case key.Matches(msg, m.keys.Defaults):
		m.settings = m.defaults
		m.err = nil
	case key.Matches(msg, m.keys.Close):
		return true
	}
	return false
}

func (m *settingsModal) capture(k string) {
	m.capturing = false
	if k == "esc" {
		return
	}
	if reservedKeys[k] {
		m.err = fmt.Errorf("%s is reserved", blockfall.KeyLabel(k))
		return
	}

	name := config.Bindings(m.settings)[m.cursor].Name
	next := config.WithBinding(m.settings, name, k)
	if err := config.ValidateControls(next); err != nil {
		m.err = err
		return
	}
	m.settings = next
	m.err = nil
}

// changed reports whether the bindings differ from the ones the modal
// opened with.
func (m *settingsModal) changed() bool {
	return m.settings != m.initial
}

func (m *settingsModal) View() string {
	var b strings.Builder
	b.WriteString(settingsTitleStyle.Render("SETTINGS"))
	b.WriteString("\n\n")

	for i, binding := range config.Bindings(m.settings) {
		label := fmt.Sprintf("%-14s", controlLabel(binding.Name))
		keyText := blockfall.KeyLabel(binding.Key)
		if i == m.cursor && m.capturing {
			keyText = "press a key…"
		}
		line := fmt.Sprintf(" %s %-12s ", label, keyText)
		if i == m.cursor {
			b.WriteString(settingsSelectedStyle.Render(line))
		} else {
			b.WriteString(fmt.Sprintf(" %s %s ", label, settingsKeyStyle.Render(fmt.Sprintf("%-12s", keyText))))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(settingsErrStyle.Render(m.err.Error()))
	case m.capturing:
		b.WriteString(settingsHintStyle.Render("esc cancels"))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	return settingsBoxStyle.Render(b.String())
}

// controlLabel turns "rotate_left" into "Rotate left".
func controlLabel(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
