// Package config loads the YAML game configuration: animation timing, the
// sprint goal, the preview size and the default key bindings.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/blockfall/internal/engine"
)

// Config is the full game configuration.
type Config struct {
	Timing   TimingConfig    `yaml:"timing"`
	Sprint   SprintConfig    `yaml:"sprint"`
	Preview  PreviewConfig   `yaml:"preview"`
	Controls engine.Settings `yaml:"controls"`
}

// TimingConfig controls how long the blocking animations run.
type TimingConfig struct {
	LineClearMS         int `yaml:"line_clear_ms"`
	HardDropMS          int `yaml:"hard_drop_ms"`
	AnimationWatchdogMS int `yaml:"animation_watchdog_ms"`
}

// SprintConfig defines the sprint mode goal.
type SprintConfig struct {
	Lines int `yaml:"lines"`
}

// PreviewConfig defines how many upcoming pieces are shown.
type PreviewConfig struct {
	QueueSize int `yaml:"queue_size"`
}

// LineClear returns the line-clear animation length.
func (t TimingConfig) LineClear() time.Duration {
	return time.Duration(t.LineClearMS) * time.Millisecond
}

// HardDrop returns the hard-drop animation length.
func (t TimingConfig) HardDrop() time.Duration {
	return time.Duration(t.HardDropMS) * time.Millisecond
}

// Watchdog returns how long an animation may stay armed before the driver
// completes it on its own.
func (t TimingConfig) Watchdog() time.Duration {
	return time.Duration(t.AnimationWatchdogMS) * time.Millisecond
}

// Validate reports every out-of-range field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Timing.LineClearMS < 0 {
		errs = append(errs, fmt.Errorf("timing.line_clear_ms must be >= 0, got %d", c.Timing.LineClearMS))
	}
	if c.Timing.HardDropMS < 0 {
		errs = append(errs, fmt.Errorf("timing.hard_drop_ms must be >= 0, got %d", c.Timing.HardDropMS))
	}
	if w := c.Timing.AnimationWatchdogMS; w <= 0 || w < c.Timing.LineClearMS || w < c.Timing.HardDropMS {
		errs = append(errs, fmt.Errorf("timing.animation_watchdog_ms must be positive and outlast both animations, got %d", w))
	}
	if c.Sprint.Lines <= 0 {
		errs = append(errs, fmt.Errorf("sprint.lines must be > 0, got %d", c.Sprint.Lines))
	}
	if c.Preview.QueueSize < 0 || c.Preview.QueueSize > len(engine.AllPieceTypes())-1 {
		errs = append(errs, fmt.Errorf("preview.queue_size must be between 0 and %d, got %d",
			len(engine.AllPieceTypes())-1, c.Preview.QueueSize))
	}
	if err := ValidateControls(c.Controls); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateControls checks that every control has a key and that no key is
// bound twice.
func ValidateControls(s engine.Settings) error {
	seen := make(map[string]string, 7)
	for _, b := range Bindings(s) {
		if b.Key == "" {
			return fmt.Errorf("controls.%s is empty", b.Name)
		}
		if other, dup := seen[b.Key]; dup {
			return fmt.Errorf("controls.%s and controls.%s both use %q", other, b.Name, b.Key)
		}
		seen[b.Key] = b.Name
	}
	return nil
}

// Binding pairs a control name with its key.
type Binding struct {
	Name string
	Key  string
}

// Bindings lists the controls of s in display order.
func Bindings(s engine.Settings) []Binding {
	return []Binding{
		{"move_left", s.MoveLeft},
		{"move_right", s.MoveRight},
		{"move_down", s.MoveDown},
		{"rotate_left", s.RotateLeft},
		{"rotate_right", s.RotateRight},
		{"hard_drop", s.HardDrop},
		{"hold_piece", s.HoldPiece},
	}
}

// WithBinding returns s with the named control rebound to key.
// Unknown names leave s unchanged.
func WithBinding(s engine.Settings, name, key string) engine.Settings {
	switch name {
	case "move_left":
		s.MoveLeft = key
	case "move_right":
		s.MoveRight = key
	case "move_down":
		s.MoveDown = key
	case "rotate_left":
		s.RotateLeft = key
	case "rotate_right":
		s.RotateRight = key
	case "hard_drop":
		s.HardDrop = key
	case "hold_piece":
		s.HoldPiece = key
	}
	return s
}
