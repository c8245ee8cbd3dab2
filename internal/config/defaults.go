package config

import (
	_ "embed"

	"github.com/vovakirdan/blockfall/internal/engine"
)

//go:embed defaults/blockfall.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/blockfall.yaml.
func Default() Config {
	return Config{
		Timing: TimingConfig{
			LineClearMS:         500,
			HardDropMS:          200,
			AnimationWatchdogMS: 2000,
		},
		Sprint:   SprintConfig{Lines: 40},
		Preview:  PreviewConfig{QueueSize: 3},
		Controls: engine.DefaultSettings(),
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
