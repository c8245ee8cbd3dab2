package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (marathon when omitted).

Default controls (rebind them in the settings screen):
  Left/Right  - Move
  Down        - Soft drop
  Z / Up      - Rotate left / right
  Space       - Hard drop
  C           - Hold
  P / Esc     - Pause
  S / F2      - Settings
  R           - Restart (after game over)
  Q / Ctrl+C  - Quit

Examples:
  blockfall play
  blockfall play sprint
  blockfall play marathon --seed 7 --config ./blockfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := string(blockfall.ModeMarathon)
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'blockfall list')", gameID)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	return tui.Run(game, store, runtimeConfig(), tui.Options{
		Logger:   logger,
		Defaults: gameConfig.Controls,
	})
}
