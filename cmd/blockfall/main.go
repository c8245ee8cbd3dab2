// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall list            - List game modes
//	blockfall play [mode]     - Play a mode (default: marathon)
//	blockfall menu            - Pick modes from an interactive menu
//	blockfall serve           - Start the SSH server for remote play
//	blockfall scores [mode]   - Show high scores
//
// Global flags:
//
//	--fps <rate>     - Tick rate (default: 60)
//	--seed <value>   - RNG seed for a reproducible piece sequence
//	--db <path>      - Database path (default: ~/.blockfall/scores.db)
//	--config <path>  - Game config YAML
//	--debug          - Write debug logs to ~/.blockfall/debug.log
//
// Settings are also read from the environment and from a .env file in the
// working directory: BLOCKFALL_DB, BLOCKFALL_CONFIG, BLOCKFALL_SSH_ADDR.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagFPS    int
	flagSeed   uint64
	flagDBPath string
	flagConfig string
	flagDebug  bool
)

// gameConfig is the loaded configuration, set before any subcommand runs.
var gameConfig = config.Default()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle game for your terminal",
	Long: `Blockfall drops tetrominoes into a 10x20 well. Fill rows to clear them;
the game speeds up every ten lines and ends when the stack reaches the top.

Modes:
  marathon  - play until you top out
  sprint    - clear 40 lines as fast as you can

Examples:
  blockfall play
  blockfall play sprint --seed 42
  blockfall menu
  blockfall serve --ssh :2222
  blockfall scores sprint`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a game config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs to ~/.blockfall/debug.log")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(defaultsCmd)
}

// setup reads .env, applies environment overrides to unset flags and loads
// the game config.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot read .env: %w", err)
	}

	envOverride(cmd, "db", "BLOCKFALL_DB", &flagDBPath)
	envOverride(cmd, "config", "BLOCKFALL_CONFIG", &flagConfig)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	gameConfig = cfg
	blockfall.SetDefaultConfig(cfg)
	return nil
}

// envOverride sets *dst from the environment unless the flag was given.
func envOverride(cmd *cobra.Command, flag, env string, dst *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// newLogger returns the logger for terminal play. The terminal belongs to
// the game, so logs go to a file and only with --debug.
func newLogger() (*log.Logger, func(), error) {
	if !flagDebug {
		return log.New(io.Discard), func() {}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".blockfall")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open debug log: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          "blockfall",
	})
	return logger, func() { f.Close() }, nil
}

// openStore opens the scores database. Play continues without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("cannot open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
