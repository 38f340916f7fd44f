// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris list              - List game modes
//	tetris play <mode>       - Play classic, speed or battle directly
//	tetris menu              - Start the interactive menu
//	tetris scores [mode]     - Show the high score table
//	tetris settings          - Show or edit player settings
//	tetris serve             - Host the game over SSH
//	tetris config            - Print or install the default engine config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.tetris/scores.db)
//	--settings <path>    - Set settings path (default: ~/.tetris/settings.yaml)
//	--mute               - Disable sound
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/audio"
	"github.com/vovakirdan/tui-tetris/internal/audio/speaker"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"

	// Registers the classic, speed and battle modes
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagDBPath       string
	flagSettingsPath string
	flagMute         bool
	flagLogLevel     string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `A terminal Tetris with three modes:

  classic  - fixed fall speed set by the difficulty
  speed    - the fall speeds up every few cleared lines
  battle   - race a CPU opponent; first to top out loses

Available commands:
  list      - Show the game modes
  play      - Play a mode directly
  menu      - Interactive menu with scores and settings
  scores    - View high scores
  settings  - Show or edit settings
  serve     - Start SSH server for remote play

Examples:
  tetris menu
  tetris play classic --difficulty hard
  tetris play battle
  tetris scores speed
  tetris serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tetris",
			Level:           level,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DataPath("scores.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagSettingsPath, "settings", config.DefaultSettingsPath(), "Path to settings file")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable music and sound effects")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	return rt
}

// openStore opens the score database. The game still runs without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// loadSettings reads the settings record; it is always usable.
func loadSettings() config.Settings {
	s, err := config.LoadSettings(flagSettingsPath)
	if err != nil {
		logger.Warn("could not write settings", "path", flagSettingsPath, "error", err)
	}
	return s
}

// startAudio starts sound on the local speaker. The returned stop func is
// never nil.
func startAudio(s config.Settings) (tui.Sounds, func()) {
	if flagMute {
		return nil, func() {}
	}
	engine := audio.New(s.MusicVolume, s.SFXVolume)
	if err := speaker.Start(engine); err != nil {
		logger.Warn("audio unavailable, playing without sound", "error", err)
		return nil, func() {}
	}
	return engine, func() {
		engine.Stop()
		speaker.Close()
	}
}

// checkConfig reports a custom engine config that cannot be used.
func checkConfig(path string) error {
	if path == "" {
		return nil
	}
	if _, err := config.LoadTetris(path); err != nil {
		return err
	}
	return nil
}
