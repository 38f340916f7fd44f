package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a game mode",
	Long: `Start playing the given mode: classic, speed or battle.

Controls (defaults, rebindable in settings):
  Left/Right  - Move
  Up          - Rotate
  Down        - Soft drop
  Space       - Hard drop
  P/Esc       - Pause
  R           - Restart (after game over)
  B           - Leave (while paused or after game over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulty sets the fall speed (overrides the settings file):
  easy    - 600ms per row
  normal  - 500ms per row
  hard    - 400ms per row

Examples:
  tetris play classic
  tetris play speed --difficulty hard
  tetris play battle --seed 42
  tetris play classic --config ./my-tetris.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	}
}

// applyFlags validates --config and --difficulty and applies them to the
// game package and the settings.
func applyFlags(s *config.Settings) error {
	if err := checkConfig(flagConfig); err != nil {
		return err
	}
	tetris.SetConfigPath(flagConfig)

	if flagDifficulty != "" {
		p, err := config.ParseDifficultyPreset(flagDifficulty)
		if err != nil {
			return err
		}
		s.Difficulty = p
	}
	tetris.SetDifficultyPreset(string(s.Difficulty))
	return nil
}

func runPlay(_ *cobra.Command, args []string) error {
	id := args[0]
	if !registry.Exists(id) {
		return fmt.Errorf("unknown mode %q (one of: %s)", id, strings.Join(registry.IDs(), ", "))
	}

	settings := loadSettings()
	if err := applyFlags(&settings); err != nil {
		return err
	}

	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	sounds, stopAudio := startAudio(settings)
	defer stopAudio()

	return tui.Run(game, tui.Options{
		Store:        store,
		Sounds:       sounds,
		Settings:     settings,
		SettingsPath: flagSettingsPath,
		Runtime:      runtimeConfig(),
	})
}
