package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start in menu mode: pick a mode and difficulty, browse high scores
and edit settings. After a game you return to the menu.

Controls:
  Up/Down/j/k   - Navigate
  Left/Right    - Change difficulty
  Enter/Space   - Select
  Tab           - High scores
  Q             - Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --mute --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	settings := loadSettings()
	if err := applyFlags(&settings); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	sounds, stopAudio := startAudio(settings)
	defer stopAudio()

	return tui.RunApp(tui.Options{
		Store:        store,
		Sounds:       sounds,
		Settings:     settings,
		SettingsPath: flagSettingsPath,
		Runtime:      runtimeConfig(),
	})
}
