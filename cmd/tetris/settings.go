package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagEditSettings  bool
	flagResetSettings bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or edit player settings",
	Long: `Print the current settings: volumes, difficulty and key bindings.
The file is created with defaults on first use.

Examples:
  tetris settings
  tetris settings --edit
  tetris settings --reset`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().BoolVar(&flagEditSettings, "edit", false, "Open the settings editor")
	settingsCmd.Flags().BoolVar(&flagResetSettings, "reset", false, "Restore the default settings")
}

func runSettings(_ *cobra.Command, _ []string) error {
	s := loadSettings()

	switch {
	case flagResetSettings:
		s = config.DefaultSettings()
		if err := config.SaveSettings(flagSettingsPath, s); err != nil {
			return err
		}
		fmt.Println("Settings reset to defaults.")

	case flagEditSettings:
		sounds, stopAudio := startAudio(s)
		defer stopAudio()
		rt := runtimeConfig()
		edited, err := tui.RunSettings(s, flagSettingsPath, sounds, rt.ScreenW, rt.ScreenH)
		if err != nil {
			return err
		}
		s = edited
	}

	fmt.Printf("Settings (%s)\n", config.ExpandPath(flagSettingsPath))
	fmt.Println()
	fmt.Printf("  %-12s %3.0f%%\n", "Music", s.MusicVolume*100)
	fmt.Printf("  %-12s %3.0f%%\n", "Effects", s.SFXVolume*100)
	fmt.Printf("  %-12s %s\n", "Difficulty", s.Difficulty)
	fmt.Println()
	fmt.Println("Controls:")
	for _, a := range config.BindableActions {
		fmt.Printf("  %-12s %s\n", a, strings.Join(s.Controls.Keys(a), ", "))
	}
	return nil
}
