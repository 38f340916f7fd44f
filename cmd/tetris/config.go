package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var flagWriteConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default engine config",
	Long: `Print the built-in tetris.yaml: fall intervals, scoring, speed-up and
CPU opponent settings. Edit a copy and pass it with --config, or install
it with --write so every game picks it up.

Examples:
  tetris config > my-tetris.yaml
  tetris config --write          # writes ~/.tetris/configs/tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagWriteConfig, "write", false, "Install the default config in ~/.tetris/configs")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagWriteConfig {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	path := config.DataPath(filepath.Join("configs", "tetris.yaml"))
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
