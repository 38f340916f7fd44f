package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the high score table",
	Long: `Display the top 10 scores. The table is shared by all modes; pass a
mode to show only its entries. Battle results are summarized below.

Examples:
  tetris scores
  tetris scores speed
  tetris scores --clear          # delete every score
  tetris scores classic --clear  # delete classic scores only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the selected scores")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if !registry.Exists(mode) {
			return fmt.Errorf("unknown mode %q (one of: %s)", mode, strings.Join(registry.IDs(), ", "))
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	scores, err := store.TopScores(mode, storage.MaxScores)
	if err != nil {
		return fmt.Errorf("retrieve scores: %w", err)
	}

	if mode == "" {
		fmt.Println("High Scores")
	} else {
		fmt.Printf("High Scores - %s\n", mode)
	}
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play classic' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Mode", "Date")
		fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %-8s  %s\n", i+1, entry.Score, entry.Mode, entry.Date())
		}
		fmt.Println()
		fmt.Printf("Best: %d\n", scores[0].Score)
	}

	if mode == "" || mode == "battle" {
		return printBattles(store)
	}
	return nil
}

func printBattles(store *storage.Store) error {
	tally, tallyErr := store.Tally()
	recent, recentErr := store.RecentBattles(5)
	if err := errors.Join(tallyErr, recentErr); err != nil {
		return err
	}
	if len(recent) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Printf("Battles: %d won, %d lost\n", tally.Wins, tally.Losses)
	for _, b := range recent {
		result := "lost"
		if b.PlayerWon {
			result = "won "
		}
		fmt.Printf("  %s  %6d - %-6d  %s  %s\n",
			result, b.PlayerScore, b.CPUScore, b.Duration.Round(time.Second), b.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
