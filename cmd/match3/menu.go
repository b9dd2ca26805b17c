package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/games/match3/layouts"
	"github.com/vovakirdan/match3/internal/platform/tui"
	"github.com/vovakirdan/match3/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a game variant and board layout interactively",
	Long: `Start in interactive menu mode.

Use Up/Down to choose a variant and Left/Right to choose a board layout,
Enter to play. After quitting a game you return to the menu.

Examples:
  match3 menu
  match3 menu --fps 60`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runMenu(_ *cobra.Command, _ []string) {
	closeLog, err := setupGameLogger()
	if err != nil {
		fail(err)
	}
	defer closeLog()

	ids, err := layouts.Builtin().ListIDs()
	if err != nil {
		fail(err)
	}

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(cfg, ids)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = res.Config
		if res.Quit {
			break
		}

		game, err := registry.Create(res.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		run := cfg
		run.Layout = res.Layout
		if flagSeed == 0 {
			run.Seed = time.Now().UnixNano()
		}
		cfg.Layout = res.Layout

		if err := tui.Run(game, run); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
