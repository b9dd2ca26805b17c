// match3 is a terminal tile-matching puzzle and a headless driver for its
// board engine.
//
// Usage:
//
//	match3 list                 - List game variants and board layouts
//	match3 play [game]          - Play a game (default: match3)
//	match3 menu                 - Pick a variant and layout interactively
//	match3 generate             - Print a generated match-free board
//	match3 simulate             - Run random swaps headlessly and report cascades
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--config <path>      - Game config YAML (default: search order)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap tiles, clear runs, watch cascades",
	Long: `Match-3 is a terminal tile-matching puzzle.

Swap two neighbouring tiles to line up three or more of a kind. Matched
tiles disappear, the tiles above fall down and each column refills from
the top unless its refill is switched off.

Available commands:
  list      - Show game variants and board layouts
  play      - Play a game directly
  menu      - Interactive variant and layout picker
  generate  - Print a generated board
  simulate  - Run random swaps without a terminal UI

Examples:
  match3 play
  match3 play match3_drain --layout walled
  match3 generate --rows 6 --cols 10 --types 5
  match3 simulate --swaps 50 --seed 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the command logger writing to w at --log-level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
		Level:           level,
	})
	return logger, nil
}

// fail prints the error the way every command reports it and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
