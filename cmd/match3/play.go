package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/match3"
	"github.com/vovakirdan/match3/internal/platform/tui"
	"github.com/vovakirdan/match3/internal/registry"
)

var (
	flagLayout  string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game variant (default: match3).

Controls:
  Arrows/WASD/hjkl - Move the cursor
  Enter/Space      - Select a tile, then a neighbour to swap
  Mouse drag       - Swipe a tile onto its neighbour
  Esc/B            - Clear the selection
  1-9              - Toggle refill of that column
  ?                - Show a swap that makes a match
  P                - Pause
  R                - New board
  Q/Ctrl+C         - Quit

Examples:
  match3 play
  match3 play match3_drain
  match3 play --layout walled
  match3 play --layout ./boards/mine.yaml --seed 3
  match3 play --log-file /tmp/match3.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLayout, "layout", "", "Starting board: layout id or YAML file")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal belongs to the game)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "match3"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available games.")
		os.Exit(1)
	}

	closeLog, err := setupGameLogger()
	if err != nil {
		fail(err)
	}
	defer closeLog()

	cfg := runtimeConfig()
	cfg.Layout = flagLayout

	game, err := registry.Create(gameID)
	if err != nil {
		fail(err)
	}

	if err := tui.Run(game, cfg); err != nil {
		closeLog()
		fail(err)
	}
}

// runtimeConfig builds the runtime config from the global flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		ConfigPath: flagConfig,
	}
}

// setupGameLogger points the game logger at --log-file, or discards logs.
func setupGameLogger() (func(), error) {
	var w io.Writer = io.Discard
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return closer, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() {
			//nolint:errcheck // Best-effort close on exit
			f.Close()
		}
	}

	logger, err := newLogger(w)
	if err != nil {
		closer()
		return func() {}, err
	}
	match3.SetLogger(logger)
	return closer, nil
}
