package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/games/match3/layouts"
	"github.com/vovakirdan/match3/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game variants and board layouts",
	Long: `Shows every registered game variant, the built-in board layouts and
the layouts found in the configured layouts directory.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	fmt.Println("Game variants:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Board layouts:")
	fmt.Println()

	all, err := layouts.Builtin().LoadAll()
	if err != nil {
		fail(err)
	}
	if cfg, err := config.Load(flagConfig); err == nil && cfg.Layouts.Dir != "" {
		if extra, err := layouts.NewLoader(cfg.Layouts.Dir).LoadAll(); err == nil {
			all = append(all, extra...)
		}
	}

	maxIDLen = 2
	for _, l := range all {
		maxIDLen = max(maxIDLen, len(l.ID))
	}
	fmt.Printf("  %-*s  %-5s  %-5s  %s\n", maxIDLen, "ID", "Size", "Types", "Name")
	fmt.Printf("  %-*s  %-5s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "----")
	for _, l := range all {
		size := fmt.Sprintf("%dx%d", l.Board.Rows(), l.Board.Cols())
		fmt.Printf("  %-*s  %-5s  %-5d  %s\n", maxIDLen, l.ID, size, l.Types, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'match3 play <id> --layout <layout>' to play.")
}
