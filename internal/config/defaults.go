package config

import (
	_ "embed"

	"github.com/vovakirdan/match3/internal/games/match3/core"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Rows:      8,
			Cols:      8,
			TileTypes: 4,
		},
		Timing: TimingConfig{
			SettleDelayMS: 300,
		},
		Generation: GenerationConfig{
			MaxRestarts: core.DefaultMaxGenerationRestarts,
		},
		Layout: LayoutConfig{
			CellWidth:  3,
			CellHeight: 1,
		},
	}
}
