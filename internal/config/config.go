// Package config provides YAML-based configuration loading for match-3.
package config

import (
	"time"

	"github.com/vovakirdan/match3/internal/games/match3/core"
)

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Generation GenerationConfig `yaml:"generation"`
	Layout     LayoutConfig     `yaml:"layout"`
	Layouts    LayoutsConfig    `yaml:"layouts"`
}

// BoardConfig defines grid dimensions and the number of tile types.
type BoardConfig struct {
	Rows      int `yaml:"rows"`
	Cols      int `yaml:"cols"`
	TileTypes int `yaml:"tile_types"`
}

// TimingConfig defines the settle delay between cascade steps.
type TimingConfig struct {
	SettleDelayMS int `yaml:"settle_delay_ms"`
}

// SpawnConfig defines which columns start without replenishment.
type SpawnConfig struct {
	DisabledColumns []int `yaml:"disabled_columns"`
}

// GenerationConfig bounds initial board generation.
type GenerationConfig struct {
	MaxRestarts int `yaml:"max_restarts"` // 0 = engine default
}

// LayoutConfig defines the size of one tile on screen, in terminal cells.
type LayoutConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// LayoutsConfig points at a directory of board layout files.
type LayoutsConfig struct {
	Dir string `yaml:"dir"`
}

// SettleDelay returns the configured delay as a duration.
func (c Match3Config) SettleDelay() time.Duration {
	return time.Duration(c.Timing.SettleDelayMS) * time.Millisecond
}

// ToEngineConfig converts the file config into an engine config.
// The layout origin is left at zero; the caller places the board on screen.
func (c Match3Config) ToEngineConfig(seed int64) core.Config {
	cfg := core.Config{
		Rows:                  c.Board.Rows,
		Cols:                  c.Board.Cols,
		TypeCount:             c.Board.TileTypes,
		SettleDelay:           c.SettleDelay(),
		Seed:                  seed,
		MaxGenerationRestarts: c.Generation.MaxRestarts,
		Layout: core.Layout{
			CellWidth:  float64(c.Layout.CellWidth),
			CellHeight: float64(c.Layout.CellHeight),
		},
	}
	if len(c.Spawn.DisabledColumns) > 0 && c.Board.Cols > 0 {
		cfg.SpawnColumns = make([]bool, c.Board.Cols)
		for i := range cfg.SpawnColumns {
			cfg.SpawnColumns[i] = true
		}
		for _, col := range c.Spawn.DisabledColumns {
			if col >= 0 && col < c.Board.Cols {
				cfg.SpawnColumns[col] = false
			}
		}
	}
	return cfg
}

// Validate checks the config against the engine's construction rules.
func (c Match3Config) Validate() error {
	return c.ToEngineConfig(0).Validate()
}
