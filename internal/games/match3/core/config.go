package core

import (
	"fmt"
	"time"
)

// Validation error codes.
const (
	CodeInvalidRows         = "INVALID_ROWS"
	CodeInvalidCols         = "INVALID_COLS"
	CodeInvalidTypes        = "INVALID_TYPES"
	CodeInvalidDelay        = "INVALID_DELAY"
	CodeInvalidSpawnColumns = "INVALID_SPAWN_COLUMNS"
	CodeInvalidLayout       = "INVALID_LAYOUT"
	CodeInvalidRestarts     = "INVALID_RESTARTS"
)

// DefaultMaxGenerationRestarts bounds full generator restarts.
const DefaultMaxGenerationRestarts = 10000

// Config holds everything fixed at engine construction.
type Config struct {
	Rows        int
	Cols        int
	TypeCount   int           // number of tile types in play, 2..MaxTileTypes
	SettleDelay time.Duration // wait after every mutating transition

	// SpawnColumns sets initial per-column spawning. nil enables every column;
	// otherwise the length must equal Cols.
	SpawnColumns []bool

	Seed                  int64
	MaxGenerationRestarts int // 0 means DefaultMaxGenerationRestarts
	Layout                Layout
}

// DefaultConfig returns an 8x8 board with four types and a 300ms settle delay.
func DefaultConfig() Config {
	return Config{
		Rows:        8,
		Cols:        8,
		TypeCount:   4,
		SettleDelay: 300 * time.Millisecond,
		Layout:      DefaultLayout(),
	}
}

// Validate checks construction invariants.
func (c Config) Validate() error {
	if c.Rows <= 0 {
		return ValidationError{Code: CodeInvalidRows, Message: fmt.Sprintf("rows must be positive, got %d", c.Rows)}
	}
	if c.Cols <= 0 {
		return ValidationError{Code: CodeInvalidCols, Message: fmt.Sprintf("cols must be positive, got %d", c.Cols)}
	}
	if c.TypeCount < 2 || c.TypeCount > int(MaxTileTypes) {
		return ValidationError{
			Code:    CodeInvalidTypes,
			Message: fmt.Sprintf("tile types must be in [2, %d], got %d", MaxTileTypes, c.TypeCount),
		}
	}
	if c.SettleDelay < 0 {
		return ValidationError{Code: CodeInvalidDelay, Message: fmt.Sprintf("settle delay must not be negative, got %v", c.SettleDelay)}
	}
	if c.SpawnColumns != nil && len(c.SpawnColumns) != c.Cols {
		return ValidationError{
			Code:    CodeInvalidSpawnColumns,
			Message: fmt.Sprintf("spawn columns has %d entries, want %d", len(c.SpawnColumns), c.Cols),
		}
	}
	if c.MaxGenerationRestarts < 0 {
		return ValidationError{Code: CodeInvalidRestarts, Message: "max generation restarts must not be negative"}
	}
	if c.Layout.CellWidth <= 0 || c.Layout.CellHeight <= 0 {
		return ValidationError{Code: CodeInvalidLayout, Message: "layout cell size must be positive"}
	}
	return nil
}

func (c Config) restartBudget() int {
	if c.MaxGenerationRestarts == 0 {
		return DefaultMaxGenerationRestarts
	}
	return c.MaxGenerationRestarts
}
