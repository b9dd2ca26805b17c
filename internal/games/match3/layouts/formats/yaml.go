// Package formats provides board layout file parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/match3/internal/games/match3/core"
	"gopkg.in/yaml.v3"
)

// DefaultTypes is used when a layout does not set types.
const DefaultTypes = 4

// YAMLLayout represents the YAML structure of a layout file.
type YAMLLayout struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Types         int               `yaml:"types,omitempty"`
	Board         []string          `yaml:"board"`
	SpawnDisabled []int             `yaml:"spawn_disabled,omitempty"`
	Metadata      map[string]string `yaml:"metadata,omitempty"`
}

// Layout is a parsed, validated layout.
type Layout struct {
	ID            string
	Name          string
	Types         int
	Board         *core.Board
	SpawnDisabled []int
	Metadata      map[string]string
}

// ParseYAML parses and validates a YAML layout file.
func ParseYAML(data []byte) (Layout, error) {
	var yl YAMLLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Layout{}, fmt.Errorf("layout has no id")
	}

	types := yl.Types
	if types == 0 {
		types = DefaultTypes
	}
	if types < 2 || types > int(core.MaxTileTypes) {
		return Layout{}, fmt.Errorf("layout %s: types must be in [2, %d], got %d", yl.ID, core.MaxTileTypes, types)
	}

	board, err := core.ParseBoard(yl.Board)
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", yl.ID, err)
	}
	for _, tile := range board.Tiles() {
		if int(tile.Type) >= types {
			return Layout{}, fmt.Errorf("layout %s: tile %s at %v exceeds %d types", yl.ID, tile.Type, tile.Coord, types)
		}
	}
	for _, col := range yl.SpawnDisabled {
		if col < 0 || col >= board.Cols() {
			return Layout{}, fmt.Errorf("layout %s: spawn_disabled column %d out of range", yl.ID, col)
		}
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Layout{
		ID:            yl.ID,
		Name:          name,
		Types:         types,
		Board:         board,
		SpawnDisabled: yl.SpawnDisabled,
		Metadata:      yl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
