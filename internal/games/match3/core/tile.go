package core

import "strings"

// TileType is the kind of a tile. Tiles match when their types are equal.
type TileType uint8

const (
	TileBlue TileType = iota
	TileGreen
	TileRed
	TileYellow
	TilePurple
	TileOrange
	MaxTileTypes // number of usable types

	// TileNone marks an empty slot.
	TileNone TileType = 255
)

// String returns the string representation of a tile type.
func (t TileType) String() string {
	switch t {
	case TileBlue:
		return "blue"
	case TileGreen:
		return "green"
	case TileRed:
		return "red"
	case TileYellow:
		return "yellow"
	case TilePurple:
		return "purple"
	case TileOrange:
		return "orange"
	case TileNone:
		return "none"
	default:
		return "unknown"
	}
}

// Char returns a single character representation for ASCII rendering.
func (t TileType) Char() rune {
	switch t {
	case TileBlue:
		return 'B'
	case TileGreen:
		return 'G'
	case TileRed:
		return 'R'
	case TileYellow:
		return 'Y'
	case TilePurple:
		return 'P'
	case TileOrange:
		return 'O'
	case TileNone:
		return '.'
	default:
		return '?'
	}
}

// ParseTileType converts a name or single letter to a TileType.
// "." and "none" parse as TileNone.
func ParseTileType(s string) (TileType, bool) {
	switch strings.ToLower(s) {
	case "blue", "b":
		return TileBlue, true
	case "green", "g":
		return TileGreen, true
	case "red", "r":
		return TileRed, true
	case "yellow", "y":
		return TileYellow, true
	case "purple", "p":
		return TilePurple, true
	case "orange", "o":
		return TileOrange, true
	case "none", ".":
		return TileNone, true
	default:
		return TileNone, false
	}
}

// Tile is a piece on the board. Its coordinate always equals the slot holding it.
type Tile struct {
	ID    int
	Type  TileType
	Coord Coord
}
