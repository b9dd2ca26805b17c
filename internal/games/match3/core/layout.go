package core

import "math"

// Point is a position in the input collaborator's coordinate space.
// X grows to the right and Y grows downward.
type Point struct {
	X float64
	Y float64
}

// Layout maps external points onto grid cells.
// Origin is the top-left corner of cell (0,0).
type Layout struct {
	Origin     Point
	CellWidth  float64
	CellHeight float64
}

// DefaultLayout returns a layout with unit cells at the origin.
func DefaultLayout() Layout {
	return Layout{CellWidth: 1, CellHeight: 1}
}

// Contains returns true if p lies inside a rows x cols grid.
func (l Layout) Contains(p Point, rows, cols int) bool {
	_, ok := l.CellAt(p, rows, cols)
	return ok
}

// CellAt returns the cell under p. The boolean is false outside the grid.
func (l Layout) CellAt(p Point, rows, cols int) (Coord, bool) {
	if l.CellWidth <= 0 || l.CellHeight <= 0 {
		return Coord{}, false
	}
	col := int(math.Floor((p.X - l.Origin.X) / l.CellWidth))
	row := int(math.Floor((p.Y - l.Origin.Y) / l.CellHeight))
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return Coord{}, false
	}
	return C(row, col), true
}

// Center returns the point at the middle of cell c.
func (l Layout) Center(c Coord) Point {
	return Point{
		X: l.Origin.X + (float64(c.Col)+0.5)*l.CellWidth,
		Y: l.Origin.Y + (float64(c.Row)+0.5)*l.CellHeight,
	}
}
