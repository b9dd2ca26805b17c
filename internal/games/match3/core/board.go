package core

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Board owns the grid and the tiles placed on it.
// Slots are stored in row-major order: index = row*cols + col.
// Every mutation goes through the methods below so that a tile's stored
// coordinate always matches the slot that holds it.
type Board struct {
	rows   int
	cols   int
	slots  []*Tile
	nextID int
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(rows, cols int) *Board {
	return &Board{
		rows:   rows,
		cols:   cols,
		slots:  make([]*Tile, rows*cols),
		nextID: 1,
	}
}

// NewBoardFromTypes creates a board and places a tile for every non-empty entry.
// types is indexed [row][col]; TileNone leaves the slot empty.
func NewBoardFromTypes(types [][]TileType) *Board {
	rows := len(types)
	cols := 0
	if rows > 0 {
		cols = len(types[0])
	}
	b := NewBoard(rows, cols)
	for r := range rows {
		for c := range cols {
			if c >= len(types[r]) || types[r][c] == TileNone {
				continue
			}
			//nolint:errcheck // Slot is fresh and in bounds
			b.Place(C(r, c), types[r][c])
		}
	}
	return b
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.cols
}

func (b *Board) index(c Coord) int {
	return c.Row*b.cols + c.Col
}

// InBounds returns true if the coordinate is within the grid.
func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// Get returns the tile at c. The boolean is false for empty or out-of-bounds slots.
func (b *Board) Get(c Coord) (Tile, bool) {
	if !b.InBounds(c) {
		return Tile{}, false
	}
	t := b.slots[b.index(c)]
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// Type returns the type at c, or TileNone for empty or out-of-bounds slots.
func (b *Board) Type(c Coord) TileType {
	if t, ok := b.Get(c); ok {
		return t.Type
	}
	return TileNone
}

// Occupied returns true if c holds a tile.
func (b *Board) Occupied(c Coord) bool {
	_, ok := b.Get(c)
	return ok
}

// CanSwap checks that a and b are in bounds, occupied and orthogonally adjacent.
func (b *Board) CanSwap(a, c Coord) error {
	if !b.InBounds(a) || !b.InBounds(c) {
		return fmt.Errorf("%w: %v or %v is outside the %dx%d grid", ErrInvalidMove, a, c, b.rows, b.cols)
	}
	if !a.Adjacent(c) {
		if a.Row != c.Row && a.Col != c.Col {
			return fmt.Errorf("%w: %v and %v are diagonal", ErrInvalidMove, a, c)
		}
		return fmt.Errorf("%w: %v and %v are not neighbours", ErrInvalidMove, a, c)
	}
	if !b.Occupied(a) {
		return fmt.Errorf("%w: %v is empty", ErrInvalidMove, a)
	}
	if !b.Occupied(c) {
		return fmt.Errorf("%w: %v is empty", ErrInvalidMove, c)
	}
	return nil
}

// Swap exchanges the tiles at a and c and updates their coordinates.
// Nothing is mutated when the swap is invalid.
func (b *Board) Swap(a, c Coord) error {
	if err := b.CanSwap(a, c); err != nil {
		return err
	}
	ia, ic := b.index(a), b.index(c)
	b.slots[ia], b.slots[ic] = b.slots[ic], b.slots[ia]
	b.slots[ia].Coord = a
	b.slots[ic].Coord = c
	return nil
}

// Remove detaches and returns the tile at c, leaving the slot empty.
func (b *Board) Remove(c Coord) (Tile, error) {
	if !b.InBounds(c) || b.slots[b.index(c)] == nil {
		return Tile{}, fmt.Errorf("%w: remove at %v", ErrEmptyCell, c)
	}
	i := b.index(c)
	t := *b.slots[i]
	b.slots[i] = nil
	return t, nil
}

// Place creates a new tile of type t in the empty slot c.
func (b *Board) Place(c Coord, t TileType) (Tile, error) {
	if !b.InBounds(c) {
		return Tile{}, fmt.Errorf("%w: place at %v outside the grid", ErrOccupiedCell, c)
	}
	i := b.index(c)
	if b.slots[i] != nil {
		return Tile{}, fmt.Errorf("%w: place at %v", ErrOccupiedCell, c)
	}
	tile := &Tile{ID: b.nextID, Type: t, Coord: c}
	b.nextID++
	b.slots[i] = tile
	return *tile, nil
}

// Move relocates the tile at from into the empty slot to.
// Used by gravity collapse; swaps go through Swap.
func (b *Board) Move(from, to Coord) error {
	if !b.InBounds(from) || b.slots[b.index(from)] == nil {
		return fmt.Errorf("%w: move from %v", ErrEmptyCell, from)
	}
	if !b.InBounds(to) || b.slots[b.index(to)] != nil {
		return fmt.Errorf("%w: move to %v", ErrOccupiedCell, to)
	}
	tile := b.slots[b.index(from)]
	b.slots[b.index(from)] = nil
	tile.Coord = to
	b.slots[b.index(to)] = tile
	return nil
}

// Column returns the occupied tiles of a column ordered top to bottom.
func (b *Board) Column(col int) []Tile {
	tiles := make([]Tile, 0, b.rows)
	if col < 0 || col >= b.cols {
		return tiles
	}
	for r := range b.rows {
		if t, ok := b.Get(C(r, col)); ok {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// Row returns the occupied tiles of a row ordered left to right.
func (b *Board) Row(row int) []Tile {
	tiles := make([]Tile, 0, b.cols)
	if row < 0 || row >= b.rows {
		return tiles
	}
	for c := range b.cols {
		if t, ok := b.Get(C(row, c)); ok {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// Tiles returns every tile on the board in row-major order.
func (b *Board) Tiles() []Tile {
	tiles := make([]Tile, 0, len(b.slots))
	for _, t := range b.slots {
		if t != nil {
			tiles = append(tiles, *t)
		}
	}
	return tiles
}

// Count returns the number of occupied slots.
func (b *Board) Count() int {
	n := 0
	for _, t := range b.slots {
		if t != nil {
			n++
		}
	}
	return n
}

// Types returns the type layout indexed [row][col].
func (b *Board) Types() [][]TileType {
	out := make([][]TileType, b.rows)
	for r := range b.rows {
		out[r] = make([]TileType, b.cols)
		for c := range b.cols {
			out[r][c] = b.Type(C(r, c))
		}
	}
	return out
}

// Clone returns a deep copy of the board. Tile IDs are preserved.
func (b *Board) Clone() *Board {
	clone := &Board{
		rows:   b.rows,
		cols:   b.cols,
		slots:  make([]*Tile, len(b.slots)),
		nextID: b.nextID,
	}
	for i, t := range b.slots {
		if t != nil {
			cp := *t
			clone.slots[i] = &cp
		}
	}
	return clone
}

// SameLayout returns true if both boards have the same dimensions and types.
func (b *Board) SameLayout(other *Board) bool {
	if b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for r := range b.rows {
		for c := range b.cols {
			if b.Type(C(r, c)) != other.Type(C(r, c)) {
				return false
			}
		}
	}
	return true
}

// Hash returns an FNV-64a hash of the type layout.
func (b *Board) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%dx%d;", b.rows, b.cols)
	for _, t := range b.slots {
		if t == nil {
			h.Write([]byte{byte(TileNone)})
			continue
		}
		h.Write([]byte{byte(t.Type)})
	}
	return h.Sum64()
}

// String renders the board as one line of type letters per row.
func (b *Board) String() string {
	var sb strings.Builder
	for r := range b.rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.cols {
			sb.WriteRune(b.Type(C(r, c)).Char())
		}
	}
	return sb.String()
}

// ParseBoard builds a board from rows of type letters; '.' is an empty slot.
// All rows must have the same length.
func ParseBoard(rows []string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("board has no rows")
	}
	types := make([][]TileType, len(rows))
	width := len([]rune(rows[0]))
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(runes), width)
		}
		types[r] = make([]TileType, width)
		for c, ch := range runes {
			t, ok := ParseTileType(string(ch))
			if !ok {
				return nil, fmt.Errorf("row %d col %d: unknown tile %q", r, c, ch)
			}
			types[r][c] = t
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("board has no columns")
	}
	return NewBoardFromTypes(types), nil
}
