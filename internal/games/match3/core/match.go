package core

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// Probe is the result of scanning both axes through one tile.
// Horizontal and Vertical hold the flanking coordinates of an axis only when
// that axis qualifies on its own; otherwise they are nil. The lengths always
// report the full contiguous run including the origin.
type Probe struct {
	Origin        Coord
	Type          TileType
	HorizontalLen int
	VerticalLen   int
	Horizontal    []Coord
	Vertical      []Coord
}

// Matched returns true if either axis forms a run of MinRun or more.
func (p Probe) Matched() bool {
	return p.HorizontalLen >= MinRun || p.VerticalLen >= MinRun
}

// Coords returns every matched coordinate, origin first.
// Returns nil when the probe did not match.
func (p Probe) Coords() []Coord {
	if !p.Matched() {
		return nil
	}
	out := make([]Coord, 0, 1+len(p.Horizontal)+len(p.Vertical))
	out = append(out, p.Origin)
	out = append(out, p.Horizontal...)
	out = append(out, p.Vertical...)
	return out
}

// Detector finds runs on a board. It never mutates the board.
// Axes are evaluated independently: an L or T shape is reported as two
// separate axis runs that share the origin, not as one joined shape.
type Detector struct {
	board *Board
}

// NewDetector creates a detector reading from board.
func NewDetector(board *Board) *Detector {
	return &Detector{board: board}
}

// Probe scans left/right and up/down from c.
// An empty or out-of-bounds origin yields a zero-length, unmatched probe.
func (d *Detector) Probe(c Coord) Probe {
	t, ok := d.board.Get(c)
	if !ok {
		return Probe{Origin: c, Type: TileNone}
	}

	p := Probe{Origin: c, Type: t.Type}

	left := d.scan(c, 0, -1, t.Type)
	right := d.scan(c, 0, 1, t.Type)
	p.HorizontalLen = len(left) + len(right) + 1
	if p.HorizontalLen >= MinRun {
		p.Horizontal = append(left, right...)
	}

	up := d.scan(c, -1, 0, t.Type)
	down := d.scan(c, 1, 0, t.Type)
	p.VerticalLen = len(up) + len(down) + 1
	if p.VerticalLen >= MinRun {
		p.Vertical = append(up, down...)
	}

	return p
}

// scan walks from c in direction (dr, dc) collecting tiles of type t until a
// mismatch, an empty slot or the grid edge.
func (d *Detector) scan(c Coord, dr, dc int, t TileType) []Coord {
	var out []Coord
	for next := c.Add(dr, dc); d.board.InBounds(next); next = next.Add(dr, dc) {
		if d.board.Type(next) != t {
			break
		}
		out = append(out, next)
	}
	return out
}

// HasMatch returns true if any tile on the board is part of a match.
func (d *Detector) HasMatch() bool {
	for _, t := range d.board.Tiles() {
		if d.Probe(t.Coord).Matched() {
			return true
		}
	}
	return false
}

// LongestRun returns the longest same-type run on any row or column.
func (d *Detector) LongestRun() int {
	longest := 0
	for _, t := range d.board.Tiles() {
		p := d.Probe(t.Coord)
		longest = max(longest, p.HorizontalLen, p.VerticalLen)
	}
	return longest
}
