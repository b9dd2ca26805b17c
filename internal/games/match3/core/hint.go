package core

// SwapPair is a candidate swap between two adjacent cells.
type SwapPair struct {
	From Coord
	To   Coord
}

// MatchingSwaps lists every right or down swap that would produce a match.
// The board is probed on a scratch copy and left unchanged.
func MatchingSwaps(b *Board) []SwapPair {
	scratch := b.Clone()
	det := NewDetector(scratch)

	var out []SwapPair
	for r := range b.Rows() {
		for c := range b.Cols() {
			from := C(r, c)
			for _, to := range []Coord{from.Add(0, 1), from.Add(1, 0)} {
				if scratch.Swap(from, to) != nil {
					continue
				}
				if det.Probe(from).Matched() || det.Probe(to).Matched() {
					out = append(out, SwapPair{From: from, To: to})
				}
				//nolint:errcheck // Swapping back a pair that just swapped
				scratch.Swap(from, to)
			}
		}
	}
	return out
}

// ValidSwaps lists every right or down swap between two occupied cells.
func ValidSwaps(b *Board) []SwapPair {
	var out []SwapPair
	for r := range b.Rows() {
		for c := range b.Cols() {
			from := C(r, c)
			for _, to := range []Coord{from.Add(0, 1), from.Add(1, 0)} {
				if b.CanSwap(from, to) == nil {
					out = append(out, SwapPair{From: from, To: to})
				}
			}
		}
	}
	return out
}
