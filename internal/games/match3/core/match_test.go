package core_test

import (
	"slices"
	"testing"

	"github.com/vovakirdan/match3/internal/games/match3/core"
)

func TestProbe(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		at       core.Coord
		hLen     int
		vLen     int
		matched  bool
		expected []core.Coord
	}{
		{
			name:     "horizontal run of three",
			rows:     []string{"BBB", "GRY", "RYG"},
			at:       core.C(0, 1),
			hLen:     3,
			vLen:     1,
			matched:  true,
			expected: []core.Coord{core.C(0, 1), core.C(0, 0), core.C(0, 2)},
		},
		{
			name:     "vertical run of four",
			rows:     []string{"R", "R", "R", "R", "G"},
			at:       core.C(0, 0),
			hLen:     1,
			vLen:     4,
			matched:  true,
			expected: []core.Coord{core.C(0, 0), core.C(1, 0), core.C(2, 0), core.C(3, 0)},
		},
		{
			name:    "pair is not a match",
			rows:    []string{"BBG", "GRY"},
			at:      core.C(0, 0),
			hLen:    2,
			vLen:    1,
			matched: false,
		},
		{
			name:    "stops at empty slot",
			rows:    []string{"BB.B"},
			at:      core.C(0, 1),
			hLen:    2,
			vLen:    1,
			matched: false,
		},
		{
			name:    "short axis flanks are dropped",
			rows:    []string{"YBY", "BBB", "GRG"},
			at:      core.C(1, 1),
			hLen:    3,
			vLen:    2,
			matched: true,
			// (0,1) is blue but the vertical axis only reaches two.
			expected: []core.Coord{core.C(1, 1), core.C(1, 0), core.C(1, 2)},
		},
		{
			name:    "L shape reports both axes",
			rows:    []string{"GGG", "GRY", "GYR"},
			at:      core.C(0, 0),
			hLen:    3,
			vLen:    3,
			matched: true,
			expected: []core.Coord{
				core.C(0, 0), core.C(0, 1), core.C(0, 2), core.C(1, 0), core.C(2, 0),
			},
		},
		{
			name:    "empty origin",
			rows:    []string{".BB"},
			at:      core.C(0, 0),
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.rows...)
			p := core.NewDetector(b).Probe(tt.at)

			if p.Matched() != tt.matched {
				t.Fatalf("expected matched=%v, got %v (h=%d v=%d)", tt.matched, p.Matched(), p.HorizontalLen, p.VerticalLen)
			}
			if tt.hLen != 0 && p.HorizontalLen != tt.hLen {
				t.Errorf("expected horizontal run %d, got %d", tt.hLen, p.HorizontalLen)
			}
			if tt.vLen != 0 && p.VerticalLen != tt.vLen {
				t.Errorf("expected vertical run %d, got %d", tt.vLen, p.VerticalLen)
			}
			if !slices.Equal(p.Coords(), tt.expected) {
				t.Errorf("expected coords %v, got %v", tt.expected, p.Coords())
			}
		})
	}
}

func TestProbeDoesNotMutate(t *testing.T) {
	b := mustBoard(t, "BBB", "GGG", "RRR")
	hash := b.Hash()

	det := core.NewDetector(b)
	for _, tile := range b.Tiles() {
		det.Probe(tile.Coord)
	}
	if !det.HasMatch() {
		t.Error("expected HasMatch on a board full of runs")
	}
	if b.Hash() != hash {
		t.Error("probing must not change the board")
	}
}

func TestLongestRun(t *testing.T) {
	b := mustBoard(t, "BGBG", "BGBG", "GBGB")
	if got := core.NewDetector(b).LongestRun(); got != 2 {
		t.Errorf("expected longest run 2, got %d", got)
	}
}
