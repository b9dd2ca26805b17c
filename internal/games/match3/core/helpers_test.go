package core_test

import (
	"testing"

	"github.com/vovakirdan/match3/internal/games/match3/core"
)

// scriptedRand replays a fixed sequence of draws and never reorders on Shuffle.
type scriptedRand struct {
	draws []int
	next  int
	calls int
}

func (r *scriptedRand) Intn(n int) int {
	r.calls++
	if len(r.draws) == 0 {
		return 0
	}
	v := r.draws[r.next%len(r.draws)]
	r.next++
	return v % n
}

func (r *scriptedRand) Shuffle(int, func(i, j int)) {}

func mustBoard(t *testing.T, rows ...string) *core.Board {
	t.Helper()
	b, err := core.ParseBoard(rows)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	return b
}

func hasNoRuns(t *testing.T, b *core.Board) {
	t.Helper()
	if n := core.NewDetector(b).LongestRun(); n >= core.MinRun {
		t.Fatalf("board has a run of %d:\n%s", n, b)
	}
}
