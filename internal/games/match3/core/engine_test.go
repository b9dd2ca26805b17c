package core_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/match3/internal/games/match3/core"
)

const testDelay = 300 * time.Millisecond

func newTestEngine(t *testing.T, rng core.Rand, spawn []bool, rows ...string) *core.Engine {
	t.Helper()
	b := mustBoard(t, rows...)
	cfg := core.DefaultConfig()
	cfg.Rows = b.Rows()
	cfg.Cols = b.Cols()
	cfg.SettleDelay = testDelay
	cfg.SpawnColumns = spawn

	e, err := core.New(cfg, core.WithRand(rng), core.WithInitialBoard(b))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func states(ts []core.Transition) []core.State {
	out := make([]core.State, 0, len(ts)*2)
	for _, t := range ts {
		out = append(out, t.To)
	}
	return out
}

func TestSwapCompletesRowOfThree(t *testing.T) {
	// Row 0 is [B, B, G] and (1,2) is B: swapping (0,2) and (1,2) makes BBB.
	rng := &scriptedRand{draws: []int{3, 2, 3}}
	e := newTestEngine(t, rng, nil, "BBG", "GRB", "RGR")

	first, err := e.Swap(core.C(0, 2), core.C(1, 2))
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if first.From != core.StateIdle || first.To != core.StateAwaitingSwapResult {
		t.Errorf("unexpected first transition %v", first)
	}
	if first.Count(core.MutationMove) != 2 || first.Delay != testDelay {
		t.Errorf("expected two moves and a settle delay, got %v", first)
	}

	rest, err := e.RunUntilIdle(100)
	if err != nil {
		t.Fatalf("RunUntilIdle: %v", err)
	}

	want := []core.State{
		core.StateResolvingMatches,
		core.StateCollapsing,
		core.StateSpawning,
		core.StateSettling,
		core.StateIdle,
	}
	if got := states(rest); !slices.Equal(got, want) {
		t.Fatalf("expected states %v, got %v", want, got)
	}

	removed := rest[0]
	if removed.Count(core.MutationRemove) != 3 {
		t.Errorf("expected 3 removals, got %d", removed.Count(core.MutationRemove))
	}
	for _, m := range removed.Mutations {
		if m.From.Row != 0 {
			t.Errorf("removed tile outside row 0: %v", m)
		}
	}

	// Nothing sits above row 0, so the collapse has no moves and no delay.
	if len(rest[1].Mutations) != 0 || rest[1].Delay != 0 {
		t.Errorf("expected empty collapse, got %v", rest[1])
	}

	spawned := rest[2]
	if spawned.Count(core.MutationSpawn) != 3 {
		t.Fatalf("expected 3 spawns, got %d", spawned.Count(core.MutationSpawn))
	}
	for _, m := range spawned.Mutations {
		if m.From.Row != core.SpawnRow || m.To.Row != 0 {
			t.Errorf("spawn should drop from above into row 0: %v", m)
		}
	}

	if got := e.Board().String(); got != "YRY\nGRG\nRGR" {
		t.Errorf("unexpected board after cascade:\n%s", got)
	}
	if !e.AcceptingInput() {
		t.Error("engine should accept input after the cascade")
	}
	stats := e.LastStats()
	if stats.Rounds != 1 || stats.Removed != 3 || stats.Spawned != 3 || stats.Reverted {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestSwapWithoutMatchReverts(t *testing.T) {
	e := newTestEngine(t, &scriptedRand{}, nil, "BGR", "YBG", "RYB")
	before := e.Board().Clone()

	if _, err := e.Swap(core.C(0, 0), core.C(0, 1)); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if e.Board().SameLayout(before) {
		t.Fatal("swap should be applied before the result is known")
	}

	rest, err := e.RunUntilIdle(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 1 || rest[0].To != core.StateIdle || rest[0].Count(core.MutationMove) != 2 {
		t.Fatalf("expected a single revert transition, got %v", rest)
	}
	if !e.Board().SameLayout(before) {
		t.Errorf("layout not restored:\n%s", e.Board())
	}
	for _, tile := range before.Tiles() {
		got, _ := e.Board().Get(tile.Coord)
		if got.ID != tile.ID {
			t.Errorf("tile #%d not back at %v", tile.ID, tile.Coord)
		}
	}
	if !e.LastStats().Reverted {
		t.Error("stats should record the revert")
	}
}

func TestInvalidSwapShakes(t *testing.T) {
	e := newTestEngine(t, &scriptedRand{}, nil, "BGR", "YBG", "RYB")
	hash := e.Board().Hash()

	tr, err := e.Swap(core.C(0, 0), core.C(1, 1))
	if !errors.Is(err, core.ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if tr.Count(core.MutationShake) != 1 || tr.Mutations[0].From != core.C(0, 0) {
		t.Errorf("expected a shake of (0,0), got %v", tr.Mutations)
	}
	if tr.To != core.StateIdle || e.State() != core.StateIdle || !e.AcceptingInput() {
		t.Error("invalid swap must leave the engine idle and accepting input")
	}
	if e.Board().Hash() != hash {
		t.Error("invalid swap must not mutate the board")
	}
}

func TestBusyWhileResolving(t *testing.T) {
	e := newTestEngine(t, &scriptedRand{draws: []int{3, 2, 3}}, nil, "BBG", "GRB", "RGR")

	if _, err := e.Swap(core.C(0, 2), core.C(1, 2)); err != nil {
		t.Fatal(err)
	}
	if e.AcceptingInput() {
		t.Fatal("engine should not accept input mid-swap")
	}
	if _, err := e.Swap(core.C(2, 0), core.C(2, 1)); !errors.Is(err, core.ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	if err := e.SetSpawnable(0, false); !errors.Is(err, core.ErrBusy) {
		t.Errorf("expected ErrBusy from SetSpawnable, got %v", err)
	}
	if _, err := e.RunUntilIdle(100); err != nil {
		t.Fatal(err)
	}
	if err := e.SetSpawnable(0, false); err != nil {
		t.Errorf("SetSpawnable after cascade: %v", err)
	}
}

func TestAdvanceWaitsForSettleDelay(t *testing.T) {
	e := newTestEngine(t, &scriptedRand{draws: []int{3, 2, 3}}, nil, "BBG", "GRB", "RGR")
	if _, err := e.Swap(core.C(0, 2), core.C(1, 2)); err != nil {
		t.Fatal(err)
	}

	if got := e.Advance(testDelay - time.Millisecond); len(got) != 0 {
		t.Fatalf("nothing should happen before the delay, got %v", got)
	}
	if got := e.Advance(time.Millisecond); len(got) != 1 || got[0].To != core.StateResolvingMatches {
		t.Fatalf("expected removal once the delay elapsed, got %v", got)
	}

	// Empty collapse chains straight into the spawn, which waits again.
	got := e.Advance(testDelay)
	if want := []core.State{core.StateCollapsing, core.StateSpawning}; !slices.Equal(states(got), want) {
		t.Fatalf("expected %v, got %v", want, states(got))
	}
	if e.Pending() != testDelay {
		t.Errorf("expected %v pending, got %v", testDelay, e.Pending())
	}

	got = e.Advance(testDelay)
	if want := []core.State{core.StateSettling, core.StateIdle}; !slices.Equal(states(got), want) {
		t.Fatalf("expected %v, got %v", want, states(got))
	}
	if !e.AcceptingInput() {
		t.Error("engine should be idle")
	}
	if e.Elapsed() != 3*testDelay {
		t.Errorf("expected elapsed %v, got %v", 3*testDelay, e.Elapsed())
	}
}

func TestRemovalIsUnionOfBothProbes(t *testing.T) {
	// After the swap (1,1) closes a vertical BBB and (1,2) closes a horizontal RRR.
	noSpawn := []bool{false, false, false, false, false}
	e := newTestEngine(t, &scriptedRand{}, noSpawn,
		"GBYGY",
		"YRBRR",
		"GBGYG",
	)
	untouched, _ := e.Board().Get(core.C(1, 0))

	if _, err := e.Swap(core.C(1, 1), core.C(1, 2)); err != nil {
		t.Fatal(err)
	}
	ts, err := e.RunUntilIdle(100)
	if err != nil {
		t.Fatal(err)
	}

	var removed []core.Coord
	for _, m := range ts[0].Mutations {
		removed = append(removed, m.From)
	}
	want := []core.Coord{
		core.C(0, 1),
		core.C(1, 1), core.C(1, 2), core.C(1, 3), core.C(1, 4),
		core.C(2, 1),
	}
	if !slices.Equal(removed, want) {
		t.Fatalf("expected removals %v, got %v", want, removed)
	}

	if got := e.Board().String(); got != "G....\nY.YGY\nG.GYG" {
		t.Errorf("unexpected board:\n%s", got)
	}
	if e.Board().Count() != 15-len(want) {
		t.Errorf("disabled columns must stay depleted, got %d tiles", e.Board().Count())
	}
	if got, _ := e.Board().Get(core.C(1, 0)); got.ID != untouched.ID {
		t.Error("tile in an unmatched column moved")
	}
}

func TestSpawnRespectsColumnPolicy(t *testing.T) {
	e := newTestEngine(t, &scriptedRand{draws: []int{3, 2}}, []bool{true, true, false}, "BBG", "GRB", "RGR")

	if _, err := e.Swap(core.C(0, 2), core.C(1, 2)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.RunUntilIdle(100); err != nil {
		t.Fatal(err)
	}

	if got := e.Board().String(); got != "YR.\nGRG\nRGR" {
		t.Errorf("unexpected board:\n%s", got)
	}
	for col, want := range []int{3, 3, 2} {
		if got := len(e.Board().Column(col)); got != want {
			t.Errorf("column %d: expected %d tiles, got %d", col, want, got)
		}
	}
}

func TestCascadeRunsFurtherRounds(t *testing.T) {
	// The first refill is BBB, which matches again and is refilled with YRY.
	e := newTestEngine(t, &scriptedRand{draws: []int{0, 0, 0, 3, 2, 3}}, nil, "BBG", "GRB", "RGR")

	if _, err := e.Swap(core.C(0, 2), core.C(1, 2)); err != nil {
		t.Fatal(err)
	}
	ts, err := e.RunUntilIdle(100)
	if err != nil {
		t.Fatal(err)
	}

	if last := ts[len(ts)-1]; last.To != core.StateIdle || last.Round != 2 {
		t.Errorf("expected to finish in round 2, got %v", last)
	}
	stats := e.LastStats()
	if stats.Rounds != 2 || stats.Removed != 6 || stats.Spawned != 6 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if got := e.Board().String(); got != "YRY\nGRG\nRGR" {
		t.Errorf("unexpected board:\n%s", got)
	}
}

func TestRunUntilIdleStepBound(t *testing.T) {
	// Every refill is BBB, so the cascade never settles.
	e := newTestEngine(t, &scriptedRand{draws: []int{0}}, nil, "BBG", "GRB", "RGR")

	if _, err := e.Swap(core.C(0, 2), core.C(1, 2)); err != nil {
		t.Fatal(err)
	}
	_, err := e.RunUntilIdle(50)
	if !errors.Is(err, core.ErrUnsettled) {
		t.Fatalf("expected ErrUnsettled, got %v", err)
	}
	if e.AcceptingInput() {
		t.Error("engine should still be mid-cascade")
	}
}

func TestGesture(t *testing.T) {
	b := mustBoard(t, "BBG", "GRB", "RGR")
	cfg := core.DefaultConfig()
	cfg.Rows, cfg.Cols = 3, 3
	cfg.Layout = core.Layout{Origin: core.Point{X: 10, Y: 5}, CellWidth: 3, CellHeight: 1}

	newEngine := func() *core.Engine {
		e, err := core.New(cfg, core.WithRand(&scriptedRand{draws: []int{3, 2, 3}}), core.WithInitialBoard(b))
		if err != nil {
			t.Fatal(err)
		}
		return e
	}

	t.Run("valid swipe", func(t *testing.T) {
		e := newEngine()
		tr, err := e.Gesture(cfg.Layout.Center(core.C(0, 2)), cfg.Layout.Center(core.C(1, 2)))
		if err != nil {
			t.Fatalf("Gesture: %v", err)
		}
		if tr.To != core.StateAwaitingSwapResult {
			t.Errorf("expected swap to start, got %v", tr)
		}
	})

	t.Run("starts outside", func(t *testing.T) {
		e := newEngine()
		tr, err := e.Gesture(core.Point{X: 0, Y: 0}, cfg.Layout.Center(core.C(0, 0)))
		if !errors.Is(err, core.ErrInvalidMove) {
			t.Fatalf("expected ErrInvalidMove, got %v", err)
		}
		if len(tr.Mutations) != 0 {
			t.Error("gesture from outside the grid is ignored without feedback")
		}
	})

	t.Run("ends outside", func(t *testing.T) {
		e := newEngine()
		tr, err := e.Gesture(cfg.Layout.Center(core.C(0, 2)), core.Point{X: 100, Y: 5.5})
		if !errors.Is(err, core.ErrInvalidMove) {
			t.Fatalf("expected ErrInvalidMove, got %v", err)
		}
		if tr.Count(core.MutationShake) != 1 {
			t.Errorf("expected shake feedback, got %v", tr.Mutations)
		}
	})

	t.Run("diagonal", func(t *testing.T) {
		e := newEngine()
		_, err := e.Gesture(cfg.Layout.Center(core.C(0, 0)), cfg.Layout.Center(core.C(1, 1)))
		if !errors.Is(err, core.ErrInvalidMove) {
			t.Fatalf("expected ErrInvalidMove, got %v", err)
		}
		if !e.AcceptingInput() {
			t.Error("engine should stay idle")
		}
	})
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.Config)
		code   string
	}{
		{"zero rows", func(c *core.Config) { c.Rows = 0 }, core.CodeInvalidRows},
		{"zero cols", func(c *core.Config) { c.Cols = 0 }, core.CodeInvalidCols},
		{"one type", func(c *core.Config) { c.TypeCount = 1 }, core.CodeInvalidTypes},
		{"too many types", func(c *core.Config) { c.TypeCount = 7 }, core.CodeInvalidTypes},
		{"negative delay", func(c *core.Config) { c.SettleDelay = -time.Second }, core.CodeInvalidDelay},
		{"spawn columns length", func(c *core.Config) { c.SpawnColumns = []bool{true} }, core.CodeInvalidSpawnColumns},
		{"negative restarts", func(c *core.Config) { c.MaxGenerationRestarts = -1 }, core.CodeInvalidRestarts},
		{"zero cell size", func(c *core.Config) { c.Layout.CellWidth = 0 }, core.CodeInvalidLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := core.DefaultConfig()
			tt.mutate(&cfg)

			_, err := core.New(cfg)
			var ve core.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, ve.Code)
			}
		})
	}
}

func TestNewRejectsMismatchedInitialBoard(t *testing.T) {
	_, err := core.New(core.DefaultConfig(), core.WithInitialBoard(mustBoard(t, "BG", "GB")))
	var ve core.ValidationError
	if !errors.As(err, &ve) || ve.Code != core.CodeInvalidLayout {
		t.Fatalf("expected INVALID_LAYOUT, got %v", err)
	}
}

func TestNewGeneratesMatchFreeBoard(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 7

	a, err := core.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := core.New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	hasNoRuns(t, a.Board())
	if a.Snapshot() != b.Snapshot() {
		t.Error("same seed should give the same snapshot")
	}
	if a.Session() == b.Session() {
		t.Error("each engine gets its own session id")
	}
}

func TestSetSpawnable(t *testing.T) {
	e := newTestEngine(t, &scriptedRand{}, nil, "BG", "GB")

	before := e.Snapshot()
	on, err := e.ToggleSpawnable(1)
	if err != nil || on {
		t.Fatalf("expected column 1 disabled, got %v %v", on, err)
	}
	if e.Spawnable(1) || !e.Spawnable(0) {
		t.Errorf("unexpected flags %v", e.SpawnFlags())
	}
	if e.Snapshot() == before {
		t.Error("snapshot should include spawn flags")
	}

	var ve core.ValidationError
	if err := e.SetSpawnable(5, true); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for out-of-range column, got %v", err)
	}
}

func TestMatchingSwaps(t *testing.T) {
	b := mustBoard(t, "BBG", "GRB", "RGR")
	hash := b.Hash()

	swaps := core.MatchingSwaps(b)
	if !slices.Contains(swaps, core.SwapPair{From: core.C(0, 2), To: core.C(1, 2)}) {
		t.Errorf("expected (0,2)-(1,2) among %v", swaps)
	}
	if b.Hash() != hash {
		t.Error("MatchingSwaps must not change the board")
	}
	if got := len(core.ValidSwaps(b)); got != 12 {
		t.Errorf("expected 12 valid swaps on a full 3x3 board, got %d", got)
	}
}
