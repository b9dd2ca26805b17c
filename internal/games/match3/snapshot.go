package match3

import "github.com/vovakirdan/match3/internal/games/match3/core"

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Mode       string
	Layout     string
	Board      string // one line of type letters per row
	EngineHash uint64
	State      string
	Cursor     core.Coord
	Selected   *core.Coord
	Spawnable  []bool
	Effects    int
	Paused     bool
	Stuck      bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   g.tick,
		Mode:   string(g.mode),
		Layout: g.layoutID,
		Cursor: g.cursor,
		Paused: g.paused,
		Stuck:  g.stuck,
	}
	if g.selecting {
		sel := g.selected
		s.Selected = &sel
	}
	if g.engine != nil {
		s.Board = g.engine.Board().String()
		s.EngineHash = g.engine.Snapshot()
		s.State = g.engine.State().String()
		s.Spawnable = g.engine.SpawnFlags()
		s.Effects = g.fx.active()
	}
	return s
}
