package match3

import (
	"time"

	"github.com/vovakirdan/match3/internal/games/match3/core"
)

// effect is a short-lived highlight left on a cell by a mutation.
type effect struct {
	kind core.MutationKind
	typ  core.TileType
	left time.Duration
}

// effects tracks highlights per cell. Each mutation lights its target cell
// for the mutation's duration, which matches the engine's settle delay.
type effects struct {
	at map[core.Coord]effect
}

func (e *effects) observe(t core.Transition) {
	if len(t.Mutations) == 0 {
		return
	}
	if e.at == nil {
		e.at = make(map[core.Coord]effect)
	}
	for _, m := range t.Mutations {
		// Shown for at least one tick even with a zero settle delay.
		left := max(m.Duration, time.Nanosecond)
		e.at[m.To] = effect{kind: m.Kind, typ: m.Type, left: left}
	}
}

func (e *effects) advance(dt time.Duration) {
	for c, fx := range e.at {
		fx.left -= dt
		if fx.left <= 0 {
			delete(e.at, c)
			continue
		}
		e.at[c] = fx
	}
}

func (e *effects) get(c core.Coord) (effect, bool) {
	fx, ok := e.at[c]
	return fx, ok
}

func (e *effects) active() int {
	return len(e.at)
}
