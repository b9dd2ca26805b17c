package core

import (
	"fmt"
	"time"
)

// State is a phase of the cascade resolver.
type State int

const (
	StateIdle State = iota
	StateAwaitingSwapResult
	StateResolvingMatches
	StateCollapsing
	StateSpawning
	StateSettling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSwapResult:
		return "awaiting_swap_result"
	case StateResolvingMatches:
		return "resolving_matches"
	case StateCollapsing:
		return "collapsing"
	case StateSpawning:
		return "spawning"
	case StateSettling:
		return "settling"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MutationKind tells the render collaborator what happened to a tile.
type MutationKind int

const (
	MutationMove   MutationKind = iota // swap, revert or gravity shift
	MutationRemove                     // tile detached as part of a match
	MutationSpawn                      // new tile dropped into a column
	MutationShake                      // rejected swap feedback, no board change
)

func (k MutationKind) String() string {
	switch k {
	case MutationMove:
		return "move"
	case MutationRemove:
		return "remove"
	case MutationSpawn:
		return "spawn"
	case MutationShake:
		return "shake"
	default:
		return "unknown"
	}
}

// SpawnRow is the virtual row above the grid that spawned tiles fall from.
const SpawnRow = -1

// Mutation describes one tile change for the render and pooling collaborators.
// For MutationRemove, To equals From. Spawned tiles start at Coord{SpawnRow, col}.
type Mutation struct {
	Kind     MutationKind
	TileID   int
	Type     TileType
	From     Coord
	To       Coord
	Duration time.Duration
}

func (m Mutation) String() string {
	switch m.Kind {
	case MutationRemove, MutationShake:
		return fmt.Sprintf("%s #%d %s at %v", m.Kind, m.TileID, m.Type, m.From)
	default:
		return fmt.Sprintf("%s #%d %s %v->%v", m.Kind, m.TileID, m.Type, m.From, m.To)
	}
}

// Transition is one step of the resolver state machine.
// Delay is the time the engine waits before evaluating the next step;
// it is the settle delay whenever Mutations is non-empty.
type Transition struct {
	From      State
	To        State
	Round     int
	Mutations []Mutation
	Delay     time.Duration
}

// Count returns the number of mutations of kind k.
func (t Transition) Count(k MutationKind) int {
	n := 0
	for _, m := range t.Mutations {
		if m.Kind == k {
			n++
		}
	}
	return n
}

func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s (round %d, %d mutations, wait %v)", t.From, t.To, t.Round, len(t.Mutations), t.Delay)
}
