package core

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// CascadeStats summarizes the last finished swap.
type CascadeStats struct {
	Rounds   int
	Removed  int
	Spawned  int
	Reverted bool
}

// Resolver runs the swap and cascade state machine over a board.
// It only decides what happens next; waiting between steps is the caller's job.
type Resolver struct {
	board     *Board
	detector  *Detector
	policy    *SpawnPolicy
	rng       Rand
	logger    *log.Logger
	delay     time.Duration
	typeCount int

	state    State
	round    int
	swapA    Coord
	swapB    Coord
	pending  []Coord // matched coordinates waiting for removal
	record   *ColumnCascadeRecord
	touched  map[int]struct{} // tile IDs moved or spawned this round
	stats    CascadeStats
	finished CascadeStats
}

// NewResolver wires a resolver to its collaborators.
func NewResolver(board *Board, policy *SpawnPolicy, rng Rand, typeCount int, delay time.Duration, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		board:     board,
		detector:  NewDetector(board),
		policy:    policy,
		rng:       rng,
		logger:    logger,
		delay:     delay,
		typeCount: typeCount,
		state:     StateIdle,
		record:    NewColumnCascadeRecord(),
		touched:   make(map[int]struct{}),
	}
}

// State returns the current phase.
func (r *Resolver) State() State {
	return r.state
}

// Round returns the cascade round in progress, 0 while idle before any match.
func (r *Resolver) Round() int {
	return r.round
}

// LastStats returns the summary of the most recently finished swap.
func (r *Resolver) LastStats() CascadeStats {
	return r.finished
}

// BeginSwap starts resolving a swap between a and b.
// An invalid swap returns ErrInvalidMove and a shake transition that leaves
// the resolver Idle; the board is not touched.
func (r *Resolver) BeginSwap(a, b Coord) (Transition, error) {
	if r.state != StateIdle {
		return Transition{}, fmt.Errorf("%w: resolver is %s", ErrBusy, r.state)
	}
	if err := r.board.Swap(a, b); err != nil {
		return r.shake(a), err
	}

	r.swapA, r.swapB = a, b
	r.round = 0
	r.stats = CascadeStats{}
	clear(r.touched)

	return r.emit(StateAwaitingSwapResult, r.swapMoves(a, b)), nil
}

// Step evaluates the next transition. The boolean is false while idle.
func (r *Resolver) Step() (Transition, bool) {
	switch r.state {
	case StateAwaitingSwapResult:
		return r.checkSwap(), true
	case StateResolvingMatches:
		return r.collapse(), true
	case StateCollapsing:
		return r.spawn(), true
	case StateSpawning:
		return r.emit(StateSettling, nil), true
	case StateSettling:
		return r.settle(), true
	default:
		return Transition{}, false
	}
}

func (r *Resolver) checkSwap() Transition {
	pa := r.detector.Probe(r.swapA)
	pb := r.detector.Probe(r.swapB)
	if !pa.Matched() && !pb.Matched() {
		//nolint:errcheck // Endpoints were validated by BeginSwap
		r.board.Swap(r.swapA, r.swapB)
		r.stats.Reverted = true
		r.finish()
		return r.emit(StateIdle, r.swapMoves(r.swapA, r.swapB))
	}

	r.pending = unionCoords(pa.Coords(), pb.Coords())
	return r.resolve()
}

// resolve removes the pending matches and opens a new round.
func (r *Resolver) resolve() Transition {
	r.round++
	r.record.Reset()
	clear(r.touched)

	muts := make([]Mutation, 0, len(r.pending))
	for _, c := range r.pending {
		tile, err := r.board.Remove(c)
		if err != nil {
			r.logger.Error("remove matched tile", "at", c, "error", err)
			continue
		}
		r.record.Add(c)
		muts = append(muts, Mutation{
			Kind:     MutationRemove,
			TileID:   tile.ID,
			Type:     tile.Type,
			From:     c,
			To:       c,
			Duration: r.delay,
		})
	}
	r.pending = nil
	r.stats.Rounds = r.round
	r.stats.Removed += len(muts)

	return r.emit(StateResolvingMatches, muts)
}

// collapse shifts surviving tiles of affected columns down by the number of
// removed rows below them. Columns are walked bottom-up so every target slot
// is already empty.
func (r *Resolver) collapse() Transition {
	var muts []Mutation
	for _, col := range r.record.Columns() {
		for row := r.board.Rows() - 1; row >= 0; row-- {
			from := C(row, col)
			tile, ok := r.board.Get(from)
			if !ok {
				continue
			}
			shift := r.record.Shift(from)
			if shift == 0 {
				continue
			}
			to := from.Add(shift, 0)
			if err := r.board.Move(from, to); err != nil {
				r.logger.Error("collapse tile", "from", from, "to", to, "error", err)
				continue
			}
			r.touched[tile.ID] = struct{}{}
			muts = append(muts, Mutation{
				Kind:     MutationMove,
				TileID:   tile.ID,
				Type:     tile.Type,
				From:     from,
				To:       to,
				Duration: r.delay,
			})
		}
	}
	return r.emit(StateCollapsing, muts)
}

// spawn refills the empty slots above the topmost tile of every affected
// column whose policy allows it.
func (r *Resolver) spawn() Transition {
	var muts []Mutation
	for _, col := range r.record.Columns() {
		if !r.policy.IsEnabled(col) {
			continue
		}
		for row := 0; row < r.board.Rows(); row++ {
			at := C(row, col)
			if r.board.Occupied(at) {
				break
			}
			tile, err := r.board.Place(at, TileType(r.rng.Intn(r.typeCount)))
			if err != nil {
				r.logger.Error("spawn tile", "at", at, "error", err)
				break
			}
			r.touched[tile.ID] = struct{}{}
			muts = append(muts, Mutation{
				Kind:     MutationSpawn,
				TileID:   tile.ID,
				Type:     tile.Type,
				From:     C(SpawnRow, col),
				To:       at,
				Duration: r.delay,
			})
		}
	}
	r.stats.Spawned += len(muts)
	return r.emit(StateSpawning, muts)
}

// settle re-probes every tile moved or spawned this round.
func (r *Resolver) settle() Transition {
	var matched []Coord
	for _, tile := range r.board.Tiles() {
		if _, ok := r.touched[tile.ID]; !ok {
			continue
		}
		matched = unionCoords(matched, r.detector.Probe(tile.Coord).Coords())
	}
	if len(matched) > 0 {
		r.pending = matched
		return r.resolve()
	}

	r.finish()
	r.logger.Info("cascade finished", "rounds", r.stats.Rounds, "removed", r.stats.Removed, "spawned", r.stats.Spawned)
	return r.emit(StateIdle, nil)
}

func (r *Resolver) finish() {
	r.record.Reset()
	clear(r.touched)
	r.finished = r.stats
}

func (r *Resolver) shake(at Coord) Transition {
	t := Transition{From: r.state, To: r.state, Round: r.round}
	if tile, ok := r.board.Get(at); ok {
		t.Mutations = []Mutation{{
			Kind:     MutationShake,
			TileID:   tile.ID,
			Type:     tile.Type,
			From:     at,
			To:       at,
			Duration: r.delay,
		}}
	}
	return t
}

// swapMoves describes the tiles now at a and b, which came from b and a.
func (r *Resolver) swapMoves(a, b Coord) []Mutation {
	muts := make([]Mutation, 0, 2)
	for _, pair := range [][2]Coord{{b, a}, {a, b}} {
		tile, ok := r.board.Get(pair[1])
		if !ok {
			continue
		}
		r.touched[tile.ID] = struct{}{}
		muts = append(muts, Mutation{
			Kind:     MutationMove,
			TileID:   tile.ID,
			Type:     tile.Type,
			From:     pair[0],
			To:       pair[1],
			Duration: r.delay,
		})
	}
	return muts
}

func (r *Resolver) emit(to State, muts []Mutation) Transition {
	t := Transition{From: r.state, To: to, Round: r.round, Mutations: muts}
	if len(muts) > 0 {
		t.Delay = r.delay
	}
	r.state = to
	r.logger.Debug("transition", "from", t.From, "to", t.To, "round", t.Round, "mutations", len(muts))
	return t
}

// unionCoords merges b into a keeping each coordinate once, in row-major order.
func unionCoords(a, b []Coord) []Coord {
	out := slices.Clone(a)
	for _, c := range b {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(x, y Coord) int {
		if x.Row != y.Row {
			return x.Row - y.Row
		}
		return x.Col - y.Col
	})
	return out
}
