package core

import (
	"fmt"
	"hash/fnv"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Engine owns a board and drives its resolver on a virtual clock.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	cfg      Config
	board    *Board
	policy   *SpawnPolicy
	resolver *Resolver
	logger   *log.Logger
	session  string

	wait    time.Duration // remaining settle delay before the next step
	elapsed time.Duration
}

type engineOptions struct {
	rng    Rand
	logger *log.Logger
	board  *Board
}

// Option configures New.
type Option func(*engineOptions)

// WithRand replaces the seeded source built from Config.Seed.
func WithRand(r Rand) Option {
	return func(o *engineOptions) {
		o.rng = r
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// WithInitialBoard starts from a copy of b instead of a generated board.
// Its dimensions must match the config.
func WithInitialBoard(b *Board) Option {
	return func(o *engineOptions) {
		o.board = b
	}
}

// New validates cfg and builds an engine with a match-free board.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := engineOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRand(cfg.Seed)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	session := uuid.NewString()
	logger := o.logger.With("session", session)

	var board *Board
	if o.board != nil {
		if o.board.Rows() != cfg.Rows || o.board.Cols() != cfg.Cols {
			return nil, ValidationError{
				Code: CodeInvalidLayout,
				Message: fmt.Sprintf("initial board is %dx%d, config wants %dx%d",
					o.board.Rows(), o.board.Cols(), cfg.Rows, cfg.Cols),
			}
		}
		board = o.board.Clone()
	} else {
		gen := NewGenerator(o.rng, logger, cfg.restartBudget())
		b, err := gen.Generate(cfg.Rows, cfg.Cols, cfg.TypeCount)
		if err != nil {
			return nil, err
		}
		board = b
	}

	policy := NewSpawnPolicy(cfg.Cols)
	if cfg.SpawnColumns != nil {
		policy = NewSpawnPolicyFrom(cfg.SpawnColumns)
	}

	e := &Engine{
		cfg:      cfg,
		board:    board,
		policy:   policy,
		resolver: NewResolver(board, policy, o.rng, cfg.TypeCount, cfg.SettleDelay, logger),
		logger:   logger,
		session:  session,
	}
	logger.Info("engine created", "rows", cfg.Rows, "cols", cfg.Cols, "types", cfg.TypeCount, "seed", cfg.Seed)
	return e, nil
}

// Config returns the construction config.
func (e *Engine) Config() Config {
	return e.cfg
}

// Session returns the id attached to every log line of this engine.
func (e *Engine) Session() string {
	return e.session
}

// Board returns the live board. Callers must treat it as read-only.
func (e *Engine) Board() *Board {
	return e.board
}

// State returns the resolver phase.
func (e *Engine) State() State {
	return e.resolver.State()
}

// AcceptingInput returns true when the resolver is idle and no settle delay is pending.
func (e *Engine) AcceptingInput() bool {
	return e.resolver.State() == StateIdle && e.wait == 0
}

// Pending returns the settle delay left before the next step.
func (e *Engine) Pending() time.Duration {
	return e.wait
}

// Elapsed returns the total virtual time advanced so far.
func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}

// LastStats summarizes the most recently finished swap.
func (e *Engine) LastStats() CascadeStats {
	return e.resolver.LastStats()
}

// Swap requests a swap between two cells.
// ErrBusy is returned while a cascade runs. ErrInvalidMove comes with a
// shake transition for the first cell and leaves the engine idle.
func (e *Engine) Swap(from, to Coord) (Transition, error) {
	if !e.AcceptingInput() {
		e.logger.Warn("swap rejected", "from", from, "to", to, "reason", "busy")
		return Transition{}, fmt.Errorf("%w: state %s", ErrBusy, e.State())
	}
	t, err := e.resolver.BeginSwap(from, to)
	if err != nil {
		e.logger.Warn("swap rejected", "from", from, "to", to, "reason", err)
		return t, err
	}
	e.wait = t.Delay
	return t, nil
}

// Gesture maps a start and end point through the configured layout and
// requests the swap. A gesture that starts outside the grid or on an empty
// cell is ignored with ErrInvalidMove and no transition.
func (e *Engine) Gesture(start, end Point) (Transition, error) {
	if !e.AcceptingInput() {
		return Transition{}, fmt.Errorf("%w: state %s", ErrBusy, e.State())
	}
	rows, cols := e.board.Rows(), e.board.Cols()
	from, ok := e.cfg.Layout.CellAt(start, rows, cols)
	if !ok || !e.board.Occupied(from) {
		return Transition{}, fmt.Errorf("%w: gesture starts off the board", ErrInvalidMove)
	}
	to, ok := e.cfg.Layout.CellAt(end, rows, cols)
	if !ok {
		e.logger.Warn("swap rejected", "from", from, "reason", "gesture ends outside the grid")
		return e.resolver.shake(from), fmt.Errorf("%w: gesture ends outside the grid", ErrInvalidMove)
	}
	return e.Swap(from, to)
}

// Advance moves the virtual clock forward by dt and runs every step whose
// settle delay has elapsed. Steps without mutations chain immediately.
func (e *Engine) Advance(dt time.Duration) []Transition {
	if dt < 0 {
		dt = 0
	}
	e.elapsed += dt

	var out []Transition
	for {
		if e.wait > 0 {
			if dt < e.wait {
				e.wait -= dt
				break
			}
			dt -= e.wait
			e.wait = 0
		}
		t, ok := e.resolver.Step()
		if !ok {
			break
		}
		out = append(out, t)
		e.wait = t.Delay
	}
	return out
}

// RunUntilIdle skips every settle delay and steps until the resolver is idle.
// It returns ErrUnsettled if maxSteps steps were not enough.
func (e *Engine) RunUntilIdle(maxSteps int) ([]Transition, error) {
	var out []Transition
	for range maxSteps {
		e.skipWait()
		t, ok := e.resolver.Step()
		if !ok {
			return out, nil
		}
		out = append(out, t)
		e.wait = t.Delay
	}
	if e.resolver.State() == StateIdle {
		e.skipWait()
		return out, nil
	}
	return out, fmt.Errorf("%w: still %s after %d steps", ErrUnsettled, e.State(), maxSteps)
}

func (e *Engine) skipWait() {
	e.elapsed += e.wait
	e.wait = 0
}

// Spawnable reports whether col is replenished after removals.
func (e *Engine) Spawnable(col int) bool {
	return e.policy.IsEnabled(col)
}

// SpawnFlags returns the per-column spawn switches.
func (e *Engine) SpawnFlags() []bool {
	return e.policy.Flags()
}

// SetSpawnable changes the spawn switch of col. Only allowed while idle.
func (e *Engine) SetSpawnable(col int, on bool) error {
	if !e.AcceptingInput() {
		e.logger.Warn("spawn toggle rejected", "col", col, "reason", "busy")
		return fmt.Errorf("%w: state %s", ErrBusy, e.State())
	}
	if col < 0 || col >= e.policy.Cols() {
		return ValidationError{
			Code:    CodeInvalidSpawnColumns,
			Message: fmt.Sprintf("column %d out of range [0, %d)", col, e.policy.Cols()),
		}
	}
	e.policy.SetEnabled(col, on)
	e.logger.Debug("spawn toggled", "col", col, "enabled", on)
	return nil
}

// ToggleSpawnable flips the spawn switch of col and returns the new value.
func (e *Engine) ToggleSpawnable(col int) (bool, error) {
	on := !e.policy.IsEnabled(col)
	if err := e.SetSpawnable(col, on); err != nil {
		return e.policy.IsEnabled(col), err
	}
	return on, nil
}

// Snapshot returns a hash of the board, resolver phase, pending delay and spawn flags.
func (e *Engine) Snapshot() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "B:%d;", e.board.Hash())
	fmt.Fprintf(h, "S:%d:%d;", e.resolver.State(), e.resolver.Round())
	fmt.Fprintf(h, "W:%d;", e.wait)
	fmt.Fprintf(h, "P:")
	for _, on := range e.policy.Flags() {
		fmt.Fprintf(h, "%t,", on)
	}
	return h.Sum64()
}
