// Package match3 is the playable tile-matching game built on the match3 core.
package match3

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/match3/internal/config"
	platformcore "github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/match3/core"
	"github.com/vovakirdan/match3/internal/games/match3/layouts"
	"github.com/vovakirdan/match3/internal/registry"
)

// Mode selects the game variant.
type Mode string

const (
	ModeClassic Mode = "classic" // every column refills
	ModeDrain   Mode = "drain"   // no column refills until toggled on
)

// Board placement on screen: a HUD of two lines, then the framed grid.
const (
	boardX    = 2
	boardY    = 2
	hudHeight = 2
)

// Package-level logger shared by all game instances.
var logger = log.New(io.Discard)

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game for match-3.
type Game struct {
	mode   Mode
	engine *core.Engine
	fx     effects

	tick     uint64
	tickRate int
	screenW  int
	screenH  int
	cellW    int
	cellH    int

	cursor    core.Coord
	selected  core.Coord
	selecting bool
	hint      *core.SwapPair

	layoutID string
	paused   bool
	tooSmall bool
	stuck    bool
	wasBusy  bool
	status   string
}

// New creates a classic match-3 game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewDrain creates a game whose columns start without refills.
func NewDrain() *Game {
	return &Game{mode: ModeDrain}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          "match3",
		Title:       "Match-3",
		Description: "Swap neighbours to line up three or more; columns refill from the top",
	}, func() registry.Game {
		return New()
	})
	registry.Register(registry.GameInfo{
		ID:          "match3_drain",
		Title:       "Match-3 (Drain)",
		Description: "No column refills until you switch it on with 1-9",
	}, func() registry.Game {
		return NewDrain()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeDrain {
		return "match3_drain"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeDrain {
		return "Match-3 (Drain)"
	}
	return "Match-3"
}

// Reset loads configuration and builds a fresh board.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) error {
	fileCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return err
	}

	ecfg := fileCfg.ToEngineConfig(cfg.Seed)
	ecfg.Layout.Origin = core.Point{X: boardX + 1, Y: boardY + 1}

	var opts []core.Option
	g.layoutID = ""
	if cfg.Layout != "" {
		l, err := layouts.Resolve(cfg.Layout, fileCfg.Layouts.Dir)
		if err != nil {
			return err
		}
		ecfg = l.Apply(ecfg)
		opts = append(opts, core.WithInitialBoard(l.Board))
		g.layoutID = l.ID
	}
	if g.mode == ModeDrain {
		ecfg.SpawnColumns = make([]bool, ecfg.Cols)
	}
	opts = append(opts, core.WithLogger(logger.With("game", g.ID())))

	engine, err := core.New(ecfg, opts...)
	if err != nil {
		return fmt.Errorf("match3: %w", err)
	}

	g.engine = engine
	g.fx = effects{}
	g.tick = 0
	g.tickRate = max(1, cfg.TickRate)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.cellW = fileCfg.Layout.CellWidth
	g.cellH = fileCfg.Layout.CellHeight
	g.cursor = core.C(0, 0)
	g.selecting = false
	g.hint = nil
	g.paused = false
	g.stuck = false
	g.wasBusy = false
	g.status = "Select a tile with Enter, then a neighbour"

	g.checkScreenSize()
	g.checkStuck()
	return nil
}

// Engine exposes the simulation for inspection.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall || g.engine == nil {
		return platformcore.StepResult{State: g.State()}
	}

	dt := time.Second / time.Duration(g.tickRate)
	g.fx.advance(dt)
	for _, t := range g.engine.Advance(dt) {
		g.fx.observe(t)
	}

	g.handleCursor(in)
	if in.Has(platformcore.ActionToggleSpawn) {
		g.toggleSpawn(in.Column)
	}
	if in.Gesture != nil {
		g.gesture(*in.Gesture)
	}
	if in.Has(platformcore.ActionHint) {
		g.showHint()
	}

	busy := !g.engine.AcceptingInput()
	if g.wasBusy && !busy {
		g.cascadeFinished()
	}
	g.wasBusy = busy

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) handleCursor(in platformcore.InputFrame) {
	rows, cols := g.engine.Board().Rows(), g.engine.Board().Cols()
	switch {
	case in.Has(platformcore.ActionUp):
		g.cursor.Row = platformcore.Clamp(g.cursor.Row-1, 0, rows-1)
	case in.Has(platformcore.ActionDown):
		g.cursor.Row = platformcore.Clamp(g.cursor.Row+1, 0, rows-1)
	case in.Has(platformcore.ActionLeft):
		g.cursor.Col = platformcore.Clamp(g.cursor.Col-1, 0, cols-1)
	case in.Has(platformcore.ActionRight):
		g.cursor.Col = platformcore.Clamp(g.cursor.Col+1, 0, cols-1)
	}

	if in.Has(platformcore.ActionBack) && g.selecting {
		g.selecting = false
		g.status = "Selection cleared"
	}

	if !in.Has(platformcore.ActionConfirm) {
		return
	}
	switch {
	case !g.selecting:
		if g.engine.Board().Occupied(g.cursor) {
			g.selected = g.cursor
			g.selecting = true
			g.status = fmt.Sprintf("Selected %v, pick a neighbour", g.cursor)
		}
	case g.selected == g.cursor:
		g.selecting = false
		g.status = "Selection cleared"
	default:
		g.selecting = false
		g.trySwap(g.selected, g.cursor)
	}
}

func (g *Game) trySwap(from, to core.Coord) {
	t, err := g.engine.Swap(from, to)
	g.afterSwap(t, err)
}

func (g *Game) gesture(gs platformcore.Gesture) {
	start := core.Point{X: gs.StartX, Y: gs.StartY}
	end := core.Point{X: gs.EndX, Y: gs.EndY}
	t, err := g.engine.Gesture(start, end)
	if err != nil && len(t.Mutations) == 0 && errors.Is(err, core.ErrInvalidMove) {
		// Started off the board: not a swipe at all.
		return
	}
	if c, ok := g.engine.Config().Layout.CellAt(end, g.engine.Board().Rows(), g.engine.Board().Cols()); ok {
		g.cursor = c
	}
	g.selecting = false
	g.afterSwap(t, err)
}

func (g *Game) afterSwap(t core.Transition, err error) {
	g.fx.observe(t)
	g.hint = nil
	switch {
	case errors.Is(err, core.ErrBusy):
		g.status = "Wait for the board to settle"
	case errors.Is(err, core.ErrInvalidMove):
		g.status = "Tiles must be direct neighbours"
	case err != nil:
		g.status = err.Error()
	default:
		g.status = "Swapping..."
	}
}

func (g *Game) toggleSpawn(col int) {
	on, err := g.engine.ToggleSpawnable(col)
	switch {
	case errors.Is(err, core.ErrBusy):
		g.status = "Spawn can only change while the board is still"
	case err != nil:
		g.status = fmt.Sprintf("No column %d", col+1)
	case on:
		g.status = fmt.Sprintf("Column %d refills", col+1)
	default:
		g.status = fmt.Sprintf("Column %d drains", col+1)
	}
}

func (g *Game) showHint() {
	swaps := core.MatchingSwaps(g.engine.Board())
	if len(swaps) == 0 {
		g.hint = nil
		g.status = "No swap makes a match"
		return
	}
	g.hint = &swaps[0]
	g.status = fmt.Sprintf("Try %v <-> %v", g.hint.From, g.hint.To)
}

func (g *Game) cascadeFinished() {
	stats := g.engine.LastStats()
	if stats.Reverted {
		g.status = "No match, swapped back"
	} else {
		g.status = fmt.Sprintf("Cleared %d tiles in %d round(s)", stats.Removed, stats.Rounds)
	}
	g.checkStuck()
}

func (g *Game) checkStuck() {
	g.stuck = len(core.MatchingSwaps(g.engine.Board())) == 0
	if g.stuck {
		g.status = "No moves left - press R for a new board"
	}
}

// checkScreenSize checks if the screen can hold the board, HUD and footer.
func (g *Game) checkScreenSize() {
	b := g.engine.Board()
	minW := boardX + b.Cols()*g.cellW + 4
	minH := hudHeight + b.Rows()*g.cellH + 2 + 3
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen dimensions without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.engine != nil {
		g.checkScreenSize()
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	busy := g.engine != nil && !g.engine.AcceptingInput()
	return platformcore.GameState{
		GameOver: g.stuck,
		Paused:   g.paused || g.tooSmall,
		Busy:     busy,
		Status:   g.status,
	}
}
