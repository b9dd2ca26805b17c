package core

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Generator builds initial boards that contain no run of MinRun or more.
type Generator struct {
	rng         Rand
	logger      *log.Logger
	maxRestarts int
	restarts    int
}

// NewGenerator creates a generator drawing from rng.
// maxRestarts <= 0 selects DefaultMaxGenerationRestarts.
func NewGenerator(rng Rand, logger *log.Logger, maxRestarts int) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if maxRestarts <= 0 {
		maxRestarts = DefaultMaxGenerationRestarts
	}
	return &Generator{rng: rng, logger: logger, maxRestarts: maxRestarts}
}

// Restarts returns how many full restarts the last Generate call needed.
func (g *Generator) Restarts() int {
	return g.restarts
}

// Generate fills a rows x cols board in row-major order.
// A cell whose drawn type would complete a run with the two cells to its left
// or the two cells above it gets a type from the shuffled eligible set instead.
// If no type is eligible the whole board is thrown away and rebuilt.
func (g *Generator) Generate(rows, cols, typeCount int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrGenerationFailure, rows, cols)
	}
	if typeCount < 1 || typeCount > int(MaxTileTypes) {
		return nil, fmt.Errorf("%w: type count %d out of range", ErrGenerationFailure, typeCount)
	}

	g.restarts = 0
	for {
		b, err := g.attempt(rows, cols, typeCount)
		if err == nil {
			return b, nil
		}
		g.restarts++
		g.logger.Debug("grid cannot be created, restarting", "attempt", g.restarts, "error", err)
		if g.restarts > g.maxRestarts {
			return nil, fmt.Errorf("%w: gave up after %d restarts", ErrGenerationFailure, g.maxRestarts)
		}
	}
}

func (g *Generator) attempt(rows, cols, typeCount int) (*Board, error) {
	b := NewBoard(rows, cols)
	for r := range rows {
		for c := range cols {
			at := C(r, c)
			t := TileType(g.rng.Intn(typeCount))
			if !Eligible(b, at, t) {
				candidates := eligibleTypes(b, at, typeCount)
				if len(candidates) == 0 {
					return nil, fmt.Errorf("%w: no eligible type at %v", ErrGenerationFailure, at)
				}
				g.rng.Shuffle(len(candidates), func(i, j int) {
					candidates[i], candidates[j] = candidates[j], candidates[i]
				})
				t = candidates[0]
			}
			if _, err := b.Place(at, t); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// Eligible reports whether placing t at c would avoid completing a run with
// the two cells immediately left of c or the two cells immediately above it.
// Cells to the right and below are not consulted.
func Eligible(b *Board, c Coord, t TileType) bool {
	if b.Type(c.Add(0, -1)) == t && b.Type(c.Add(0, -2)) == t {
		return false
	}
	if b.Type(c.Add(-1, 0)) == t && b.Type(c.Add(-2, 0)) == t {
		return false
	}
	return true
}

func eligibleTypes(b *Board, c Coord, typeCount int) []TileType {
	out := make([]TileType, 0, typeCount)
	for i := range typeCount {
		if t := TileType(i); Eligible(b, c, t) {
			out = append(out, t)
		}
	}
	return out
}
