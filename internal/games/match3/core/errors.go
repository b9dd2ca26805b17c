package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove is returned for swaps between out-of-bounds, diagonal,
	// non-adjacent or unoccupied cells. The board is left untouched.
	ErrInvalidMove = errors.New("match3: invalid move")

	// ErrEmptyCell is returned when an operation needs a tile where there is none.
	ErrEmptyCell = errors.New("match3: empty cell")

	// ErrOccupiedCell is returned when an operation needs an empty slot.
	ErrOccupiedCell = errors.New("match3: occupied cell")

	// ErrGenerationFailure means no eligible type exists for a cell.
	// The generator restarts on it and only surfaces it once its restart budget is spent.
	ErrGenerationFailure = errors.New("match3: board generation failed")

	// ErrBusy is returned for requests that arrive while a cascade is running.
	ErrBusy = errors.New("match3: not accepting input")

	// ErrUnsettled is returned by RunUntilIdle when the step budget runs out mid-cascade.
	ErrUnsettled = errors.New("match3: cascade did not settle")
)

// ValidationError describes a configuration invariant violation.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
