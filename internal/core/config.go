package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic boards

	// ConfigPath overrides the game config search; empty uses the default order.
	ConfigPath string
	// Layout names a fixed starting board (file path or layout id).
	Layout string
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	GameOver bool   // No swap can produce a match any more
	Paused   bool   // Clock is stopped
	Busy     bool   // A cascade is running and input is ignored
	Status   string // One-line status for the platform footer
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
