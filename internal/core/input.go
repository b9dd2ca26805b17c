package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, K, Up arrow - move cursor up
	ActionDown               // S, J, Down arrow - move cursor down
	ActionLeft               // A, H, Left arrow - move cursor left
	ActionRight              // D, L, Right arrow - move cursor right
	ActionConfirm            // Enter, Space - select tile or swap with selection
	ActionBack               // Escape, B - drop the current selection
	ActionRestart            // R - new board
	ActionQuit               // Q, Ctrl+C - exit
	ActionPause              // P - pause/unpause the clock
	ActionToggleSpawn        // 1-9 - toggle spawning for InputFrame.Column
	ActionHint               // ? - highlight a swap that matches
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionToggleSpawn:
		return "ToggleSpawn"
	case ActionHint:
		return "Hint"
	default:
		return "Unknown"
	}
}

// Gesture is a press/release pair in screen cell coordinates.
type Gesture struct {
	StartX, StartY float64
	EndX, EndY     float64
}

// InputFrame represents the input collected during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Column is the zero-based column for ActionToggleSpawn, -1 when unset.
	Column int

	// Gesture is a completed mouse drag, nil when none happened.
	Gesture *Gesture
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Column:  -1,
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetToggle marks a spawn toggle for col.
func (f *InputFrame) SetToggle(col int) {
	f.Set(ActionToggleSpawn)
	f.Column = col
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty returns true if the frame carries no action and no gesture.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Gesture == nil
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Column = -1
	f.Gesture = nil
}
