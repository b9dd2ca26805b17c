package core

// SpawnPolicy holds the per-column replenishment switch.
// A disabled column keeps its holes until it is enabled again.
type SpawnPolicy struct {
	enabled []bool
}

// NewSpawnPolicy creates a policy with every column enabled.
func NewSpawnPolicy(cols int) *SpawnPolicy {
	p := &SpawnPolicy{enabled: make([]bool, cols)}
	for i := range p.enabled {
		p.enabled[i] = true
	}
	return p
}

// NewSpawnPolicyFrom copies an explicit per-column setting.
func NewSpawnPolicyFrom(enabled []bool) *SpawnPolicy {
	p := &SpawnPolicy{enabled: make([]bool, len(enabled))}
	copy(p.enabled, enabled)
	return p
}

// Cols returns the number of columns covered.
func (p *SpawnPolicy) Cols() int {
	return len(p.enabled)
}

// IsEnabled reports whether col is replenished. Unknown columns are disabled.
func (p *SpawnPolicy) IsEnabled(col int) bool {
	if col < 0 || col >= len(p.enabled) {
		return false
	}
	return p.enabled[col]
}

// SetEnabled changes the switch for col. Out-of-range columns are ignored.
func (p *SpawnPolicy) SetEnabled(col int, on bool) {
	if col < 0 || col >= len(p.enabled) {
		return
	}
	p.enabled[col] = on
}

// Toggle flips col and returns the new value.
func (p *SpawnPolicy) Toggle(col int) bool {
	p.SetEnabled(col, !p.IsEnabled(col))
	return p.IsEnabled(col)
}

// Flags returns a copy of all switches.
func (p *SpawnPolicy) Flags() []bool {
	out := make([]bool, len(p.enabled))
	copy(out, p.enabled)
	return out
}
