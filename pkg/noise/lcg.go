// Package noise provides a small deterministic pseudo-random source for
// filters whose output must be reproducible byte for byte.
package noise

// Numerical Recipes LCG constants.
const (
	Seed       uint32 = 12345
	Multiplier uint32 = 1664525
	Increment  uint32 = 1013904223
)

// LCG is a linear congruential generator over a 32-bit state.
// It is not safe for concurrent use.
type LCG struct {
	state uint32
}

// New returns a generator starting at seed.
func New(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Advance steps the state (mod 2^32) and returns it.
func (g *LCG) Advance() uint32 {
	g.state = g.state*Multiplier + Increment
	return g.state
}

// Next advances and maps the new state to [0.00, 0.99] in steps of 0.01.
func (g *LCG) Next() float32 {
	return float32(g.Advance()%100) / 100
}

// State returns the current state without advancing.
func (g *LCG) State() uint32 {
	return g.state
}
