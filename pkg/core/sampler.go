package core

import "math"

// Sampler provides random sampling for ray generation and scattering.
// Implementations must be explicitly seeded so that identical seeds
// reproduce identical ray sets across trace invocations.
type Sampler interface {
	Float64() float64     // uniform in [0, 1)
	NormFloat64() float64 // standard normal
}

// LCG is a seeded linear-congruential generator. It deliberately avoids
// math/rand so the stream is stable across Go releases: optimization
// loops regenerate the same light source many times and compare results
// bit for bit.
type LCG struct {
	state uint64
	spare float64
	has   bool
}

// Numerical Recipes 64-bit LCG constants
const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1442695040888963407
)

// NewLCG creates a generator with the given seed
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Float64 returns the next uniform sample in [0, 1)
func (g *LCG) Float64() float64 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	// Use the high 53 bits; the low bits of an LCG are weak
	return float64(g.state>>11) / float64(1<<53)
}

// NormFloat64 returns the next standard normal sample via the Box–Muller
// transform. Samples are produced in pairs; the spare is cached.
func (g *LCG) NormFloat64() float64 {
	if g.has {
		g.has = false
		return g.spare
	}
	var u1 float64
	for u1 == 0 {
		u1 = g.Float64()
	}
	u2 := g.Float64()
	r := math.Sqrt(-2 * math.Log(u1))
	g.spare = r * math.Sin(2*math.Pi*u2)
	g.has = true
	return r * math.Cos(2*math.Pi*u2)
}
