// mc/rng.go
package mc

import "math"

// Stream selects which of two independent substreams subsequent draws
// come from. TRACK carries all randomness consumed inside a particle
// history; OTHER carries driver-level sampling (population control,
// anything outside transport). Keeping them apart means the
// reproducibility of Synchronize never depends on how many random
// numbers a given history happened to draw.
type Stream int

const (
	StreamTrack Stream = iota
	StreamOther
)

// lcgA and lcgC are the multiplier and increment of a 64-bit linear
// congruential generator (mod 2^64, the modulus is implicit in uint64
// wraparound). These are the constants from Donald Knuth's MMIX
// generator, widely reused because the jump-ahead algorithm below is
// well studied against them.
const (
	lcgA uint64 = 6364136223846793005
	lcgC uint64 = 1442695040888963407
)

// otherStreamOffset separates the OTHER stream's base seed from
// TRACK's by a large, fixed jump. Two streams derived this way from
// the same master seed never overlap within any run this driver could
// plausibly perform (n_batches*n_generations*n_particles draws).
const otherStreamOffset uint64 = 1 << 62

// RNG is a deterministic, counter-based pseudo-random stream. Unlike
// math/rand's default source, its state can be advanced to an
// arbitrary absolute position in O(log n) time via Skip, which is the
// primitive that makes the particle loop in the eigenvalue driver
// safe to run in any order or on any number of workers.
type RNG struct {
	trackBase uint64
	otherBase uint64
	state     uint64
	stream    Stream
}

// NewRNG derives the two stream base seeds from a single master seed.
func NewRNG(seed int64) *RNG {
	track := uint64(seed)
	other := lcgJump(track, otherStreamOffset, lcgA, lcgC)
	r := &RNG{trackBase: track, otherBase: other, stream: StreamTrack}
	r.state = track
	return r
}

// SetStream selects the active stream for subsequent draws. It does
// not move the state; call Skip to position it.
func (r *RNG) SetStream(s Stream) {
	r.stream = s
}

// Skip positions the active stream so that the next draw is the n-th
// one counting from that stream's initial seed. It is always computed
// from the stream's base seed, never from wherever the state
// currently sits, which is what lets particle i_p in generation i_g of
// batch i_b see the same substream regardless of scheduling.
func (r *RNG) Skip(n uint64) {
	base := r.trackBase
	if r.stream == StreamOther {
		base = r.otherBase
	}
	r.state = lcgJump(base, n, lcgA, lcgC)
}

// next advances the state by one LCG step and returns it.
func (r *RNG) next() uint64 {
	r.state = r.state*lcgA + lcgC
	return r.state
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	// Upper 53 bits give a value with full float64 mantissa precision.
	return float64(r.next()>>11) * (1.0 / (1 << 53))
}

// Int uniformly samples an integer in the half-open range [a, b).
// This is the `rni(a, b)` primitive used by the bank synchronizer.
func (r *RNG) Int(a, b int) int {
	if b <= a {
		return a
	}
	span := uint64(b - a)
	return a + int(uint64(math.Floor(r.Float64()*float64(span))))
}

// lcgJump advances seed by exactly n LCG steps in O(log n) time using
// the standard doubling construction: every LCG step is an affine map
// x -> g*x + c, and affine maps compose, so the n-step map can be
// built by repeated squaring of (g, c) while walking the bits of n.
func lcgJump(seed uint64, n uint64, a, c uint64) uint64 {
	curMult := a
	curIncr := c
	accMult := uint64(1)
	accIncr := uint64(0)

	for n > 0 {
		if n&1 == 1 {
			accMult *= curMult
			accIncr = accIncr*curMult + curIncr
		}
		curIncr = (curMult + 1) * curIncr
		curMult *= curMult
		n >>= 1
	}

	return accMult*seed + accIncr
}
