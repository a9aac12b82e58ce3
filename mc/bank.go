// mc/bank.go
package mc

// Bank is a fixed-capacity, growable array of Particle records. It
// tracks a live count n separate from its allocation sz: operations
// only ever look at indices [0, n), and resize preserves exactly that
// prefix. No element is destroyed individually — lifecycle is bulk,
// via Clear.
type Bank struct {
	p []Particle
	n int
}

// NewBank allocates a bank with the given initial capacity.
func NewBank(capacity int) *Bank {
	return &Bank{p: make([]Particle, capacity)}
}

// Len returns the live count n.
func (b *Bank) Len() int { return b.n }

// Cap returns the allocated capacity sz.
func (b *Bank) Cap() int { return len(b.p) }

// At returns the particle at index i. i must be in [0, Cap()); only
// [0, Len()) holds live particles.
func (b *Bank) At(i int) Particle { return b.p[i] }

// Set overwrites the particle at index i. i must be in [0, Cap()); Set
// does not change Len().
func (b *Bank) Set(i int, p Particle) { b.p[i] = p }

// SetN sets the live count directly, without touching storage. Used
// by the merger and synchronizer once particles have been copied into
// place out of band.
func (b *Bank) SetN(n int) { b.n = n }

// Append adds a particle past the live count, growing the underlying
// allocation if needed.
func (b *Bank) Append(p Particle) {
	if b.n == len(b.p) {
		b.Resize(growCapacity(len(b.p)))
	}
	b.p[b.n] = p
	b.n++
}

// Clear sets the live count to zero without releasing storage.
func (b *Bank) Clear() { b.n = 0 }

// Resize grows (or shrinks) the backing allocation to newCap,
// preserving elements [0, min(n, newCap)). It never needs to shrink
// below n in this package's usage, but is safe to call with any
// newCap >= 0.
func (b *Bank) Resize(newCap int) {
	grown := make([]Particle, newCap)
	copy(grown, b.p[:min(b.n, newCap, len(b.p))])
	b.p = grown
	if b.n > newCap {
		b.n = newCap
	}
}

// growCapacity doubles cap, with a floor so an empty bank can grow.
func growCapacity(cap int) int {
	if cap == 0 {
		return 64
	}
	return cap * 2
}
