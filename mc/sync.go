// mc/sync.go
package mc

// Synchronize collapses fission back down (or up) to the size of
// sourceBank, drawing every new particle uniformly and independently
// from fission using the OTHER stream in a fixed order. SetStream does
// not reposition rng, so draws continue from its current state;
// Driver.Run places its RNG at the start of the OTHER stream. It always
// leaves fission at n=0. The two cases are §4.2 Case A and Case B.
func Synchronize(rng *RNG, fission, source *Bank) error {
	nF := fission.Len()
	nS := source.Len()

	if nF == 0 {
		return errExtinction()
	}

	rng.SetStream(StreamOther)

	switch {
	case nF >= nS:
		// Reservoir sampling without replacement, size nS. Every
		// particle i < nS starts in the reservoir; particle i >= nS
		// replaces slot rni(0, i+1) if that slot falls inside the
		// reservoir, which leaves each fission-bank particle with
		// final probability nS/nF of survival.
		for i := 0; i < nS; i++ {
			source.Set(i, fission.At(i))
		}
		for i := nS; i < nF; i++ {
			j := rng.Int(0, i+1)
			if j < nS {
				source.Set(j, fission.At(i))
			}
		}
	default:
		// Over-sampling: fill the deficit by drawing nS-nF particles
		// with replacement, then place the fission bank verbatim in
		// the remaining, high-index slots.
		for k := 0; k < nS-nF; k++ {
			j := rng.Int(0, nF)
			source.Set(k, fission.At(j))
		}
		for i := 0; i < nF; i++ {
			source.Set(nS-nF+i, fission.At(i))
		}
	}

	source.SetN(nS)
	fission.Clear()
	return nil
}
