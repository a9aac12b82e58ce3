// mc/diagnostics.go
package mc

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GridSize returns the number of cubic cells per dimension used by
// ShannonEntropy for a bank of n particles: m = ceil((n/20)^(1/3)).
func GridSize(n int) int {
	if n <= 0 {
		return 1
	}
	return int(math.Ceil(math.Cbrt(float64(n) / 20.0)))
}

// ShannonEntropy partitions geometry into an m×m×m grid (§4.4) and
// returns the base-2 Shannon entropy of the source bank's occupancy
// distribution. Cell indices are clamped into [0, m), so a particle
// exactly on (or beyond) a box face is counted in the nearest edge cell.
func ShannonEntropy(geom Geometry, b *Bank) float64 {
	n := b.Len()
	m := GridSize(n)

	dx := geom.Lx / float64(m)
	dy := geom.Ly / float64(m)
	dz := geom.Lz / float64(m)

	counts := make([]int, m*m*m)
	for i := 0; i < n; i++ {
		p := b.At(i)
		ix := clampIndex(int(p.X/dx), m)
		iy := clampIndex(int(p.Y/dy), m)
		iz := clampIndex(int(p.Z/dz), m)
		counts[ix*m*m+iy*m+iz]++
	}

	probs := make([]float64, 0, len(counts))
	for _, c := range counts {
		if c > 0 {
			probs = append(probs, float64(c)/float64(n))
		}
	}

	// stat.Entropy uses the natural log; the spec's H is in bits, so
	// rescale by 1/ln(2) to convert nats to bits.
	return stat.Entropy(probs) / math.Ln2
}

func clampIndex(i, m int) int {
	if i < 0 {
		return 0
	}
	if i >= m {
		return m - 1
	}
	return i
}

// MeanSquaredDistance returns the average squared pairwise Euclidean
// distance between every two particles in b. O(n²); the driver computes
// it every generation only when WriteMSD is set.
func MeanSquaredDistance(b *Bank) float64 {
	n := b.Len()
	if n < 2 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		pi := b.At(i)
		vi := []float64{pi.X, pi.Y, pi.Z}
		for j := i + 1; j < n; j++ {
			pj := b.At(j)
			vj := []float64{pj.X, pj.Y, pj.Z}
			d := floats.Distance(vi, vj, 2)
			sum += d * d
		}
	}

	nPairs := float64(n) * float64(n-1) / 2.0
	return sum / nPairs
}
