package mc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridSize_MonotonicInN(t *testing.T) {
	assert.GreaterOrEqual(t, GridSize(20), 1)
	assert.GreaterOrEqual(t, GridSize(1000), GridSize(20))
	assert.Equal(t, 1, GridSize(0))
}

func TestShannonEntropy_MaximalWhenUniform(t *testing.T) {
	// P5: a perfectly uniform occupation has entropy log2(m^3), the max
	// possible for an m x m x m grid.
	geom := Geometry{Lx: 2, Ly: 2, Lz: 2}
	const perCell = 20
	m := GridSize(perCell * 8) // 160 particles put GridSize at exactly 2
	n := m * m * m * perCell

	b := NewBank(n)
	dx := geom.Lx / float64(m)
	for ix := 0; ix < m; ix++ {
		for iy := 0; iy < m; iy++ {
			for iz := 0; iz < m; iz++ {
				for k := 0; k < perCell; k++ {
					b.Append(Particle{
						X: dx*float64(ix) + dx/2,
						Y: dx*float64(iy) + dx/2,
						Z: dx*float64(iz) + dx/2,
					})
				}
			}
		}
	}

	h := ShannonEntropy(geom, b)
	want := math.Log2(float64(m * m * m))
	assert.InDelta(t, want, h, 1e-9)
}

func TestShannonEntropy_ZeroWhenAllInOneCell(t *testing.T) {
	geom := Geometry{Lx: 10, Ly: 10, Lz: 10}
	b := NewBank(5)
	for i := 0; i < 5; i++ {
		b.Append(Particle{X: 1, Y: 1, Z: 1})
	}

	h := ShannonEntropy(geom, b)
	assert.InDelta(t, 0.0, h, 1e-9)
}

func TestShannonEntropy_NonNegative(t *testing.T) {
	geom := Geometry{Lx: 10, Ly: 10, Lz: 10}
	rng := NewRNG(4)
	b := NewBank(200)
	for i := 0; i < 200; i++ {
		b.Append(Particle{X: rng.Float64() * 10, Y: rng.Float64() * 10, Z: rng.Float64() * 10})
	}

	h := ShannonEntropy(geom, b)
	assert.GreaterOrEqual(t, h, 0.0)
}

func TestMeanSquaredDistance_ZeroForCoincidentParticles(t *testing.T) {
	b := NewBank(4)
	for i := 0; i < 4; i++ {
		b.Append(Particle{X: 3, Y: 3, Z: 3})
	}
	assert.InDelta(t, 0.0, MeanSquaredDistance(b), 1e-12)
}

func TestMeanSquaredDistance_SymmetricUnderTranslation(t *testing.T) {
	// P6: MSD is translation invariant.
	b1 := NewBank(3)
	b1.Append(Particle{X: 0, Y: 0, Z: 0})
	b1.Append(Particle{X: 1, Y: 0, Z: 0})
	b1.Append(Particle{X: 0, Y: 1, Z: 0})

	b2 := NewBank(3)
	b2.Append(Particle{X: 10, Y: 10, Z: 10})
	b2.Append(Particle{X: 11, Y: 10, Z: 10})
	b2.Append(Particle{X: 10, Y: 11, Z: 10})

	assert.InDelta(t, MeanSquaredDistance(b1), MeanSquaredDistance(b2), 1e-9)
}

func TestMeanSquaredDistance_FewerThanTwoParticles(t *testing.T) {
	assert.Equal(t, 0.0, MeanSquaredDistance(NewBank(0)))

	b := NewBank(1)
	b.Append(Particle{X: 1, Y: 1, Z: 1})
	assert.Equal(t, 0.0, MeanSquaredDistance(b))
}
