package mc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sourceBank(n int, geom Geometry, seed int64) *Bank {
	rng := NewRNG(seed)
	b := NewBank(n)
	for i := 0; i < n; i++ {
		b.Append(Particle{
			X: rng.Float64() * geom.Lx,
			Y: rng.Float64() * geom.Ly,
			Z: rng.Float64() * geom.Lz,
			U: 1, V: 0, W: 0,
			Wgt:   1,
			Alive: true,
		})
	}
	return b
}

func baseParams() (Parameters, Geometry, Material) {
	geom := Geometry{Lx: 10, Ly: 10, Lz: 10, BC: BCReflective}
	mat := Material{Nu: 2.0, XsF: 0.3, XsA: 0.6, XsS: 0.4}
	params := Parameters{
		NParticles:   200,
		NBatches:     6,
		NActive:      3,
		NGenerations: 2,
		Seed:         42,
	}
	return params, geom, mat
}

func TestDriver_PopulationConservedAcrossGenerations(t *testing.T) {
	// P3: the source bank's population is always NParticles after a
	// full generation, regardless of how many particles fissioned.
	params, geom, mat := baseParams()

	d := &Driver{Params: params, Geometry: geom, Material: mat, Kernel: HomogeneousKernel{}, Workers: 1}
	src := sourceBank(int(params.NParticles), geom, params.Seed+1)

	res, err := d.Run(src)
	assert.NoError(t, err)
	assert.Equal(t, int(params.NParticles), res.Source.Len())
}

func TestDriver_DeterministicRegardlessOfWorkerCount(t *testing.T) {
	// P4: the reproducibility contract. Same seed and parameters must
	// produce identical k_eff series whether run single- or
	// multi-threaded.
	params, geom, mat := baseParams()

	run := func(workers int) []float64 {
		d := &Driver{Params: params, Geometry: geom, Material: mat, Kernel: HomogeneousKernel{}, Workers: workers}
		src := sourceBank(int(params.NParticles), geom, params.Seed+1)
		res, err := d.Run(src)
		assert.NoError(t, err)
		return res.Keff
	}

	seq := run(1)
	par4 := run(4)
	par7 := run(7)

	assert.Equal(t, seq, par4)
	assert.Equal(t, seq, par7)
}

func TestDriver_ExtinctionStopsTheRunWithFatalError(t *testing.T) {
	// S6: a non-multiplying configuration drives the fission bank to
	// zero and the run must fail with a population FatalError, never
	// panic or hang.
	geom := Geometry{Lx: 10, Ly: 10, Lz: 10, BC: BCVacuum}
	mat := Material{Nu: 0, XsF: 0, XsA: 1.0, XsS: 0}
	params := Parameters{
		NParticles:   50,
		NBatches:     3,
		NActive:      1,
		NGenerations: 1,
		Seed:         7,
	}

	d := &Driver{Params: params, Geometry: geom, Material: mat, Kernel: HomogeneousKernel{}, Workers: 2}
	src := sourceBank(int(params.NParticles), geom, params.Seed+1)

	_, err := d.Run(src)
	assert.Error(t, err)

	var fe *FatalError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, KindPopulation, fe.Kind)
}

func TestDriver_SingleBatchSingleGenerationProducesOneKeffValue(t *testing.T) {
	// S1: the minimal trivial run still exercises the full pipeline.
	geom := Geometry{Lx: 10, Ly: 10, Lz: 10, BC: BCReflective}
	mat := Material{Nu: 2.0, XsF: 0.3, XsA: 0.6, XsS: 0.4}
	params := Parameters{
		NParticles:   30,
		NBatches:     1,
		NActive:      1,
		NGenerations: 1,
		Seed:         3,
	}

	d := &Driver{Params: params, Geometry: geom, Material: mat, Kernel: HomogeneousKernel{}, Workers: 1}
	src := sourceBank(int(params.NParticles), geom, params.Seed+1)

	res, err := d.Run(src)
	assert.NoError(t, err)
	assert.Len(t, res.Keff, 1)
}
