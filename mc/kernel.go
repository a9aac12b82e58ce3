// mc/kernel.go
package mc

import "math"

// TransportKernel advances a single particle to its terminal event
// (leakage or absorption), appending any fission offspring to fission.
// Implementations must draw randomness only from the TRACK stream —
// the reproducibility contract in §4.1 depends on it. This is C3's
// contract: the driver treats the kernel as an opaque collaborator.
type TransportKernel interface {
	Transport(rng *RNG, geom Geometry, mat Material, fission *Bank, p *Particle)
}

// HomogeneousKernel is the shipped default TransportKernel: one-group,
// isotropic-scattering transport through a single homogeneous
// material filling the whole geometry, with the boundary condition
// selected by Geometry.BC. It implements the classic power-iteration
// criticality kernel: distance to collision is exponential on the
// total cross section; on collision the particle scatters or is
// absorbed, and absorption may additionally be a fission event that
// spawns progeny.
type HomogeneousKernel struct{}

func (HomogeneousKernel) Transport(rng *RNG, geom Geometry, mat Material, fission *Bank, p *Particle) {
	xsT := mat.XsTotal()
	if xsT <= 0 {
		// No interaction possible; the particle streams until it leaks.
		leakImmediately(geom, p)
		return
	}

	for p.Alive {
		dColl := -math.Log(rng.Float64()) / xsT
		dSurf, face := distanceToSurface(geom, *p)

		if dColl >= dSurf {
			advance(p, dSurf)
			if !applyBoundary(geom, p, face) {
				p.Alive = false
				return
			}
			continue
		}

		advance(p, dColl)

		if rng.Float64() < mat.XsS/xsT {
			isotropicScatter(rng, p)
			continue
		}

		// Absorption event: the particle always dies here. It may
		// additionally produce fission progeny.
		p.Alive = false
		if mat.XsA > 0 && rng.Float64() < mat.XsF/mat.XsA {
			spawnFission(rng, mat, fission, *p)
		}
		return
	}
}

// leakImmediately is used only in the degenerate zero-cross-section
// configuration, where a particle simply streams to the nearest
// boundary and is killed there, whatever the boundary condition.
func leakImmediately(geom Geometry, p *Particle) {
	dSurf, _ := distanceToSurface(geom, *p)
	advance(p, dSurf)
	p.Alive = false
}

func advance(p *Particle, d float64) {
	p.X += d * p.U
	p.Y += d * p.V
	p.Z += d * p.W
}

// face identifies which of the six box faces a particle is nearest.
type face int

const (
	faceLoX face = iota
	faceHiX
	faceLoY
	faceHiY
	faceLoZ
	faceHiZ
)

// distanceToSurface returns the distance to the nearest face of the
// rectangular box the particle would cross along its current
// direction, and which face that is.
func distanceToSurface(geom Geometry, p Particle) (float64, face) {
	best := math.Inf(1)
	bestFace := faceLoX

	consider := func(d float64, f face) {
		if d >= 0 && d < best {
			best = d
			bestFace = f
		}
	}

	if p.U > 0 {
		consider((geom.Lx-p.X)/p.U, faceHiX)
	} else if p.U < 0 {
		consider((0-p.X)/p.U, faceLoX)
	}
	if p.V > 0 {
		consider((geom.Ly-p.Y)/p.V, faceHiY)
	} else if p.V < 0 {
		consider((0-p.Y)/p.V, faceLoY)
	}
	if p.W > 0 {
		consider((geom.Lz-p.Z)/p.W, faceHiZ)
	} else if p.W < 0 {
		consider((0-p.Z)/p.W, faceLoZ)
	}

	return best, bestFace
}

// applyBoundary applies geom.BC at the given face. It returns false if
// the particle leaked (vacuum), true if it should keep transporting.
func applyBoundary(geom Geometry, p *Particle, f face) bool {
	switch geom.BC {
	case BCVacuum:
		return false
	case BCReflective:
		switch f {
		case faceLoX, faceHiX:
			p.U = -p.U
		case faceLoY, faceHiY:
			p.V = -p.V
		case faceLoZ, faceHiZ:
			p.W = -p.W
		}
		return true
	case BCPeriodic:
		switch f {
		case faceLoX:
			p.X = geom.Lx
		case faceHiX:
			p.X = 0
		case faceLoY:
			p.Y = geom.Ly
		case faceHiY:
			p.Y = 0
		case faceLoZ:
			p.Z = geom.Lz
		case faceHiZ:
			p.Z = 0
		}
		return true
	default:
		return false
	}
}

// isotropicScatter samples a new, uniformly-random direction on the
// unit sphere for p after a scattering collision.
func isotropicScatter(rng *RNG, p *Particle) {
	mu := 2*rng.Float64() - 1
	phi := 2 * math.Pi * rng.Float64()
	sinTheta := math.Sqrt(1 - mu*mu)
	p.U = sinTheta * math.Cos(phi)
	p.V = sinTheta * math.Sin(phi)
	p.W = mu
}

// spawnFission appends floor(nu) + (1 with probability frac(nu))
// fission progeny at the collision site, each with an independently
// sampled isotropic direction and the parent's weight. This is the
// standard stochastic rounding that keeps the expected number of
// progeny per fission exactly mat.Nu without needing to know k_eff in
// advance — the population-control step (Synchronize) is what
// normalizes the generation back to a fixed size.
func spawnFission(rng *RNG, mat Material, fission *Bank, at Particle) {
	nWhole := int(math.Floor(mat.Nu))
	frac := mat.Nu - float64(nWhole)
	n := nWhole
	if rng.Float64() < frac {
		n++
	}

	for i := 0; i < n; i++ {
		child := at
		child.Alive = true
		isotropicScatter(rng, &child)
		fission.Append(child)
	}
}
