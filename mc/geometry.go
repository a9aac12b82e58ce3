// mc/geometry.go
package mc

// BoundaryCondition selects how a particle is treated when it reaches
// the edge of the geometry.
type BoundaryCondition int

const (
	BCVacuum BoundaryCondition = iota
	BCReflective
	BCPeriodic
)

// ParseBoundaryCondition maps the §6 config strings to a BoundaryCondition.
func ParseBoundaryCondition(s string) (BoundaryCondition, bool) {
	switch s {
	case "vacuum":
		return BCVacuum, true
	case "reflective":
		return BCReflective, true
	case "periodic":
		return BCPeriodic, true
	default:
		return 0, false
	}
}

func (bc BoundaryCondition) String() string {
	switch bc {
	case BCVacuum:
		return "vacuum"
	case BCReflective:
		return "reflective"
	case BCPeriodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// Geometry is a homogeneous rectangular box, consumed read-only by
// diagnostics and the transport kernel.
type Geometry struct {
	Lx, Ly, Lz float64
	BC         BoundaryCondition
}

// Material is a single homogeneous material's macroscopic cross
// sections. NNuclides records how many nuclide-level cross-section
// sets a material preset was composed from (see cmd/materials.go);
// this engine only ever transports against the resulting homogenized
// (Nu, XsF, XsA, XsS) tuple.
type Material struct {
	NNuclides int
	Nu        float64 // average number of neutrons produced per fission
	XsF       float64 // macroscopic fission cross section
	XsA       float64 // macroscopic absorption cross section (includes fission)
	XsS       float64 // macroscopic scattering cross section
}

// XsTotal is the total macroscopic cross section governing the
// distance-to-collision sampling.
func (m Material) XsTotal() float64 {
	return m.XsA + m.XsS
}

// Parameters is the full set of run parameters described in §6.
type Parameters struct {
	NParticles  int64
	NBatches    int
	NActive     int
	NGenerations int
	Seed        int64

	Tally bool
	NBins int

	LoadSource bool
	SaveSource bool

	WriteTally   bool
	WriteEntropy bool
	WriteMSD     bool
	WriteKeff    bool
	WriteBank    bool
	WriteSource  bool

	TallyFile   string
	EntropyFile string
	MSDFile     string
	KeffFile    string
	BankFile    string
	SourceFile  string
}
