// cmd/root.go
package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eigenmc/eigenmc/mc"
)

var (
	configFile    string
	materialsFile string

	particles   int64
	batches     int
	active      int
	generations int
	nuclides    int
	seed        int64

	material string
	nu       float64
	xsF      float64
	xsA      float64
	xsS      float64

	x, y, z float64
	bc      string

	tally bool
	bins  int

	loadSource bool
	saveSource bool

	writeTally   bool
	writeEntropy bool
	writeMSD     bool
	writeKeff    bool
	writeBank    bool
	writeSource  bool

	tallyFile   string
	entropyFile string
	msdFile     string
	keffFile    string
	bankFile    string
	sourceFile  string

	workers  int
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "eigenmc",
	Short: "Monte Carlo neutron transport eigenvalue driver",
}

var runCmd = &cobra.Command{
	Use:           "run",
	Short:         "Run a batch/generation/particle eigenvalue calculation",
	RunE:          runEigenvalue,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&configFile, "config", "", "legacy key=value config file")
	runCmd.Flags().StringVar(&materialsFile, "materials", "cmd/materials.yaml", "material preset YAML file")

	runCmd.Flags().Int64Var(&particles, "particles", 1000, "number of source particles")
	runCmd.Flags().IntVar(&batches, "batches", 10, "number of batches")
	runCmd.Flags().IntVar(&active, "active", 5, "number of active batches")
	runCmd.Flags().IntVar(&generations, "generations", 1, "number of generations per batch")
	runCmd.Flags().IntVar(&nuclides, "nuclides", 1, "number of nuclides in material (informational)")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "RNG master seed")

	runCmd.Flags().StringVar(&material, "material", "", "named material preset (overrides nu/xs-*)")
	runCmd.Flags().Float64Var(&nu, "nu", 2.5, "average neutrons produced per fission")
	runCmd.Flags().Float64Var(&xsF, "xs-f", 0.0414198575, "macroscopic fission cross section")
	runCmd.Flags().Float64Var(&xsA, "xs-a", 0.0648861719, "macroscopic absorption cross section")
	runCmd.Flags().Float64Var(&xsS, "xs-s", 0.6765405142, "macroscopic scattering cross section")

	runCmd.Flags().Float64Var(&x, "x", 20.0, "geometry extent in x")
	runCmd.Flags().Float64Var(&y, "y", 20.0, "geometry extent in y")
	runCmd.Flags().Float64Var(&z, "z", 0, "geometry extent in z (defaults to x if unset)")
	runCmd.Flags().StringVar(&bc, "bc", "vacuum", "boundary condition (vacuum|reflective|periodic)")

	runCmd.Flags().BoolVar(&tally, "tally", false, "enable flux tallying")
	runCmd.Flags().IntVar(&bins, "bins", 10, "tally/source grid bins per dimension")

	runCmd.Flags().BoolVar(&loadSource, "load-source", false, "load initial source bank from source.dat")
	runCmd.Flags().BoolVar(&saveSource, "save-source", false, "save final source bank to source.dat")

	runCmd.Flags().BoolVar(&writeTally, "write-tally", false, "append tally grids to tally-file")
	runCmd.Flags().BoolVar(&writeEntropy, "write-entropy", false, "append entropy values to entropy-file")
	runCmd.Flags().BoolVar(&writeMSD, "write-msd", false, "append mean-squared-distance values to msd-file")
	runCmd.Flags().BoolVar(&writeKeff, "write-keff", false, "append k_eff values to keff-file")
	runCmd.Flags().BoolVar(&writeBank, "write-bank", false, "append bank snapshots to bank-file")
	runCmd.Flags().BoolVar(&writeSource, "write-source", false, "append source-density grids to source-file")

	runCmd.Flags().StringVar(&tallyFile, "tally-file", "", "tally output path")
	runCmd.Flags().StringVar(&entropyFile, "entropy-file", "", "entropy output path")
	runCmd.Flags().StringVar(&msdFile, "msd-file", "", "mean-squared-distance output path")
	runCmd.Flags().StringVar(&keffFile, "keff-file", "", "k_eff output path")
	runCmd.Flags().StringVar(&bankFile, "bank-file", "", "bank output path")
	runCmd.Flags().StringVar(&sourceFile, "source-file", "", "source-density output path")

	runCmd.Flags().IntVar(&workers, "workers", 1, "number of particle-loop worker goroutines")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
}

// runEigenvalue builds a mc.Driver from the config file (if any) and
// CLI flags, with flags overriding config-file values, then runs it.
func runEigenvalue(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return mc.FatalErrorf(mc.KindConfiguration, "invalid log level %q", logLevel)
	}
	logrus.SetLevel(level)

	var fileCfg *RunConfig
	if configFile != "" {
		fileCfg, err = ParseConfigFile(configFile)
		if err != nil {
			return printAndExit(err)
		}
	}

	params, geom, mat, err := resolveRunConfig(cmd, fileCfg)
	if err != nil {
		return printAndExit(err)
	}

	mc.PrintSummary(params, geom, mat)

	driver := &mc.Driver{Params: params, Geometry: geom, Material: mat, Kernel: mc.HomogeneousKernel{}, Workers: workers}

	source := mc.NewBank(int(params.NParticles))
	if params.LoadSource {
		if err := mc.LoadSource(source, "source.dat"); err != nil {
			return printAndExit(err)
		}
	} else {
		seedSourceUniformly(source, geom, int(params.NParticles), params.Seed)
	}

	if _, err := driver.Run(source); err != nil {
		return printAndExit(err)
	}

	logrus.Info("eigenvalue calculation complete")
	return nil
}

// printAndExit prints the §7 "ERROR: <message>" line and returns an
// error so cobra exits non-zero, without cobra's own usage banner.
func printAndExit(err error) error {
	fmt.Printf("ERROR: %v\n", err)
	return err
}

// seedSourceUniformly fills source with n particles placed uniformly
// at random in the geometry box, used when no --load-source is given.
// This is ordinary math/rand, not the engine's skip-ahead RNG: initial
// placement is outside the reproducibility contract the spec defines
// over the batch/generation loop itself.
func seedSourceUniformly(source *mc.Bank, geom mc.Geometry, n int, seed int64) {
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		source.Append(mc.Particle{
			X: r.Float64() * geom.Lx,
			Y: r.Float64() * geom.Ly,
			Z: r.Float64() * geom.Lz,
			U: 1, V: 0, W: 0,
			Wgt:   1,
			Alive: true,
		})
	}
}

// resolveRunConfig merges the config file (if any) with explicitly
// set CLI flags, flags winning, and applies §6's file-name defaults.
func resolveRunConfig(cmd *cobra.Command, file *RunConfig) (mc.Parameters, mc.Geometry, mc.Material, error) {
	flags := cmd.Flags()

	pick := func(name string, flagVal, fileVal int64, fileSet bool) int64 {
		if flags.Changed(name) || !fileSet {
			return flagVal
		}
		return fileVal
	}
	pickInt := func(name string, flagVal, fileVal int, fileSet bool) int {
		if flags.Changed(name) || !fileSet {
			return flagVal
		}
		return fileVal
	}
	pickFloat := func(name string, flagVal, fileVal float64, fileSet bool) float64 {
		if flags.Changed(name) || !fileSet {
			return flagVal
		}
		return fileVal
	}
	pickBool := func(name string, flagVal, fileVal bool, fileSet bool) bool {
		if flags.Changed(name) || !fileSet {
			return flagVal
		}
		return fileVal
	}
	pickStr := func(name string, flagVal, fileVal string, fileSet bool) string {
		if flags.Changed(name) || !fileSet {
			return flagVal
		}
		return fileVal
	}

	has := func(key string) bool { return file != nil && file.wasSet(key) }

	effParticles := particles
	effBatches := batches
	effActive := active
	effGenerations := generations
	effNuclides := nuclides
	effSeed := seed
	effMaterial := material
	effNu, effXsF, effXsA, effXsS := nu, xsF, xsA, xsS
	effX, effY, effZ := x, y, z
	effBC := bc
	effTally := tally
	effBins := bins
	effLoadSource := loadSource
	effSaveSource := saveSource
	effWriteTally := writeTally
	effWriteEntropy := writeEntropy
	effWriteMSD := writeMSD
	effWriteKeff := writeKeff
	effWriteBank := writeBank
	effWriteSource := writeSource
	effTallyFile := tallyFile
	effEntropyFile := entropyFile
	effMSDFile := msdFile
	effKeffFile := keffFile
	effBankFile := bankFile
	effSourceFile := sourceFile

	if file != nil {
		effParticles = pick("particles", particles, file.Particles, has("particles"))
		effBatches = pickInt("batches", batches, file.Batches, has("batches"))
		effActive = pickInt("active", active, file.Active, has("active"))
		effGenerations = pickInt("generations", generations, file.Generations, has("generations"))
		effNuclides = pickInt("nuclides", nuclides, file.Nuclides, has("nuclides"))
		effSeed = pick("seed", seed, file.Seed, has("seed"))
		effMaterial = pickStr("material", material, file.Material, has("material"))
		effNu = pickFloat("nu", nu, file.Nu, has("nu"))
		effXsF = pickFloat("xs-f", xsF, file.XsF, has("xs_f"))
		effXsA = pickFloat("xs-a", xsA, file.XsA, has("xs_a"))
		effXsS = pickFloat("xs-s", xsS, file.XsS, has("xs_s"))
		effX = pickFloat("x", x, file.X, has("x"))
		effY = pickFloat("y", y, file.Y, has("y"))
		effZ = pickFloat("z", z, file.Z, has("z"))
		effBC = pickStr("bc", bc, file.BC, has("bc"))
		effTally = pickBool("tally", tally, file.Tally, has("tally"))
		effBins = pickInt("bins", bins, file.Bins, has("bins"))
		effLoadSource = pickBool("load-source", loadSource, file.LoadSource, has("load_source"))
		effSaveSource = pickBool("save-source", saveSource, file.SaveSource, has("save_source"))
		effWriteTally = pickBool("write-tally", writeTally, file.WriteTally, has("write_tally"))
		effWriteEntropy = pickBool("write-entropy", writeEntropy, file.WriteEntropy, has("write_entropy"))
		effWriteMSD = pickBool("write-msd", writeMSD, file.WriteMSD, has("write_msd"))
		effWriteKeff = pickBool("write-keff", writeKeff, file.WriteKeff, has("write_keff"))
		effWriteBank = pickBool("write-bank", writeBank, file.WriteBank, has("write_bank"))
		effWriteSource = pickBool("write-source", writeSource, file.WriteSource, has("write_source"))
		effTallyFile = pickStr("tally-file", tallyFile, file.TallyFile, has("tally_file"))
		effEntropyFile = pickStr("entropy-file", entropyFile, file.EntropyFile, has("entropy_file"))
		effMSDFile = pickStr("msd-file", msdFile, file.MSDFile, has("msd_file"))
		effKeffFile = pickStr("keff-file", keffFile, file.KeffFile, has("keff_file"))
		effBankFile = pickStr("bank-file", bankFile, file.BankFile, has("bank_file"))
		effSourceFile = pickStr("source-file", sourceFile, file.SourceFile, has("source_file"))
	}

	boundary, ok := mc.ParseBoundaryCondition(effBC)
	if !ok {
		return mc.Parameters{}, mc.Geometry{}, mc.Material{}, mc.FatalErrorf(mc.KindConfiguration, "invalid boundary condition %q", effBC)
	}

	mat := mc.Material{NNuclides: effNuclides, Nu: effNu, XsF: effXsF, XsA: effXsA, XsS: effXsS}
	if effMaterial != "" {
		materials, err := LoadMaterialsFile(materialsFile)
		if err != nil {
			return mc.Parameters{}, mc.Geometry{}, mc.Material{}, err
		}
		resolved, err := materials.Resolve(effMaterial)
		if err != nil {
			return mc.Parameters{}, mc.Geometry{}, mc.Material{}, mc.FatalErrorf(mc.KindConfiguration, "%v", err)
		}
		mat = resolved
	}

	if effZ == 0 {
		effZ = effX
	}
	geom := mc.Geometry{Lx: effX, Ly: effY, Lz: effZ, BC: boundary}

	params := mc.Parameters{
		NParticles:   effParticles,
		NBatches:     effBatches,
		NActive:      effActive,
		NGenerations: effGenerations,
		Seed:         effSeed,

		Tally: effTally,
		NBins: effBins,

		LoadSource: effLoadSource,
		SaveSource: effSaveSource,

		WriteTally:   effWriteTally,
		WriteEntropy: effWriteEntropy,
		WriteMSD:     effWriteMSD,
		WriteKeff:    effWriteKeff,
		WriteBank:    effWriteBank,
		WriteSource:  effWriteSource,

		TallyFile:   defaultFile(effTallyFile, "tally"),
		EntropyFile: defaultFile(effEntropyFile, "entropy"),
		MSDFile:     defaultFile(effMSDFile, "msd"),
		KeffFile:    defaultFile(effKeffFile, "keff"),
		BankFile:    defaultFile(effBankFile, "bank"),
		SourceFile:  defaultFile(effSourceFile, "source"),
	}

	return params, geom, mat, nil
}
