// cmd/config.go
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/eigenmc/eigenmc/mc"
)

// RunConfig mirrors every §6 key, before CLI overrides and material
// preset resolution are applied. Which keys appeared in the file is
// recorded separately (see wasSet); the caller fills in flag defaults
// for the rest.
type RunConfig struct {
	Particles   int64
	Batches     int
	Active      int
	Generations int
	Nuclides    int
	Seed        int64

	Material string
	Nu       float64
	XsF      float64
	XsA      float64
	XsS      float64

	X, Y, Z float64
	BC      string

	Tally bool
	Bins  int

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

	Workers int

	set map[string]bool
}

// wasSet reports whether key appeared in the parsed config file, so
// that flag defaults (rather than RunConfig's Go zero values) win when
// a key is simply absent.
func (c *RunConfig) wasSet(key string) bool {
	return c.set != nil && c.set[key]
}

// ParseConfigFile reads a legacy key=value text config per §6,
// grounded in original_source/src/io.c's parse_params: '#' and blank
// lines are comments, every other line is exactly one "key=value"
// pair, and an unrecognized key is a configuration error.
func ParseConfigFile(path string) (*RunConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, mc.FatalErrorf(mc.KindConfiguration, "opening config file %s: %v", path, err)
	}
	defer f.Close()

	cfg := &RunConfig{set: map[string]bool{}}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, mc.FatalErrorf(mc.KindConfiguration, "%s:%d: malformed line (expected key=value): %q", path, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if err := cfg.apply(key, value); err != nil {
			return nil, mc.FatalErrorf(mc.KindConfiguration, "%s:%d: %v", path, lineNo, err)
		}
		cfg.set[key] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, mc.FatalErrorf(mc.KindConfiguration, "reading config file %s: %v", path, err)
	}

	return cfg, nil
}

func (c *RunConfig) apply(key, value string) error {
	switch key {
	case "particles":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 1 {
			return fmt.Errorf("particles must be a positive integer, got %q", value)
		}
		c.Particles = n
	case "batches":
		return c.setInt(&c.Batches, value, key)
	case "active":
		return c.setInt(&c.Active, value, key)
	case "generations":
		return c.setInt(&c.Generations, value, key)
	case "nuclides":
		return c.setInt(&c.Nuclides, value, key)
	case "seed":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("seed must be an integer, got %q", value)
		}
		c.Seed = n
	case "material":
		c.Material = value
	case "nu":
		return c.setFloat(&c.Nu, value, key)
	case "xs_f":
		return c.setFloat(&c.XsF, value, key)
	case "xs_a":
		return c.setFloat(&c.XsA, value, key)
	case "xs_s":
		return c.setFloat(&c.XsS, value, key)
	case "x":
		return c.setFloat(&c.X, value, key)
	case "y":
		return c.setFloat(&c.Y, value, key)
	case "z":
		return c.setFloat(&c.Z, value, key)
	case "bc":
		if _, ok := mc.ParseBoundaryCondition(value); !ok {
			return fmt.Errorf("invalid boundary condition %q", value)
		}
		c.BC = value
	case "tally":
		return c.setBool(&c.Tally, value, key)
	case "bins":
		return c.setInt(&c.Bins, value, key)
	case "load_source":
		return c.setBool(&c.LoadSource, value, key)
	case "save_source":
		return c.setBool(&c.SaveSource, value, key)
	case "write_tally":
		return c.setBool(&c.WriteTally, value, key)
	case "write_entropy":
		return c.setBool(&c.WriteEntropy, value, key)
	case "write_msd":
		return c.setBool(&c.WriteMSD, value, key)
	case "write_keff":
		return c.setBool(&c.WriteKeff, value, key)
	case "write_bank":
		return c.setBool(&c.WriteBank, value, key)
	case "write_source":
		return c.setBool(&c.WriteSource, value, key)
	case "tally_file":
		c.TallyFile = value
	case "entropy_file":
		c.EntropyFile = value
	case "msd_file":
		c.MSDFile = value
	case "keff_file":
		c.KeffFile = value
	case "bank_file":
		c.BankFile = value
	case "source_file":
		c.SourceFile = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func (c *RunConfig) setInt(dst *int, value, key string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	*dst = n
	return nil
}

func (c *RunConfig) setFloat(dst *float64, value, key string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s must be a number, got %q", key, value)
	}
	*dst = v
	return nil
}

func (c *RunConfig) setBool(dst *bool, value, key string) error {
	switch strings.ToLower(value) {
	case "true":
		*dst = true
	case "false":
		*dst = false
	default:
		return fmt.Errorf("%s must be 'true' or 'false', got %q", key, value)
	}
	return nil
}

// defaultFile returns path if non-empty, else base+".dat", matching
// §6's "defaults fill in *.dat file names when writing is enabled
// without a path" rule.
func defaultFile(path, base string) string {
	if path != "" {
		return path
	}
	return base + ".dat"
}
