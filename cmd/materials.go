// cmd/materials.go
package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eigenmc/eigenmc/mc"
)

// NuclidePreset is one nuclide's contribution to a material's
// macroscopic cross sections, as listed in materials.yaml.
type NuclidePreset struct {
	Name string  `yaml:"name"`
	Nu   float64 `yaml:"nu"`
	XsF  float64 `yaml:"xs_f"`
	XsA  float64 `yaml:"xs_a"`
	XsS  float64 `yaml:"xs_s"`
}

// MaterialPreset is a named, possibly multi-nuclide material. When
// Nuclides has more than one entry the homogenized cross sections are
// the sum across nuclides, matching io.c's n_nuclides key.
type MaterialPreset struct {
	Nuclides []NuclidePreset `yaml:"nuclides"`
}

// MaterialsFile is the top-level materials.yaml structure. All fields
// must be listed to satisfy KnownFields(true) strict parsing.
type MaterialsFile struct {
	Materials map[string]MaterialPreset `yaml:"materials"`
}

// LoadMaterialsFile parses a materials.yaml preset library with
// strict field checking: an unknown YAML field is a configuration error.
func LoadMaterialsFile(path string) (*MaterialsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mc.FatalErrorf(mc.KindIO, "reading materials file %s: %v", path, err)
	}

	var f MaterialsFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, mc.FatalErrorf(mc.KindConfiguration, "parsing materials file %s: %v", path, err)
	}
	return &f, nil
}

// Resolve homogenizes the named preset into a single mc.Material,
// summing cross sections across all listed nuclides.
func (f *MaterialsFile) Resolve(name string) (mc.Material, error) {
	preset, ok := f.Materials[name]
	if !ok {
		return mc.Material{}, fmt.Errorf("unknown material preset %q", name)
	}

	mat := mc.Material{NNuclides: len(preset.Nuclides)}
	for _, nuc := range preset.Nuclides {
		mat.Nu += nuc.Nu
		mat.XsF += nuc.XsF
		mat.XsA += nuc.XsA
		mat.XsS += nuc.XsS
	}
	return mat, nil
}
