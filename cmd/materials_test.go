package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadMaterialsFile_ShippedPresetsParse(t *testing.T) {
	f, err := LoadMaterialsFile("materials.yaml")
	assert.NoError(t, err)
	assert.Contains(t, f.Materials, "fuel-rod")
	assert.Contains(t, f.Materials, "water-reflector")
}

func TestMaterialsFile_ResolveSumsNuclides(t *testing.T) {
	f, err := LoadMaterialsFile("materials.yaml")
	assert.NoError(t, err)

	mat, err := f.Resolve("mixed-core")
	assert.NoError(t, err)
	assert.Equal(t, 2, mat.NNuclides)
	assert.Greater(t, mat.XsA, 0.0)
}

func TestMaterialsFile_ResolveUnknownName(t *testing.T) {
	f, err := LoadMaterialsFile("materials.yaml")
	assert.NoError(t, err)

	_, err = f.Resolve("not-a-material")
	assert.Error(t, err)
}

func TestLoadMaterialsFile_RejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	body := "materials:\n  x:\n    nuclides:\n      - name: a\n        nu: 1\n        bogus_field: 2\n"
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := LoadMaterialsFile(path)
	assert.Error(t, err)
}

func TestLoadMaterialsFile_MissingFile(t *testing.T) {
	_, err := LoadMaterialsFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
