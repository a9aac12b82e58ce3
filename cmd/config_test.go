package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eigenmc/eigenmc/mc"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.cfg")
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseConfigFile_SkipsCommentsAndBlankLines(t *testing.T) {
	path := writeConfig(t, "# a comment\n\nparticles=100\nbatches=5\n")

	cfg, err := ParseConfigFile(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), cfg.Particles)
	assert.Equal(t, 5, cfg.Batches)
}

func TestParseConfigFile_ParsesEveryKeyType(t *testing.T) {
	body := `particles=500
batches=10
active=5
generations=2
nuclides=1
seed=7
nu=2.5
xs_f=0.04
xs_a=0.065
xs_s=0.68
x=20
y=20
z=20
bc=reflective
tally=true
bins=8
load_source=false
save_source=true
write_tally=true
write_entropy=true
write_msd=true
write_keff=true
write_bank=false
write_source=false
tally_file=my_tally.dat
entropy_file=my_entropy.dat
msd_file=my_msd.dat
keff_file=my_keff.dat
bank_file=my_bank.dat
source_file=my_source.dat
`
	cfg, err := ParseConfigFile(writeConfig(t, body))
	assert.NoError(t, err)

	assert.Equal(t, int64(500), cfg.Particles)
	assert.Equal(t, 10, cfg.Batches)
	assert.Equal(t, 5, cfg.Active)
	assert.Equal(t, 2, cfg.Generations)
	assert.Equal(t, 7, int(cfg.Seed))
	assert.InDelta(t, 2.5, cfg.Nu, 1e-9)
	assert.Equal(t, "reflective", cfg.BC)
	assert.True(t, cfg.Tally)
	assert.Equal(t, 8, cfg.Bins)
	assert.False(t, cfg.LoadSource)
	assert.True(t, cfg.SaveSource)
	assert.Equal(t, "my_tally.dat", cfg.TallyFile)
}

func TestParseConfigFile_RejectsUnknownKey(t *testing.T) {
	_, err := ParseConfigFile(writeConfig(t, "bogus=1\n"))
	assert.Error(t, err)

	var fe *mc.FatalError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, mc.KindConfiguration, fe.Kind)
}

func TestParseConfigFile_RejectsInvalidBoolean(t *testing.T) {
	_, err := ParseConfigFile(writeConfig(t, "tally=maybe\n"))
	assert.Error(t, err)
}

func TestParseConfigFile_RejectsInvalidBoundaryCondition(t *testing.T) {
	_, err := ParseConfigFile(writeConfig(t, "bc=diagonal\n"))
	assert.Error(t, err)
}

func TestParseConfigFile_RejectsMalformedLine(t *testing.T) {
	_, err := ParseConfigFile(writeConfig(t, "not-a-key-value-pair\n"))
	assert.Error(t, err)
}

func TestParseConfigFile_MissingFile(t *testing.T) {
	_, err := ParseConfigFile(filepath.Join(t.TempDir(), "nope.cfg"))
	assert.Error(t, err)
}

func TestDefaultFile_FillsInDatSuffix(t *testing.T) {
	assert.Equal(t, "tally.dat", defaultFile("", "tally"))
	assert.Equal(t, "custom.out", defaultFile("custom.out", "tally"))
}
