// mc/io.go
package mc

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// Tally is an n×n spatial flux buffer over the x-y plane. The driver
// zeroes it at the end of every active batch (after writing it, when
// writing is enabled), so it holds one batch at a time. No
// TransportKernel scores into it: Transport takes no tally argument,
// so Flux stays zero unless a caller fills it directly.
type Tally struct {
	N        int
	Flux     []float64 // row-major, length N*N
	TalliesOn bool
}

// NewTally allocates an n×n tally.
func NewTally(n int) *Tally {
	return &Tally{N: n, Flux: make([]float64, n*n)}
}

// Zero clears the flux buffer in place without reallocating.
func (t *Tally) Zero() {
	for i := range t.Flux {
		t.Flux[i] = 0
	}
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, newFatal(KindIO, "opening %s: %v", path, err)
	}
	return f, nil
}

// WriteTally appends one line per tally row, space-separated
// scientific-notation flux values, matching io.c's write_tally.
func WriteTally(t *Tally, path string) error {
	f, err := openAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < t.N; i++ {
		for j := 0; j < t.N; j++ {
			fmt.Fprintf(w, "%e ", t.Flux[i+t.N*j])
		}
		fmt.Fprint(w, "\n")
	}
	return w.Flush()
}

// WriteEntropy appends a single %.10f-formatted entropy value.
func WriteEntropy(h float64, path string) error {
	f, err := openAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%.10f\n", h)
	return err
}

// WriteMSD appends a single %.10f-formatted mean-squared-distance value.
func WriteMSD(msd float64, path string) error {
	f, err := openAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%.10f\n", msd)
	return err
}

// WriteKeff appends one %.10f-formatted value per active batch.
func WriteKeff(keff []float64, path string) error {
	f, err := openAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range keff {
		fmt.Fprintf(w, "%.10f\n", v)
	}
	return w.Flush()
}

// WriteBank appends all (x, y) pairs of the bank's particles on a
// single line.
func WriteBank(b *Bank, path string) error {
	f, err := openAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < b.Len(); i++ {
		p := b.At(i)
		fmt.Fprintf(w, "%.10f %.10f ", p.X, p.Y)
	}
	fmt.Fprint(w, "\n")
	return w.Flush()
}

// WriteSource writes an nBins×nBins normalized 2-D source-density grid
// over the x-y plane, one row per line. This is deliberately a
// separate grid from ShannonEntropy's 3-D m×m×m partition —
// see SPEC_FULL.md's note on the entropy/source-file dichotomy.
func WriteSource(b *Bank, geom Geometry, nBins int, path string) error {
	dx := geom.Lx / float64(nBins)
	dy := geom.Ly / float64(nBins)

	dist := make([]float64, nBins*nBins)
	n := b.Len()
	for i := 0; i < n; i++ {
		p := b.At(i)
		ix := clampIndex(int(p.X/dx), nBins)
		iy := clampIndex(int(p.Y/dy), nBins)
		dist[ix+nBins*iy]++
	}
	if n > 0 {
		for i := range dist {
			dist[i] /= float64(n)
		}
	}

	f, err := openAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < nBins; i++ {
		for j := 0; j < nBins; j++ {
			fmt.Fprintf(w, "%e ", dist[i+nBins*j])
		}
		fmt.Fprint(w, "\n")
	}
	return w.Flush()
}

// particleRecordSize is the fixed byte width of one binary Particle
// record: 7 float64 fields plus a 1-byte alive flag.
const particleRecordSize = 7*8 + 1

// SaveSource writes exactly b.Len() binary particle records to path,
// little-endian, fixed-width, replacing any previous contents.
func SaveSource(b *Bank, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return newFatal(KindIO, "creating %s: %v", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < b.Len(); i++ {
		if err := writeParticle(w, b.At(i)); err != nil {
			return newFatal(KindIO, "writing source record %d: %v", i, err)
		}
	}
	return w.Flush()
}

// LoadSource reads exactly b.Cap() binary particle records from path,
// failing if fewer are available — b.sz records must be readable, per
// §9's Open Question, which this engine resolves by setting n = sz on
// a successful load.
func LoadSource(b *Bank, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return newFatal(KindIO, "opening source file: %v", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	sz := b.Cap()
	for i := 0; i < sz; i++ {
		p, err := readParticle(r)
		if err != nil {
			return newFatal(KindIO, "loading source: expected %d records, failed at %d: %v", sz, i, err)
		}
		b.Set(i, p)
	}
	b.SetN(sz)
	return nil
}

func writeParticle(w *bufio.Writer, p Particle) error {
	fields := []float64{p.X, p.Y, p.Z, p.U, p.V, p.W, p.Wgt}
	for _, v := range fields {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	var alive byte
	if p.Alive {
		alive = 1
	}
	return w.WriteByte(alive)
}

func readParticle(r *bufio.Reader) (Particle, error) {
	var fields [7]float64
	for i := range fields {
		if err := binary.Read(r, binary.LittleEndian, &fields[i]); err != nil {
			return Particle{}, err
		}
	}
	alive, err := r.ReadByte()
	if err != nil {
		return Particle{}, err
	}
	return Particle{
		X: fields[0], Y: fields[1], Z: fields[2],
		U: fields[3], V: fields[4], W: fields[5],
		Wgt:   fields[6],
		Alive: alive != 0,
	}, nil
}
