// mc/driver.go
package mc

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Driver runs the batch/generation/particle eigenvalue pipeline (C8),
// orchestrating C1–C7 and the external writers over a fixed source
// population.
type Driver struct {
	Params   Parameters
	Geometry Geometry
	Material Material
	Kernel   TransportKernel

	// Workers is the number of goroutines the particle loop is
	// statically partitioned across. 0 or 1 runs single-threaded.
	Workers int
}

// Result is the outcome of a completed Run.
type Result struct {
	Keff   []float64 // one value per active batch, in batch order
	Tally  *Tally    // nil if tallying was never enabled
	Source *Bank     // final source bank, for optional save
}

// Run executes n_batches batches of n_generations generations each
// over source, per §4.1. source must already have Len() == NParticles.
func (d *Driver) Run(source *Bank) (*Result, error) {
	n := int(d.Params.NParticles)
	workers := max(d.Workers, 1)

	// The coordinator's RNG is used only by Synchronize; place it at the
	// start of the OTHER stream so resampling never shares draws with
	// the TRACK substreams the workers use.
	rng := NewRNG(d.Params.Seed)
	rng.SetStream(StreamOther)
	rng.Skip(0)
	acc := NewKeffAccumulator(d.Params.NActive)

	var tally *Tally
	if d.Params.Tally {
		tally = NewTally(d.Params.NBins)
	}

	workerBanks := make([]*Bank, workers)
	for i := range workerBanks {
		workerBanks[i] = NewBank(n / workers + 1)
	}
	master := NewBank(n)

	iA := -1

	for iB := 0; iB < d.Params.NBatches; iB++ {
		keffBatch := 0.0

		if d.Params.WriteBank {
			if err := WriteBank(source, d.Params.BankFile); err != nil {
				return nil, err
			}
		}

		if iB >= d.Params.NBatches-d.Params.NActive {
			iA++
			if d.Params.Tally && tally != nil {
				tally.TalliesOn = true
			}
		}

		var h float64
		for iG := 0; iG < d.Params.NGenerations; iG++ {
			transportGeneration(d, rng, source, workerBanks, iB, iG, n, workers)

			MergeFissionBanks(workerBanks, master)
			fission := workerBanks[0]

			keffGen := float64(fission.Len()) / float64(source.Len())
			keffBatch += keffGen

			if err := Synchronize(rng, fission, source); err != nil {
				return nil, err
			}

			h = ShannonEntropy(d.Geometry, source)
			if d.Params.WriteEntropy {
				if err := WriteEntropy(h, d.Params.EntropyFile); err != nil {
					return nil, err
				}
			}

			if d.Params.WriteMSD {
				msd := MeanSquaredDistance(source)
				if err := WriteMSD(msd, d.Params.MSDFile); err != nil {
					return nil, err
				}
			}

			if d.Params.WriteSource {
				if err := WriteSource(source, d.Geometry, d.Params.NBins, d.Params.SourceFile); err != nil {
					return nil, err
				}
			}

			logrus.Debugf("batch %d gen %d: keff_gen=%.6f H=%.6f", iB+1, iG+1, keffGen, h)
		}

		keffBatch /= float64(d.Params.NGenerations)
		if iA >= 0 {
			acc.Record(keffBatch)
		}

		if tally != nil && tally.TalliesOn {
			if d.Params.WriteTally {
				if err := WriteTally(tally, d.Params.TallyFile); err != nil {
					return nil, err
				}
			}
			tally.Zero()
		}

		printBatchStatus(iB, iA, h, keffBatch, acc)
	}

	if d.Params.WriteKeff {
		if err := WriteKeff(acc.Values(), d.Params.KeffFile); err != nil {
			return nil, err
		}
	}

	if d.Params.SaveSource {
		if err := SaveSource(source, "source.dat"); err != nil {
			return nil, err
		}
	}

	return &Result{Keff: acc.Values(), Tally: tally, Source: source}, nil
}

// transportGeneration runs the data-parallel particle loop for one
// generation, statically partitioning [0, n) across `workers`
// goroutines. Each worker gets a private RNG view (via its own Skip
// calls on the shared stream-base seeds) and its own fission bank —
// the only shared, mutable state is source, which is read-only here.
func transportGeneration(d *Driver, rng *RNG, source *Bank, workerBanks []*Bank, iB, iG, n, workers int) {
	for _, wb := range workerBanks {
		wb.Clear()
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(lo, hi int, fission *Bank) {
			defer wg.Done()

			// Each goroutine owns an independent RNG value with the
			// same stream base seeds; Skip always recomputes from
			// that base, so iteration order and worker assignment
			// never affect which substream a particle index sees.
			local := &RNG{trackBase: rng.trackBase, otherBase: rng.otherBase}
			local.SetStream(StreamTrack)

			for iP := lo; iP < hi; iP++ {
				draw := uint64(iB*d.Params.NGenerations+iG)*uint64(n) + uint64(iP)
				local.Skip(draw)

				p := source.At(iP)
				p.Alive = true
				d.Kernel.Transport(local, d.Geometry, d.Material, fission, &p)
			}
		}(lo, hi, workerBanks[w])
	}

	wg.Wait()
}

func printBatchStatus(iB, iA int, h, keffBatch float64, acc *KeffAccumulator) {
	if iA < 0 {
		fmt.Printf("%-15d %-15f %-15f\n", iB+1, h, keffBatch)
		return
	}
	mean, std := acc.MeanStd()
	fmt.Printf("%-15d %-15f %-15f %f +/- %-15f\n", iB+1, h, keffBatch, mean, std)
}
