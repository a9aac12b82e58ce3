// mc/merge.go
package mc

// MergeFissionBanks concatenates each worker's local fission bank into
// worker 0's fission bank, in worker-index order, and clears every
// other worker's bank. The two passes below (count, then copy) both
// iterate workers in index order, so the result is a deterministic
// function of the worker banks' contents and count — never of
// goroutine scheduling. This is what makes the merged bank, and
// everything downstream of it, independent of worker count.
func MergeFissionBanks(workers []*Bank, master *Bank) {
	if len(workers) == 0 {
		return
	}

	nTotal := 0
	for _, w := range workers {
		nTotal += w.Len()
	}

	if nTotal > workers[0].Cap() {
		workers[0].Resize(nTotal)
	}
	if nTotal > master.Cap() {
		master.Resize(nTotal)
	}

	nSites := 0
	for _, w := range workers {
		for i := 0; i < w.Len(); i++ {
			master.Set(nSites, w.At(i))
			nSites++
		}
	}

	for i := 0; i < nSites; i++ {
		workers[0].Set(i, master.At(i))
	}
	workers[0].SetN(nSites)
	for _, w := range workers[1:] {
		w.Clear()
	}
}
