// Package mc provides the core Monte Carlo eigenvalue transport engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - particle.go, bank.go: the particle representation and the population-sized banks
//   - driver.go: the batch/generation/particle loop and worker pool
//   - sync.go, merge.go: bank synchronization (reservoir sampling) and fission-bank merge
//   - rng.go: the skip-ahead RNG and its TRACK/OTHER substreams
//
// # Architecture
//
// Driver.Run orchestrates one eigenvalue calculation over a fixed-size
// source bank. Each generation transports every particle in the source
// bank to its terminal event, collecting fission progeny into per-worker
// banks; MergeFissionBanks folds those into one ordered fission bank, and
// Synchronize resamples it back down (or up) to the fixed population
// size for the next generation. ShannonEntropy and MeanSquaredDistance
// are independent diagnostics over the synchronized source bank; they
// never feed back into the transport loop.
//
// # Key Interfaces
//
//   - TransportKernel: the single extension point. HomogeneousKernel is
//     the shipped one-group isotropic-scattering default; a caller may
//     swap in any multi-group or heterogeneous-geometry kernel without
//     touching the driver.
package mc
