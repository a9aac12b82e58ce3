// mc/keff.go
package mc

import "gonum.org/v1/gonum/stat"

// KeffAccumulator holds one k_eff estimate per active batch and
// produces the running cross-batch mean and sample standard
// deviation described in §4.6 / §8 P7.
type KeffAccumulator struct {
	values []float64
}

// NewKeffAccumulator preallocates storage for nActive batches.
func NewKeffAccumulator(nActive int) *KeffAccumulator {
	return &KeffAccumulator{values: make([]float64, 0, nActive)}
}

// Record appends this batch's k_eff estimate. Callers only record once
// per active batch (the driver decides which batches are active).
func (k *KeffAccumulator) Record(keffBatch float64) {
	k.values = append(k.values, keffBatch)
}

// Values returns the k_eff values recorded so far, in order.
func (k *KeffAccumulator) Values() []float64 {
	return k.values
}

// MeanStd returns the mean and Bessel-corrected sample standard
// deviation over the values recorded so far. With a single value, std
// is NaN (stat.MeanStdDev divides by n-1), which the driver prints
// as-is rather than special-casing, matching the C original's
// behavior of letting the NaN propagate to the printed line.
func (k *KeffAccumulator) MeanStd() (mean, std float64) {
	return stat.MeanStdDev(k.values, nil)
}
