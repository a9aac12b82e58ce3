// mc/errors.go
package mc

import "fmt"

// Kind classifies a fatal error per §7's taxonomy.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindIO            Kind = "io"
	KindPopulation    Kind = "population"
	KindContract      Kind = "contract"
)

// FatalError is the error type this engine returns for conditions §7
// calls fatal. The exception is a failed write or flush inside the
// io.go writers, which is returned as the underlying error unwrapped.
// There is no per-particle error channel; callers are expected to print
// "ERROR: <message>" and exit non-zero.
type FatalError struct {
	Kind    Kind
	Message string
}

func (e *FatalError) Error() string {
	return e.Message
}

func newFatal(k Kind, format string, args ...any) *FatalError {
	return &FatalError{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// FatalErrorf builds a FatalError of the given kind, for callers
// outside this package (the cmd layer's configuration errors).
func FatalErrorf(k Kind, format string, args ...any) *FatalError {
	return newFatal(k, format, args...)
}

// errExtinction builds the population error raised when Synchronize is
// asked to resample from an empty fission bank.
func errExtinction() *FatalError {
	return newFatal(KindPopulation, "fission bank is empty: population extinct")
}
