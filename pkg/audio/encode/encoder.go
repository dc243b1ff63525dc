// ABOUTME: Encoder interface definition
// ABOUTME: SampleWriter contract and container writer error taxonomy
package encode

import "fmt"

// SampleWriter writes samples into an uncompressed container
type SampleWriter interface {
	// WriteSample appends one interleaved sample
	WriteSample(sample int32) error

	// Finalize flushes pending samples, patches header sizes and closes the file
	Finalize() error

	// Close releases the writer; it is a no-op after Finalize
	Close() error
}

// ErrorKind classifies container writer failures
type ErrorKind int

const (
	// KindIO is a failure of the underlying file
	KindIO ErrorKind = iota + 1
	// KindUnsupported is a spec the container cannot represent
	KindUnsupported
	// KindTooWide is a sample outside the declared bit depth
	KindTooWide
	// KindUnfinishedFrame is a finalize with a partial frame pending
	KindUnfinishedFrame
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindUnsupported:
		return "unsupported"
	case KindTooWide:
		return "sample too wide"
	case KindUnfinishedFrame:
		return "unfinished frame"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by container writers for every failure
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
