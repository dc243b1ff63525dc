// ABOUTME: Decoder interface definition
// ABOUTME: Stream contract, decode error taxonomy and lazy sample sequences
package decode

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"syscall"

	"github.com/Resonate-Protocol/flac2wav/pkg/audio"
)

// Stream is an opened compressed audio stream
type Stream interface {
	// Info returns the stream header read at open time
	Info() audio.StreamInfo

	// Next returns the next interleaved sample, or io.EOF after the last one
	Next() (int32, error)

	// Close releases stream resources
	Close() error
}

// ErrorKind classifies decoder failures
type ErrorKind int

const (
	// KindIO is a failure of the underlying reader
	KindIO ErrorKind = iota + 1
	// KindFormat is a malformed or unrecognised bitstream
	KindFormat
	// KindUnsupported is a valid stream using a feature the decoder lacks
	KindUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by decoders for every failure
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classify wraps err with the kind its cause implies. Only OS-level failures
// are I/O; a stream that ends early is malformed, whatever byte it stopped at.
func classify(op string, err error) error {
	var decErr *Error
	if errors.As(err, &decErr) {
		return err
	}

	var pathErr *fs.PathError
	var errno syscall.Errno
	if errors.As(err, &pathErr) || errors.As(err, &errno) {
		return &Error{Kind: KindIO, Op: op, Err: err}
	}
	return &Error{Kind: KindFormat, Op: op, Err: err}
}

// Samples returns a single-pass sequence of samples converted to T.
// The sequence ends after io.EOF; any other error is yielded once and ends it.
func Samples[T audio.Sample](s Stream) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err := s.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(0, err)
				return
			}
			if !yield(T(v), nil) {
				return
			}
		}
	}
}
