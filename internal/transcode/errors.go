// ABOUTME: Unified transcode error taxonomy
// ABOUTME: Translates decoder and container writer errors into one Kind enumeration
package transcode

import (
	"errors"
	"fmt"

	"github.com/Resonate-Protocol/flac2wav/pkg/audio/decode"
	"github.com/Resonate-Protocol/flac2wav/pkg/audio/encode"
)

// Kind classifies a transcode failure
type Kind int

const (
	KindSourceUnreadable Kind = iota + 1
	KindDestinationUnwritable
	KindUnsupportedSource
	KindPathNotFound
	KindInvalidPathEncoding
	KindDirectoryCreateFailed
)

func (k Kind) String() string {
	switch k {
	case KindSourceUnreadable:
		return "source unreadable"
	case KindDestinationUnwritable:
		return "destination unwritable"
	case KindUnsupportedSource:
		return "unsupported source"
	case KindPathNotFound:
		return "no file name found"
	case KindInvalidPathEncoding:
		return "invalid unicode in file path"
	case KindDirectoryCreateFailed:
		return "cannot create directory"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error type surfaced by the pipeline
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path == "" && e.Err == nil:
		return e.Kind.String()
	case e.Path == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or 0
func KindOf(err error) Kind {
	var tErr *Error
	if errors.As(err, &tErr) {
		return tErr.Kind
	}
	return 0
}

// FromDecode maps a decoder failure onto the pipeline taxonomy.
// I/O failures keep their OS error; everything else is an unsupported source.
func FromDecode(path string, err error) error {
	if err == nil {
		return nil
	}
	var tErr *Error
	if errors.As(err, &tErr) {
		return err
	}

	var decErr *decode.Error
	if errors.As(err, &decErr) && decErr.Kind == decode.KindIO {
		return &Error{Kind: KindSourceUnreadable, Path: path, Err: decErr.Err}
	}
	return &Error{Kind: KindUnsupportedSource, Path: path, Err: err}
}

// FromEncode maps a container writer failure onto the pipeline taxonomy
func FromEncode(path string, err error) error {
	if err == nil {
		return nil
	}
	var tErr *Error
	if errors.As(err, &tErr) {
		return err
	}

	// The writer error already names the path
	var encErr *encode.Error
	if errors.As(err, &encErr) && encErr.Path != "" {
		path = ""
	}
	return &Error{Kind: KindDestinationUnwritable, Path: path, Err: err}
}
