// ABOUTME: Tests for error translation
// ABOUTME: Checks the I/O versus everything-else split and writer error mapping
package transcode

import (
	"errors"
	"io/fs"
	"strings"
	"syscall"
	"testing"

	"github.com/Resonate-Protocol/flac2wav/pkg/audio/decode"
	"github.com/Resonate-Protocol/flac2wav/pkg/audio/encode"
)

func TestFromDecode(t *testing.T) {
	osErr := &fs.PathError{Op: "open", Path: "a.flac", Err: syscall.ENOENT}

	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"io", &decode.Error{Kind: decode.KindIO, Op: "open", Err: osErr}, KindSourceUnreadable},
		{"format", &decode.Error{Kind: decode.KindFormat, Op: "parse", Err: errors.New("bad sync code")}, KindUnsupportedSource},
		{"unsupported", &decode.Error{Kind: decode.KindUnsupported, Op: "open", Err: errors.New("9 channels")}, KindUnsupportedSource},
		{"foreign", errors.New("something else"), KindUnsupportedSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromDecode("a.flac", tt.err)
			if KindOf(err) != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, KindOf(err))
			}
		})
	}
}

func TestFromDecode_PreservesOSError(t *testing.T) {
	osErr := &fs.PathError{Op: "open", Path: "a.flac", Err: syscall.EACCES}
	err := FromDecode("a.flac", &decode.Error{Kind: decode.KindIO, Op: "open FLAC file", Err: osErr})

	if !errors.Is(err, syscall.EACCES) {
		t.Errorf("expected EACCES to be reachable, got %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected fs.ErrPermission to be reachable, got %v", err)
	}
}

func TestFromEncode(t *testing.T) {
	kinds := []encode.ErrorKind{encode.KindIO, encode.KindUnsupported, encode.KindTooWide, encode.KindUnfinishedFrame}

	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			encErr := &encode.Error{Kind: kind, Op: "write sample", Path: "out.wav", Err: errors.New("boom")}
			err := FromEncode("out.wav", encErr)
			if KindOf(err) != KindDestinationUnwritable {
				t.Errorf("expected %v, got %v", KindDestinationUnwritable, KindOf(err))
			}
			if !errors.Is(err, encErr) {
				t.Error("expected writer error to be reachable")
			}
			if strings.Count(err.Error(), "out.wav") != 1 {
				t.Errorf("expected path once in %q", err.Error())
			}
		})
	}
}

func TestTranslators_PassThrough(t *testing.T) {
	original := &Error{Kind: KindPathNotFound, Path: "/"}

	if FromDecode("x", original) != original {
		t.Error("FromDecode should return pipeline errors unchanged")
	}
	if FromEncode("x", original) != original {
		t.Error("FromEncode should return pipeline errors unchanged")
	}
	if FromDecode("x", nil) != nil || FromEncode("x", nil) != nil {
		t.Error("nil errors should stay nil")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err      *Error
		expected string
	}{
		{&Error{Kind: KindPathNotFound}, "no file name found"},
		{&Error{Kind: KindInvalidPathEncoding, Path: "out/x.wav"}, "invalid unicode in file path: out/x.wav"},
		{&Error{Kind: KindDirectoryCreateFailed, Path: "out", Err: fs.ErrPermission}, "cannot create directory: out: permission denied"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := &BatchError{Index: 2, Input: "c.flac", Err: &Error{Kind: KindSourceUnreadable}}
	if KindOf(err) != KindSourceUnreadable {
		t.Errorf("expected %v, got %v", KindSourceUnreadable, KindOf(err))
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("expected zero Kind for foreign errors")
	}
}
