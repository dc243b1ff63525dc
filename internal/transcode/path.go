// ABOUTME: Output path derivation for batch transcoding
// ABOUTME: Maps an input file into the destination directory with a .wav extension
package transcode

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Resonate-Protocol/flac2wav/pkg/audio/encode"
)

// OutputPath returns dir/<stem>.wav for input, where stem is the input's file
// name without its extension. It does not touch the filesystem.
func OutputPath(dir, input string) (string, error) {
	name, ok := fileName(input)
	if !ok {
		return "", &Error{Kind: KindPathNotFound, Path: input}
	}

	stem := name
	if ext := filepath.Ext(name); ext != name {
		stem = strings.TrimSuffix(name, ext)
	}

	out := filepath.Join(dir, stem+encode.WAVExtension)
	if !utf8.ValidString(out) {
		return "", &Error{Kind: KindInvalidPathEncoding, Path: out}
	}
	return out, nil
}

// fileName returns the final component of path, if it names a file
func fileName(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	name := filepath.Base(path)
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", false
	}
	if vol := filepath.VolumeName(path); vol != "" && strings.TrimLeft(path[len(vol):], `\/`) == "" {
		return "", false
	}
	return name, true
}
