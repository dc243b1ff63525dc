// ABOUTME: Audio decoder package for compressed audio streams
// ABOUTME: Provides the Stream interface, a FLAC implementation and sample sequences
// Package decode reads compressed audio streams.
//
// A Stream exposes its header through Info and yields interleaved samples
// through Next. Samples adapts a Stream into a lazy iterator at a caller
// selected integer width.
//
// All decoder failures are reported as *Error, classified as I/O, format or
// unsupported.
//
// Example:
//
//	stream, err := decode.OpenFLAC("track.flac")
//	defer stream.Close()
//	for sample, err := range decode.Samples[int16](stream) {
//	    ...
//	}
package decode
