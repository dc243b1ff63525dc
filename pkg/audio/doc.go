// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines StreamInfo, OutputSpec and the sample width selection
// Package audio provides the types shared by the decode and encode halves of
// the transcoding pipeline.
//
//   - StreamInfo: the format header read from a compressed stream
//   - OutputSpec: the same header narrowed to container field widths
//   - SampleWidth: the integer width samples are carried at (int8, int16, int32)
//
// Example:
//
//	info := stream.Info()
//	spec := info.OutputSpec()
//	switch audio.WidthFor(info.BitsPerSample) {
//	case audio.Narrow:
//	    // iterate int8 samples
//	}
package audio
