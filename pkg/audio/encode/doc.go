// ABOUTME: Audio encoder package for writing uncompressed containers
// ABOUTME: Provides the SampleWriter interface and a WAV implementation
// Package encode writes decoded samples into uncompressed containers.
//
// Supports: WAV (RIFF/WAVE PCM, 8, 16, 24 and 32 bits per sample)
//
// Writers take one sample at a time in interleaved order and must be
// finalized so the container header carries the final sizes.
//
// Example:
//
//	w, err := encode.CreateWAV("out.wav", spec)
//	defer w.Close()
//	err = w.WriteSample(sample)
//	err = w.Finalize()
package encode
