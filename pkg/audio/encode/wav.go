// ABOUTME: WAV container writer
// ABOUTME: Buffers interleaved samples and encodes them with go-audio/wav
package encode

import (
	"errors"
	"fmt"
	"os"

	"github.com/Resonate-Protocol/flac2wav/pkg/audio"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// WAVExtension is the canonical file extension for WAV output
	WAVExtension = ".wav"

	// wavFormatPCM is the WAVE_FORMAT_PCM format tag
	wavFormatPCM = 1

	// Frames buffered before handing samples to the encoder
	wavBufferFrames = 4096
)

// WAVWriter writes samples to a WAV file
type WAVWriter struct {
	path    string
	file    *os.File
	encoder *wav.Encoder
	spec    audio.OutputSpec

	buf    *goaudio.IntBuffer
	lo, hi int32
	offset int // 8-bit WAV samples are unsigned

	samples uint64
	closed  bool
}

// CreateWAV creates or truncates the file at path and writes a WAV header for spec
func CreateWAV(path string, spec audio.OutputSpec) (*WAVWriter, error) {
	switch {
	case spec.Channels == 0:
		return nil, &Error{Kind: KindUnsupported, Op: "create WAV file", Path: path, Err: errors.New("zero channels")}
	case spec.BitsPerSample%8 != 0 || spec.BitsPerSample == 0 || spec.BitsPerSample > 32:
		return nil, &Error{
			Kind: KindUnsupported,
			Op:   "create WAV file",
			Path: path,
			Err:  fmt.Errorf("unsupported bit depth: %d (supported: 8, 16, 24, 32)", spec.BitsPerSample),
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "create WAV file", Path: path, Err: err}
	}

	channels := int(spec.Channels)
	bits := int(spec.BitsPerSample)
	lo, hi := audio.SampleRange(bits)

	w := &WAVWriter{
		path:    path,
		file:    f,
		encoder: wav.NewEncoder(f, int(spec.SampleRate), bits, channels, wavFormatPCM),
		spec:    spec,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: int(spec.SampleRate)},
			Data:           make([]int, 0, wavBufferFrames*channels),
			SourceBitDepth: bits,
		},
		lo: lo,
		hi: hi,
	}
	if bits == 8 {
		w.offset = 128
	}

	// Emit the header now so an empty stream still produces a valid file
	if err := w.encoder.Write(w.buf); err != nil {
		f.Close()
		return nil, &Error{Kind: KindIO, Op: "write WAV header", Path: path, Err: err}
	}

	return w, nil
}

// WriteSample appends one interleaved sample
func (w *WAVWriter) WriteSample(sample int32) error {
	if w.closed {
		return &Error{Kind: KindIO, Op: "write sample", Path: w.path, Err: os.ErrClosed}
	}
	if sample < w.lo || sample > w.hi {
		return &Error{
			Kind: KindTooWide,
			Op:   "write sample",
			Path: w.path,
			Err:  fmt.Errorf("sample %d does not fit in %d bits", sample, w.spec.BitsPerSample),
		}
	}

	w.buf.Data = append(w.buf.Data, int(sample)+w.offset)
	w.samples++
	if len(w.buf.Data) == cap(w.buf.Data) {
		return w.flush()
	}
	return nil
}

// Samples returns the number of samples accepted so far
func (w *WAVWriter) Samples() uint64 {
	return w.samples
}

// flush hands buffered samples to the encoder; the buffer always holds whole frames
func (w *WAVWriter) flush() error {
	if len(w.buf.Data) == 0 {
		return nil
	}
	if err := w.encoder.Write(w.buf); err != nil {
		return &Error{Kind: KindIO, Op: "write samples", Path: w.path, Err: err}
	}
	w.buf.Data = w.buf.Data[:0]
	return nil
}

// Finalize flushes pending samples, patches the RIFF and data sizes and closes the file
func (w *WAVWriter) Finalize() error {
	if w.closed {
		return nil
	}
	if pending := len(w.buf.Data) % int(w.spec.Channels); pending != 0 {
		return &Error{
			Kind: KindUnfinishedFrame,
			Op:   "finalize WAV file",
			Path: w.path,
			Err:  fmt.Errorf("%d of %d samples written for the last frame", pending, w.spec.Channels),
		}
	}
	if err := w.flush(); err != nil {
		return err
	}
	if err := w.encoder.Close(); err != nil {
		return &Error{Kind: KindIO, Op: "finalize WAV file", Path: w.path, Err: err}
	}

	w.closed = true
	if err := w.file.Close(); err != nil {
		return &Error{Kind: KindIO, Op: "close WAV file", Path: w.path, Err: err}
	}
	return nil
}

// Close releases the file. Complete frames still buffered are dropped; the
// header is patched to describe what already reached the file.
func (w *WAVWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	encErr := w.encoder.Close()
	closeErr := w.file.Close()
	if encErr != nil {
		return &Error{Kind: KindIO, Op: "close WAV file", Path: w.path, Err: encErr}
	}
	if closeErr != nil {
		return &Error{Kind: KindIO, Op: "close WAV file", Path: w.path, Err: closeErr}
	}
	return nil
}
