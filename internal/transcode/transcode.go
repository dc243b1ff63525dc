// ABOUTME: Single-file FLAC to WAV transcoder
// ABOUTME: Opens a stream, dispatches sample width once and streams samples to the writer
package transcode

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"

	"github.com/Resonate-Protocol/flac2wav/internal/logging"
	"github.com/Resonate-Protocol/flac2wav/pkg/audio"
	"github.com/Resonate-Protocol/flac2wav/pkg/audio/decode"
	"github.com/Resonate-Protocol/flac2wav/pkg/audio/encode"
	"github.com/dustin/go-humanize"
)

// progressInterval is how many samples pass between observer updates
const progressInterval = 16384

// OpenFunc opens a compressed audio stream
type OpenFunc func(path string) (decode.Stream, error)

// CreateFunc creates a container writer for spec
type CreateFunc func(path string, spec audio.OutputSpec) (encode.SampleWriter, error)

// Observer receives per-file progress. Calls happen on the transcoding goroutine.
type Observer interface {
	FileStarted(input string, info audio.StreamInfo)
	SamplesWritten(n int)
	FileFinished(report Report, err error)
}

// Report describes one completed transcode
type Report struct {
	Input   string
	Output  string
	Info    audio.StreamInfo
	Width   audio.SampleWidth
	Samples uint64 // Interleaved samples written
	Bytes   int64  // Output file size
}

// Transcoder converts FLAC files to WAV files
type Transcoder struct {
	open      OpenFunc
	create    CreateFunc
	logger    *slog.Logger
	observer  Observer
	overwrite bool
}

// Option configures a Transcoder
type Option func(*Transcoder)

// WithOpener replaces the stream opener
func WithOpener(open OpenFunc) Option {
	return func(t *Transcoder) { t.open = open }
}

// WithCreator replaces the writer constructor
func WithCreator(create CreateFunc) Option {
	return func(t *Transcoder) { t.create = create }
}

// WithLogger sets the logger used for per-file diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transcoder) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithObserver registers a progress observer
func WithObserver(o Observer) Option {
	return func(t *Transcoder) { t.observer = o }
}

// WithOverwrite controls whether existing output files are replaced
func WithOverwrite(overwrite bool) Option {
	return func(t *Transcoder) { t.overwrite = overwrite }
}

// New creates a Transcoder reading FLAC and writing WAV
func New(opts ...Option) *Transcoder {
	t := &Transcoder{
		open: func(path string) (decode.Stream, error) {
			return decode.OpenFLAC(path)
		},
		create: func(path string, spec audio.OutputSpec) (encode.SampleWriter, error) {
			return encode.CreateWAV(path, spec)
		},
		logger:    logging.Discard(),
		overwrite: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// File transcodes input into output. Nothing is created at output unless the
// source opened successfully. The transcode only succeeds once the writer is
// finalized.
func (t *Transcoder) File(input, output string) (report Report, err error) {
	report = Report{Input: input, Output: output}
	if t.observer != nil {
		defer func() { t.observer.FileFinished(report, err) }()
	}

	src, err := t.open(input)
	if err != nil {
		return report, FromDecode(input, err)
	}
	defer src.Close()

	info := src.Info()
	spec := info.OutputSpec()
	report.Info = info
	report.Width = info.Width()

	if !t.overwrite {
		if _, statErr := os.Stat(output); statErr == nil {
			return report, &Error{Kind: KindDestinationUnwritable, Path: output, Err: fs.ErrExist}
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return report, &Error{Kind: KindDestinationUnwritable, Path: output, Err: statErr}
		}
	}

	dst, err := t.create(output, spec)
	if err != nil {
		return report, FromEncode(output, err)
	}
	defer dst.Close()

	t.logger.Debug("transcoding",
		"input", input,
		"output", output,
		"channels", info.Channels,
		"sample_rate", info.SampleRate,
		"bits_per_sample", info.BitsPerSample,
		"width", report.Width.String())
	if t.observer != nil {
		t.observer.FileStarted(input, info)
	}

	c := copier{input: input, output: output, dst: dst, observer: t.observer}
	switch report.Width {
	case audio.Narrow:
		err = copySamples(&c, decode.Samples[int8](src))
	case audio.Medium:
		err = copySamples(&c, decode.Samples[int16](src))
	default:
		err = copySamples(&c, decode.Samples[int32](src))
	}
	report.Samples = c.written
	if err != nil {
		return report, err
	}

	if err := dst.Finalize(); err != nil {
		return report, FromEncode(output, err)
	}

	if fi, statErr := os.Stat(output); statErr == nil {
		report.Bytes = fi.Size()
	}
	t.logger.Debug("transcoded",
		"input", input,
		"output", output,
		"samples", report.Samples,
		"size", humanize.Bytes(uint64(max(report.Bytes, 0))))

	return report, nil
}

// copier carries the per-file write state shared by every sample width
type copier struct {
	input    string
	output   string
	dst      encode.SampleWriter
	observer Observer
	written  uint64
	pending  int
}

// copySamples writes seq to the destination in order, stopping at the first failure
func copySamples[T audio.Sample](c *copier, seq iter.Seq2[T, error]) error {
	defer c.flushProgress()

	for sample, err := range seq {
		if err != nil {
			return FromDecode(c.input, err)
		}
		if err := c.dst.WriteSample(int32(sample)); err != nil {
			return FromEncode(c.output, err)
		}
		c.written++
		c.pending++
		if c.pending == progressInterval {
			c.flushProgress()
		}
	}
	return nil
}

func (c *copier) flushProgress() {
	if c.observer != nil && c.pending > 0 {
		c.observer.SamplesWritten(c.pending)
	}
	c.pending = 0
}

func (r Report) String() string {
	return fmt.Sprintf("%s -> %s", r.Input, r.Output)
}
