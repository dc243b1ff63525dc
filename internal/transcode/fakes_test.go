// ABOUTME: Test doubles for the transcode pipeline
// ABOUTME: In-memory streams and writers recording how the pipeline drives them
package transcode

import (
	"io"

	"github.com/Resonate-Protocol/flac2wav/pkg/audio"
	"github.com/Resonate-Protocol/flac2wav/pkg/audio/decode"
	"github.com/Resonate-Protocol/flac2wav/pkg/audio/encode"
)

type fakeStream struct {
	info    audio.StreamInfo
	samples []int32
	pos     int
	failAt  int // -1 disables
	failErr error
	closed  bool
}

func newFakeStream(info audio.StreamInfo, samples ...int32) *fakeStream {
	return &fakeStream{info: info, samples: samples, failAt: -1}
}

func (s *fakeStream) Info() audio.StreamInfo { return s.info }

func (s *fakeStream) Next() (int32, error) {
	if s.pos == s.failAt {
		return 0, s.failErr
	}
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}
	v := s.samples[s.pos]
	s.pos++
	return v, nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeWriter struct {
	path        string
	spec        audio.OutputSpec
	samples     []int32
	failWriteAt int // -1 disables
	writeErr    error
	finalizeErr error
	finalized   bool
	closed      bool
}

func (w *fakeWriter) WriteSample(s int32) error {
	if len(w.samples) == w.failWriteAt {
		return w.writeErr
	}
	w.samples = append(w.samples, s)
	return nil
}

func (w *fakeWriter) Finalize() error {
	if w.finalizeErr != nil {
		return w.finalizeErr
	}
	w.finalized = true
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

// fakeEnv wires fake streams and writers into a Transcoder
type fakeEnv struct {
	streams   map[string]*fakeStream
	openErrs  map[string]error
	opened    []string
	writers   []*fakeWriter
	createErr error
	configure func(*fakeWriter)
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		streams:  make(map[string]*fakeStream),
		openErrs: make(map[string]error),
	}
}

func (e *fakeEnv) open(path string) (decode.Stream, error) {
	e.opened = append(e.opened, path)
	if err, ok := e.openErrs[path]; ok {
		return nil, err
	}
	s, ok := e.streams[path]
	if !ok {
		return nil, &decode.Error{Kind: decode.KindIO, Op: "open", Err: io.ErrUnexpectedEOF}
	}
	return s, nil
}

func (e *fakeEnv) create(path string, spec audio.OutputSpec) (encode.SampleWriter, error) {
	if e.createErr != nil {
		return nil, e.createErr
	}
	w := &fakeWriter{path: path, spec: spec, failWriteAt: -1}
	if e.configure != nil {
		e.configure(w)
	}
	e.writers = append(e.writers, w)
	return w, nil
}

func (e *fakeEnv) transcoder(opts ...Option) *Transcoder {
	return New(append([]Option{WithOpener(e.open), WithCreator(e.create)}, opts...)...)
}

type recordingObserver struct {
	started  []string
	written  int
	finished []Report
	errs     []error
}

func (o *recordingObserver) FileStarted(input string, _ audio.StreamInfo) {
	o.started = append(o.started, input)
}

func (o *recordingObserver) SamplesWritten(n int) { o.written += n }

func (o *recordingObserver) FileFinished(r Report, err error) {
	o.finished = append(o.finished, r)
	o.errs = append(o.errs, err)
}
