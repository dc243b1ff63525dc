// ABOUTME: FLAC audio decoder
// ABOUTME: Streams interleaved FLAC samples frame by frame using mewkiz/flac
package decode

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/flac2wav/pkg/audio"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// FLACStream decodes a FLAC file one frame at a time
type FLACStream struct {
	stream *flac.Stream
	info   audio.StreamInfo

	// Current frame and read position within it
	frame *frame.Frame
	pos   int
	done  bool

	// Inter-channel samples in frames parsed so far
	decoded uint64
}

// OpenFLAC opens the FLAC file at path and reads its StreamInfo block
func OpenFLAC(path string) (*FLACStream, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return nil, classify("open FLAC file", err)
	}

	info := audio.StreamInfo{
		Channels:      int(stream.Info.NChannels),
		SampleRate:    int(stream.Info.SampleRate),
		BitsPerSample: int(stream.Info.BitsPerSample),
		TotalSamples:  stream.Info.NSamples,
	}
	if info.Channels == 0 || info.BitsPerSample == 0 || info.BitsPerSample > 32 {
		stream.Close()
		return nil, &Error{
			Kind: KindUnsupported,
			Op:   "open FLAC file",
			Err:  fmt.Errorf("unsupported stream format: %d channels, %d bits per sample", info.Channels, info.BitsPerSample),
		}
	}

	return &FLACStream{
		stream: stream,
		info:   info,
	}, nil
}

// Info returns the stream header
func (s *FLACStream) Info() audio.StreamInfo {
	return s.info
}

// Next returns the next interleaved sample
func (s *FLACStream) Next() (int32, error) {
	for s.frame == nil || s.pos >= s.frameLen() {
		if s.done {
			return 0, io.EOF
		}
		f, err := s.stream.ParseNext()
		if err == io.EOF {
			s.done = true
			if total := s.info.TotalSamples; total != 0 && s.decoded != total {
				return 0, &Error{
					Kind: KindFormat,
					Op:   "parse FLAC frame",
					Err:  fmt.Errorf("stream ended after %d of %d samples: %w", s.decoded, total, io.ErrUnexpectedEOF),
				}
			}
			return 0, io.EOF
		}
		if err != nil {
			return 0, classify("parse FLAC frame", err)
		}
		if len(f.Subframes) != s.info.Channels {
			return 0, &Error{
				Kind: KindFormat,
				Op:   "parse FLAC frame",
				Err:  fmt.Errorf("frame %d has %d subframes, stream declares %d channels", f.Num, len(f.Subframes), s.info.Channels),
			}
		}
		s.frame = f
		s.pos = 0
		s.decoded += uint64(f.BlockSize)
	}

	// Samples are stored per channel; interleave on the way out
	i := s.pos / s.info.Channels
	ch := s.pos % s.info.Channels
	s.pos++
	return s.frame.Subframes[ch].Samples[i], nil
}

func (s *FLACStream) frameLen() int {
	return int(s.frame.BlockSize) * s.info.Channels
}

// Close releases the underlying file
func (s *FLACStream) Close() error {
	if s.stream == nil {
		return nil
	}
	err := s.stream.Close()
	s.stream = nil
	return err
}
