// ABOUTME: FLAC fixture generation for tests
// ABOUTME: Encodes verbatim FLAC files from interleaved samples using mewkiz/flac
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// minBlockSize is the smallest block the decoder accepts in StreamInfo
const minBlockSize = 16

// FLACSpec describes a fixture stream
type FLACSpec struct {
	SampleRate    int
	Channels      int
	BitsPerSample int // 8, 12, 16, 20 or 24
	BlockSize     int // Defaults to 4096
}

// WriteFLAC encodes interleaved samples into a FLAC file at path.
// len(samples) must be a multiple of spec.Channels.
func WriteFLAC(t testing.TB, path string, spec FLACSpec, samples []int32) {
	t.Helper()

	blockSize := spec.BlockSize
	if blockSize == 0 {
		blockSize = 4096
	}
	nframes := len(samples) / spec.Channels
	// The encoder records the shortest block as BlockSizeMin, which must stay >= 16
	if blockSize < minBlockSize {
		t.Fatalf("fixture block size %d is below %d", blockSize, minBlockSize)
	}
	if last := nframes % blockSize; last != 0 && last < minBlockSize {
		t.Fatalf("fixture of %d frames in blocks of %d ends with a %d-frame block; need >= %d",
			nframes, blockSize, last, minBlockSize)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	info := &meta.StreamInfo{
		BlockSizeMin:  uint16(blockSize),
		BlockSizeMax:  uint16(blockSize),
		SampleRate:    uint32(spec.SampleRate),
		NChannels:     uint8(spec.Channels),
		BitsPerSample: uint8(spec.BitsPerSample),
		NSamples:      uint64(nframes),
	}
	enc, err := flac.NewEncoder(f, info)
	if err != nil {
		t.Fatalf("create FLAC encoder: %v", err)
	}

	var num uint64
	for start := 0; start < nframes; start += blockSize {
		n := min(blockSize, nframes-start)

		subframes := make([]*frame.Subframe, spec.Channels)
		for ch := range subframes {
			channel := make([]int32, n)
			for i := range channel {
				channel[i] = samples[(start+i)*spec.Channels+ch]
			}
			subframes[ch] = &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   channel,
				NSamples:  n,
			}
		}

		fr := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(n),
				SampleRate:        uint32(spec.SampleRate),
				Channels:          frame.Channels(spec.Channels - 1),
				BitsPerSample:     uint8(spec.BitsPerSample),
				Num:               num,
			},
			Subframes: subframes,
		}
		if err := enc.WriteFrame(fr); err != nil {
			t.Fatalf("write FLAC frame %d: %v", num, err)
		}
		num++
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("close FLAC encoder: %v", err)
	}
}

// Ramp returns frames*channels interleaved samples sweeping the signed range
// of bits, with each channel offset so channel order is observable.
func Ramp(channels, frames, bits int) []int32 {
	lo := int64(-1) << (bits - 1)
	span := int64(1) << bits

	samples := make([]int32, 0, channels*frames)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			v := (int64(i)*37 + int64(ch)*1009) % span
			samples = append(samples, int32(lo+v))
		}
	}
	return samples
}

// WriteFile writes data to path, creating parent directories
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
