// ABOUTME: Terminal progress bar for transcodes
// ABOUTME: Adapts transcode observer callbacks onto a per-file progressbar
package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/Resonate-Protocol/flac2wav/internal/transcode"
	"github.com/Resonate-Protocol/flac2wav/pkg/audio"
)

type progressObserver struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newProgressObserver(w io.Writer) *progressObserver {
	return &progressObserver{w: w}
}

func (p *progressObserver) FileStarted(input string, info audio.StreamInfo) {
	total := int64(-1) // spinner when the stream length is unknown
	if info.TotalSamples > 0 {
		total = int64(info.TotalSamples) * int64(info.Channels)
	}
	p.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(filepath.Base(input)),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *progressObserver) SamplesWritten(n int) {
	if p.bar != nil {
		_ = p.bar.Add(n)
	}
}

func (p *progressObserver) FileFinished(report transcode.Report, err error) {
	if p.bar == nil {
		return
	}
	if err != nil {
		_ = p.bar.Clear()
	} else {
		p.bar.Describe(fmt.Sprintf("%s (%s)", filepath.Base(report.Output), humanize.Bytes(uint64(max(report.Bytes, 0)))))
		_ = p.bar.Finish()
	}
	p.bar = nil
}
