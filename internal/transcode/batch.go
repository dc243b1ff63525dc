// ABOUTME: Batch transcoding into a destination directory
// ABOUTME: Fail-fast state machine over an ordered list of input files
package transcode

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BatchState is the state of a Batch
type BatchState int

const (
	// BatchPending has not checked the destination directory yet
	BatchPending BatchState = iota
	// BatchRunning is about to transcode the input at Index
	BatchRunning
	// BatchSucceeded transcoded every input
	BatchSucceeded
	// BatchFailed stopped at the input at Index
	BatchFailed
)

func (s BatchState) String() string {
	switch s {
	case BatchPending:
		return "pending"
	case BatchRunning:
		return "running"
	case BatchSucceeded:
		return "succeeded"
	case BatchFailed:
		return "failed"
	default:
		return fmt.Sprintf("BatchState(%d)", int(s))
	}
}

// BatchError identifies the input a batch stopped at
type BatchError struct {
	Index int
	Input string
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Input, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// Batch transcodes inputs into dir one file at a time and stops at the first
// failure. Files already written are kept.
type Batch struct {
	tr     *Transcoder
	inputs []string
	dir    string

	state BatchState
	index int
	err   error
}

// NewBatch prepares a batch; nothing touches the filesystem until Step
func (t *Transcoder) NewBatch(inputs []string, dir string) *Batch {
	return &Batch{
		tr:     t,
		inputs: inputs,
		dir:    dir,
	}
}

// State returns the current state
func (b *Batch) State() BatchState { return b.state }

// Index returns the position of the next input, or of the failed one
func (b *Batch) Index() int { return b.index }

// Err returns the terminal error of a failed batch
func (b *Batch) Err() error { return b.err }

// Step performs one transition. It returns the report of the file it
// transcoded and true, or false once the batch is terminal.
func (b *Batch) Step() (Report, bool) {
	if b.state == BatchPending {
		if err := ensureDir(b.dir); err != nil {
			b.fail(err)
			return Report{}, false
		}
		b.state = BatchRunning
	}

	if b.state != BatchRunning {
		return Report{}, false
	}
	if b.index >= len(b.inputs) {
		b.state = BatchSucceeded
		return Report{}, false
	}

	input := b.inputs[b.index]
	output, err := OutputPath(b.dir, input)
	if err != nil {
		b.fail(&BatchError{Index: b.index, Input: input, Err: err})
		return Report{}, false
	}

	report, err := b.tr.File(input, output)
	if err != nil {
		b.fail(&BatchError{Index: b.index, Input: input, Err: err})
		return Report{}, false
	}

	b.index++
	if b.index == len(b.inputs) {
		b.state = BatchSucceeded
	}
	return report, true
}

// Run steps the batch to completion, passing each report to fn as soon as the
// file is finalized
func (b *Batch) Run(fn func(Report)) error {
	for {
		report, ok := b.Step()
		if !ok {
			return b.err
		}
		if fn != nil {
			fn(report)
		}
	}
}

func (b *Batch) fail(err error) {
	b.state = BatchFailed
	b.err = err
}

// All transcodes every input into dir, reporting each success to fn
func (t *Transcoder) All(inputs []string, dir string, fn func(Report)) error {
	return t.NewBatch(inputs, dir).Run(fn)
}

// ensureDir creates dir if it does not exist. Parents are not created.
func ensureDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: KindDirectoryCreateFailed, Path: dir, Err: err}
	}
	if err := os.Mkdir(dir, 0o755); err != nil {
		return &Error{Kind: KindDirectoryCreateFailed, Path: dir, Err: err}
	}
	return nil
}
