// Package pipeline orchestrates file discovery, the bounded worker pool,
// per-file processing, and batch summary reporting.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/backmassage/trackpull/internal/config"
	"github.com/backmassage/trackpull/internal/events"
	"github.com/backmassage/trackpull/internal/ffmpeg"
	"github.com/backmassage/trackpull/internal/naming"
	"github.com/backmassage/trackpull/internal/probe"
)

// cancelledMessage is the diagnostic attached to tasks skipped by a
// cooperative cancel.
const cancelledMessage = "Cancelled"

// TaskResult is the outcome of one input file: the output path on success,
// an error or diagnostic string otherwise. Exactly one is produced per file.
type TaskResult struct {
	Source  string
	Success bool
	Message string
}

// Batch owns the state of one extraction run: the immutable job, the
// discovered files, the event queue, and the cancellation flag. A Batch is
// single-use; create a new one per run.
type Batch struct {
	job       *config.Job
	files     []string
	queue     *events.Queue
	cancelled atomic.Bool

	// Seams for tests; production values are set by New.
	execFn   func(args []string) ffmpeg.ExecResult
	detectFn func(file, selector string) (string, bool)
}

// New prepares a batch over the given files. The queue receives progress,
// result, status, and summary events during Run.
func New(job *config.Job, files []string, queue *events.Queue) *Batch {
	return &Batch{
		job:      job,
		files:    files,
		queue:    queue,
		execFn:   ffmpeg.Execute,
		detectFn: probe.DetectAudioCodec,
	}
}

// Cancel requests a cooperative stop. Tasks that have not started yet will
// report a cancellation failure instead of doing work; ffmpeg processes
// already running are left to finish. Safe to call from any goroutine, any
// number of times.
func (b *Batch) Cancel() {
	b.cancelled.Store(true)
}

// Run executes the batch: one task per file across a fixed pool of
// max(1, job.Workers) workers. Results are collected in completion order,
// counters updated by this single goroutine, and events emitted per
// completion plus one terminal summary. Run blocks until every submitted
// task has produced its result, cancelled or not, so exactly len(files)
// results are always accounted for.
func (b *Batch) Run() RunStats {
	stats := RunStats{
		RunID: uuid.NewString(),
		Total: len(b.files),
	}

	workers := b.job.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make(chan TaskResult)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for src := range jobs {
				results <- b.processOne(src)
			}
		}()
	}

	go func() {
		for _, f := range b.files {
			jobs <- f
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	for res := range results {
		stats.Done++
		if res.Success {
			stats.Succeeded++
			if fi, err := os.Stat(res.Message); err == nil {
				stats.TotalOutputBytes += fi.Size()
			}
		} else {
			stats.Failed++
		}

		b.queue.Result(res.Source, res.Success, res.Message)
		b.queue.Progress(stats.Done, stats.Total)
		b.queue.Status(fmt.Sprintf("Processing: %d/%d | OK: %d | Failed: %d",
			stats.Done, stats.Total, stats.Succeeded, stats.Failed))
	}

	stats.Cancelled = b.cancelled.Load()
	if stats.Cancelled {
		b.queue.Status(fmt.Sprintf("Cancelled. OK: %d, Failed: %d", stats.Succeeded, stats.Failed))
	} else {
		b.queue.Status(fmt.Sprintf("Done. OK: %d, Failed: %d", stats.Succeeded, stats.Failed))
	}
	b.queue.Summary(stats.Done, stats.Total, stats.Succeeded, stats.Failed, stats.Cancelled)
	return stats
}

// processOne handles a single file: cancel check → (copy mode: codec
// detection) → output path → command build → synchronous ffmpeg run.
// Every fault is converted to a failed TaskResult at this boundary;
// nothing escapes to crash the batch.
func (b *Batch) processOne(src string) (res TaskResult) {
	defer func() {
		if r := recover(); r != nil {
			res = TaskResult{Source: src, Success: false, Message: fmt.Sprint(r)}
		}
	}()

	if b.cancelled.Load() {
		return TaskResult{Source: src, Success: false, Message: cancelledMessage}
	}

	// Copy mode needs the source codec to pick the container extension.
	// Detection failure is not fatal: the default extension applies.
	codec := ""
	if b.job.Mode == config.ModeCopy {
		if c, ok := b.detectFn(src, b.job.Selector.String()); ok {
			codec = c
		}
	}

	ext := naming.ExtensionFor(b.job.Mode, codec)
	dst, err := naming.OutputPath(src, b.job.InputDir, b.job.OutputDir, b.job.PreserveTree, ext)
	if err != nil {
		return TaskResult{Source: src, Success: false, Message: err.Error()}
	}
	if err := naming.EnsureParentDir(dst); err != nil {
		return TaskResult{Source: src, Success: false, Message: err.Error()}
	}

	args := ffmpeg.Build(b.job, src, dst)
	r := b.execFn(args)
	if r.Err != nil {
		msg := strings.TrimSpace(r.Stderr)
		if msg == "" {
			msg = r.Err.Error()
		}
		return TaskResult{Source: src, Success: false, Message: msg}
	}
	return TaskResult{Source: src, Success: true, Message: dst}
}

// FormatResultLine renders a per-file result the way the log expects it:
// "[OK] name -> dst" or "[FAIL] name :: msg".
func FormatResultLine(res TaskResult) string {
	base := filepath.Base(res.Source)
	if res.Success {
		return fmt.Sprintf("[OK] %s -> %s", base, res.Message)
	}
	return fmt.Sprintf("[FAIL] %s :: %s", base, res.Message)
}
