// Package events carries batch progress out of the dispatcher. The
// dispatcher publishes onto a buffered queue; an independent consumer
// (the CLI today, any UI tomorrow) drains it on its own goroutine, so the
// producer is decoupled from consumer scheduling.
package events

// Kind discriminates the event variants.
type Kind string

const (
	KindLog      Kind = "log"      // Free-text log line.
	KindStatus   Kind = "status"   // One-line status text, replaces the previous one.
	KindProgress Kind = "progress" // Done/Total counts.
	KindResult   Kind = "result"   // Per-file outcome.
	KindSummary  Kind = "summary"  // Terminal batch summary.
)

// Event is the single wire type for all kinds; unused fields are zero.
type Event struct {
	Kind Kind

	// KindLog, KindStatus.
	Text string

	// KindProgress, KindSummary.
	Done  int
	Total int

	// KindResult: Message is the output path on success, a diagnostic
	// otherwise.
	Source  string
	Success bool
	Message string

	// KindSummary.
	Succeeded int
	Failed    int
	Cancelled bool
}

// Queue is a buffered event channel. The buffer absorbs bursts so the
// dispatcher does not block on a live consumer; a consumer that stops
// draining entirely will eventually exert backpressure.
type Queue struct {
	ch chan Event
}

// NewQueue returns a queue with the given buffer size (minimum 1).
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan Event, size)}
}

// Events returns the receive side for the consumer.
func (q *Queue) Events() <-chan Event { return q.ch }

// Close signals the consumer that no more events will arrive. Only the
// producer may call it, after the batch has fully finished.
func (q *Queue) Close() { close(q.ch) }

// Publish enqueues an event.
func (q *Queue) Publish(e Event) { q.ch <- e }

// Log publishes a free-text log line.
func (q *Queue) Log(text string) {
	q.Publish(Event{Kind: KindLog, Text: text})
}

// Status publishes a status-line update.
func (q *Queue) Status(text string) {
	q.Publish(Event{Kind: KindStatus, Text: text})
}

// Progress publishes completion counts.
func (q *Queue) Progress(done, total int) {
	q.Publish(Event{Kind: KindProgress, Done: done, Total: total})
}

// Result publishes one file's outcome.
func (q *Queue) Result(source string, success bool, message string) {
	q.Publish(Event{Kind: KindResult, Source: source, Success: success, Message: message})
}

// Summary publishes the terminal batch summary.
func (q *Queue) Summary(done, total, succeeded, failed int, cancelled bool) {
	q.Publish(Event{
		Kind:      KindSummary,
		Done:      done,
		Total:     total,
		Succeeded: succeeded,
		Failed:    failed,
		Cancelled: cancelled,
	})
}
