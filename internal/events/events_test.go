package events

import "testing"

func TestQueue_HelpersSetKinds(t *testing.T) {
	q := NewQueue(16)
	q.Log("hello")
	q.Status("working")
	q.Progress(1, 3)
	q.Result("/in/a.mp4", true, "/out/a.mp3")
	q.Summary(3, 3, 2, 1, false)
	q.Close()

	var got []Event
	for e := range q.Events() {
		got = append(got, e)
	}
	if len(got) != 5 {
		t.Fatalf("got %d events, want 5", len(got))
	}

	if got[0].Kind != KindLog || got[0].Text != "hello" {
		t.Errorf("log event = %+v", got[0])
	}
	if got[1].Kind != KindStatus || got[1].Text != "working" {
		t.Errorf("status event = %+v", got[1])
	}
	if got[2].Kind != KindProgress || got[2].Done != 1 || got[2].Total != 3 {
		t.Errorf("progress event = %+v", got[2])
	}
	if got[3].Kind != KindResult || !got[3].Success || got[3].Message != "/out/a.mp3" {
		t.Errorf("result event = %+v", got[3])
	}
	if got[4].Kind != KindSummary || got[4].Succeeded != 2 || got[4].Failed != 1 || got[4].Cancelled {
		t.Errorf("summary event = %+v", got[4])
	}
}

func TestQueue_BufferAbsorbsBurst(t *testing.T) {
	q := NewQueue(8)
	// No consumer attached yet: the buffer must absorb the burst without
	// blocking the producer.
	for i := 0; i < 8; i++ {
		q.Progress(i+1, 8)
	}
	q.Close()

	n := 0
	for range q.Events() {
		n++
	}
	if n != 8 {
		t.Errorf("drained %d events, want 8", n)
	}
}

func TestNewQueue_MinimumSize(t *testing.T) {
	q := NewQueue(0)
	q.Log("fits")
	q.Close()
	if e := <-q.Events(); e.Text != "fits" {
		t.Errorf("event = %+v", e)
	}
}
