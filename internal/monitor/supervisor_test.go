// internal/monitor/supervisor_test.go
package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/scanctl/internal/status"
)

type recordingWriter struct {
	mu    sync.Mutex
	snaps []status.Snapshot
}

func (w *recordingWriter) WriteStatus(s status.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.snaps = append(w.snaps, s)
	return nil
}

func (w *recordingWriter) all() []status.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]status.Snapshot(nil), w.snaps...)
}

func runSupervisor(t *testing.T, sv *Supervisor) (chan<- PollResult, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan PollResult)
	done := make(chan struct{})
	go func() {
		sv.Run(ctx, in)
		close(done)
	}()
	return in, func() {
		cancel()
		<-done
	}
}

func TestSupervisor_PublishesStartAndChanges(t *testing.T) {
	w := &recordingWriter{}
	seen := make(chan status.Snapshot, 4)
	sv := &Supervisor{
		Tracker: NewTracker(),
		Writer:  w,
		Log:     zerolog.Nop(),
		Second:  time.Hour,
		OnResult: func(_ PollResult, s status.Snapshot) {
			seen <- s
		},
	}

	in, stop := runSupervisor(t, sv)
	in <- okResult()
	<-seen
	in <- okResult() // unchanged
	<-seen
	stop()

	snaps := w.all()
	if len(snaps) != 2 {
		t.Fatalf("writes = %d, want start + one change", len(snaps))
	}
	if snaps[0].Health != status.HealthUnknown {
		t.Fatalf("start snapshot health = %d", snaps[0].Health)
	}
	if snaps[1].Health != status.HealthOK {
		t.Fatalf("change snapshot health = %d", snaps[1].Health)
	}
}

func TestSupervisor_TicksWhileInError(t *testing.T) {
	w := &recordingWriter{}
	seen := make(chan struct{}, 1)
	sv := &Supervisor{
		Tracker:  NewTracker(),
		Writer:   w,
		Log:      zerolog.Nop(),
		Second:   2 * time.Millisecond,
		OnResult: func(PollResult, status.Snapshot) { seen <- struct{}{} },
	}

	in, stop := runSupervisor(t, sv)
	in <- PollResult{Err: errors.New("gone")}
	<-seen

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		snaps := w.all()
		if snaps[len(snaps)-1].SecondsInError >= 3 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	stop()

	snaps := w.all()
	if last := snaps[len(snaps)-1]; last.SecondsInError < 3 || last.Health != status.HealthError {
		t.Fatalf("last snapshot %+v", last)
	}
}

func TestSupervisor_StopsWhenInputCloses(t *testing.T) {
	sv := &Supervisor{Tracker: NewTracker(), Log: zerolog.Nop()}

	in := make(chan PollResult)
	done := make(chan struct{})
	go func() {
		sv.Run(context.Background(), in)
		close(done)
	}()

	close(in)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after input closed")
	}
}
