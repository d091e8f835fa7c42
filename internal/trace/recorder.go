// internal/trace/recorder.go
package trace

import (
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Recorder writes events to a stream. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	enc    *cbor.Encoder
	closer io.Closer
	closed bool
	err    error
}

// NewRecorder writes events to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: encMode.NewEncoder(w)}
}

// NewFileRecorder appends events to the file at path, creating it if needed.
func NewFileRecorder(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	r := NewRecorder(f)
	r.closer = f
	return r, nil
}

// Record writes e. Encoding failures never reach the caller; the first one
// is kept and reported by Err.
func (r *Recorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if err := r.enc.Encode(e); err != nil && r.err == nil {
		r.err = err
	}
}

// Err returns the first encoding error, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close closes the underlying file. Later Record calls are ignored.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

var _ Sink = (*Recorder)(nil)
