// internal/trace/event.go
package trace

import "time"

// Event is one command/response exchange.
type Event struct {
	Timestamp time.Time     `cbor:"1,keyasint"`
	SessionID string        `cbor:"2,keyasint,omitempty"`
	Device    string        `cbor:"3,keyasint,omitempty"`
	Command   string        `cbor:"4,keyasint"`
	Response  []byte        `cbor:"5,keyasint,omitempty"`
	Fields    int           `cbor:"6,keyasint,omitempty"`
	Duration  time.Duration `cbor:"7,keyasint"`
	Error     string        `cbor:"8,keyasint,omitempty"`
}

// Failed reports whether the exchange ended in an error.
func (e Event) Failed() bool { return e.Error != "" }

// Sink receives exchange events.
type Sink interface {
	Record(Event)
}
