// internal/session/errors.go
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/scanctl/internal/uniden"
)

// ErrPrecondition is matched by every *PreconditionError.
var ErrPrecondition = errors.New("session: precondition violated")

// Framing failure reasons.
const (
	ReasonPrefix = "wrong prefix"
	ReasonLength = "wrong length"
	ReasonSize   = "frame too long"
)

// Error codes reported in the device status block.
const (
	CodeFraming      uint16 = 2
	CodeProtocol     uint16 = 3
	CodePrecondition uint16 = 4
	CodeTimeout      uint16 = 5
	CodeTransport    uint16 = 6
	CodeDecode       uint16 = 7
)

// FramingError reports a reply with a bad echo or field count.
type FramingError struct {
	Command  string
	Reason   string
	Expected int
	Actual   int
	Reply    string
}

func (e *FramingError) Error() string {
	if e.Reason == ReasonLength {
		return fmt.Sprintf("invalid %s response: %s: expected %d fields, got %d", e.Command, e.Reason, e.Expected, e.Actual)
	}
	return fmt.Sprintf("invalid %s response: %s: %q", e.Command, e.Reason, e.Reply)
}

func (e *FramingError) Code() uint16 { return CodeFraming }

// ProtocolError reports a well-formed reply that rejects the operation.
type ProtocolError struct {
	Command   string
	Operation string
	Reply     string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Operation, e.Reply)
}

func (e *ProtocolError) Code() uint16 { return CodeProtocol }

// PreconditionError reports a call made in the wrong session state.
// It is raised locally; nothing is written to the device.
type PreconditionError struct {
	Operation string
	Reason    string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("session: %s: %s", e.Operation, e.Reason)
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

func (e *PreconditionError) Code() uint16 { return CodePrecondition }

// TimeoutError reports a reply that did not complete in time.
type TimeoutError struct {
	Command string
	After   time.Duration
	Partial []byte
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: no complete response after %s (%d bytes received)", e.Command, e.After, len(e.Partial))
}

func (e *TimeoutError) Timeout() bool { return true }

func (e *TimeoutError) Code() uint16 { return CodeTimeout }

// TransportError wraps a failure of the underlying byte stream.
type TransportError struct {
	Command string
	Op      string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport %s: %v", e.Command, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Code() uint16 { return CodeTransport }

// RestoreError is returned when an operation failed and leaving programming
// mode afterwards failed too. Unwrap yields the original failure.
type RestoreError struct {
	Err     error
	Restore error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("%v (programming mode restore failed: %v)", e.Err, e.Restore)
}

func (e *RestoreError) Unwrap() error { return e.Err }

// Kind classifies err for logs and metrics labels.
func Kind(err error) string {
	if err == nil {
		return "ok"
	}

	var (
		fe *FramingError
		pe *ProtocolError
		te *TimeoutError
		xe *TransportError
		de *uniden.FieldError
	)
	switch {
	case errors.As(err, &fe):
		return "framing"
	case errors.As(err, &pe):
		return "protocol"
	case errors.Is(err, ErrPrecondition):
		return "precondition"
	case errors.As(err, &te):
		return "timeout"
	case errors.As(err, &xe):
		return "transport"
	case errors.As(err, &de):
		return "decode"
	}
	return "error"
}

// ErrorCode extracts a status block code from err. Errors that do not carry
// one map to 1 (generic error).
func ErrorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	var de *uniden.FieldError
	if errors.As(err, &de) {
		return CodeDecode
	}
	return 1
}
