// internal/session/session.go
package session

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tamzrod/scanctl/internal/metrics"
	"github.com/tamzrod/scanctl/internal/trace"
	"github.com/tamzrod/scanctl/internal/uniden"
)

// Transport is the duplex byte stream to the device.
// Read may return 0 bytes and a nil error when no data arrived within the
// transport's own read timeout; the session treats that as a normal wait.
type Transport interface {
	io.Reader
	io.Writer
}

// inputResetter is implemented by transports that can drop stale input.
type inputResetter interface {
	ResetInputBuffer() error
}

const (
	// DefaultTimeout bounds the wait for one complete reply.
	DefaultTimeout = 2 * time.Second

	// AnyLength disables the field count check.
	AnyLength = -1

	maxFrameLen = 4096
	readChunk   = 256
)

// Config is the session runtime configuration.
type Config struct {
	Device  string
	Timeout time.Duration

	Logger  zerolog.Logger
	Trace   trace.Sink         // optional
	Metrics *metrics.Collector // optional
}

// Session drives the command/response protocol over one transport.
type Session struct {
	tr  Transport
	cfg Config
	id  string
	log zerolog.Logger

	programming bool
	buf         []byte
}

// New creates a session that owns tr.
func New(tr Transport, cfg Config) *Session {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	id := uuid.NewString()
	return &Session{
		tr:  tr,
		cfg: cfg,
		id:  id,
		log: cfg.Logger.With().Str("session", id).Logger(),
		buf: make([]byte, readChunk),
	}
}

// ID identifies the session in logs and trace events.
func (s *Session) ID() string { return s.id }

// InProgrammingMode reports the local programming mode flag.
func (s *Session) InProgrammingMode() bool { return s.programming }

// IssueCommand sends command and returns the reply fields.
// command is the mnemonic plus arguments, without the terminator.
// expected is the exact reply field count, or AnyLength.
func (s *Session) IssueCommand(ctx context.Context, command string, expected int) ([]string, error) {
	if len(command) < uniden.MnemonicLen {
		return nil, &PreconditionError{Operation: "issue " + command, Reason: "command shorter than a mnemonic"}
	}
	mnemonic := command[:uniden.MnemonicLen]

	if strings.ContainsRune(command, uniden.Terminator) {
		return nil, &PreconditionError{Operation: "issue " + mnemonic, Reason: "command contains a frame terminator"}
	}
	if !s.programming && !uniden.ModeFree(mnemonic) {
		return nil, &PreconditionError{Operation: "issue " + mnemonic, Reason: "requires programming mode"}
	}

	start := time.Now()
	raw, fields, err := s.exchange(ctx, mnemonic, command, expected)
	s.observe(start, command, raw, fields, err)

	return fields, err
}

func (s *Session) exchange(ctx context.Context, mnemonic, command string, expected int) ([]byte, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, &TransportError{Command: mnemonic, Op: "write", Err: err}
	}
	if r, ok := s.tr.(inputResetter); ok {
		if err := r.ResetInputBuffer(); err != nil {
			return nil, nil, &TransportError{Command: mnemonic, Op: "reset", Err: err}
		}
	}

	if err := writeAll(s.tr, []byte(command+string(uniden.Terminator))); err != nil {
		return nil, nil, &TransportError{Command: mnemonic, Op: "write", Err: err}
	}

	raw, err := s.readFrame(ctx, mnemonic)
	if err != nil {
		return raw, nil, err
	}

	s.log.Debug().
		Str("command", mnemonic).
		Str("response", string(raw[:len(raw)-1])).
		Msg("scanner response")

	fields, err := parseFrame(mnemonic, raw, expected)
	return raw, fields, err
}

// readFrame accumulates bytes until the buffer ends with the terminator.
func (s *Session) readFrame(ctx context.Context, mnemonic string) ([]byte, error) {
	deadline := time.Now().Add(s.cfg.Timeout)

	var frame []byte
	for {
		n, err := s.tr.Read(s.buf)
		if n > 0 {
			frame = append(frame, s.buf[:n]...)
		}
		if err != nil {
			return frame, &TransportError{Command: mnemonic, Op: "read", Err: err}
		}
		if len(frame) > 0 && frame[len(frame)-1] == uniden.Terminator {
			return frame, nil
		}
		if len(frame) > maxFrameLen {
			return frame, &FramingError{Command: mnemonic, Reason: ReasonSize, Reply: string(frame[:32])}
		}
		if err := ctx.Err(); err != nil {
			return frame, &TransportError{Command: mnemonic, Op: "read", Err: err}
		}
		if time.Now().After(deadline) {
			return frame, &TimeoutError{Command: mnemonic, After: s.cfg.Timeout, Partial: frame}
		}
	}
}

// parseFrame validates the echo and splits the payload.
func parseFrame(mnemonic string, raw []byte, expected int) ([]string, error) {
	text := string(raw[:len(raw)-1])

	if len(text) < uniden.MnemonicLen || text[:uniden.MnemonicLen] != mnemonic {
		return nil, &FramingError{Command: mnemonic, Reason: ReasonPrefix, Reply: text}
	}

	var fields []string
	if rest := text[uniden.MnemonicLen:]; rest != "" {
		if rest[0] != uniden.Separator {
			return nil, &FramingError{Command: mnemonic, Reason: ReasonPrefix, Reply: text}
		}
		fields = uniden.SplitFields(rest[1:])
	}

	if expected != AnyLength && len(fields) != expected {
		return nil, &FramingError{
			Command:  mnemonic,
			Reason:   ReasonLength,
			Expected: expected,
			Actual:   len(fields),
			Reply:    text,
		}
	}
	return fields, nil
}

func (s *Session) observe(start time.Time, command string, raw []byte, fields []string, err error) {
	d := time.Since(start)
	mnemonic := command[:uniden.MnemonicLen]

	s.cfg.Metrics.ObserveCommand(mnemonic, Kind(err), d)

	if s.cfg.Trace != nil {
		ev := trace.Event{
			Timestamp: start,
			SessionID: s.id,
			Device:    s.cfg.Device,
			Command:   command,
			Response:  raw,
			Fields:    len(fields),
			Duration:  d,
		}
		if err != nil {
			ev.Error = err.Error()
		}
		s.cfg.Trace.Record(ev)
	}

	if err != nil {
		s.log.Debug().Err(err).Str("command", mnemonic).Dur("took", d).Msg("command failed")
	}
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		b = b[n:]
	}
	return nil
}

// ---- programming mode ----

// EnterProgrammingMode switches the device into programming mode.
func (s *Session) EnterProgrammingMode(ctx context.Context) error {
	const op = "enter programming mode"
	if s.programming {
		return &PreconditionError{Operation: op, Reason: "already in programming mode"}
	}

	s.log.Debug().Msg("entering programming mode")
	if err := s.switchMode(ctx, uniden.CmdEnterProgram, op); err != nil {
		return err
	}
	s.programming = true
	return nil
}

// ExitProgrammingMode returns the device to normal operation.
func (s *Session) ExitProgrammingMode(ctx context.Context) error {
	const op = "exit programming mode"
	if !s.programming {
		return &PreconditionError{Operation: op, Reason: "not in programming mode"}
	}

	s.log.Debug().Msg("leaving programming mode")
	if err := s.switchMode(ctx, uniden.CmdExitProgram, op); err != nil {
		return err
	}
	s.programming = false
	return nil
}

func (s *Session) switchMode(ctx context.Context, cmd, op string) error {
	fields, err := s.IssueCommand(ctx, cmd, uniden.ModeFields)
	if err != nil {
		return err
	}
	if fields[0] != uniden.ReplyOK {
		return &ProtocolError{Command: cmd, Operation: op, Reply: fields[0]}
	}
	return nil
}

// ---- mode-free queries ----

// GetModel returns the device model name.
func (s *Session) GetModel(ctx context.Context) (string, error) {
	return s.single(ctx, uniden.CmdModel)
}

// GetFirmwareVersion returns the firmware version string.
func (s *Session) GetFirmwareVersion(ctx context.Context) (string, error) {
	return s.single(ctx, uniden.CmdFirmware)
}

func (s *Session) single(ctx context.Context, cmd string) (string, error) {
	fields, err := s.IssueCommand(ctx, cmd, 1)
	if err != nil {
		return "", err
	}
	return fields[0], nil
}

// GetReceptionStatus returns what the device is currently receiving.
func (s *Session) GetReceptionStatus(ctx context.Context) (uniden.ReceptionStatus, error) {
	fields, err := s.IssueCommand(ctx, uniden.CmdStatus, uniden.StatusFields)
	if err != nil {
		return uniden.ReceptionStatus{}, err
	}
	return uniden.DecodeReceptionStatus(fields, s.log)
}
