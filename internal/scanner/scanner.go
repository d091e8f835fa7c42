// internal/scanner/scanner.go
package scanner

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/scanctl/internal/config"
	"github.com/tamzrod/scanctl/internal/metrics"
	"github.com/tamzrod/scanctl/internal/scan"
	"github.com/tamzrod/scanctl/internal/session"
	"github.com/tamzrod/scanctl/internal/settings"
	"github.com/tamzrod/scanctl/internal/trace"
	"github.com/tamzrod/scanctl/internal/transport"
	"github.com/tamzrod/scanctl/internal/uniden"
)

// Options configures a Scanner.
type Options struct {
	Timeout time.Duration // per command; 0 = session default
	Poll    time.Duration // serial read timeout; 0 = transport default

	Logger  zerolog.Logger
	Trace   trace.Sink         // optional
	Metrics *metrics.Collector // optional
}

// Info identifies the connected device.
type Info struct {
	Model    string
	Firmware string
}

// Scanner owns one session and the settings read through it.
// Every public method holds the scanner lock for its whole duration, so
// concurrent callers are serialized per operation, never per command.
type Scanner struct {
	mu   sync.Mutex
	name string
	tr   session.Transport
	sess *session.Session

	scan   *scan.ScanSettings
	system *settings.SystemSettings

	log     zerolog.Logger
	metrics *metrics.Collector
}

// Open connects to the device's serial port.
func Open(d config.DeviceConfig, opts Options) (*Scanner, error) {
	p, err := transport.Open(d, opts.Poll)
	if err != nil {
		return nil, err
	}

	s := New(d.Name, p, opts)
	s.log.Debug().Str("port", d.Port).Int("baud", d.BaudRate).Msg("connected to port")
	return s, nil
}

// New wraps an already open transport.
func New(name string, tr session.Transport, opts Options) *Scanner {
	log := opts.Logger.With().Str("device", name).Logger()

	return &Scanner{
		name: name,
		tr:   tr,
		sess: session.New(tr, session.Config{
			Device:  name,
			Timeout: opts.Timeout,
			Logger:  log,
			Trace:   opts.Trace,
			Metrics: opts.Metrics,
		}),
		scan:    scan.New(log),
		system:  settings.New(log),
		log:     log,
		metrics: opts.Metrics,
	}
}

// Name is the configured device name.
func (s *Scanner) Name() string { return s.name }

// SessionID identifies the underlying session in logs and traces.
func (s *Scanner) SessionID() string { return s.sess.ID() }

// ---- queries ----

func (s *Scanner) Info(ctx context.Context) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := s.sess.GetModel(ctx)
	if err != nil {
		return Info{}, err
	}
	fw, err := s.sess.GetFirmwareVersion(ctx)
	if err != nil {
		return Info{}, err
	}
	return Info{Model: model, Firmware: fw}, nil
}

func (s *Scanner) Model(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.GetModel(ctx)
}

func (s *Scanner) FirmwareVersion(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.GetFirmwareVersion(ctx)
}

// ReceptionStatus returns what the scanner is receiving right now.
func (s *Scanner) ReceptionStatus(ctx context.Context) (uniden.ReceptionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.GetReceptionStatus(ctx)
}

// ---- settings ----

// LoadScanSettings reads the system list. On failure the previously loaded
// list stays in place.
func (s *Scanner) LoadScanSettings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.scan.Load(ctx, s.sess)
	s.metrics.ObserveLoad(metrics.LoadScan, s.scan.Len(), err)
	return err
}

// ScanSettings returns the loaded system list.
func (s *Scanner) ScanSettings() *scan.ScanSettings { return s.scan }

// LoadSystemSettings reads the flat device settings.
func (s *Scanner) LoadSystemSettings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.system.Load(ctx, s.sess)
	s.metrics.ObserveLoad(metrics.LoadSystem, 0, err)
	return err
}

// SystemSettings returns the loaded flat settings.
func (s *Scanner) SystemSettings() *settings.SystemSettings { return s.system }

// ---- raw access ----

// Exec issues a raw command and returns the reply fields without an arity
// check. Programming mode gating still applies, and PRG/EPG are refused
// so the mode flag cannot drift from the device.
func (s *Scanner) Exec(ctx context.Context, command string) ([]string, error) {
	if len(command) >= uniden.MnemonicLen && uniden.SwitchesMode(command[:uniden.MnemonicLen]) {
		return nil, &session.PreconditionError{
			Operation: "exec " + command[:uniden.MnemonicLen],
			Reason:    "mode switches must go through Enter/ExitProgrammingMode",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.IssueCommand(ctx, command, session.AnyLength)
}

func (s *Scanner) EnterProgrammingMode(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.EnterProgrammingMode(ctx)
}

func (s *Scanner) ExitProgrammingMode(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.ExitProgrammingMode(ctx)
}

func (s *Scanner) InProgrammingMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.InProgrammingMode()
}

// Close leaves programming mode if it is still active and closes the
// transport when it is closable.
func (s *Scanner) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess.InProgrammingMode() {
		ctx, cancel := context.WithTimeout(context.Background(), session.DefaultTimeout)
		if err := s.sess.ExitProgrammingMode(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to restore normal mode on close")
		}
		cancel()
	}

	if c, ok := s.tr.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
