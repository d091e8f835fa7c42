// internal/settings/settings.go
package settings

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tamzrod/scanctl/internal/session"
	"github.com/tamzrod/scanctl/internal/uniden"
)

// ErrNotImplemented is returned by the persistence operations.
var ErrNotImplemented = errors.New("settings: not implemented")

// Commander is the session surface Load needs.
type Commander interface {
	session.Programmer
	IssueCommand(ctx context.Context, command string, expected int) ([]string, error)
}

// Values is one complete set of flat device settings.
type Values struct {
	Backlight      Backlight
	Battery        Battery
	KeySettings    KeySettings
	OpeningMessage OpeningMessage
	AutoGain       AutoGain
}

// SystemSettings holds the flat device settings.
type SystemSettings struct {
	mu     sync.RWMutex
	v      Values
	loaded bool

	log zerolog.Logger
}

func New(log zerolog.Logger) *SystemSettings {
	return &SystemSettings{log: log.With().Str("component", "settings").Logger()}
}

// Load reads all flat settings inside programming mode.
// The stored values change only if every read and the mode exit succeed.
func (s *SystemSettings) Load(ctx context.Context, c Commander) error {
	var v Values

	err := session.WithProgrammingMode(ctx, c, s.log, "system settings", func() error {
		var err error
		v, err = read(ctx, c)
		return err
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.v = v
	s.loaded = true
	s.mu.Unlock()

	s.log.Info().Msg("system settings loaded")
	return nil
}

func read(ctx context.Context, c Commander) (Values, error) {
	var v Values

	fields, err := c.IssueCommand(ctx, uniden.CmdBacklight, uniden.BacklightFields)
	if err != nil {
		return v, err
	}
	if v.Backlight, err = DecodeBacklight(fields); err != nil {
		return v, err
	}

	if fields, err = c.IssueCommand(ctx, uniden.CmdBattery, uniden.BatteryFields); err != nil {
		return v, err
	}
	if v.Battery, err = DecodeBattery(fields); err != nil {
		return v, err
	}

	if fields, err = c.IssueCommand(ctx, uniden.CmdKeyBeep, uniden.KeyBeepFields); err != nil {
		return v, err
	}
	if v.KeySettings, err = DecodeKeySettings(fields); err != nil {
		return v, err
	}

	if fields, err = c.IssueCommand(ctx, uniden.CmdOpeningMessage, uniden.OpeningMessageFields); err != nil {
		return v, err
	}
	if v.OpeningMessage, err = DecodeOpeningMessage(fields); err != nil {
		return v, err
	}

	if fields, err = c.IssueCommand(ctx, uniden.CmdAutoGain, uniden.AutoGainFields); err != nil {
		return v, err
	}
	if v.AutoGain, err = DecodeAutoGain(fields); err != nil {
		return v, err
	}

	return v, nil
}

// Values returns the stored settings and whether Load has succeeded yet.
func (s *SystemSettings) Values() (Values, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v, s.loaded
}

func (s *SystemSettings) Save(ctx context.Context, c Commander) error { return ErrNotImplemented }

func (s *SystemSettings) Import(path string) error { return ErrNotImplemented }

func (s *SystemSettings) Export(path string) error { return ErrNotImplemented }
