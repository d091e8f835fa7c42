// internal/session/program.go
package session

import (
	"context"

	"github.com/rs/zerolog"
)

// Programmer is the mode switching surface WithProgrammingMode needs.
type Programmer interface {
	EnterProgrammingMode(ctx context.Context) error
	ExitProgrammingMode(ctx context.Context) error
	InProgrammingMode() bool
}

// WithProgrammingMode enters programming mode, runs fn and leaves again.
//
// If fn fails, the failure is logged and leaving programming mode is still
// attempted when the mode flag is set. The error returned is always fn's; a
// failed restore is attached as a *RestoreError.
func WithProgrammingMode(ctx context.Context, p Programmer, log zerolog.Logger, what string, fn func() error) error {
	if err := p.EnterProgrammingMode(ctx); err != nil {
		log.Error().Err(err).Msgf("failed to load %s", what)
		return err
	}

	if err := fn(); err != nil {
		log.Error().Err(err).Msgf("failed to load %s", what)

		if !p.InProgrammingMode() {
			return err
		}
		// The caller's context may be the reason fn failed.
		if rerr := p.ExitProgrammingMode(context.WithoutCancel(ctx)); rerr != nil {
			log.Error().Err(rerr).Msg("failed to restore normal mode")
			return &RestoreError{Err: err, Restore: rerr}
		}
		return err
	}

	return p.ExitProgrammingMode(ctx)
}
