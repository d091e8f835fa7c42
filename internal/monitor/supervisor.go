// internal/monitor/supervisor.go
package monitor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/scanctl/internal/status"
)

// StatusWriter delivers snapshots. writer.StatusWriter satisfies it.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// Supervisor consumes poll results, keeps the tracker current and publishes
// every change. It owns the tracker; nothing else may touch it while Run
// is active.
type Supervisor struct {
	Tracker *Tracker
	Writer  StatusWriter // optional
	Log     zerolog.Logger

	// Second is the seconds_in_error tick period. Zero means one second.
	Second time.Duration

	// OnResult, when set, sees every poll result after it was tracked.
	OnResult func(PollResult, status.Snapshot)
}

// Run blocks until ctx is done or in is closed.
func (s *Supervisor) Run(ctx context.Context, in <-chan PollResult) {
	period := s.Second
	if period <= 0 {
		period = time.Second
	}
	secTicker := time.NewTicker(period)
	defer secTicker.Stop()

	// Full block write on start (identity re-assert).
	s.publish(s.Tracker.Snapshot(), "start")

	for {
		select {
		case <-ctx.Done():
			return

		case res, ok := <-in:
			if !ok {
				return
			}
			if res.Err != nil {
				s.Log.Warn().Err(res.Err).Str("device", res.Device).Msg("poll failed")
			}

			snap, changed := s.Tracker.Observe(res)
			if changed {
				s.publish(snap, "poll")
			}
			if s.OnResult != nil {
				s.OnResult(res, snap)
			}

		case <-secTicker.C:
			if snap, changed := s.Tracker.Tick(); changed {
				s.publish(snap, "seconds tick")
			}
		}
	}
}

func (s *Supervisor) publish(snap status.Snapshot, why string) {
	if s.Writer == nil {
		return
	}
	if err := s.Writer.WriteStatus(snap); err != nil {
		s.Log.Error().Err(err).Str("on", why).Msg("status write failed")
	}
}
