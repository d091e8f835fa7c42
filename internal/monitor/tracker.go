// internal/monitor/tracker.go
package monitor

import (
	"github.com/tamzrod/scanctl/internal/session"
	"github.com/tamzrod/scanctl/internal/status"
)

// Tracker owns the device status snapshot. Every method reports whether the
// snapshot changed, so callers only publish real changes.
// Not safe for concurrent use.
type Tracker struct {
	snap status.Snapshot
}

func NewTracker() *Tracker {
	return &Tracker{snap: status.Initial()}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() status.Snapshot { return t.snap }

// Observe folds one poll result into the snapshot.
func (t *Tracker) Observe(res PollResult) (status.Snapshot, bool) {
	next := t.snap

	if res.Err == nil {
		// Recovery / OK
		next.Health = status.HealthOK
		next.LastErrorCode = 0
		next.SecondsInError = 0

		st := res.Status
		next.Squelch = status.Flag(st.Squelch)
		next.Mute = status.Flag(st.Mute)
		next.SystemTag = status.Tag(st.SystemTag.Get())
		next.ChannelTag = status.Tag(st.ChannelTag.Get())
	} else {
		// Error: reception slots keep their last known values.
		// seconds_in_error increments on Tick only.
		next.Health = status.HealthError
		next.LastErrorCode = session.ErrorCode(res.Err)
	}

	return t.swap(next)
}

// Tick advances seconds_in_error while the device is not healthy.
// Call it once per second. The counter saturates and never wraps.
func (t *Tracker) Tick() (status.Snapshot, bool) {
	if t.snap.Health == status.HealthOK || t.snap.SecondsInError >= status.SecondsInErrorMax {
		return t.snap, false
	}
	next := t.snap
	next.SecondsInError++
	return t.swap(next)
}

// SetSystemsLoaded records the size of the last loaded system list.
func (t *Tracker) SetSystemsLoaded(n int) (status.Snapshot, bool) {
	if n < 0 {
		n = 0
	}
	if n > 0xFFFF {
		n = 0xFFFF
	}
	next := t.snap
	next.SystemsLoaded = uint16(n)
	return t.swap(next)
}

func (t *Tracker) swap(next status.Snapshot) (status.Snapshot, bool) {
	changed := next != t.snap
	t.snap = next
	return next, changed
}
