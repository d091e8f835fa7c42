// internal/monitor/types.go
package monitor

import (
	"time"

	"github.com/tamzrod/scanctl/internal/uniden"
)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	Device string
	At     time.Time

	Status uniden.ReceptionStatus
	Err    error // non-nil means the poll cycle failed
}
