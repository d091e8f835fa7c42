// internal/status/snapshot.go
package status

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16

	Squelch       uint16
	Mute          uint16
	SystemTag     uint16
	ChannelTag    uint16
	SystemsLoaded uint16
}

// Initial is the snapshot published before the first poll.
func Initial() Snapshot {
	return Snapshot{
		Health:     HealthUnknown,
		SystemTag:  TagAbsent,
		ChannelTag: TagAbsent,
	}
}
