// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	sc := &cfg.Scanner

	// ------------------------------------------------------------
	// DEVICE DESCRIPTOR VALIDATION
	// ------------------------------------------------------------

	names := make(map[string]struct{}, len(sc.Devices))

	for _, d := range sc.Devices {
		if d.Name == "" {
			return fmt.Errorf("device on port %q: name is required", d.Port)
		}
		if _, dup := names[d.Name]; dup {
			return fmt.Errorf("device %q: duplicate name", d.Name)
		}
		names[d.Name] = struct{}{}

		if d.Port == "" {
			return fmt.Errorf("device %q: port is required", d.Name)
		}
		if d.BaudRate <= 0 {
			return fmt.Errorf("device %q: invalid baud_rate %d", d.Name, d.BaudRate)
		}
		if d.DataBits < 5 || d.DataBits > 8 {
			return fmt.Errorf("device %q: invalid number of data bits: %d", d.Name, d.DataBits)
		}
		switch d.StopBits {
		case StopBitsOne, StopBitsTwo, StopBitsOneAndHalf:
		default:
			return fmt.Errorf("device %q: invalid number of stop bits: %d", d.Name, d.StopBits)
		}

		// device_name sanity (ASCII only)
		for i := 0; i < len(d.DeviceName); i++ {
			if d.DeviceName[i] > 0x7F {
				return fmt.Errorf(
					"device %q: device_name must contain ASCII characters only",
					d.Name,
				)
			}
		}
	}

	// ------------------------------------------------------------
	// DEVICE STATUS BLOCK VALIDATION (OPT-IN)
	// ------------------------------------------------------------

	// key = endpoint | unit_id | status_slot
	statusOwner := make(map[string]string)

	for _, d := range sc.Devices {
		// status is opt-in
		if d.StatusSlot == nil {
			continue
		}

		// status requires a status memory endpoint
		if sc.StatusMemory.Endpoint == "" {
			return fmt.Errorf(
				"device %q: status_slot is set but status_memory.endpoint is empty",
				d.Name,
			)
		}

		key := fmt.Sprintf(
			"%s|%d|%d",
			sc.StatusMemory.Endpoint,
			sc.StatusMemory.UnitID,
			*d.StatusSlot,
		)

		if prev, exists := statusOwner[key]; exists {
			return fmt.Errorf(
				"status_slot collision: endpoint=%s unit_id=%d slot=%d used by devices %q and %q",
				sc.StatusMemory.Endpoint,
				sc.StatusMemory.UnitID,
				*d.StatusSlot,
				prev,
				d.Name,
			)
		}

		statusOwner[key] = d.Name
	}

	// ------------------------------------------------------------
	// TIMING
	// ------------------------------------------------------------

	if sc.Session.TimeoutMs < 0 {
		return fmt.Errorf("session.timeout_ms must not be negative")
	}
	if sc.Session.PollMs < 0 {
		return fmt.Errorf("session.poll_ms must not be negative")
	}
	if sc.Monitor.IntervalMs < 0 {
		return fmt.Errorf("monitor.interval_ms must not be negative")
	}

	return nil
}
