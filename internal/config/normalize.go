// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultTimeoutMs  = 2000
	DefaultPollMs     = 50
	DefaultIntervalMs = 1000

	// DeviceNameMax is the device_name capacity of the status block.
	DeviceNameMax = 16
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	sc := &cfg.Scanner

	if sc.Session.TimeoutMs == 0 {
		sc.Session.TimeoutMs = DefaultTimeoutMs
	}
	if sc.Session.PollMs == 0 {
		sc.Session.PollMs = DefaultPollMs
	}
	if sc.Monitor.IntervalMs == 0 {
		sc.Monitor.IntervalMs = DefaultIntervalMs
	}

	for i := range sc.Devices {
		d := &sc.Devices[i]

		// ------------------------------------------------------------
		// DEVICE STATUS BLOCK NORMALIZATION (OPT-IN)
		// ------------------------------------------------------------

		// Skip devices that did not opt in
		if d.StatusSlot == nil {
			continue
		}

		if d.DeviceName == "" {
			d.DeviceName = d.Name
		}

		// Normalize device_name:
		// - ASCII already validated (a name defaulted from Name is masked on packing)
		// - Truncate to max 16 characters
		if len(d.DeviceName) > DeviceNameMax {
			d.DeviceName = d.DeviceName[:DeviceNameMax]
		}
	}
}
