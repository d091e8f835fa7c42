// internal/status/constants.go
package status

// Device Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per device.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

const (
	SlotHealthCode     = 0 // device health state
	SlotLastErrorCode  = 1 // last error code, 0 while healthy
	SlotSecondsInError = 2 // saturates at 65535
	SlotSquelch        = 3 // 1 = squelch open
	SlotMute           = 4 // 1 = muted
	SlotSystemTag      = 5
	SlotChannelTag     = 6
	SlotSystemsLoaded  = 7
)

// SlotLiveCount is the number of leading slots written incrementally.
const SlotLiveCount = SlotSystemsLoaded + 1

// ---- RESERVED RANGE ----

// Slots 8-10 and 19 are reserved and written as zero.
const (
	SlotReservedStart = 8
	SlotReservedEnd   = 10
)

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// SecondsInErrorMax is where seconds_in_error stops counting.
const SecondsInErrorMax uint16 = 65535

// TagAbsent marks a system or channel tag the scanner reported as NONE.
const TagAbsent uint16 = 0xFFFF

// ---- HEALTH CODES ----

const (
	HealthUnknown uint16 = 0 // boot state, nothing polled yet
	HealthOK      uint16 = 1
	HealthError   uint16 = 2
)
