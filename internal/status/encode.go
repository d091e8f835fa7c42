// internal/status/encode.go
package status

// Encode converts a Snapshot into a full device status block without the
// device name. Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerDevice)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotSecondsInError] = s.SecondsInError
	regs[SlotSquelch] = s.Squelch
	regs[SlotMute] = s.Mute
	regs[SlotSystemTag] = s.SystemTag
	regs[SlotChannelTag] = s.ChannelTag
	regs[SlotSystemsLoaded] = s.SystemsLoaded

	return regs
}

// EncodeBlock is Encode with the packed device name in place.
func EncodeBlock(s Snapshot, name []uint16) []uint16 {
	regs := Encode(s)
	copy(regs[SlotDeviceNameStart:SlotDeviceNameEnd+1], name)
	return regs
}

// EncodeDeviceName packs up to 16 ASCII characters into 8 registers.
// Each register stores two ASCII bytes in big-endian order.
func EncodeDeviceName(name string) []uint16 {
	out := make([]uint16, SlotDeviceNameSlots)

	b := []byte(name)
	if len(b) > DeviceNameMaxChars {
		b = b[:DeviceNameMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < DeviceNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}

// Tag converts an optional scanner tag into its register value.
func Tag(v int, ok bool) uint16 {
	if !ok || v < 0 || v >= int(TagAbsent) {
		return TagAbsent
	}
	return uint16(v)
}

// Flag converts a boolean into 0 or 1.
func Flag(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}
