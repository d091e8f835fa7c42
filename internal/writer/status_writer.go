// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"

	"github.com/tamzrod/scanctl/internal/status"
)

// StatusWriter is the delivery-only contract for device status.
// It receives a snapshot and writes it verbatim.
// No logic, no state, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// endpointClient is the exact contract the status writer uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// StatusPlan locates one device's status block in status memory.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
}

// deviceStatusWriter is the concrete implementation used by the monitor.
type deviceStatusWriter struct {
	plan *StatusPlan
	cli  endpointClient

	needFull bool
	last     status.Snapshot
	nameRegs []uint16
}

// liveSlotNames label incremental write failures.
var liveSlotNames = [status.SlotLiveCount]string{
	"health",
	"last_error",
	"seconds",
	"squelch",
	"mute",
	"system_tag",
	"channel_tag",
	"systems_loaded",
}

// NewDeviceStatusWriter builds a status writer if status is enabled for the device.
// If plan is nil, status is disabled.
func NewDeviceStatusWriter(plan *StatusPlan, cli endpointClient) (*deviceStatusWriter, bool) {
	if plan == nil {
		return nil, false
	}

	return &deviceStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		last:     status.Initial(),
		nameRegs: status.EncodeDeviceName(plan.DeviceName),
	}, true
}

// WriteStatus delivers a device status snapshot into status memory.
// On any write failure, the next successful call will re-assert the full block.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.plan == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return fmt.Errorf("status writer: missing client for endpoint %s", sw.plan.Endpoint)
	}

	baseAddr := sw.baseAddr()
	unitID := sw.plan.UnitID

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		regs := status.EncodeBlock(s, sw.nameRegs)

		if err := sw.cli.WriteRegisters(unitID, baseAddr, regs); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = s
		return nil
	}

	// ------------------------------------------------------------
	// Incremental writes, one register per changed live slot
	// ------------------------------------------------------------
	prev := status.Encode(sw.last)
	next := status.Encode(s)

	var errs []error
	for slot, name := range liveSlotNames {
		if prev[slot] == next[slot] {
			continue
		}
		addr := baseAddr + uint16(slot)
		if err := sw.cli.WriteRegisters(unitID, addr, next[slot:slot+1]); err != nil {
			errs = append(errs, fmt.Errorf("%s (register %d): %w", name, addr, err))
		}
	}

	if len(errs) > 0 {
		// Memory may now hold a mix of old and new values.
		sw.needFull = true
		return fmt.Errorf("status writer: %w", errors.Join(errs...))
	}

	sw.last = s
	return nil
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	// Each device owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}
