// internal/writer/status_writer_test.go
package writer

import (
	"errors"
	"testing"

	"github.com/tamzrod/scanctl/internal/config"
	"github.com/tamzrod/scanctl/internal/status"
)

type writeCall struct {
	unitID uint8
	addr   uint16
	regs   []uint16
}

type fakeEndpointClient struct {
	writes []writeCall
	fail   error
}

func (f *fakeEndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	f.writes = append(f.writes, writeCall{unitID: unitID, addr: addr, regs: append([]uint16(nil), regs...)})
	return f.fail
}

func (f *fakeEndpointClient) last() writeCall { return f.writes[len(f.writes)-1] }

func newWriter(t *testing.T, slot uint16) (*deviceStatusWriter, *fakeEndpointClient) {
	t.Helper()
	cli := &fakeEndpointClient{}
	sw, enabled := NewDeviceStatusWriter(&StatusPlan{
		Endpoint:   "status-endpoint",
		UnitID:     1,
		BaseSlot:   slot,
		DeviceName: "DEV-01",
	}, cli)
	if !enabled {
		t.Fatalf("status writer should be enabled")
	}
	return sw, cli
}

// ---- tests ----

func TestDeviceNameWrittenOnFullAssertOnly(t *testing.T) {
	sw, cli := newWriter(t, 0)

	// ---- first write: FULL ASSERT ----
	first := status.Initial()
	first.Health = status.HealthOK

	if err := sw.WriteStatus(first); err != nil {
		t.Fatalf("initial full assert failed: %v", err)
	}

	if len(cli.last().regs) != status.SlotsPerDevice {
		t.Fatalf(
			"expected full block write (%d regs), got %d",
			status.SlotsPerDevice,
			len(cli.last().regs),
		)
	}

	// Verify device name encoding EXACTLY
	expectedNameRegs := status.EncodeDeviceName("DEV-01")

	for i := 0; i < status.SlotDeviceNameSlots; i++ {
		slot := status.SlotDeviceNameStart + i
		if cli.last().regs[slot] != expectedNameRegs[i] {
			t.Fatalf(
				"device name slot %d mismatch: got=%d want=%d",
				slot,
				cli.last().regs[slot],
				expectedNameRegs[i],
			)
		}
	}

	// ---- second write: INCREMENTAL ONLY ----
	second := first
	second.Health = status.HealthError
	second.LastErrorCode = 7
	second.SecondsInError = 1

	if err := sw.WriteStatus(second); err != nil {
		t.Fatalf("incremental write failed: %v", err)
	}

	if len(cli.writes) != 4 {
		t.Fatalf("expected 3 incremental writes after full assert, got %d", len(cli.writes)-1)
	}
	for _, w := range cli.writes[1:] {
		if len(w.regs) != 1 {
			t.Fatalf("incremental write of %d regs at %d", len(w.regs), w.addr)
		}
		if w.addr >= status.SlotDeviceNameStart {
			t.Fatalf("device name should not be rewritten on incremental update")
		}
	}
}

func TestSecondsInErrorResetOnRecovery(t *testing.T) {
	sw, cli := newWriter(t, 2)

	// simulate ERROR
	errSnap := status.Initial()
	errSnap.Health = status.HealthError
	errSnap.LastErrorCode = 42
	errSnap.SecondsInError = 3

	if err := sw.WriteStatus(errSnap); err != nil {
		t.Fatalf("error snapshot write failed: %v", err)
	}

	// only the seconds change here
	okSnap := errSnap
	okSnap.SecondsInError = 0

	if err := sw.WriteStatus(okSnap); err != nil {
		t.Fatalf("recovery snapshot write failed: %v", err)
	}

	expectedAddr := uint16(2*status.SlotsPerDevice + status.SlotSecondsInError)

	if cli.last().addr != expectedAddr {
		t.Fatalf("unexpected write addr: got=%d want=%d", cli.last().addr, expectedAddr)
	}
	if len(cli.last().regs) != 1 || cli.last().regs[0] != 0 {
		t.Fatalf("seconds_in_error not reset: got=%v", cli.last().regs)
	}
}

func TestReceptionSlotsWrittenIncrementally(t *testing.T) {
	sw, cli := newWriter(t, 0)

	s := status.Initial()
	if err := sw.WriteStatus(s); err != nil {
		t.Fatalf("full assert failed: %v", err)
	}

	s.Squelch = 1
	s.ChannelTag = 12
	if err := sw.WriteStatus(s); err != nil {
		t.Fatalf("incremental write failed: %v", err)
	}

	if len(cli.writes) != 3 {
		t.Fatalf("expected 2 incremental writes, got %d", len(cli.writes)-1)
	}
	if cli.writes[1].addr != status.SlotSquelch || cli.writes[2].addr != status.SlotChannelTag {
		t.Fatalf("unexpected addrs %d, %d", cli.writes[1].addr, cli.writes[2].addr)
	}

	// unchanged snapshot writes nothing
	if err := sw.WriteStatus(s); err != nil {
		t.Fatalf("no-op write failed: %v", err)
	}
	if len(cli.writes) != 3 {
		t.Fatalf("unchanged snapshot caused %d writes", len(cli.writes)-3)
	}
}

func TestFailureForcesFullReassert(t *testing.T) {
	sw, cli := newWriter(t, 0)

	if err := sw.WriteStatus(status.Initial()); err != nil {
		t.Fatalf("full assert failed: %v", err)
	}

	cli.fail = errors.New("connection reset")
	s := status.Initial()
	s.Health = status.HealthOK
	if err := sw.WriteStatus(s); err == nil {
		t.Fatalf("expected incremental failure")
	}

	cli.fail = nil
	if err := sw.WriteStatus(s); err != nil {
		t.Fatalf("recovery write failed: %v", err)
	}
	if len(cli.last().regs) != status.SlotsPerDevice {
		t.Fatalf("expected full block after failure, got %d regs", len(cli.last().regs))
	}
}

func TestDisabledWithoutPlan(t *testing.T) {
	if _, enabled := NewDeviceStatusWriter(nil, &fakeEndpointClient{}); enabled {
		t.Fatalf("nil plan must disable status")
	}

	var sw *deviceStatusWriter
	if err := sw.WriteStatus(status.Initial()); err == nil {
		t.Fatalf("expected disabled error")
	}
}

func TestBuildStatusPlan(t *testing.T) {
	slot := uint16(4)
	d := config.DeviceConfig{Name: "a", StatusSlot: &slot, DeviceName: "A"}
	mem := config.StatusMemoryConfig{Endpoint: "127.0.0.1:1502", UnitID: 3}

	p := BuildStatusPlan(d, mem)
	if p == nil {
		t.Fatalf("expected plan")
	}
	if p.BaseSlot != 4 || p.UnitID != 3 || p.DeviceName != "A" || p.Endpoint != mem.Endpoint {
		t.Fatalf("unexpected plan %+v", *p)
	}

	d.StatusSlot = nil
	if BuildStatusPlan(d, mem) != nil {
		t.Fatalf("device without status_slot must not get a plan")
	}
}
