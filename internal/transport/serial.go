// internal/transport/serial.go
package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/tamzrod/scanctl/internal/config"
)

// DefaultPollInterval is the port read timeout. A Read that sees no data
// within it returns 0 bytes and a nil error.
const DefaultPollInterval = 50 * time.Millisecond

// Port is an open serial connection to one scanner.
type Port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	ResetInputBuffer() error
	Close() error
}

// allow tests to override the OS port
var openPort = func(name string, mode *serial.Mode) (serial.Port, error) {
	return serial.Open(name, mode)
}

// Open opens and configures the device's serial port.
// Flow control is left off.
func Open(d config.DeviceConfig, poll time.Duration) (Port, error) {
	mode, err := Mode(d)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to port %s: %w", d.Port, err)
	}
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	p, err := openPort(d.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to port %s: %w", d.Port, err)
	}
	if err := p.SetReadTimeout(poll); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", d.Port, err)
	}
	return p, nil
}

// Mode maps a device descriptor to serial line settings.
func Mode(d config.DeviceConfig) (*serial.Mode, error) {
	data, err := dataBits(d.DataBits)
	if err != nil {
		return nil, err
	}
	stop, err := stopBits(d.StopBits)
	if err != nil {
		return nil, err
	}
	return &serial.Mode{
		BaudRate: d.BaudRate,
		DataBits: data,
		StopBits: stop,
		Parity:   parity(d.Parity),
	}, nil
}

func dataBits(bits int) (int, error) {
	switch bits {
	case 5, 6, 7, 8:
		return bits, nil
	}
	return 0, fmt.Errorf("invalid number of data bits: %d", bits)
}

func stopBits(bits int) (serial.StopBits, error) {
	switch bits {
	case config.StopBitsOne:
		return serial.OneStopBit, nil
	case config.StopBitsTwo:
		return serial.TwoStopBits, nil
	case config.StopBitsOneAndHalf:
		return serial.OnePointFiveStopBits, nil
	}
	return 0, fmt.Errorf("invalid number of stop bits: %d", bits)
}

func parity(even bool) serial.Parity {
	if even {
		return serial.EvenParity
	}
	return serial.NoParity
}
