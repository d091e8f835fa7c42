// internal/transport/serial_test.go
package transport

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"

	"github.com/tamzrod/scanctl/internal/config"
)

// fakeSerial overrides the calls Open makes; anything else panics.
type fakeSerial struct {
	serial.Port

	timeout    time.Duration
	timeoutErr error
	closed     bool
}

func (f *fakeSerial) SetReadTimeout(d time.Duration) error {
	f.timeout = d
	return f.timeoutErr
}

func (f *fakeSerial) Close() error {
	f.closed = true
	return nil
}

func stubOpen(t *testing.T, fake *fakeSerial, err error) (*string, **serial.Mode) {
	t.Helper()
	var name string
	var mode *serial.Mode

	prev := openPort
	openPort = func(n string, m *serial.Mode) (serial.Port, error) {
		name, mode = n, m
		if err != nil {
			return nil, err
		}
		return fake, nil
	}
	t.Cleanup(func() { openPort = prev })

	return &name, &mode
}

func dev() config.DeviceConfig {
	return config.DeviceConfig{
		Name:     "bcd396xt",
		Port:     "/dev/ttyACM0",
		BaudRate: 115200,
		DataBits: 8,
		StopBits: config.StopBitsOne,
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(*config.DeviceConfig)
		stop   serial.StopBits
		parity serial.Parity
		data   int
	}{
		{"defaults", func(*config.DeviceConfig) {}, serial.OneStopBit, serial.NoParity, 8},
		{"two stop bits", func(d *config.DeviceConfig) { d.StopBits = config.StopBitsTwo }, serial.TwoStopBits, serial.NoParity, 8},
		{"one and a half", func(d *config.DeviceConfig) { d.StopBits = config.StopBitsOneAndHalf }, serial.OnePointFiveStopBits, serial.NoParity, 8},
		{"even parity", func(d *config.DeviceConfig) { d.Parity = true }, serial.OneStopBit, serial.EvenParity, 8},
		{"seven data bits", func(d *config.DeviceConfig) { d.DataBits = 7 }, serial.OneStopBit, serial.NoParity, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dev()
			tt.edit(&d)

			m, err := Mode(d)
			require.NoError(t, err)
			assert.Equal(t, 115200, m.BaudRate)
			assert.Equal(t, tt.data, m.DataBits)
			assert.Equal(t, tt.stop, m.StopBits)
			assert.Equal(t, tt.parity, m.Parity)
		})
	}
}

func TestMode_Invalid(t *testing.T) {
	d := dev()
	d.DataBits = 9
	_, err := Mode(d)
	assert.ErrorContains(t, err, "data bits")

	d = dev()
	d.StopBits = 0
	_, err = Mode(d)
	assert.ErrorContains(t, err, "stop bits")
}

func TestOpen(t *testing.T) {
	fake := &fakeSerial{}
	name, mode := stubOpen(t, fake, nil)

	p, err := Open(dev(), 20*time.Millisecond)
	require.NoError(t, err)
	assert.Same(t, fake, p)
	assert.Equal(t, "/dev/ttyACM0", *name)
	assert.Equal(t, 115200, (*mode).BaudRate)
	assert.Equal(t, 20*time.Millisecond, fake.timeout)
}

func TestOpen_DefaultPoll(t *testing.T) {
	fake := &fakeSerial{}
	stubOpen(t, fake, nil)

	_, err := Open(dev(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPollInterval, fake.timeout)
}

func TestOpen_Errors(t *testing.T) {
	stubOpen(t, nil, errors.New("no such device"))
	_, err := Open(dev(), 0)
	assert.ErrorContains(t, err, "failed to connect to port /dev/ttyACM0")

	fake := &fakeSerial{timeoutErr: errors.New("ioctl")}
	stubOpen(t, fake, nil)
	_, err = Open(dev(), 0)
	assert.Error(t, err)
	assert.True(t, fake.closed)

	d := dev()
	d.StopBits = 7
	_, err = Open(d, 0)
	assert.ErrorContains(t, err, "stop bits")
}
