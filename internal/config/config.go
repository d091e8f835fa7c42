// internal/config/config.go
package config

type Config struct {
	Scanner ScannerConfig `yaml:"scanner" toml:"scanner"`
}

type ScannerConfig struct {
	// Optional sqlite file with a devices table. Rows are appended to Devices.
	DevicesDB string `yaml:"devices_db" toml:"devices_db"`

	Devices []DeviceConfig `yaml:"devices" toml:"devices"`

	Session      SessionConfig      `yaml:"session" toml:"session"`
	Trace        TraceConfig        `yaml:"trace" toml:"trace"`
	Metrics      MetricsConfig      `yaml:"metrics" toml:"metrics"`
	Monitor      MonitorConfig      `yaml:"monitor" toml:"monitor"`
	StatusMemory StatusMemoryConfig `yaml:"status_memory" toml:"status_memory"`
}

// ---- DEVICE ----

// Stop bit codes. 3 selects one and a half stop bits.
const (
	StopBitsOne        = 1
	StopBitsTwo        = 2
	StopBitsOneAndHalf = 3
)

type DeviceConfig struct {
	Name     string `yaml:"name" toml:"name"`
	Port     string `yaml:"port" toml:"port"`
	BaudRate int    `yaml:"baud_rate" toml:"baud_rate"`
	DataBits int    `yaml:"data_bits" toml:"data_bits"`
	StopBits int    `yaml:"stop_bits" toml:"stop_bits"`
	Parity   bool   `yaml:"parity" toml:"parity"` // true = even parity

	// Device status block (optional, opt-in)
	StatusSlot *uint16 `yaml:"status_slot" toml:"status_slot"`
	DeviceName string  `yaml:"device_name" toml:"device_name"`
}

// ---- SESSION ----

type SessionConfig struct {
	TimeoutMs int `yaml:"timeout_ms" toml:"timeout_ms"`
	PollMs    int `yaml:"poll_ms" toml:"poll_ms"`
}

// ---- OUTPUTS ----

type TraceConfig struct {
	Path string `yaml:"path" toml:"path"`
}

type MetricsConfig struct {
	Listen string `yaml:"listen" toml:"listen"`
}

type MonitorConfig struct {
	IntervalMs int `yaml:"interval_ms" toml:"interval_ms"`
}

// StatusMemoryConfig is the Modbus server receiving device status blocks.
type StatusMemoryConfig struct {
	Endpoint string `yaml:"endpoint" toml:"endpoint"`
	UnitID   uint8  `yaml:"unit_id" toml:"unit_id"`
}

// Device returns the device named name, or the first one when name is empty.
func (c *Config) Device(name string) (DeviceConfig, bool) {
	for _, d := range c.Scanner.Devices {
		if name == "" || d.Name == name {
			return d, true
		}
	}
	return DeviceConfig{}, false
}
