// internal/transport/ports.go
package transport

import (
	"go.bug.st/serial/enumerator"
)

// PortInfo describes one serial port present on the host.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

var detailedPorts = enumerator.GetDetailedPortsList

// ListPorts returns the serial ports present on the host.
func ListPorts() ([]PortInfo, error) {
	ports, err := detailedPorts()
	if err != nil {
		return nil, err
	}

	out := make([]PortInfo, 0, len(ports))
	for _, p := range ports {
		out = append(out, PortInfo{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		})
	}
	return out, nil
}
