// internal/writer/builder.go
package writer

import (
	"time"

	cfg "github.com/tamzrod/scanctl/internal/config"
	wmodbus "github.com/tamzrod/scanctl/internal/writer/modbus"
)

// BuildStatusPlan converts one device config into a status plan.
// Assumes config has already passed validation and normalization.
// Returns nil when the device did not opt in.
func BuildStatusPlan(d cfg.DeviceConfig, mem cfg.StatusMemoryConfig) *StatusPlan {
	if d.StatusSlot == nil || mem.Endpoint == "" {
		return nil
	}

	return &StatusPlan{
		Endpoint:   mem.Endpoint,
		UnitID:     mem.UnitID,
		BaseSlot:   *d.StatusSlot,
		DeviceName: d.DeviceName,
	}
}

// BuildEndpointClient connects to the plan's status memory endpoint.
func BuildEndpointClient(plan *StatusPlan, timeout time.Duration) (*wmodbus.EndpointClient, error) {
	return wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: plan.Endpoint,
		Timeout:  timeout,
	})
}
