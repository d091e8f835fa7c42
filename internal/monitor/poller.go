// internal/monitor/poller.go
package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/tamzrod/scanctl/internal/metrics"
	"github.com/tamzrod/scanctl/internal/uniden"
)

// Source reads the scanner's current reception status.
type Source interface {
	ReceptionStatus(ctx context.Context) (uniden.ReceptionStatus, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Device   string
	Interval time.Duration
}

// Poller is a dumb, clock-driven reader.
type Poller struct {
	cfg     Config
	src     Source
	metrics *metrics.Collector
}

// New creates a poller with immutable config. m may be nil.
func New(cfg Config, src Source, m *metrics.Collector) (*Poller, error) {
	if cfg.Device == "" {
		return nil, errors.New("monitor: device required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("monitor: interval must be > 0")
	}
	if src == nil {
		return nil, errors.New("monitor: source required")
	}
	return &Poller{cfg: cfg, src: src, metrics: m}, nil
}

// PollOnce performs exactly one poll cycle.
func (p *Poller) PollOnce(ctx context.Context) PollResult {
	res := PollResult{
		Device: p.cfg.Device,
		At:     time.Now(),
	}

	res.Status, res.Err = p.src.ReceptionStatus(ctx)
	p.metrics.ObservePoll(res.Err)
	return res
}
