// cmd/scanctl/commands/monitor.go
package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/scanctl/internal/metrics"
	"github.com/tamzrod/scanctl/internal/monitor"
	"github.com/tamzrod/scanctl/internal/scanner"
	"github.com/tamzrod/scanctl/internal/status"
	"github.com/tamzrod/scanctl/internal/writer"
)

// MonitorOptions configures RunMonitor.
type MonitorOptions struct {
	Interval time.Duration

	// LoadSystems reads the system list once before polling starts so the
	// status block can report it. Reading it pauses scanning.
	LoadSystems bool

	Status        *writer.StatusPlan // nil = no status publication
	StatusTimeout time.Duration

	Metrics *metrics.Collector
	Log     zerolog.Logger
}

// RunMonitor polls the reception status until ctx is done and prints every
// change. With a status plan the device status block is kept current.
func RunMonitor(ctx context.Context, sc *scanner.Scanner, opts MonitorOptions, w io.Writer) error {
	p, err := monitor.New(monitor.Config{Device: sc.Name(), Interval: opts.Interval}, sc, opts.Metrics)
	if err != nil {
		return err
	}

	tracker := monitor.NewTracker()

	if opts.LoadSystems {
		if err := sc.LoadScanSettings(ctx); err != nil {
			return err
		}
		tracker.SetSystemsLoaded(sc.ScanSettings().Len())
	}

	sv := &monitor.Supervisor{
		Tracker: tracker,
		Log:     opts.Log,
	}

	if opts.Status != nil {
		cli, err := writer.BuildEndpointClient(opts.Status, opts.StatusTimeout)
		if err != nil {
			return fmt.Errorf("status memory %s: %w", opts.Status.Endpoint, err)
		}
		defer cli.Close()

		sw, _ := writer.NewDeviceStatusWriter(opts.Status, cli)
		sv.Writer = sw
	}

	last := ""
	sv.OnResult = func(res monitor.PollResult, _ status.Snapshot) {
		line := "error: " + errString(res.Err)
		if res.Err == nil {
			line = FormatStatus(res.Status)
		}
		if line == last {
			return
		}
		last = line
		fmt.Fprintf(w, "%s %s\n", res.At.Format("15:04:05"), line)
	}

	out := make(chan monitor.PollResult)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, out)
		close(done)
	}()

	opts.Log.Info().Dur("interval", opts.Interval).Bool("status", opts.Status != nil).Msg("monitor started")
	sv.Run(ctx, out)
	<-done
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
