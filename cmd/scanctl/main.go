// cmd/scanctl/main.go

// Command scanctl talks to Uniden scanners over their serial command
// protocol: device identity, live reception status, the stored system list
// and flat device settings.
//
// Usage:
//
//	scanctl [-config file] [-device name] [-v] <command> [flags]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/tamzrod/scanctl/cmd/scanctl/commands"
	"github.com/tamzrod/scanctl/cmd/scanctl/interactive"
	"github.com/tamzrod/scanctl/internal/config"
	"github.com/tamzrod/scanctl/internal/logging"
	"github.com/tamzrod/scanctl/internal/metrics"
	"github.com/tamzrod/scanctl/internal/scanner"
	"github.com/tamzrod/scanctl/internal/trace"
	"github.com/tamzrod/scanctl/internal/transport"
	"github.com/tamzrod/scanctl/internal/writer"
)

const usage = `scanctl - Uniden scanner control

Usage:
  scanctl [-config file] [-device name] [-v] <command> [flags]

Commands:
  info       Model and firmware version
  status     Current reception status
  systems    Load and list scan systems
  settings   Load and show device settings
  monitor    Poll reception status; publish the status block if configured
  shell      Interactive command shell
  ports      List serial ports
  trace      Print a recorded trace file

Global flags:
`

func main() {
	fs := flag.NewFlagSet("scanctl", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}

	cfgPath := fs.String("config", "scanctl.yaml", "Configuration file path")
	device := fs.String("device", "", "Device name from the configuration (default: first device)")
	verbose := fs.Bool("v", false, "Debug logging, including every scanner response")

	_ = fs.Parse(os.Args[1:])
	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	log := logging.Configure("scanctl", *verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := fs.Arg(0)
	err := run(ctx, log, *cfgPath, *device, cmd, fs.Args()[1:])
	stop()

	if err != nil {
		log.Error().Err(err).Str("command", cmd).Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, log zerolog.Logger, cfgPath, device, cmd string, args []string) error {
	// --------------------
	// Commands without a device
	// --------------------

	switch cmd {
	case "ports":
		return commands.RunPorts(transport.ListPorts, os.Stdout)
	case "trace":
		return runTrace(args)
	case "help", "-h", "-help", "--help":
		fmt.Print(usage)
		return nil
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	dev, ok := cfg.Device(device)
	if !ok {
		if device == "" {
			return errors.New("no devices configured")
		}
		return fmt.Errorf("device %q is not configured", device)
	}

	a, err := openApp(ctx, cfg, dev, log)
	if err != nil {
		return err
	}
	defer a.close()

	// --------------------
	// Device commands
	// --------------------

	switch cmd {
	case "info":
		return commands.RunInfo(ctx, a.sc, os.Stdout)
	case "status":
		return commands.RunStatus(ctx, a.sc, os.Stdout)
	case "systems":
		return commands.RunSystems(ctx, a.sc, os.Stdout)
	case "settings":
		return commands.RunSettings(ctx, a.sc, os.Stdout)
	case "monitor":
		return runMonitor(ctx, cfg, dev, a, args)
	case "shell":
		sh, err := interactive.New(a.sc)
		if err != nil {
			return err
		}
		sh.Run(ctx)
		return nil
	}

	return fmt.Errorf("unknown command %q", cmd)
}

// ---- app ----

// app is everything a device command needs, opened once.
type app struct {
	sc       *scanner.Scanner
	recorder *trace.Recorder
	metrics  *metrics.Collector
	log      zerolog.Logger
}

func openApp(ctx context.Context, cfg *config.Config, dev config.DeviceConfig, log zerolog.Logger) (*app, error) {
	a := &app{log: log}

	reg := prometheus.NewRegistry()
	a.metrics = metrics.New(reg)

	if addr := cfg.Scanner.Metrics.Listen; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, reg); err != nil {
				log.Error().Err(err).Str("listen", addr).Msg("metrics server failed")
			}
		}()
	}

	opts := scanner.Options{
		Timeout: time.Duration(cfg.Scanner.Session.TimeoutMs) * time.Millisecond,
		Poll:    time.Duration(cfg.Scanner.Session.PollMs) * time.Millisecond,
		Logger:  log,
		Metrics: a.metrics,
	}

	if path := cfg.Scanner.Trace.Path; path != "" {
		rec, err := trace.NewFileRecorder(path)
		if err != nil {
			return nil, err
		}
		a.recorder = rec
		opts.Trace = rec
	}

	sc, err := scanner.Open(dev, opts)
	if err != nil {
		a.close()
		return nil, err
	}
	a.sc = sc
	return a, nil
}

func (a *app) close() {
	if a.sc != nil {
		if err := a.sc.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close port")
		}
	}
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close trace")
		}
	}
}

// ---- subcommands with flags ----

func runMonitor(ctx context.Context, cfg *config.Config, dev config.DeviceConfig, a *app, args []string) error {
	fs := flag.NewFlagSet("monitor", flag.ContinueOnError)
	load := fs.Bool("load", false, "Load the system list first (pauses scanning)")
	interval := fs.Duration("interval", time.Duration(cfg.Scanner.Monitor.IntervalMs)*time.Millisecond, "Poll interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return commands.RunMonitor(ctx, a.sc, commands.MonitorOptions{
		Interval:      *interval,
		LoadSystems:   *load,
		Status:        writer.BuildStatusPlan(dev, cfg.Scanner.StatusMemory),
		StatusTimeout: time.Duration(cfg.Scanner.Session.TimeoutMs) * time.Millisecond,
		Metrics:       a.metrics,
		Log:           a.log.With().Str("component", "monitor").Logger(),
	}, os.Stdout)
}

func runTrace(args []string) error {
	fs := flag.NewFlagSet("trace", flag.ContinueOnError)
	failed := fs.Bool("failed", false, "Only show failed exchanges")
	command := fs.String("cmd", "", "Only show commands starting with this mnemonic")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("trace: file path required")
	}

	return commands.RunTrace(fs.Arg(0), commands.TraceFilter{
		Command:    *command,
		FailedOnly: *failed,
	}, os.Stdout)
}
