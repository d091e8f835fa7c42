// cmd/scanctl/commands/device.go
package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tamzrod/scanctl/internal/scanner"
	"github.com/tamzrod/scanctl/internal/uniden"
)

// RunInfo prints the model and firmware version.
func RunInfo(ctx context.Context, sc *scanner.Scanner, w io.Writer) error {
	info, err := sc.Info(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Model:    %s\n", info.Model)
	fmt.Fprintf(w, "Firmware: %s\n", info.Firmware)
	return nil
}

// RunStatus prints the current reception status.
func RunStatus(ctx context.Context, sc *scanner.Scanner, w io.Writer) error {
	st, err := sc.ReceptionStatus(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, FormatStatus(st))
	return nil
}

// FormatStatus renders a reception status on one line.
func FormatStatus(st uniden.ReceptionStatus) string {
	if st.Empty() {
		return "idle"
	}

	out := fmt.Sprintf("%s %s", st.Frequency, st.Modulation)
	if st.Code != uniden.CodeNone {
		out += " " + st.Code.String()
	}
	out += fmt.Sprintf(" | %s / %s / %s", st.Site, st.Group, st.Channel)
	if v, ok := st.P25NAC.Get(); ok {
		out += fmt.Sprintf(" NAC %03X", v)
	}

	flags := ""
	if st.Squelch {
		flags += " SQL"
	}
	if st.Mute {
		flags += " MUTE"
	}
	if st.Attenuation {
		flags += " ATT"
	}
	return out + flags
}

// RunSystems loads and lists the scan systems.
func RunSystems(ctx context.Context, sc *scanner.Scanner, w io.Writer) error {
	if err := sc.LoadScanSettings(ctx); err != nil {
		return err
	}

	systems := sc.ScanSettings().Systems()
	if len(systems) == 0 {
		fmt.Fprintln(w, "No systems")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tKIND\tTYPE\tSEQ\tNAME")
	for _, s := range systems {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", s.Index(), s.Kind(), s.TypeTag(), s.SequenceNumber(), s.Name())
	}
	return tw.Flush()
}

// RunSettings loads and prints the flat device settings.
func RunSettings(ctx context.Context, sc *scanner.Scanner, w io.Writer) error {
	if err := sc.LoadSystemSettings(ctx); err != nil {
		return err
	}

	v, _ := sc.SystemSettings().Values()

	fmt.Fprintf(w, "Backlight:  event=%s color=%s dimmer=%d\n", v.Backlight.Event, v.Backlight.Color, v.Backlight.Dimmer)
	fmt.Fprintf(w, "Battery:    save=%t charge_time=%d\n", v.Battery.Save, v.Battery.ChargeTime)
	fmt.Fprintf(w, "Keys:       beep=%d lock=%t safe=%t\n", v.KeySettings.BeepLevel, v.KeySettings.KeyLock, v.KeySettings.KeySafe)
	fmt.Fprintf(w, "AutoGain:   analog=%d/%d/%d digital=%d/%d\n",
		v.AutoGain.AnalogResponse, v.AutoGain.AnalogReference, v.AutoGain.AnalogGain,
		v.AutoGain.DigitalResponse, v.AutoGain.DigitalGain)
	for i, line := range v.OpeningMessage {
		fmt.Fprintf(w, "Opening %d:  %s\n", i+1, line)
	}
	return nil
}
