// cmd/scanctl/commands/ports.go
package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tamzrod/scanctl/internal/transport"
)

// RunPorts lists the serial ports returned by list.
func RunPorts(list func() ([]transport.PortInfo, error), w io.Writer) error {
	ports, err := list()
	if err != nil {
		return fmt.Errorf("list serial ports: %w", err)
	}
	if len(ports) == 0 {
		fmt.Fprintln(w, "No serial ports found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PORT\tUSB\tVID:PID\tSERIAL\tPRODUCT")
	for _, p := range ports {
		id := "-"
		if p.IsUSB {
			id = p.VID + ":" + p.PID
		}
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\t%s\n", p.Name, p.IsUSB, id, p.SerialNumber, p.Product)
	}
	return tw.Flush()
}
