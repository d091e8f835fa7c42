// cmd/scanctl/commands/trace.go
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tamzrod/scanctl/internal/trace"
)

// TraceFilter selects events for RunTrace.
type TraceFilter struct {
	Command    string // mnemonic prefix, empty = all
	FailedOnly bool
}

func (f TraceFilter) match(e trace.Event) bool {
	if f.FailedOnly && !e.Failed() {
		return false
	}
	return f.Command == "" || strings.HasPrefix(e.Command, f.Command)
}

// RunTrace prints the events of a trace file, one per line.
func RunTrace(path string, f TraceFilter, w io.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	defer file.Close()

	r := trace.NewReader(file)
	shown, total, failed := 0, 0, 0

	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read trace event %d: %w", total+1, err)
		}
		total++
		if e.Failed() {
			failed++
		}
		if !f.match(e) {
			continue
		}
		shown++
		fmt.Fprintln(w, FormatEvent(e))
	}

	fmt.Fprintf(w, "-- %d of %d events shown, %d failed\n", shown, total, failed)
	return nil
}

// FormatEvent renders one trace event.
func FormatEvent(e trace.Event) string {
	resp := strings.TrimSuffix(string(e.Response), "\r")
	line := fmt.Sprintf("%s %-8s %-12s -> %-24q %6s",
		e.Timestamp.Format("15:04:05.000"), e.Device, e.Command, resp, e.Duration.Round(100*time.Microsecond))
	if e.Failed() {
		line += "  ERROR " + e.Error
	}
	return line
}
