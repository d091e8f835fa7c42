// internal/scan/settings.go
package scan

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tamzrod/scanctl/internal/session"
	"github.com/tamzrod/scanctl/internal/uniden"
)

// ErrNotImplemented is returned by the persistence operations.
var ErrNotImplemented = errors.New("scan: not implemented")

// Commander is the session surface Load needs.
type Commander interface {
	session.Programmer
	IssueCommand(ctx context.Context, command string, expected int) ([]string, error)
}

// ChainError reports a system chain that revisits an index before the
// announced number of systems was read.
type ChainError struct {
	Index int
	Read  int
	Count int
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("scan: system chain revisits index %d after %d of %d systems", e.Index, e.Read, e.Count)
}

// ScanSettings holds the systems read from the device.
// Readers may run concurrently with Load; they see either the previous or
// the new collection, never a partial one.
type ScanSettings struct {
	mu      sync.RWMutex
	systems []System
	byIndex map[int]int

	log zerolog.Logger
}

// New returns an empty collection.
func New(log zerolog.Logger) *ScanSettings {
	return &ScanSettings{
		byIndex: map[int]int{},
		log:     log.With().Str("component", "scan").Logger(),
	}
}

// Load reads every system from the device and replaces the collection.
// On any failure the previous collection is kept.
func (s *ScanSettings) Load(ctx context.Context, c Commander) error {
	var got []System

	err := session.WithProgrammingMode(ctx, c, s.log, "scan settings", func() error {
		var err error
		got, err = s.readSystems(ctx, c)
		return err
	})
	if err != nil {
		return err
	}

	byIndex := make(map[int]int, len(got))
	for i, sys := range got {
		byIndex[sys.index] = i
	}

	s.mu.Lock()
	s.systems = got
	s.byIndex = byIndex
	s.mu.Unlock()

	s.log.Info().Int("systems", len(got)).Msg("scan settings loaded")
	return nil
}

func (s *ScanSettings) readSystems(ctx context.Context, c Commander) ([]System, error) {
	count, err := queryInt(ctx, c, uniden.CmdSystemCount)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("scan: invalid system count %d", count)
	}
	if count == 0 {
		return nil, nil
	}

	head, err := queryInt(ctx, c, uniden.CmdSystemHead)
	if err != nil {
		return nil, err
	}
	tail, err := queryInt(ctx, c, uniden.CmdSystemTail)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int("count", count).Int("head", head).Int("tail", tail).Msg("reading systems")

	out := make([]System, 0, count)
	seen := make(map[int]struct{}, count)
	index := head

	for i := 0; i < count; i++ {
		if _, dup := seen[index]; dup {
			return nil, &ChainError{Index: index, Read: i, Count: count}
		}
		seen[index] = struct{}{}

		desc, err := c.IssueCommand(ctx,
			uniden.Command(uniden.CmdSystemInfo, strconv.Itoa(index)),
			uniden.SystemInfoFields)
		if err != nil {
			return nil, err
		}

		sys, err := newSystem(index, desc)
		if err != nil {
			return nil, err
		}

		// the forward link of the last system is not followed
		if i < count-1 {
			next, err := uniden.ParseInt(desc[uniden.SINForward])
			if err != nil {
				return nil, &uniden.FieldError{
					Command: uniden.CmdSystemInfo,
					Field:   uniden.SINForward,
					Text:    desc[uniden.SINForward],
					Err:     err,
				}
			}
			sys.next = next
		}

		s.log.Debug().
			Int("index", index).
			Str("type", sys.tag).
			Str("name", sys.name).
			Msg("system read")

		out = append(out, sys)
		index = sys.next
	}

	if last := out[len(out)-1].index; last != tail {
		s.log.Warn().Int("last", last).Int("tail", tail).Msg("system chain did not end at tail")
	}

	return out, nil
}

func queryInt(ctx context.Context, c Commander, mnemonic string) (int, error) {
	fields, err := c.IssueCommand(ctx, mnemonic, uniden.CountFields)
	if err != nil {
		return 0, err
	}
	v, err := uniden.ParseInt(fields[0])
	if err != nil {
		return 0, &uniden.FieldError{Command: mnemonic, Field: 0, Text: fields[0], Err: err}
	}
	return v, nil
}

// ---- readers ----

// Systems returns the systems in traversal order.
func (s *ScanSettings) Systems() []System {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]System(nil), s.systems...)
}

func (s *ScanSettings) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.systems)
}

// Lookup returns the system read from the given memory index.
func (s *ScanSettings) Lookup(index int) (System, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byIndex[index]
	if !ok {
		return System{}, false
	}
	return s.systems[i], true
}

// Next follows the forward link of sys within the loaded collection.
func (s *ScanSettings) Next(sys System) (System, bool) {
	if sys.next == NoIndex {
		return System{}, false
	}
	return s.Lookup(sys.next)
}

// ---- persistence ----

func (s *ScanSettings) Save(ctx context.Context, c Commander) error { return ErrNotImplemented }

func (s *ScanSettings) Import(path string) error { return ErrNotImplemented }

func (s *ScanSettings) Export(path string) error { return ErrNotImplemented }
