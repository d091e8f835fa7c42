// internal/scan/system.go
package scan

import (
	"github.com/tamzrod/scanctl/internal/uniden"
)

// Kind discriminates the System variants.
type Kind int

const (
	Conventional Kind = iota
	Trunked
)

func (k Kind) String() string {
	if k == Conventional {
		return "conventional"
	}
	return "trunked"
}

// kindOf classifies a SIN type tag. Only CNV is conventional.
func kindOf(tag string) Kind {
	if tag == uniden.TypeConventional {
		return Conventional
	}
	return Trunked
}

// NoIndex marks an absent chain index.
const NoIndex = -1

// System is one scan system read from device memory.
// Systems are only built by ScanSettings.Load and are read-only afterwards.
type System struct {
	index int
	kind  Kind
	tag   string
	name  string
	seq   int

	protected bool
	locked    bool

	holdTime   uniden.OptionalInt
	quickKey   uniden.OptionalInt
	startKey   uniden.OptionalInt
	delayTime  uniden.OptionalInt
	numberTag  uniden.OptionalInt
	agcAnalog  uniden.OptionalInt
	agcDigital uniden.OptionalInt

	next   int
	groups []Group
}

// Index is the device memory index the system was read from.
func (s System) Index() int { return s.index }

func (s System) Kind() Kind { return s.kind }

// IsConventional reports whether s is the conventional variant.
func (s System) IsConventional() bool { return s.kind == Conventional }

// TypeTag is the raw SIN type tag (CNV, MOT, EDC, LTR, P25S, ...).
func (s System) TypeTag() string { return s.tag }

func (s System) Name() string { return s.name }

func (s System) SequenceNumber() int { return s.seq }

func (s System) Protected() bool { return s.protected }

func (s System) Locked() bool { return s.locked }

// Optional attributes. None of them are decoded from the descriptor yet.
func (s System) HoldTime() (int, bool)   { return s.holdTime.Get() }
func (s System) QuickKey() (int, bool)   { return s.quickKey.Get() }
func (s System) StartKey() (int, bool)   { return s.startKey.Get() }
func (s System) DelayTime() (int, bool)  { return s.delayTime.Get() }
func (s System) NumberTag() (int, bool)  { return s.numberTag.Get() }
func (s System) AGCAnalog() (int, bool)  { return s.agcAnalog.Get() }
func (s System) AGCDigital() (int, bool) { return s.agcDigital.Get() }

// NextIndex is the forward chain link, or NoIndex for the last system read.
func (s System) NextIndex() int { return s.next }

// Groups returns a copy of the system's groups.
func (s System) Groups() []Group {
	return append([]Group(nil), s.groups...)
}

// Group is a channel or TGID group owned by one System.
// Load does not read groups yet, so systems currently carry none.
type Group struct {
	index int
	name  string
}

func (g Group) Index() int   { return g.index }
func (g Group) Name() string { return g.name }

// newSystem decodes a SIN descriptor. Only the name and sequence number are
// read; the other attributes stay zero or absent.
func newSystem(index int, desc []string) (System, error) {
	seq, err := uniden.ParseInt(desc[uniden.SINSeqNumber])
	if err != nil {
		return System{}, &uniden.FieldError{
			Command: uniden.CmdSystemInfo,
			Field:   uniden.SINSeqNumber,
			Text:    desc[uniden.SINSeqNumber],
			Err:     err,
		}
	}

	return System{
		index: index,
		kind:  kindOf(desc[uniden.SINType]),
		tag:   desc[uniden.SINType],
		name:  desc[uniden.SINName],
		seq:   seq,
		next:  NoIndex,
	}, nil
}
