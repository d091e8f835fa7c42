// internal/settings/records.go
package settings

import (
	"fmt"

	"github.com/tamzrod/scanctl/internal/uniden"
)

// Backlight is the BLT record.
type Backlight struct {
	Event  string // activation event
	Color  string
	Dimmer int // 1 low, 2 middle, 3 high
}

// Battery is the BSV record.
type Battery struct {
	Save       bool
	ChargeTime int
}

// KeySettings is the KBP record.
type KeySettings struct {
	BeepLevel int // 0 auto, 1-15 volume, 99 off
	KeyLock   bool
	KeySafe   bool
}

// OpeningMessage holds the four OMS lines.
type OpeningMessage [uniden.OpeningMessageFields]string

// AutoGain is the AGV record. The first two reply fields are reserved.
type AutoGain struct {
	AnalogResponse  int
	AnalogReference int
	AnalogGain      int
	DigitalResponse int
	DigitalGain     int
}

// ---- decoders ----

func checkArity(command string, fields []string, want int) error {
	if len(fields) != want {
		return fmt.Errorf("settings: %s: expected %d fields, got %d", command, want, len(fields))
	}
	return nil
}

// decoder keeps the first decode error; later reads are no-ops.
type decoder struct {
	command string
	fields  []string
	err     error
}

func (d *decoder) intAt(i int) int {
	if d.err != nil {
		return 0
	}
	v, err := uniden.ParseInt(d.fields[i])
	if err != nil {
		d.err = &uniden.FieldError{Command: d.command, Field: i, Text: d.fields[i], Err: err}
	}
	return v
}

func (d *decoder) boolAt(i int) bool {
	if d.err != nil {
		return false
	}
	v, err := uniden.ParseBool(d.fields[i])
	if err != nil {
		d.err = &uniden.FieldError{Command: d.command, Field: i, Text: d.fields[i], Err: err}
	}
	return v
}

func DecodeBacklight(fields []string) (Backlight, error) {
	if err := checkArity(uniden.CmdBacklight, fields, uniden.BacklightFields); err != nil {
		return Backlight{}, err
	}
	d := decoder{command: uniden.CmdBacklight, fields: fields}
	b := Backlight{
		Event:  fields[0],
		Color:  fields[1],
		Dimmer: d.intAt(2),
	}
	if d.err != nil {
		return Backlight{}, d.err
	}
	return b, nil
}

func DecodeBattery(fields []string) (Battery, error) {
	if err := checkArity(uniden.CmdBattery, fields, uniden.BatteryFields); err != nil {
		return Battery{}, err
	}
	d := decoder{command: uniden.CmdBattery, fields: fields}
	b := Battery{
		Save:       d.boolAt(0),
		ChargeTime: d.intAt(1),
	}
	if d.err != nil {
		return Battery{}, d.err
	}
	return b, nil
}

func DecodeKeySettings(fields []string) (KeySettings, error) {
	if err := checkArity(uniden.CmdKeyBeep, fields, uniden.KeyBeepFields); err != nil {
		return KeySettings{}, err
	}
	d := decoder{command: uniden.CmdKeyBeep, fields: fields}
	k := KeySettings{
		BeepLevel: d.intAt(0),
		KeyLock:   d.boolAt(1),
		KeySafe:   d.boolAt(2),
	}
	if d.err != nil {
		return KeySettings{}, d.err
	}
	return k, nil
}

func DecodeOpeningMessage(fields []string) (OpeningMessage, error) {
	var m OpeningMessage
	if err := checkArity(uniden.CmdOpeningMessage, fields, uniden.OpeningMessageFields); err != nil {
		return m, err
	}
	copy(m[:], fields)
	return m, nil
}

func DecodeAutoGain(fields []string) (AutoGain, error) {
	if err := checkArity(uniden.CmdAutoGain, fields, uniden.AutoGainFields); err != nil {
		return AutoGain{}, err
	}
	d := decoder{command: uniden.CmdAutoGain, fields: fields}
	a := AutoGain{
		AnalogResponse:  d.intAt(2),
		AnalogReference: d.intAt(3),
		AnalogGain:      d.intAt(4),
		DigitalResponse: d.intAt(5),
		DigitalGain:     d.intAt(6),
	}
	if d.err != nil {
		return AutoGain{}, d.err
	}
	return a, nil
}
