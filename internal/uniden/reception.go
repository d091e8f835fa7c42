// internal/uniden/reception.go
package uniden

import (
	"errors"

	"github.com/rs/zerolog"
)

var errShortStatus = errors.New("unexpected field count")

// ReceptionStatus is the decoded GLG reply.
type ReceptionStatus struct {
	Frequency string // frequency or TGID
	Site      string // system, site or search name
	Group     string
	Channel   string

	Code       CtcssDcsCode
	Modulation Modulation

	SystemTag  OptionalInt
	ChannelTag OptionalInt
	P25NAC     OptionalInt

	Attenuation bool
	Squelch     bool // open
	Mute        bool
}

// Empty reports whether the status carries no reception (first field empty).
func (s ReceptionStatus) Empty() bool { return s.Frequency == "" }

// GLG field positions.
const (
	glgFrequency = iota
	glgModulation
	glgAttenuation
	glgCode
	glgSite
	glgGroup
	glgChannel
	glgSquelch
	glgMute
	glgSystemTag
	glgChannelTag
	glgP25NAC
)

// DecodeReceptionStatus maps the 12 GLG fields onto a ReceptionStatus.
// An empty first field yields the zero status; the rest is not parsed.
func DecodeReceptionStatus(fields []string, log zerolog.Logger) (ReceptionStatus, error) {
	var st ReceptionStatus
	if len(fields) != StatusFields {
		return st, &FieldError{Command: CmdStatus, Field: len(fields), Err: errShortStatus}
	}
	if fields[glgFrequency] == "" {
		return st, nil
	}

	st.Frequency = fields[glgFrequency]
	st.Site = fields[glgSite]
	st.Group = fields[glgGroup]
	st.Channel = fields[glgChannel]

	mod, ok := ParseModulation(fields[glgModulation])
	if !ok {
		log.Debug().Str("modulation", fields[glgModulation]).Msg("unknown modulation")
	}
	st.Modulation = mod

	var err error
	if st.Attenuation, err = ParseBool(fields[glgAttenuation]); err != nil {
		return ReceptionStatus{}, fieldErr(fields, glgAttenuation, err)
	}
	if st.Code, err = ParseCtcssDcs(fields[glgCode]); err != nil {
		return ReceptionStatus{}, fieldErr(fields, glgCode, err)
	}
	if st.Squelch, err = ParseBool(fields[glgSquelch]); err != nil {
		return ReceptionStatus{}, fieldErr(fields, glgSquelch, err)
	}
	if st.Mute, err = ParseBool(fields[glgMute]); err != nil {
		return ReceptionStatus{}, fieldErr(fields, glgMute, err)
	}
	if st.SystemTag, err = ParseOptional(fields[glgSystemTag]); err != nil {
		return ReceptionStatus{}, fieldErr(fields, glgSystemTag, err)
	}
	if st.ChannelTag, err = ParseOptional(fields[glgChannelTag]); err != nil {
		return ReceptionStatus{}, fieldErr(fields, glgChannelTag, err)
	}
	if st.P25NAC, err = ParseOptionalHex(fields[glgP25NAC]); err != nil {
		return ReceptionStatus{}, fieldErr(fields, glgP25NAC, err)
	}

	return st, nil
}

func fieldErr(fields []string, i int, err error) error {
	return &FieldError{Command: CmdStatus, Field: i, Text: fields[i], Err: err}
}
