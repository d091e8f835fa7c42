// internal/uniden/modulation.go
package uniden

// Modulation is the closed set of modulation modes the device reports.
type Modulation int

const (
	ModulationNone Modulation = iota
	ModulationAM
	ModulationFM
	ModulationNFM
	ModulationWFM
	ModulationFMB
)

var modulationNames = map[Modulation]string{
	ModulationNone: "NONE",
	ModulationAM:   "AM",
	ModulationFM:   "FM",
	ModulationNFM:  "NFM",
	ModulationWFM:  "WFM",
	ModulationFMB:  "FMB",
}

func (m Modulation) String() string {
	if s, ok := modulationNames[m]; ok {
		return s
	}
	return "NONE"
}

// ParseModulation maps reply text to a Modulation.
// Unknown text maps to ModulationNone with ok=false; it is never an error.
func ParseModulation(s string) (m Modulation, ok bool) {
	switch s {
	case "AM":
		return ModulationAM, true
	case "FM":
		return ModulationFM, true
	case "NFM":
		return ModulationNFM, true
	case "WFM":
		return ModulationWFM, true
	case "FMB":
		return ModulationFMB, true
	}
	return ModulationNone, false
}
