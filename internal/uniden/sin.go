// internal/uniden/sin.go
package uniden

// SIN descriptor field positions (28 fields).
// Positions 6-10 and 17-22 are reserved.
const (
	SINType       = 0
	SINName       = 1
	SINQuickKey   = 2
	SINHoldTime   = 3
	SINLockout    = 4
	SINDelayTime  = 5
	SINReverse    = 11
	SINForward    = 12
	SINGroupHead  = 13
	SINGroupTail  = 14
	SINSeqNumber  = 15
	SINStartKey   = 16
	SINNumberTag  = 23
	SINAGCAnalog  = 24
	SINAGCDigital = 25
	SINP25Waiting = 26
	SINProtect    = 27
)

// TypeConventional is the SIN type tag of a conventional system.
// Every other tag (MOT, EDC, EDS, LTR, P25S, P25F, ...) is trunked.
const TypeConventional = "CNV"
