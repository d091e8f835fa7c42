// internal/uniden/mnemonics.go
package uniden

// Command mnemonics. Every request and every echoed reply starts with one.
const (
	CmdEnterProgram = "PRG"
	CmdExitProgram  = "EPG"

	CmdModel    = "MDL"
	CmdFirmware = "VER"
	CmdStatus   = "GLG"

	CmdSystemCount = "SCT"
	CmdSystemHead  = "SIH"
	CmdSystemTail  = "SIT"
	CmdSystemInfo  = "SIN"

	CmdBacklight      = "BLT"
	CmdBattery        = "BSV"
	CmdKeyBeep        = "KBP"
	CmdOpeningMessage = "OMS"
	CmdAutoGain       = "AGV"
)

// MnemonicLen is the fixed length of every command mnemonic.
const MnemonicLen = 3

// Reply literals.
const (
	ReplyOK = "OK"
	None    = "NONE"
)

// Reply arities.
const (
	ModeFields           = 1
	ModelFields          = 1
	FirmwareFields       = 1
	StatusFields         = 12
	CountFields          = 1
	IndexFields          = 1
	SystemInfoFields     = 28
	BacklightFields      = 3
	BatteryFields        = 2
	KeyBeepFields        = 3
	OpeningMessageFields = 4
	AutoGainFields       = 7
)

// SwitchesMode reports whether mnemonic toggles programming mode.
func SwitchesMode(mnemonic string) bool {
	return mnemonic == CmdEnterProgram || mnemonic == CmdExitProgram
}

// ModeFree reports whether a command may be issued outside programming mode.
func ModeFree(mnemonic string) bool {
	switch mnemonic {
	case CmdEnterProgram, CmdExitProgram, CmdModel, CmdFirmware, CmdStatus:
		return true
	}
	return false
}

// Command joins a mnemonic and its arguments with the field separator.
func Command(mnemonic string, args ...string) string {
	out := mnemonic
	for _, a := range args {
		out += string(Separator) + a
	}
	return out
}
