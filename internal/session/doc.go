// internal/session/doc.go

// Package session implements the scanner's command/response protocol.
//
// A Session owns one transport. Every command is a 3-letter mnemonic plus
// optional comma separated arguments terminated by '\r'; every reply echoes
// the mnemonic followed by comma separated fields and '\r'. The session
// validates the echo and the field count and never retries.
//
// Most memory commands are only accepted while the device is in programming
// mode. The session tracks that mode locally and rejects out-of-order mode
// switches and gated commands before anything is written to the wire.
//
// A Session is single-owner: the protocol is half-duplex and has no request
// IDs, so callers sharing one must serialize whole operations themselves
// (see internal/scanner).
package session
