// internal/trace/doc.go

// Package trace records protocol exchanges between scanctl and the scanner.
//
// Each command/response pair becomes one Event. Events are CBOR encoded with
// integer keys and appended to a stream, so a capture file is simply a
// sequence of CBOR items. Use Reader (or `scanctl trace <file>`) to read a
// capture back.
//
// Trace capture is separate from operational logging: logs are for humans,
// traces are a complete machine-readable record of what went over the wire.
package trace
