// internal/uniden/fields.go
package uniden

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator delimits fields in requests and replies.
const Separator = ','

// Terminator ends every frame in both directions.
const Terminator = '\r'

// SplitFields splits a reply payload into fields.
// A trailing separator yields a trailing empty field: "a,b," -> [a b ""].
func SplitFields(s string) []string {
	return strings.Split(s, string(Separator))
}

// FieldError reports a field whose text could not be decoded.
type FieldError struct {
	Command string
	Field   int
	Text    string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("uniden: %s field %d: cannot decode %q: %v", e.Command, e.Field, e.Text, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ParseInt decodes a decimal integer field.
func ParseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// ParseBool decodes an integer flag. Any nonzero value is true.
func ParseBool(s string) (bool, error) {
	v, err := ParseInt(s)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// OptionalInt is a numeric field the device may report as NONE.
type OptionalInt struct {
	Value int
	Valid bool
}

// Some returns a present OptionalInt.
func Some(v int) OptionalInt { return OptionalInt{Value: v, Valid: true} }

// Get returns the value and whether it is present.
func (o OptionalInt) Get() (int, bool) { return o.Value, o.Valid }

func (o OptionalInt) String() string {
	if !o.Valid {
		return None
	}
	return strconv.Itoa(o.Value)
}

// ParseOptional decodes a decimal field where NONE means absent.
// NONE never decodes to zero.
func ParseOptional(s string) (OptionalInt, error) {
	return parseOptionalBase(s, 10)
}

// ParseOptionalHex is ParseOptional for hexadecimal fields (P25 NAC).
func ParseOptionalHex(s string) (OptionalInt, error) {
	return parseOptionalBase(s, 16)
}

func parseOptionalBase(s string, base int) (OptionalInt, error) {
	s = strings.TrimSpace(s)
	if s == None {
		return OptionalInt{}, nil
	}
	v, err := strconv.ParseInt(s, base, 32)
	if err != nil {
		return OptionalInt{}, err
	}
	return Some(int(v)), nil
}
