package brcode

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxFieldLength is the largest value a 2-digit length prefix can describe.
const MaxFieldLength = 99

// EncodeField formats a single TLV field: id, zero-padded 2-digit length, value.
//
// The value must not be longer than MaxFieldLength. Callers control every
// field length by construction, so a longer value is a programming error and
// EncodeField panics.
func EncodeField(id, value string) string {
	if len(value) > MaxFieldLength {
		panic(fmt.Sprintf("brcode: field %s value length %d exceeds %d", id, len(value), MaxFieldLength))
	}
	return id + fmt.Sprintf("%02d", len(value)) + value
}

// Field is one (id, value) pair of a TLV sequence.
type Field struct {
	ID    string
	Value string
}

// Fields is an ordered TLV sequence.
type Fields []Field

// Encode concatenates the encoded fields in order.
func (f Fields) Encode() string {
	var b strings.Builder
	for _, field := range f {
		b.WriteString(EncodeField(field.ID, field.Value))
	}
	return b.String()
}

// Get returns the value of the first field with the given id.
func (f Fields) Get(id string) (string, bool) {
	for _, field := range f {
		if field.ID == id {
			return field.Value, true
		}
	}
	return "", false
}

// ParseFields splits a TLV sequence into its fields. Every declared length
// must be satisfied by the remaining input.
func ParseFields(s string) (Fields, error) {
	var fields Fields
	for i := 0; i < len(s); {
		if len(s)-i < 4 {
			return nil, fmt.Errorf("%w: truncated header at offset %d", ErrMalformed, i)
		}
		id := s[i : i+2]
		if !isDigits(id) {
			return nil, fmt.Errorf("%w: non-numeric id %q at offset %d", ErrMalformed, id, i)
		}
		n, err := strconv.Atoi(s[i+2 : i+4])
		if err != nil || !isDigits(s[i+2:i+4]) {
			return nil, fmt.Errorf("%w: bad length for field %s at offset %d", ErrMalformed, id, i)
		}
		start := i + 4
		if start+n > len(s) {
			return nil, fmt.Errorf("%w: field %s declares %d bytes, %d available", ErrMalformed, id, n, len(s)-start)
		}
		fields = append(fields, Field{ID: id, Value: s[start : start+n]})
		i = start + n
	}
	return fields, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
