package address

import (
	"encoding"
	"errors"
	"strconv"
)

// Path argument parsers for use with Parsed and ParsedNested.

// ParseUint32 accepts decimal unsigned 32-bit integers.
func ParseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

// ParseInt32 accepts decimal signed 32-bit integers.
func ParseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

// ParseInt64 accepts decimal signed 64-bit integers.
func ParseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// ParseFloat32 accepts 32-bit floating point numbers.
func ParseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

// ParseSegment accepts any non-empty segment as is.
func ParseSegment(s string) (string, error) {
	if s == "" {
		return "", errors.New("empty segment")
	}
	return s, nil
}

// ParseText accepts whatever the encoding.TextUnmarshaler of T accepts.
func ParseText[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}](s string) (T, error) {
	var v T
	err := PT(&v).UnmarshalText([]byte(s))
	return v, err
}
