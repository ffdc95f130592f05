package cli

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/chabad360/oscaddress/osc"
)

// parseArgument converts a command line argument to an OSC argument. Typed
// arguments take the form <tag>:<value> using the OSC type tags; a value
// without a tag is a string.
//
//	i:42  h:42  f:1.5  d:1.5  s:text  b:cafe  t:now  T  F  N
func parseArgument(s string) (interface{}, error) {
	switch s {
	case "T":
		return true, nil
	case "F":
		return false, nil
	case "N":
		return nil, nil
	}

	tag, value, ok := strings.Cut(s, ":")
	if !ok || len(tag) != 1 {
		return s, nil
	}

	switch osc.TypeTag(tag[0]) {
	case osc.TypeInt32:
		v, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return int32(v), nil
	case osc.TypeInt64:
		v, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return v, nil
	case osc.TypeFloat32:
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return float32(v), nil
	case osc.TypeFloat64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return v, nil
	case osc.TypeString:
		return value, nil
	case osc.TypeBlob:
		v, err := hex.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return v, nil
	case osc.TypeTimeTag:
		return parseTimeTag(value, time.Now())
	}
	return s, nil
}

// parseTimeTag accepts "now", "immediate", an offset from now such as
// "+250ms", an RFC 3339 time, or the 64-bit wire value in hex ("0x...").
func parseTimeTag(s string, now time.Time) (osc.TimeTag, error) {
	switch {
	case s == "immediate":
		return osc.NewImmediateTimeTag(), nil
	case s == "now":
		return osc.NewTimeTagFromTime(now)
	case strings.HasPrefix(s, "+"):
		d, err := time.ParseDuration(s[1:])
		if err != nil {
			return osc.TimeTag{}, fmt.Errorf("time tag %q: %w", s, err)
		}
		return osc.NewTimeTagFromTime(now.Add(d))
	case strings.HasPrefix(s, "0x"):
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return osc.TimeTag{}, fmt.Errorf("time tag %q: %w", s, err)
		}
		return osc.TimeTagFromUint64(v), nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return osc.TimeTag{}, fmt.Errorf("time tag %q: %w", s, err)
	}
	return osc.NewTimeTagFromTime(t)
}

func formatFraction(frac uint32) string {
	return strconv.FormatFloat(float64(frac)/(math.MaxUint32+1), 'f', 9, 64)
}
