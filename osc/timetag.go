package osc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
)

// SecondsFrom1900To1970 is the offset between the NTP epoch used by OSC time
// tags and the Unix epoch. There are 70 years between 1900 and 1970, 17 of them
// leap years. Leap seconds were introduced in 1972 and play no part here.
const SecondsFrom1900To1970 = (70*365 + 17) * 86400

// ErrTimeNotRepresentable is returned when a time can't be expressed as an
// NTP time stamp, or an NTP time stamp can't be expressed as a time.Time
// (anything before 1970).
var ErrTimeNotRepresentable = errors.New("time not representable")

// Clock provides the current time. It is used to resolve immediate time tags.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the host wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// AbsoluteTime is an NTP time stamp: seconds since midnight on January 1, 1900
// and the fractional part of a second in units of 1/2^32 seconds (a precision of
// about 200 picoseconds).
type AbsoluteTime struct {
	Seconds  uint32
	Fraction uint32
}

// AbsoluteTimeFromTime converts t to an NTP time stamp. OSC time stamps can only
// represent times from 1900 until early 2036, and the conversion only accepts
// times from 1970 onwards.
func AbsoluteTimeFromTime(t time.Time) (AbsoluteTime, error) {
	unix := t.Unix()
	if unix < 0 {
		return AbsoluteTime{}, fmt.Errorf("%w: %s is before 1970", ErrTimeNotRepresentable, t)
	}
	if unix > math.MaxUint32 {
		return AbsoluteTime{}, fmt.Errorf("%w: %s", ErrTimeNotRepresentable, t)
	}

	secs := uint64(unix) + SecondsFrom1900To1970
	if secs > math.MaxUint32 {
		return AbsoluteTime{}, fmt.Errorf("%w: %s is after 2036", ErrTimeNotRepresentable, t)
	}

	// Nanosecond is always below 1e9, so the shift fits in 64 bits.
	frac := (uint64(t.Nanosecond()) << 32) / uint64(time.Second)

	return AbsoluteTime{Seconds: uint32(secs), Fraction: uint32(frac)}, nil
}

// Time converts the NTP time stamp to a time.Time in UTC.
func (a AbsoluteTime) Time() (time.Time, error) {
	if a.Seconds < SecondsFrom1900To1970 {
		return time.Time{}, fmt.Errorf("%w: %d seconds since 1900 is before 1970", ErrTimeNotRepresentable, a.Seconds)
	}

	// Fraction * 1e9 always fits in 64 bits, and the shifted result fits in 32.
	nanos := (uint64(a.Fraction) * uint64(time.Second)) >> 32

	return time.Unix(int64(a.Seconds-SecondsFrom1900To1970), int64(nanos)).UTC(), nil
}

// Uint64 returns the 64-bit fixed point form of the time stamp.
func (a AbsoluteTime) Uint64() uint64 {
	return uint64(a.Seconds)<<32 | uint64(a.Fraction)
}

// TimeTag represents an OSC Time Tag. It is either immediate, or an absolute
// NTP time stamp.
//
// Time tags are represented on the wire by a 64 bit fixed point number. The
// first 32 bits specify the number of seconds since midnight on January 1,
// 1900, and the last 32 bits specify fractional parts of a second. The value
// consisting of 63 zero bits followed by a one in the least significant bit is
// a special case meaning "immediately".
type TimeTag struct {
	at        AbsoluteTime
	immediate bool
}

// NewTimeTag returns the time tag for the given NTP seconds and fraction. The
// pair (0, 1) is the immediate time tag.
func NewTimeTag(seconds, fraction uint32) TimeTag {
	if seconds == 0 && fraction == 1 {
		return TimeTag{immediate: true}
	}
	return TimeTag{at: AbsoluteTime{Seconds: seconds, Fraction: fraction}}
}

// NewImmediateTimeTag returns a time tag meaning "immediately".
func NewImmediateTimeTag() TimeTag {
	return TimeTag{immediate: true}
}

// At returns a time tag for the given absolute time. AbsoluteTime{0, 1} yields
// the immediate time tag.
func At(a AbsoluteTime) TimeTag {
	return NewTimeTag(a.Seconds, a.Fraction)
}

// NewTimeTagFromTime returns a time tag for the given time.
func NewTimeTagFromTime(t time.Time) (TimeTag, error) {
	a, err := AbsoluteTimeFromTime(t)
	if err != nil {
		return TimeTag{}, err
	}
	return At(a), nil
}

// TimeTagFromUint64 returns the time tag for its 64-bit wire value.
func TimeTagFromUint64(v uint64) TimeTag {
	return NewTimeTag(uint32(v>>32), uint32(v))
}

// IsImmediate reports whether t means "immediately".
func (t TimeTag) IsImmediate() bool {
	return t.immediate
}

// Absolute returns the absolute time of t. ok is false for immediate time tags.
func (t TimeTag) Absolute() (a AbsoluteTime, ok bool) {
	if t.immediate {
		return AbsoluteTime{}, false
	}
	return t.at, true
}

// SecondsSinceEpoch returns the first 32 bits (the number of seconds since
// midnight 1900) of the time tag.
func (t TimeTag) SecondsSinceEpoch() uint32 {
	return uint32(t.Uint64() >> 32)
}

// FractionalSecond returns the last 32 bits of the time tag.
func (t TimeTag) FractionalSecond() uint32 {
	return uint32(t.Uint64())
}

// Uint64 returns the 64-bit wire value of the time tag.
func (t TimeTag) Uint64() uint64 {
	if t.immediate {
		return 1
	}
	return t.at.Uint64()
}

// Time returns the time of the time tag. Immediate time tags resolve to the
// current time of the system clock.
func (t TimeTag) Time() (time.Time, error) {
	return t.TimeWithClock(SystemClock)
}

// TimeWithClock is like Time, but resolves immediate time tags with c.
func (t TimeTag) TimeWithClock(c Clock) (time.Time, error) {
	if t.immediate {
		return c.Now(), nil
	}
	return t.at.Time()
}

// ExpiresIn calculates the duration until the time tag is due. It returns zero
// if the time tag is immediate, in the past, or not representable.
func (t TimeTag) ExpiresIn() time.Duration {
	if t.immediate {
		return 0
	}

	tt, err := t.at.Time()
	if err != nil {
		return 0
	}

	if d := time.Until(tt); d > 0 {
		return d
	}
	return 0
}

// MarshalBinary converts the OSC time tag to its 8 byte wire form.
func (t TimeTag) MarshalBinary() ([]byte, error) {
	b := make([]byte, bit64Size)
	binary.BigEndian.PutUint64(b, t.Uint64())
	return b, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (t *TimeTag) UnmarshalBinary(data []byte) error {
	if len(data) != bit64Size {
		return fmt.Errorf("TimeTag.UnmarshalBinary: want %d bytes, got %d", bit64Size, len(data))
	}
	*t = TimeTagFromUint64(binary.BigEndian.Uint64(data))
	return nil
}

// String implements the fmt.Stringer interface.
func (t TimeTag) String() string {
	if t.immediate {
		return "immediate"
	}
	if tt, err := t.at.Time(); err == nil {
		return tt.Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("ntp(%d.%08x)", t.at.Seconds, t.at.Fraction)
}
