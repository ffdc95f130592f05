package address

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrTrailingAddress is returned when a leaf record is reached while
	// address segments remain.
	ErrTrailingAddress = errors.New("unexpected trailing address")

	// ErrMissingPayload is returned when the arguments run out before the
	// payload has been read.
	ErrMissingPayload = errors.New("missing payload")

	// ErrTrailingArguments is returned when a message was decoded but not all
	// of its arguments were used.
	ErrTrailingArguments = errors.New("unexpected trailing arguments")

	// ErrInvalidSegment is returned when a rendered address segment is empty or
	// contains '/'.
	ErrInvalidSegment = errors.New("invalid address segment")

	// ErrEmptyPacket is returned when marshaling a Packet that holds neither
	// a message nor a bundle.
	ErrEmptyPacket = errors.New("empty packet")
)

// UnrecognizedSegmentError is returned when no route of a branch accepts the
// current address segment.
type UnrecognizedSegmentError struct {
	Shape   string
	Segment string
}

func (e *UnrecognizedSegmentError) Error() string {
	return fmt.Sprintf("%s: unrecognized address segment %q", e.Shape, e.Segment)
}

// PacketError reports a packet of a bundle that could not be decoded. Path
// holds the element index at each bundle level.
type PacketError struct {
	Path []int
	Err  error
}

func (e *PacketError) Error() string {
	idx := make([]string, len(e.Path))
	for i, p := range e.Path {
		idx[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("packet %s: %v", strings.Join(idx, "."), e.Err)
}

func (e *PacketError) Unwrap() error {
	return e.Err
}
