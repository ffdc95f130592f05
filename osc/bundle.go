package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

const (
	bundleTagString = "#bundle"
)

// Bundle represents an OSC bundle. It consists of the OSC-string "#bundle"
// followed by an OSC Time Tag, followed by zero or more OSC bundle/message
// elements. The OSC-timetag is a 64-bit fixed point time tag. See
// http://opensoundcontrol.org/spec-1_0.html for more information.
type Bundle struct {
	Timetag  TimeTag
	Elements []Packet
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

// NewBundle returns an OSC Bundle with an immediate time tag holding the given
// elements.
func NewBundle(elements ...Packet) *Bundle {
	return &Bundle{Timetag: NewImmediateTimeTag(), Elements: elements}
}

// NewBundleWithTime returns an empty OSC Bundle due at t.
func NewBundleWithTime(t time.Time) (*Bundle, error) {
	tt, err := NewTimeTagFromTime(t)
	if err != nil {
		return nil, err
	}
	return &Bundle{Timetag: tt}, nil
}

// NewBundleFromData returns a new OSC bundle created from the parsed data.
func NewBundleFromData(data []byte) (*Bundle, error) {
	b := &Bundle{}
	if err := b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// Append appends an OSC bundle or OSC message to the bundle.
func (b *Bundle) Append(pck Packet) error {
	switch t := pck.(type) {
	default:
		return fmt.Errorf("unsupported OSC packet type: only Bundle and Message are supported")

	case *Bundle, *Message:
		b.Elements = append(b.Elements, t)
	}

	return nil
}

// MarshalBinary serializes the OSC bundle to a byte slice with the following
// format:
// 1. Bundle string: '#bundle'
// 2. OSC timetag
// 3. Length of first OSC bundle element
// 4. First bundle element
// 5. Length of n OSC bundle element
// 6. n bundle element
func (b *Bundle) MarshalBinary() ([]byte, error) {
	data := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(data)
	data.Reset()

	if err := b.LightMarshalBinary(data); err != nil {
		return nil, err
	}

	bb := make([]byte, data.Len())
	copy(bb, data.Bytes())
	return bb, nil
}

// LightMarshalBinary writes the binary form of the bundle to data.
func (b *Bundle) LightMarshalBinary(data *bytes.Buffer) error {
	start := data.Len()

	// Add the '#bundle' string
	writePaddedString(bundleTagString, data)

	// Add the time tag
	var scratch [bit64Size]byte
	binary.BigEndian.PutUint64(scratch[:], b.Timetag.Uint64())
	data.Write(scratch[:])

	// Process all Bundle elements
	for _, m := range b.Elements {
		bb, err := m.MarshalBinary()
		if err != nil {
			return err
		}

		// Write the size of the element
		binary.BigEndian.PutUint32(scratch[:bit32Size], uint32(len(bb)))
		data.Write(scratch[:bit32Size])

		// Append the element
		data.Write(bb)
	}

	if n := data.Len() - start; n > MaxPacketSize {
		return fmt.Errorf("LightMarshalBinary: bundle too large: %d", n)
	}

	return nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (b *Bundle) UnmarshalBinary(data []byte) error {
	if (len(data) % bit32Size) != 0 {
		return fmt.Errorf("UnmarshalBinary: data isn't padded properly")
	}

	if len(data) < 16 {
		return fmt.Errorf("UnmarshalBinary: bundle is too short")
	}

	reader := bytes.NewBuffer(data)

	// Read the '#bundle' OSC string
	startTag, _, err := readPaddedString(reader)
	if err != nil {
		return err
	}

	if startTag != bundleTagString {
		return fmt.Errorf("invalid bundle start tag: %s", startTag)
	}

	// Read the timetag
	if reader.Len() < bit64Size {
		return fmt.Errorf("UnmarshalBinary: bundle is too short")
	}
	b.Timetag = TimeTagFromUint64(binary.BigEndian.Uint64(reader.Next(bit64Size)))
	b.Elements = nil

	// Read until the end of the buffer
	for reader.Len() > 0 {
		if reader.Len() < bit32Size {
			return fmt.Errorf("UnmarshalBinary: truncated bundle element size")
		}

		// Read the size of the bundle element
		length := int(binary.BigEndian.Uint32(reader.Next(bit32Size)))
		if length > reader.Len() {
			return fmt.Errorf("invalid bundle element length: %d", length)
		}

		p, err := ParsePacket(reader.Next(length))
		if err != nil {
			return err
		}
		if err = b.Append(p); err != nil {
			return err
		}
	}

	return nil
}
