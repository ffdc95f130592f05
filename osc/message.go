package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address pattern and zero or more arguments.
type Message struct {
	Address   string
	Arguments []interface{}
}

// Verify that Messages implements the Packet interface.
var _ Packet = (*Message)(nil)

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...interface{}) *Message {
	return &Message{Address: addr, Arguments: args}
}

// NewMessageFromData returns a new OSC message created from the parsed data.
func NewMessageFromData(data []byte) (*Message, error) {
	msg := &Message{}
	if err := msg.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return msg, nil
}

// Append appends the given arguments to the arguments list.
func (m *Message) Append(args ...interface{}) error {
	for _, a := range args {
		if ToTypeTag(a) == TypeInvalid {
			return fmt.Errorf("Append: unsupported type: %T", a)
		}
	}
	m.Arguments = append(m.Arguments, args...)
	return nil
}

// Clear clears the OSC address and all arguments.
func (m *Message) Clear() {
	m.Address = ""
	m.Arguments = m.Arguments[:0]
}

// Match returns true, if the OSC address pattern of the OSC Message matches the given
// address. The match is case sensitive!
func (m *Message) Match(addr string) bool {
	regexp, err := getRegEx(m.Address)
	if err != nil {
		return false
	}
	return regexp.MatchString(addr)
}

// TypeTags returns the type tag string.
func (m *Message) TypeTags() (string, error) {
	if m == nil {
		return "", fmt.Errorf("TypeTags: message is nil")
	}
	return GetTypeTag(m.Arguments)
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	tags, _ := m.TypeTags()

	var sb strings.Builder
	sb.WriteString(m.Address)
	if len(tags) == 0 {
		return sb.String()
	}

	sb.WriteByte(' ')
	sb.WriteString(tags)

	for _, arg := range m.Arguments {
		switch arg := arg.(type) {
		case bool, int32, int64, float32, float64, string:
			fmt.Fprintf(&sb, " %v", arg)

		case nil:
			sb.WriteString(" Nil")

		case []byte:
			sb.WriteString(" blob")

		case TimeTag:
			fmt.Fprintf(&sb, " %d", arg.Uint64())
		}
	}

	return sb.String()
}

// MarshalBinary serializes the OSC message to a byte slice with the following
// format:
// 1. OSC Address Pattern
// 2. OSC Type Tag String
// 3. OSC Arguments
func (m *Message) MarshalBinary() ([]byte, error) {
	data := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(data)
	data.Reset()

	if err := m.LightMarshalBinary(data); err != nil {
		return nil, err
	}

	b := make([]byte, data.Len())
	copy(b, data.Bytes())
	return b, nil
}

// LightMarshalBinary writes the binary form of the message to data.
func (m *Message) LightMarshalBinary(data *bytes.Buffer) error {
	typetags, err := m.TypeTags()
	if err != nil {
		return fmt.Errorf("LightMarshalBinary: %w", err)
	}

	b := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(b)
	b.Reset()

	var scratch [bit64Size]byte

	// Collect all arguments
	for _, arg := range m.Arguments {
		switch t := arg.(type) {
		case bool, nil:
			continue
		case int32:
			binary.BigEndian.PutUint32(scratch[:bit32Size], uint32(t))
			b.Write(scratch[:bit32Size])
		case float32:
			binary.BigEndian.PutUint32(scratch[:bit32Size], math.Float32bits(t))
			b.Write(scratch[:bit32Size])
		case int64:
			binary.BigEndian.PutUint64(scratch[:], uint64(t))
			b.Write(scratch[:])
		case float64:
			binary.BigEndian.PutUint64(scratch[:], math.Float64bits(t))
			b.Write(scratch[:])
		case string:
			writePaddedString(t, b)
		case []byte:
			if _, err := writeBlob(t, b); err != nil {
				return err
			}
		case TimeTag:
			binary.BigEndian.PutUint64(scratch[:], t.Uint64())
			b.Write(scratch[:])
		}
	}

	start := data.Len()
	writePaddedString(m.Address, data)

	// Write the type tag string to the data buffer
	writePaddedString(typetags, data)

	// Write the payload (OSC arguments) to the data buffer
	data.Write(b.Bytes())

	if n := data.Len() - start; n > MaxPacketSize {
		return fmt.Errorf("LightMarshalBinary: packet too large: %d", n)
	}

	return nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (m *Message) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || data[0] != '/' {
		return fmt.Errorf("UnmarshalBinary: data not a valid OSC message")
	}

	if (len(data) % bit32Size) != 0 {
		return fmt.Errorf("UnmarshalBinary: data isn't padded properly")
	}

	b := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(b)
	b.Reset()
	b.Write(data)

	// First, read the OSC address
	addr, _, err := readPaddedString(b)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}

	// Read all arguments
	m.Address = addr
	if err = m.readArguments(b); err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}

	return nil
}

// readArguments reads the type tag string and the arguments from reader.
func (m *Message) readArguments(reader *bytes.Buffer) error {
	m.Arguments = nil

	// A message without a type tag string has no arguments
	if reader.Len() == 0 {
		return nil
	}

	// Read the type tag string
	typetags, _, err := readPaddedString(reader)
	if err != nil {
		return fmt.Errorf("readArguments: %w", err)
	}

	// If the typetag doesn't start with ',', it's not valid
	if len(typetags) == 0 || typetags[0] != ',' {
		return fmt.Errorf("unsupported typetag string: %q", typetags)
	}

	if len(typetags) > 1 {
		m.Arguments = make([]interface{}, 0, len(typetags)-1)
	}

	for _, c := range typetags[1:] {
		switch TypeTag(c) {
		default:
			return fmt.Errorf("unsupported typetag: %c", c)

		case TypeInt32:
			if reader.Len() < bit32Size {
				return fmt.Errorf("readArguments: int32: %w", io.ErrUnexpectedEOF)
			}
			m.Arguments = append(m.Arguments, int32(binary.BigEndian.Uint32(reader.Next(bit32Size))))

		case TypeInt64:
			if reader.Len() < bit64Size {
				return fmt.Errorf("readArguments: int64: %w", io.ErrUnexpectedEOF)
			}
			m.Arguments = append(m.Arguments, int64(binary.BigEndian.Uint64(reader.Next(bit64Size))))

		case TypeFloat32:
			if reader.Len() < bit32Size {
				return fmt.Errorf("readArguments: float32: %w", io.ErrUnexpectedEOF)
			}
			m.Arguments = append(m.Arguments, math.Float32frombits(binary.BigEndian.Uint32(reader.Next(bit32Size))))

		case TypeFloat64:
			if reader.Len() < bit64Size {
				return fmt.Errorf("readArguments: float64: %w", io.ErrUnexpectedEOF)
			}
			m.Arguments = append(m.Arguments, math.Float64frombits(binary.BigEndian.Uint64(reader.Next(bit64Size))))

		case TypeString:
			str, _, err := readPaddedString(reader)
			if err != nil {
				return fmt.Errorf("readArguments: %w", err)
			}
			m.Arguments = append(m.Arguments, str)

		case TypeBlob:
			buf, _, err := readBlob(reader)
			if err != nil {
				return fmt.Errorf("readArguments: %w", err)
			}
			m.Arguments = append(m.Arguments, buf)

		case TypeTimeTag:
			if reader.Len() < bit64Size {
				return fmt.Errorf("readArguments: timetag: %w", io.ErrUnexpectedEOF)
			}
			m.Arguments = append(m.Arguments, TimeTagFromUint64(binary.BigEndian.Uint64(reader.Next(bit64Size))))

		case TypeNil:
			m.Arguments = append(m.Arguments, nil)

		case TypeTrue:
			m.Arguments = append(m.Arguments, true)

		case TypeFalse:
			m.Arguments = append(m.Arguments, false)
		}
	}

	return nil
}
