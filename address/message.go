package address

import (
	"encoding"
	"fmt"
	"strings"
)

// Message is implemented by every type of a message tree: the variants of
// branch nodes and the leaf records used as payloads.
type Message interface {
	// BuildAddress appends the address of the message to b. Leaf records
	// append nothing.
	BuildAddress(b *Builder)

	// EncodeBody writes the leaf payload of the message to e. Variants with a
	// nested payload delegate to it.
	EncodeBody(e Encoder) error
}

// Encoder receives the elements of a message payload. *osc.ArgumentWriter
// implements it.
type Encoder interface {
	Element(v interface{}) error
}

// Decoder yields the elements of a message payload. Element returns io.EOF
// once no element is left. *osc.ArgumentReader implements it.
type Decoder interface {
	Element(v interface{}) error
}

// ParseFunc decodes a message from its remaining address and payload.
type ParseFunc[M any] func(addr string, d Decoder) (M, error)

// Builder accumulates an OSC address. The first invalid segment is recorded
// and stops the build.
type Builder struct {
	sb  strings.Builder
	err error
}

// Literal appends the fixed segment s.
func (b *Builder) Literal(s string) {
	b.segment(s)
}

// PathArg appends the textual form of v as a segment. Values implementing
// encoding.TextMarshaler or fmt.Stringer use those, anything else is formatted
// with fmt.
func (b *Builder) PathArg(v interface{}) {
	if b.err != nil {
		return
	}

	switch v := v.(type) {
	case string:
		b.segment(v)
	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err != nil {
			b.err = fmt.Errorf("%w: %v", ErrInvalidSegment, err)
			return
		}
		b.segment(string(text))
	case fmt.Stringer:
		b.segment(v.String())
	default:
		b.segment(fmt.Sprint(v))
	}
}

// Nested appends the address of m.
func (b *Builder) Nested(m Message) {
	if b.err != nil {
		return
	}
	m.BuildAddress(b)
}

// String returns the address built so far.
func (b *Builder) String() string {
	return b.sb.String()
}

// Err returns the first error encountered while building.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) segment(s string) {
	if b.err != nil {
		return
	}
	if s == "" || strings.IndexByte(s, '/') >= 0 {
		b.err = fmt.Errorf("%w: %q", ErrInvalidSegment, s)
		return
	}
	b.sb.WriteByte('/')
	b.sb.WriteString(s)
}

// Address returns the OSC address of m. Leaf records have the empty address.
func Address(m Message) (string, error) {
	var b Builder
	m.BuildAddress(&b)
	if err := b.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}
