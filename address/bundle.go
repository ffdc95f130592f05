package address

import (
	"errors"
	"fmt"

	"github.com/chabad360/oscaddress/osc"
)

// Packet is either a typed message or a nested bundle. Exactly one of Message
// and Bundle is meaningful: Bundle is nil for message packets.
type Packet[M Message] struct {
	Message M
	Bundle  *Bundle[M]
}

// MessagePacket returns a packet holding m.
func MessagePacket[M Message](m M) Packet[M] {
	return Packet[M]{Message: m}
}

// BundlePacket returns a packet holding b.
func BundlePacket[M Message](b *Bundle[M]) Packet[M] {
	return Packet[M]{Bundle: b}
}

// IsBundle reports whether p holds a bundle.
func (p Packet[M]) IsBundle() bool {
	return p.Bundle != nil
}

// Marshal converts p to an OSC packet.
func (p Packet[M]) Marshal() (osc.Packet, error) {
	if p.Bundle != nil {
		return p.Bundle.Marshal()
	}
	if any(p.Message) == nil {
		return nil, ErrEmptyPacket
	}
	return Marshal(p.Message)
}

// Bundle is a typed OSC bundle: packets to be processed together at TimeTag.
type Bundle[M Message] struct {
	TimeTag osc.TimeTag
	Packets []Packet[M]
}

// NewBundle returns a bundle of packets due at tag.
func NewBundle[M Message](tag osc.TimeTag, packets ...Packet[M]) *Bundle[M] {
	return &Bundle[M]{TimeTag: tag, Packets: packets}
}

// Marshal converts b to an OSC bundle.
func (b *Bundle[M]) Marshal() (*osc.Bundle, error) {
	ob := &osc.Bundle{Timetag: b.TimeTag}
	for i, p := range b.Packets {
		op, err := p.Marshal()
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
		ob.Elements = append(ob.Elements, op)
	}
	return ob, nil
}

// MarshalBinary returns the OSC wire form of b.
func (b *Bundle[M]) MarshalBinary() ([]byte, error) {
	ob, err := b.Marshal()
	if err != nil {
		return nil, err
	}
	return ob.MarshalBinary()
}

// UnmarshalPacket decodes an OSC packet. For bundles the result is that of
// UnmarshalBundle.
func UnmarshalPacket[M Message](p osc.Packet, parse func(string, Decoder) (M, error)) (Packet[M], error) {
	switch p := p.(type) {
	case *osc.Message:
		m, err := Unmarshal(p, parse)
		if err != nil {
			return Packet[M]{}, err
		}
		return MessagePacket(m), nil
	case *osc.Bundle:
		b, err := UnmarshalBundle(p, parse)
		return BundlePacket(b), err
	default:
		return Packet[M]{}, fmt.Errorf("unsupported OSC packet type %T", p)
	}
}

// UnmarshalBundle decodes every packet of b independently. Packets that fail to
// decode are left out of the result, and their errors are returned joined as
// *PacketError values. The returned bundle is never nil.
func UnmarshalBundle[M Message](b *osc.Bundle, parse func(string, Decoder) (M, error)) (*Bundle[M], error) {
	var errs []error
	out := unmarshalBundle(b, parse, nil, &errs)
	return out, errors.Join(errs...)
}

func unmarshalBundle[M Message](b *osc.Bundle, parse func(string, Decoder) (M, error), path []int, errs *[]error) *Bundle[M] {
	out := &Bundle[M]{TimeTag: b.Timetag}
	for i, elem := range b.Elements {
		elemPath := append(append([]int(nil), path...), i)
		switch e := elem.(type) {
		case *osc.Message:
			m, err := Unmarshal(e, parse)
			if err != nil {
				*errs = append(*errs, &PacketError{Path: elemPath, Err: err})
				continue
			}
			out.Packets = append(out.Packets, MessagePacket(m))
		case *osc.Bundle:
			out.Packets = append(out.Packets, BundlePacket(unmarshalBundle(e, parse, elemPath, errs)))
		default:
			*errs = append(*errs, &PacketError{Path: elemPath, Err: fmt.Errorf("unsupported OSC packet type %T", elem)})
		}
	}
	return out
}

// UnmarshalPacketBinary decodes the OSC wire form of a message or bundle.
func UnmarshalPacketBinary[M Message](data []byte, parse func(string, Decoder) (M, error)) (Packet[M], error) {
	p, err := osc.ParsePacket(data)
	if err != nil {
		return Packet[M]{}, err
	}
	return UnmarshalPacket(p, parse)
}
