package address

import (
	"fmt"

	"github.com/chabad360/oscaddress/osc"
)

// Marshal converts m into an OSC message: its address followed by the
// flattened leaf payload. Leaf records are sent to "/".
func Marshal(m Message) (*osc.Message, error) {
	addr, err := Address(m)
	if err != nil {
		return nil, err
	}
	if addr == "" {
		addr = "/"
	}

	w := &osc.ArgumentWriter{}
	if err := m.EncodeBody(w); err != nil {
		return nil, fmt.Errorf("%s: %w", addr, err)
	}

	return osc.NewMessage(addr, w.Arguments...), nil
}

// MarshalBinary returns the OSC wire form of m.
func MarshalBinary(m Message) ([]byte, error) {
	msg, err := Marshal(m)
	if err != nil {
		return nil, err
	}
	return msg.MarshalBinary()
}

// Unmarshal decodes msg with parse. Every argument of msg must be consumed.
func Unmarshal[M any](msg *osc.Message, parse func(string, Decoder) (M, error)) (M, error) {
	r := osc.NewArgumentReader(msg.Arguments)
	m, err := parse(msg.Address, r)
	if err != nil {
		return m, err
	}
	if n := r.Remaining(); n > 0 {
		var zero M
		return zero, fmt.Errorf("%s: %w: %d left", msg.Address, ErrTrailingArguments, n)
	}
	return m, nil
}

// UnmarshalBinary decodes the OSC wire form of a message with parse.
func UnmarshalBinary[M any](data []byte, parse func(string, Decoder) (M, error)) (M, error) {
	msg, err := osc.NewMessageFromData(data)
	if err != nil {
		var zero M
		return zero, err
	}
	return Unmarshal(msg, parse)
}
