package address

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Route is one variant of a branch node. Routes are built with Literal,
// LiteralNested, Parsed and ParsedNested and combined with Branch.
type Route[M any] struct {
	match func(shape, segment, downstream string, d Decoder) (M, bool, error)
}

// Literal routes the fixed segment to a variant whose payload is an argument
// list of type P. The segment must be the last one of the address.
func Literal[M, P any](segment string, wrap func(P) M) Route[M] {
	return Route[M]{match: func(shape, seg, downstream string, d Decoder) (M, bool, error) {
		var zero M
		if seg != segment || !isEmpty(downstream) {
			return zero, false, nil
		}
		var p P
		if err := readElement(d, &p, shape); err != nil {
			return zero, true, err
		}
		return wrap(p), true, nil
	}}
}

// LiteralNested routes the fixed segment to a variant whose payload is the
// nested message decoded by parse from the rest of the address.
func LiteralNested[M, N any](segment string, parse func(string, Decoder) (N, error), wrap func(N) M) Route[M] {
	return Route[M]{match: func(_, seg, downstream string, d Decoder) (M, bool, error) {
		var zero M
		if seg != segment {
			return zero, false, nil
		}
		n, err := parse(downstream, d)
		if err != nil {
			return zero, true, err
		}
		return wrap(n), true, nil
	}}
}

// Parsed routes any segment accepted by parseArg to a variant whose payload is
// an argument list of type P.
func Parsed[M, T, P any](parseArg func(string) (T, error), wrap func(T, P) M) Route[M] {
	return Route[M]{match: func(shape, seg, _ string, d Decoder) (M, bool, error) {
		var zero M
		arg, err := parseArg(seg)
		if err != nil {
			return zero, false, nil
		}
		var p P
		if err := readElement(d, &p, shape); err != nil {
			return zero, true, err
		}
		return wrap(arg, p), true, nil
	}}
}

// ParsedNested routes any segment accepted by parseArg to a variant whose
// payload is the nested message decoded by parse from the rest of the address.
func ParsedNested[M, T, N any](parseArg func(string) (T, error), parse func(string, Decoder) (N, error), wrap func(T, N) M) Route[M] {
	return Route[M]{match: func(_, seg, downstream string, d Decoder) (M, bool, error) {
		var zero M
		arg, err := parseArg(seg)
		if err != nil {
			return zero, false, nil
		}
		n, err := parse(downstream, d)
		if err != nil {
			return zero, true, err
		}
		return wrap(arg, n), true, nil
	}}
}

// Shape is the ordered route table of a branch node.
type Shape[M any] struct {
	name   string
	routes []Route[M]
}

// Branch returns the route table of the branch node called name. Routes are
// tried in the given order and the first one accepting a segment wins.
func Branch[M any](name string, routes ...Route[M]) *Shape[M] {
	return &Shape[M]{name: name, routes: routes}
}

// Name returns the name of the branch node.
func (s *Shape[M]) Name() string {
	return s.name
}

// ParseBody decodes a message from addr and the payload elements of d.
func (s *Shape[M]) ParseBody(addr string, d Decoder) (M, error) {
	segment, downstream := Split(addr)
	for _, r := range s.routes {
		m, ok, err := r.match(s.name, segment, downstream, d)
		if err != nil {
			var zero M
			return zero, err
		}
		if ok {
			return m, nil
		}
	}

	var zero M
	return zero, &UnrecognizedSegmentError{Shape: s.name, Segment: segment}
}

// ParsePayload decodes a leaf record of type P. The address must be empty or
// "/", and exactly one payload element is read.
func ParsePayload[P any](addr string, d Decoder) (P, error) {
	var p P
	name := typeName[P]()
	if !isEmpty(addr) {
		return p, fmt.Errorf("%s: %w: %q", name, ErrTrailingAddress, addr)
	}
	if err := readElement(d, &p, name); err != nil {
		return p, err
	}
	return p, nil
}

// Split separates the first segment of addr from the rest. The leading '/' is
// dropped from the segment and kept on the remainder, which is empty after the
// last segment.
func Split(addr string) (segment, downstream string) {
	addr = strings.TrimPrefix(addr, "/")
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		return addr[:i], addr[i:]
	}
	return addr, ""
}

// isEmpty reports whether addr has no further path.
func isEmpty(addr string) bool {
	return addr == "" || addr == "/"
}

func readElement(d Decoder, v interface{}, shape string) error {
	err := d.Element(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%s: %w", shape, ErrMissingPayload)
	default:
		return fmt.Errorf("%s: %w", shape, err)
	}
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
