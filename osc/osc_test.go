package osc

import "strings"

type testCase struct {
	name    string
	obj     Packet
	raw     []byte
	wantErr bool
}

// raw joins the given strings into a byte slice.
func raw(parts ...string) []byte {
	return []byte(strings.Join(parts, ""))
}

var messageTestCases = []testCase{
	{"no_arguments", NewMessage("/a"), raw("/a\x00\x00", ",\x00\x00\x00"), false},
	{"int_string", NewMessage("/address", int32(1), "hi"), raw(
		"/address\x00\x00\x00\x00",
		",is\x00",
		"\x00\x00\x00\x01",
		"hi\x00\x00",
	), false},
	{"bools_and_nil", NewMessage("/b", true, false, nil), raw("/b\x00\x00", ",TFN\x00\x00\x00\x00"), false},
	{"blob", NewMessage("/blob", []byte{1, 2, 3}), raw(
		"/blob\x00\x00\x00",
		",b\x00\x00",
		"\x00\x00\x00\x03\x01\x02\x03\x00",
	), false},
	{"wide_types", NewMessage("/x", int64(-1), float64(1), NewTimeTag(1, 2)), raw(
		"/x\x00\x00",
		",hdt\x00\x00\x00\x00",
		"\xff\xff\xff\xff\xff\xff\xff\xff",
		"\x3f\xf0\x00\x00\x00\x00\x00\x00",
		"\x00\x00\x00\x01\x00\x00\x00\x02",
	), false},
	{"float32", NewMessage("/f", float32(0.5)), raw("/f\x00\x00", ",f\x00\x00", "\x3f\x00\x00\x00"), false},
}

var bundleTestCases = []testCase{
	{"empty_immediate", &Bundle{Timetag: NewImmediateTimeTag()}, raw(
		"#bundle\x00",
		"\x00\x00\x00\x00\x00\x00\x00\x01",
	), false},
	{"one_message", &Bundle{Timetag: NewTimeTag(3, 4), Elements: []Packet{NewMessage("/a")}}, raw(
		"#bundle\x00",
		"\x00\x00\x00\x03\x00\x00\x00\x04",
		"\x00\x00\x00\x08",
		"/a\x00\x00,\x00\x00\x00",
	), false},
	{"nested_bundle", &Bundle{Timetag: NewImmediateTimeTag(), Elements: []Packet{
		&Bundle{Timetag: NewImmediateTimeTag(), Elements: []Packet{NewMessage("/a", int32(7))}},
	}}, raw(
		"#bundle\x00",
		"\x00\x00\x00\x00\x00\x00\x00\x01",
		"\x00\x00\x00\x20",
		"#bundle\x00",
		"\x00\x00\x00\x00\x00\x00\x00\x01",
		"\x00\x00\x00\x0c",
		"/a\x00\x00,i\x00\x00\x00\x00\x00\x07",
	), false},
}
