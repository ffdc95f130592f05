package address_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chabad360/oscaddress/address"
	"github.com/chabad360/oscaddress/internal/demo"
	"github.com/chabad360/oscaddress/osc"
)

func raw(parts ...string) []byte {
	return []byte(strings.Join(parts, ""))
}

var sayHello = demo.ToplevelRenderer{Renderer: demo.RendererByID{
	ID:  42,
	Msg: demo.Say{SayArgs: demo.SayArgs{Text: "HELLO, WORLD!"}},
}}

var sayHelloRaw = raw(
	"/renderer/42/say\x00\x00\x00\x00",
	",s\x00\x00",
	"HELLO, WORLD!\x00\x00\x00",
)

func TestUnmarshalBinary_RendererSay(t *testing.T) {
	got, err := address.UnmarshalBinary(sayHelloRaw, demo.ParseToplevel)
	require.NoError(t, err)
	assert.Equal(t, demo.Toplevel(sayHello), got)

	addr, err := address.Address(got)
	require.NoError(t, err)
	assert.Equal(t, "/renderer/42/say", addr)

	data, err := address.MarshalBinary(got)
	require.NoError(t, err)
	assert.Equal(t, sayHelloRaw, data)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  demo.Toplevel
		addr string
		args []interface{}
	}{
		{"add_node", demo.ToplevelRouteGraph{RouteGraph: demo.AddNode{NodeArgs: demo.NodeArgs{Node: 3}}},
			"/routegraph/add_node", []interface{}{int32(3)}},
		{"add_edge", demo.ToplevelRouteGraph{RouteGraph: demo.AddEdge{EdgeArgs: demo.EdgeArgs{From: 1, To: -2}}},
			"/routegraph/add_edge", []interface{}{int32(1), int32(-2)}},
		{"renderer_new", demo.ToplevelRenderer{Renderer: demo.RendererNew{IDArgs: demo.IDArgs{ID: 7}}},
			"/renderer/new", []interface{}{int32(7)}},
		{"renderer_del", demo.ToplevelRenderer{Renderer: demo.RendererDel{IDArgs: demo.IDArgs{ID: 8}}},
			"/renderer/del", []interface{}{int32(8)}},
		{"renderer_say", sayHello, "/renderer/42/say", []interface{}{"HELLO, WORLD!"}},
		{"renderer_max_id", demo.ToplevelRenderer{Renderer: demo.RendererByID{ID: 4294967295, Msg: demo.Say{}}},
			"/renderer/4294967295/say", []interface{}{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := address.Marshal(tt.msg)
			require.NoError(t, err)
			assert.Equal(t, tt.addr, msg.Address)
			assert.Equal(t, tt.args, msg.Arguments)

			got, err := address.Unmarshal(msg, demo.ParseToplevel)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, got)

			data, err := msg.MarshalBinary()
			require.NoError(t, err)
			got, err = address.UnmarshalBinary(data, demo.ParseToplevel)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, got)
		})
	}
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name    string
		msg     *osc.Message
		segment string // non-empty for UnrecognizedSegmentError
		shape   string
		target  error
	}{
		{"unknown_toplevel", osc.NewMessage("/foo"), "foo", "Toplevel", nil},
		{"empty_address", osc.NewMessage(""), "", "Toplevel", nil},
		{"literal_before_parsed", osc.NewMessage("/renderer/abc/say", "hi"), "abc", "Renderer", nil},
		{"literal_leaf_with_path", osc.NewMessage("/renderer/new/x", int32(1)), "new", "Renderer", nil},
		{"unknown_leaf", osc.NewMessage("/renderer/42/shout", "hi"), "shout", "RendererByID", nil},
		{"id_out_of_range", osc.NewMessage("/renderer/4294967296/say", "hi"), "4294967296", "Renderer", nil},
		{"missing_payload", osc.NewMessage("/renderer/new"), "", "", address.ErrMissingPayload},
		{"missing_second_argument", osc.NewMessage("/routegraph/add_edge", int32(1)), "", "", address.ErrMissingPayload},
		{"trailing_arguments", osc.NewMessage("/renderer/new", int32(1), int32(2)), "", "", address.ErrTrailingArguments},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := address.Unmarshal(tt.msg, demo.ParseToplevel)
			require.Error(t, err)

			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
				return
			}

			var segErr *address.UnrecognizedSegmentError
			require.ErrorAs(t, err, &segErr)
			assert.Equal(t, tt.segment, segErr.Segment)
			assert.Equal(t, tt.shape, segErr.Shape)
		})
	}
}

func TestUnmarshal_WrongArgumentType(t *testing.T) {
	_, err := address.Unmarshal(osc.NewMessage("/renderer/new", "seven"), demo.ParseToplevel)
	require.Error(t, err)
	assert.False(t, errors.Is(err, address.ErrMissingPayload))
}

func TestLeafRecordPayload(t *testing.T) {
	msg := LeafFirst{Data: MsgData{V: 0x01020304, S: "test"}}

	data, err := address.MarshalBinary(msg)
	require.NoError(t, err)
	assert.Equal(t, raw("/first\x00\x00", ",is\x00", "\x01\x02\x03\x04", "test\x00\x00\x00\x00"), data)

	got, err := address.UnmarshalBinary(data, parseMsgLeaf)
	require.NoError(t, err)
	assert.Equal(t, MsgLeaf(msg), got)

	got, err = address.Unmarshal(osc.NewMessage("/first/", int32(1), "x"), parseMsgLeaf)
	require.NoError(t, err, "a bare '/' ends the address")
	assert.Equal(t, MsgLeaf(LeafFirst{Data: MsgData{V: 1, S: "x"}}), got)

	_, err = address.Unmarshal(osc.NewMessage("/first/extra", int32(1), "x"), parseMsgLeaf)
	assert.ErrorIs(t, err, address.ErrTrailingAddress)

	_, err = address.Unmarshal(osc.NewMessage("/first"), parseMsgLeaf)
	assert.ErrorIs(t, err, address.ErrMissingPayload)
}

func TestLeafRecordAsMessage(t *testing.T) {
	msg, err := address.Marshal(MsgData{V: 1, S: "x"})
	require.NoError(t, err)
	assert.Equal(t, "/", msg.Address)

	addr, err := address.Address(MsgData{})
	require.NoError(t, err)
	assert.Empty(t, addr)

	got, err := address.Unmarshal(msg, address.ParsePayload[MsgData])
	require.NoError(t, err)
	assert.Equal(t, MsgData{V: 1, S: "x"}, got)
}

func TestNestedAddress(t *testing.T) {
	var second LeafSecond
	second.Args.I = -1
	msg := RootLeft{Leaf: second}

	addr, err := address.Address(msg)
	require.NoError(t, err)
	assert.Equal(t, "/left/second", addr)

	om, err := address.Marshal(msg)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int32(-1), float32(0)}, om.Arguments)

	got, err := address.Unmarshal(om, parseMsgRoot)
	require.NoError(t, err)
	assert.Equal(t, MsgRoot(msg), got)
}

func TestPathArgument(t *testing.T) {
	data, err := address.MarshalBinary(NumberedN{N: 42})
	require.NoError(t, err)
	assert.Equal(t, raw("/42\x00", ",\x00\x00\x00"), data)

	got, err := address.UnmarshalBinary(data, parseNumbered)
	require.NoError(t, err)
	assert.Equal(t, Numbered(NumberedN{N: 42}), got)

	got, err = address.Unmarshal(osc.NewMessage("/first"), parseNumbered)
	require.NoError(t, err)
	assert.Equal(t, Numbered(NumberedFirst{}), got)

	// A parsed leaf takes the segment regardless of what follows it.
	got, err = address.Unmarshal(osc.NewMessage("/-7/ignored"), parseNumbered)
	require.NoError(t, err)
	assert.Equal(t, Numbered(NumberedN{N: -7}), got)
}

type slashy struct{}

func (slashy) BuildAddress(b *address.Builder) {
	b.Literal("ok")
	b.PathArg("a/b")
	b.Literal("never")
}

func (slashy) EncodeBody(address.Encoder) error { return nil }

func TestAddress_InvalidSegment(t *testing.T) {
	_, err := address.Address(slashy{})
	assert.ErrorIs(t, err, address.ErrInvalidSegment)

	_, err = address.Marshal(slashy{})
	assert.ErrorIs(t, err, address.ErrInvalidSegment)

	var b address.Builder
	b.Literal("")
	assert.ErrorIs(t, b.Err(), address.ErrInvalidSegment)
}

func FuzzUnmarshalPacketBinary(f *testing.F) {
	f.Add(sayHelloRaw)
	f.Add(raw("/renderer/new\x00\x00\x00", ",i\x00\x00", "\x00\x00\x00\x07"))
	f.Add(raw("#bundle\x00", "\x00\x00\x00\x00\x00\x00\x00\x01", "\x00\x00\x00\x08", "/foo\x00\x00\x00\x00"))
	f.Fuzz(func(t *testing.T, data []byte) {
		p, err := address.UnmarshalPacketBinary(data, demo.ParseToplevel)
		if err != nil || p.IsBundle() {
			return
		}

		// Anything that decodes must encode to a message that decodes the same.
		again, err := address.MarshalBinary(p.Message)
		if err != nil {
			t.Fatalf("MarshalBinary(%#v): %v", p.Message, err)
		}
		got, err := address.UnmarshalBinary(again, demo.ParseToplevel)
		if err != nil {
			t.Fatalf("UnmarshalBinary(%q): %v", again, err)
		}
		if !reflect.DeepEqual(got, p.Message) {
			t.Fatalf("round trip: got %#v, want %#v", got, p.Message)
		}
	})
}
