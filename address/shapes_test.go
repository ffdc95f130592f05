package address_test

import (
	"github.com/chabad360/oscaddress/address"
)

// MsgData is a leaf record used as a nested payload.
type MsgData struct {
	V int32
	S string
}

func (MsgData) BuildAddress(*address.Builder) {}

func (d MsgData) EncodeBody(e address.Encoder) error { return e.Element(d) }

type MsgLeaf interface {
	address.Message
	isMsgLeaf()
}

// LeafFirst is /first with a MsgData payload.
type LeafFirst struct{ Data MsgData }

// LeafSecond is /second with (i32, f32) arguments.
type LeafSecond struct {
	Args struct {
		I int32
		F float32
	}
}

func (LeafFirst) isMsgLeaf()  {}
func (LeafSecond) isMsgLeaf() {}

func (m LeafFirst) BuildAddress(b *address.Builder) {
	b.Literal("first")
	b.Nested(m.Data)
}

func (m LeafFirst) EncodeBody(e address.Encoder) error { return m.Data.EncodeBody(e) }

func (LeafSecond) BuildAddress(b *address.Builder) { b.Literal("second") }

func (m LeafSecond) EncodeBody(e address.Encoder) error { return e.Element(m.Args) }

var msgLeafRoutes = address.Branch("MsgLeaf",
	address.LiteralNested("first", address.ParsePayload[MsgData],
		func(d MsgData) MsgLeaf { return LeafFirst{d} }),
	address.Literal("second", func(a struct {
		I int32
		F float32
	}) MsgLeaf {
		return LeafSecond{Args: a}
	}),
)

func parseMsgLeaf(addr string, d address.Decoder) (MsgLeaf, error) {
	return msgLeafRoutes.ParseBody(addr, d)
}

type MsgRoot interface {
	address.Message
	isMsgRoot()
}

type RootLeft struct{ Leaf MsgLeaf }

type RootRight struct{ Leaf MsgLeaf }

func (RootLeft) isMsgRoot()  {}
func (RootRight) isMsgRoot() {}

func (m RootLeft) BuildAddress(b *address.Builder) {
	b.Literal("left")
	b.Nested(m.Leaf)
}

func (m RootLeft) EncodeBody(e address.Encoder) error { return m.Leaf.EncodeBody(e) }

func (m RootRight) BuildAddress(b *address.Builder) {
	b.Literal("right")
	b.Nested(m.Leaf)
}

func (m RootRight) EncodeBody(e address.Encoder) error { return m.Leaf.EncodeBody(e) }

var msgRootRoutes = address.Branch("MsgRoot",
	address.LiteralNested("left", parseMsgLeaf, func(l MsgLeaf) MsgRoot { return RootLeft{l} }),
	address.LiteralNested("right", parseMsgLeaf, func(l MsgLeaf) MsgRoot { return RootRight{l} }),
)

func parseMsgRoot(addr string, d address.Decoder) (MsgRoot, error) {
	return msgRootRoutes.ParseBody(addr, d)
}

// Numbered routes a literal and a parsed path argument, both with empty
// payloads.
type Numbered interface {
	address.Message
	isNumbered()
}

type NumberedFirst struct{}

type NumberedN struct{ N int32 }

func (NumberedFirst) isNumbered() {}
func (NumberedN) isNumbered()     {}

func (NumberedFirst) BuildAddress(b *address.Builder) { b.Literal("first") }

func (NumberedFirst) EncodeBody(e address.Encoder) error { return e.Element(struct{}{}) }

func (m NumberedN) BuildAddress(b *address.Builder) { b.PathArg(m.N) }

func (NumberedN) EncodeBody(e address.Encoder) error { return e.Element(struct{}{}) }

var numberedRoutes = address.Branch("Numbered",
	address.Literal("first", func(struct{}) Numbered { return NumberedFirst{} }),
	address.Parsed(address.ParseInt32, func(n int32, _ struct{}) Numbered { return NumberedN{n} }),
)

func parseNumbered(addr string, d address.Decoder) (Numbered, error) {
	return numberedRoutes.ParseBody(addr, d)
}
