// Package address maps typed Go message trees onto OSC addresses and back.
//
// A message tree is a set of Go types. A branch node is an interface whose
// implementations are its variants. Each variant contributes one address
// segment, either a fixed literal or a rendered path argument, and carries a
// payload. The payload is either a terminal argument list or another branch
// node. Leaf records are plain structs that only carry arguments.
//
// Encoding walks a value top-down: BuildAddress appends one segment per
// level and EncodeBody writes the leaf payload as OSC arguments. Decoding
// walks the address segment by segment through an ordered route table built
// with Branch. The first route that accepts a segment wins, so route order is
// part of the tree's meaning:
//
//	var rendererRoutes = address.Branch("Renderer",
//		address.Literal("new", func(a IDArgs) Renderer { return RendererNew{a} }),
//		address.ParsedNested(address.ParseUint32, ParseRendererByID,
//			func(id uint32, m RendererByIDMessage) Renderer { return RendererByID{id, m} }),
//	)
//
// Marshal and Unmarshal convert between message values and *osc.Message.
// Bundle and Packet carry typed messages inside OSC bundles, and Dispatcher
// routes packets received by an osc.Server to a typed handler.
package address
