// Package demo is a small message tree for a rendering service:
//
//	/routegraph/add_node   i
//	/routegraph/add_edge   i i
//	/renderer/new          i
//	/renderer/del          i
//	/renderer/<id>/say     s
package demo

import (
	"github.com/chabad360/oscaddress/address"
)

// Toplevel is any message understood by the service.
type Toplevel interface {
	address.Message
	isToplevel()
}

// ToplevelRouteGraph is a message to /routegraph[/...].
type ToplevelRouteGraph struct {
	RouteGraph RouteGraph
}

// ToplevelRenderer is a message to /renderer[/...].
type ToplevelRenderer struct {
	Renderer Renderer
}

func (ToplevelRouteGraph) isToplevel() {}
func (ToplevelRenderer) isToplevel()   {}

func (m ToplevelRouteGraph) BuildAddress(b *address.Builder) {
	b.Literal("routegraph")
	b.Nested(m.RouteGraph)
}

func (m ToplevelRouteGraph) EncodeBody(e address.Encoder) error {
	return m.RouteGraph.EncodeBody(e)
}

func (m ToplevelRenderer) BuildAddress(b *address.Builder) {
	b.Literal("renderer")
	b.Nested(m.Renderer)
}

func (m ToplevelRenderer) EncodeBody(e address.Encoder) error {
	return m.Renderer.EncodeBody(e)
}

var toplevelRoutes = address.Branch("Toplevel",
	address.LiteralNested("routegraph", ParseRouteGraph,
		func(rg RouteGraph) Toplevel { return ToplevelRouteGraph{rg} }),
	address.LiteralNested("renderer", ParseRenderer,
		func(r Renderer) Toplevel { return ToplevelRenderer{r} }),
)

// ParseToplevel decodes a service message.
func ParseToplevel(addr string, d address.Decoder) (Toplevel, error) {
	return toplevelRoutes.ParseBody(addr, d)
}

// RouteGraph is a message to /routegraph[/...].
type RouteGraph interface {
	address.Message
	isRouteGraph()
}

// NodeArgs is the argument list of /routegraph/add_node.
type NodeArgs struct {
	Node int32
}

// EdgeArgs is the argument list of /routegraph/add_edge.
type EdgeArgs struct {
	From, To int32
}

// AddNode adds a node to the route graph.
type AddNode struct {
	NodeArgs
}

// AddEdge connects two nodes of the route graph.
type AddEdge struct {
	EdgeArgs
}

func (AddNode) isRouteGraph() {}
func (AddEdge) isRouteGraph() {}

func (AddNode) BuildAddress(b *address.Builder) { b.Literal("add_node") }

func (m AddNode) EncodeBody(e address.Encoder) error { return e.Element(m.NodeArgs) }

func (AddEdge) BuildAddress(b *address.Builder) { b.Literal("add_edge") }

func (m AddEdge) EncodeBody(e address.Encoder) error { return e.Element(m.EdgeArgs) }

var routeGraphRoutes = address.Branch("RouteGraph",
	address.Literal("add_node", func(a NodeArgs) RouteGraph { return AddNode{a} }),
	address.Literal("add_edge", func(a EdgeArgs) RouteGraph { return AddEdge{a} }),
)

// ParseRouteGraph decodes a message to /routegraph[/...].
func ParseRouteGraph(addr string, d address.Decoder) (RouteGraph, error) {
	return routeGraphRoutes.ParseBody(addr, d)
}

// Renderer is a message to /renderer[/...].
type Renderer interface {
	address.Message
	isRenderer()
}

// IDArgs is the argument list of /renderer/new and /renderer/del.
type IDArgs struct {
	ID int32
}

// RendererNew creates a renderer.
type RendererNew struct {
	IDArgs
}

// RendererDel deletes a renderer.
type RendererDel struct {
	IDArgs
}

// RendererByID is a message to /renderer/<id>[/...].
type RendererByID struct {
	ID  uint32
	Msg RendererByIDMessage
}

func (RendererNew) isRenderer()  {}
func (RendererDel) isRenderer()  {}
func (RendererByID) isRenderer() {}

func (RendererNew) BuildAddress(b *address.Builder) { b.Literal("new") }

func (m RendererNew) EncodeBody(e address.Encoder) error { return e.Element(m.IDArgs) }

func (RendererDel) BuildAddress(b *address.Builder) { b.Literal("del") }

func (m RendererDel) EncodeBody(e address.Encoder) error { return e.Element(m.IDArgs) }

func (m RendererByID) BuildAddress(b *address.Builder) {
	b.PathArg(m.ID)
	b.Nested(m.Msg)
}

func (m RendererByID) EncodeBody(e address.Encoder) error {
	return m.Msg.EncodeBody(e)
}

// "new" and "del" are tried before the numeric id.
var rendererRoutes = address.Branch("Renderer",
	address.Literal("new", func(a IDArgs) Renderer { return RendererNew{a} }),
	address.Literal("del", func(a IDArgs) Renderer { return RendererDel{a} }),
	address.ParsedNested(address.ParseUint32, ParseRendererByID,
		func(id uint32, m RendererByIDMessage) Renderer { return RendererByID{ID: id, Msg: m} }),
)

// ParseRenderer decodes a message to /renderer[/...].
func ParseRenderer(addr string, d address.Decoder) (Renderer, error) {
	return rendererRoutes.ParseBody(addr, d)
}

// RendererByIDMessage is a message to /renderer/<id>[/...].
type RendererByIDMessage interface {
	address.Message
	isRendererByID()
}

// SayArgs is the argument list of /renderer/<id>/say.
type SayArgs struct {
	Text string
}

// Say makes a renderer print text.
type Say struct {
	SayArgs
}

func (Say) isRendererByID() {}

func (Say) BuildAddress(b *address.Builder) { b.Literal("say") }

func (m Say) EncodeBody(e address.Encoder) error { return e.Element(m.SayArgs) }

var rendererByIDRoutes = address.Branch("RendererByID",
	address.Literal("say", func(a SayArgs) RendererByIDMessage { return Say{a} }),
)

// ParseRendererByID decodes a message to /renderer/<id>[/...].
func ParseRendererByID(addr string, d address.Decoder) (RendererByIDMessage, error) {
	return rendererByIDRoutes.ParseBody(addr, d)
}
