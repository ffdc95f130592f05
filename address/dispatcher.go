package address

import (
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/chabad360/oscaddress/osc"
)

// Dispatcher decodes received OSC packets into typed messages and hands them to
// Handler. Its Dispatch method is an osc.HandlerFunc.
//
// Bundles are held until their time tag is due. Every message is decoded on its
// own: a message that fails to decode is logged and counted, and its siblings
// are still delivered.
type Dispatcher[M Message] struct {
	Parse   ParseFunc[M]
	Handler func(msg M, from net.Addr)
	Logger  *zap.Logger
	Metrics *osc.Metrics
}

// Dispatch routes p, received from from.
func (d *Dispatcher[M]) Dispatch(p osc.Packet, from net.Addr) {
	switch p := p.(type) {
	case *osc.Message:
		d.dispatchMessage(p, from)

	case *osc.Bundle:
		if delay := p.Timetag.ExpiresIn(); delay > 0 {
			time.AfterFunc(delay, func() { d.dispatchElements(p, from) })
			return
		}
		d.dispatchElements(p, from)

	default:
		d.logger().Warn("dispatch: invalid packet", zap.String("type", fmt.Sprintf("%T", p)))
	}
}

func (d *Dispatcher[M]) dispatchElements(b *osc.Bundle, from net.Addr) {
	for _, elem := range b.Elements {
		d.Dispatch(elem, from)
	}
}

func (d *Dispatcher[M]) dispatchMessage(msg *osc.Message, from net.Addr) {
	m, err := Unmarshal(msg, d.Parse)
	if err != nil {
		d.Metrics.ObserveRouted(false)
		d.Metrics.ObserveError("route")
		d.logger().Warn("unroutable message",
			zap.String("address", msg.Address),
			zap.Any("from", from),
			zap.Error(err))
		return
	}

	d.Metrics.ObserveRouted(true)
	if d.Handler != nil {
		d.Handler(m, from)
	}
}

func (d *Dispatcher[M]) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
