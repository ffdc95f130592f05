package osc

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Method is an interface for OSC Methods.
type Method interface {
	HandleMessage(msg *Message)
}

// MethodFunc implements the Method interface. Type definition for an OSC Method function.
type MethodFunc func(msg *Message)

// HandleMessage calls itself with the given OSC Message. Implements the Method interface.
func (f MethodFunc) HandleMessage(msg *Message) {
	f(msg)
}

// Dispatcher handles the dispatching of received OSC Packets to Methods whose
// address matches the address pattern of the message. Its Dispatch method is a
// HandlerFunc.
type Dispatcher struct {
	Logger *zap.Logger

	mu      sync.RWMutex
	methods map[string]Method
}

// AddMethod adds a new OSC Method for the given OSC Address.
func (d *Dispatcher) AddMethod(addr string, method Method) error {
	if strings.ContainsAny(addr, "*?,[]{}# ") {
		return fmt.Errorf("AddMethod: OSC Method may not contain any characters in \"*?,[]{}# \"")
	}
	if !strings.HasPrefix(addr, "/") {
		return fmt.Errorf("AddMethod: OSC Method must start with '/'")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.methods == nil {
		d.methods = make(map[string]Method)
	}

	if _, ok := d.methods[addr]; ok {
		return fmt.Errorf("AddMethod: OSC Method exists already")
	}

	d.methods[addr] = method
	return nil
}

// AddMethodFunc allows you to just pass a MethodFunc.
func (d *Dispatcher) AddMethodFunc(addr string, method MethodFunc) error {
	return d.AddMethod(addr, method)
}

// Dispatch dispatches OSC Packets. Messages are handed to every matching
// method, bundles are dispatched once their time tag is due.
func (d *Dispatcher) Dispatch(packet Packet, a net.Addr) {
	switch p := packet.(type) {
	case *Message:
		r, err := getRegEx(p.Address)
		if err != nil {
			d.logger().Debug("invalid address pattern", zap.String("address", p.Address), zap.Error(err))
			return
		}

		d.mu.RLock()
		var matched []Method
		for addr, method := range d.methods {
			if r.MatchString(addr) {
				matched = append(matched, method)
			}
		}
		d.mu.RUnlock()

		for _, method := range matched {
			method.HandleMessage(p)
		}

	case *Bundle:
		time.AfterFunc(p.Timetag.ExpiresIn(), func() {
			for _, elem := range p.Elements {
				d.Dispatch(elem, a)
			}
		})

	default:
		d.logger().Warn("dispatch: invalid packet", zap.String("type", fmt.Sprintf("%T", p)))
	}
}

func (d *Dispatcher) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
