package osc

import (
	"errors"
	"net"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HandlerFunc handles a received OSC Packet sent from addr.
type HandlerFunc func(packet Packet, addr net.Addr)

// Server represents an OSC server. The server listens on Addr for incoming OSC
// packets and bundles and hands them to Handler.
type Server struct {
	Addr        string
	Handler     HandlerFunc
	ReadTimeout time.Duration
	Logger      *zap.Logger
	Metrics     *Metrics

	mu   sync.Mutex
	conn net.PacketConn
}

// ListenAndServe listens on addr and hands every received packet to handler.
func ListenAndServe(addr string, handler HandlerFunc) error {
	s := &Server{Addr: addr, Handler: handler}
	return s.ListenAndServe()
}

// ListenAndServe retrieves incoming OSC packets and dispatches the retrieved OSC packets.
func (s *Server) ListenAndServe() error {
	ln, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	return s.Serve(ln)
}

// Serve retrieves incoming OSC packets from the given connection and dispatches
// retrieved OSC packets. Malformed packets are logged and skipped. Serve returns
// nil once the connection is closed through Close.
func (s *Server) Serve(c net.PacketConn) error {
	s.mu.Lock()
	s.conn = c
	s.mu.Unlock()

	log := s.logger()
	var tempDelay time.Duration
	for {
		p, addr, err := s.ReceivePacket(c)
		if err != nil {
			var ne net.Error
			switch {
			case errors.Is(err, net.ErrClosed):
				return nil
			case errors.As(err, &ne) && ne.Timeout():
				continue
			case errors.As(err, &ne):
				s.Metrics.ObserveError("read")
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay *= 2
				}
				if max := 1 * time.Second; tempDelay > max {
					tempDelay = max
				}
				log.Warn("read failed", zap.Error(err), zap.Duration("retry_in", tempDelay))
				time.Sleep(tempDelay)
				continue
			case addr != nil:
				s.Metrics.ObserveError("parse")
				log.Debug("dropping malformed packet", zap.Stringer("from", addr), zap.Error(err))
				continue
			}
			return err
		}
		tempDelay = 0
		s.Metrics.ObservePacket(p)
		go s.serve(p, addr)
	}
}

// Close closes the connection used by Serve.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *Server) serve(p Packet, a net.Addr) {
	defer s.recoverer(a)
	if s.Handler != nil {
		s.Handler(p, a)
	}
}

// recoverer logs a panic raised while handling a packet from a.
func (s *Server) recoverer(a net.Addr) {
	if err := recover(); err != nil {
		buf := make([]byte, 64<<10)
		buf = buf[:runtime.Stack(buf, false)]
		s.Metrics.ObserveError("panic")
		s.logger().Error("panic handling packet",
			zap.Stringer("from", a),
			zap.Any("panic", err),
			zap.ByteString("stack", buf))
	}
}

// ReceivePacket reads a single OSC packet from c.
func (s *Server) ReceivePacket(c net.PacketConn) (Packet, net.Addr, error) {
	return s.readFromConnection(c)
}

// readFromConnection retrieves OSC packets.
func (s *Server) readFromConnection(c net.PacketConn) (Packet, net.Addr, error) {
	if s.ReadTimeout != 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return nil, nil, err
		}
	}

	b := bPool.Get().(*[]byte)
	defer bPool.Put(b)

	n, a, err := c.ReadFrom(*b)
	if err != nil {
		return nil, a, err
	}

	p, err := ParsePacket((*b)[:n])
	return p, a, err
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
