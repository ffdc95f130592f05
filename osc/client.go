package osc

import (
	"bytes"
	"context"
	"net"
)

// marshaler is implemented by Message and Bundle.
type marshaler interface {
	LightMarshalBinary(data *bytes.Buffer) error
}

// Client sends OSC packets to a single UDP peer.
type Client struct {
	conn net.Conn
}

// Dial connects a Client to the server at addr.
func Dial(addr string) (*Client, error) {
	return DialContext(context.Background(), addr)
}

// DialContext is like Dial, but resolving the address honours ctx.
func DialContext(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Send writes packet as a single datagram.
func (c *Client) Send(packet Packet) error {
	m, ok := packet.(marshaler)
	if !ok {
		data, err := packet.MarshalBinary()
		if err != nil {
			return err
		}
		_, err = c.conn.Write(data)
		return err
	}

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if err := m.LightMarshalBinary(buf); err != nil {
		return err
	}
	_, err := c.conn.Write(buf.Bytes())
	return err
}

// LocalAddr returns the local address of the client connection.
func (c *Client) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the address of the server.
func (c *Client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection to the server.
func (c *Client) Close() error {
	return c.conn.Close()
}
