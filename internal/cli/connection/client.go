package connection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/yndnr/respkv/internal/protocol/resp"
)

// ErrNoReply is returned when the server stays silent past the timeout.
// respkv answers rejected requests with no reply at all, so this usually
// means the command was unknown or had bad arguments.
var ErrNoReply = errors.New("no reply from server")

// DefaultTimeout bounds dialing and waiting for a reply.
const DefaultTimeout = 2 * time.Second

// Client sends requests on one reusable connection.
type Client struct {
	addr    string
	timeout time.Duration

	conn net.Conn
	r    *bufio.Reader
}

// NewClient creates a client for addr. The connection is opened lazily.
func NewClient(addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{addr: addr, timeout: timeout}
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Connect dials the server if not already connected.
func (c *Client) Connect(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	c.conn = conn
	c.r = bufio.NewReader(conn)
	return nil
}

// Do sends one request and reads one reply.
func (c *Client) Do(ctx context.Context, args ...string) (resp.Reply, error) {
	if len(args) == 0 {
		return resp.Reply{}, errors.New("empty command")
	}
	if err := c.Connect(ctx); err != nil {
		return resp.Reply{}, err
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		c.reset()
		return resp.Reply{}, err
	}

	if _, err := c.conn.Write(resp.AppendRequest(nil, args...)); err != nil {
		c.reset()
		return resp.Reply{}, fmt.Errorf("send: %w", err)
	}

	reply, err := resp.ReadReply(c.r)
	if err != nil {
		// A late reply would be read as the answer to the next request.
		c.reset()
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return resp.Reply{}, fmt.Errorf("%w within %s", ErrNoReply, c.timeout)
		}
		return resp.Reply{}, fmt.Errorf("read reply: %w", err)
	}
	return reply, nil
}

// Close closes the connection, if any.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.r = nil, nil
	return err
}

func (c *Client) reset() {
	_ = c.Close()
}
