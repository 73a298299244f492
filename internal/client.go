package internal

import (
	"context"
	"io"

	"github.com/cacexp/wrequest/internal/dialer"
	"github.com/cacexp/wrequest/internal/message"
	"github.com/cacexp/wrequest/internal/transport"
)

type (
	Request         = message.Request
	PreparedRequest = message.PreparedRequest
	Response        = message.Response
	Dialer          = dialer.Dialer
)

type Handler = func(ctx context.Context, req *PreparedRequest) (*Response, error)
type Middleware func(next Handler) Handler

var h1 = transport.HTTP1{}

// Client sends requests through a middleware chain that bottoms out in
// dial, write and read. The zero value is ready to use and shares the
// default dialer; construct with New to get an isolated one.
type Client struct {
	middlewares []Middleware
	dialer      Dialer
}

// New builds a Client around a private copy of the default dialer, then
// applies opts to it.
func New(opts ...Option) *Client {
	c := &Client{dialer: dialer.Default.Clone()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Use appends mw to the end of the chain. The last "Use"d mw executes first
func (c *Client) Use(mws ...Middleware) {
	c.middlewares = append(c.middlewares, mws...)
}

// UseDialer swaps the dialer for whatever wrap returns. wrap receives the
// current dialer, which is nil while the client still relies on the
// shared default.
func (c *Client) UseDialer(wrap func(Dialer) Dialer) {
	c.dialer = wrap(c.dialer)
}

func (c *Client) dial(ctx context.Context, req *PreparedRequest) (io.ReadWriteCloser, error) {
	if c.dialer != nil {
		return c.dialer.Dial(ctx, req)
	}
	return dialer.Default.Dial(ctx, req)
}

// CtxDo prepares req, runs it through the middleware chain and returns
// the response. The response body must be closed; closing it is what
// hands the connection back for reuse.
func (c *Client) CtxDo(ctx context.Context, req *Request) (*Response, error) {
	pr, err := req.Prepare()
	if err != nil {
		return nil, err
	}
	next := func(ctx context.Context, req *PreparedRequest) (*Response, error) {
		conn, err := c.dial(ctx, req)
		if err != nil {
			return nil, err
		}
		if err := h1.Write(conn, req); err != nil {
			conn.Close()
			return nil, err
		}
		resp := message.NewResponse(0)
		if err := h1.Read(conn, req, resp); err != nil {
			conn.Close()
			return nil, err
		}
		return resp, nil
	}
	for _, mw := range c.middlewares {
		next = mw(next)
	}
	return next(ctx, pr)
}
