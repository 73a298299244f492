package internal

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/cacexp/wrequest/internal/dialer"
	"github.com/cacexp/wrequest/utils/netpool"
)

// Option configures a Client built with New.
type Option func(*Client)

// coreDialer digs the CoreDialer out of a possibly wrapped dialer chain.
// Options that tune connection behavior are no-ops when a custom dialer
// chain hides no CoreDialer.
func (c *Client) coreDialer() *dialer.CoreDialer {
	d := c.dialer
	for d != nil {
		if cd, ok := d.(*dialer.CoreDialer); ok {
			return cd
		}
		d = d.Unwrap()
	}
	return nil
}

// WithDialer replaces the client's dialer outright.
func WithDialer(d Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// WithTLSConfig sets the TLS configuration used for https targets.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *Client) {
		if d := c.coreDialer(); d != nil {
			d.TLSConfig = cfg
		}
	}
}

// WithProxy routes every request through the proxy at rawurl
// (http:// or https://).
func WithProxy(rawurl string) Option {
	return func(c *Client) {
		if d := c.coreDialer(); d != nil {
			d.GetProxy = func(context.Context, *Request) (string, error) {
				return rawurl, nil
			}
		}
	}
}

// WithProxyFunc decides a proxy per request; return "" for a direct
// connection.
func WithProxyFunc(get func(ctx context.Context, r *Request) (string, error)) Option {
	return func(c *Client) {
		if d := c.coreDialer(); d != nil {
			d.GetProxy = get
		}
	}
}

// WithResolveConfig sets static hosts, address family preference and a
// custom DNS server for name resolution.
func WithResolveConfig(cfg *dialer.ResolveConfig) Option {
	return func(c *Client) {
		if d := c.coreDialer(); d != nil {
			d.ResolveConfig = cfg
		}
	}
}

// WithPoolSize bounds connections per destination: at most maxConns
// checked out at once, at most maxIdle kept around for reuse.
func WithPoolSize(maxConns, maxIdle uint) Option {
	return func(c *Client) {
		if d := c.coreDialer(); d != nil {
			idle := time.Duration(0)
			if d.ConnPool != nil {
				idle = d.ConnPool.MaxIdleDuration
			}
			d.ConnPool = netpool.NewGroup(maxConns, maxIdle)
			d.ConnPool.MaxIdleDuration = idle
		}
	}
}

// WithPoolIdleTimeout discards idle connections older than timeout at
// checkout.
func WithPoolIdleTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if d := c.coreDialer(); d != nil && d.ConnPool != nil {
			d.ConnPool.MaxIdleDuration = timeout
		}
	}
}
