package wrequest

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/cacexp/wrequest/internal"
)

type Client = internal.Client
type Option = internal.Option
type Handler = internal.Handler
type Middleware = internal.Middleware

// New builds a Client with a private copy of the default dialer and
// applies opts to it. The zero value &Client{} also works and shares the
// package-wide default dialer.
func New(opts ...Option) *Client { return internal.New(opts...) }

// WithDialer replaces the client's dialer outright.
func WithDialer(d Dialer) Option { return internal.WithDialer(d) }

// WithTLSConfig sets the TLS configuration used for https targets.
func WithTLSConfig(cfg *tls.Config) Option { return internal.WithTLSConfig(cfg) }

// WithProxy routes every request through the proxy at rawurl
// (http:// or https://).
func WithProxy(rawurl string) Option { return internal.WithProxy(rawurl) }

// WithProxyFunc decides a proxy per request; return "" for a direct
// connection.
func WithProxyFunc(get func(ctx context.Context, r *Request) (string, error)) Option {
	return internal.WithProxyFunc(get)
}

// WithResolveConfig sets static hosts, address family preference and a
// custom DNS server for name resolution.
func WithResolveConfig(cfg *ResolveConfig) Option { return internal.WithResolveConfig(cfg) }

// WithPoolSize bounds connections per destination: at most maxConns
// checked out at once, at most maxIdle kept for reuse.
func WithPoolSize(maxConns, maxIdle uint) Option { return internal.WithPoolSize(maxConns, maxIdle) }

// WithPoolIdleTimeout discards idle connections older than timeout at
// checkout.
func WithPoolIdleTimeout(timeout time.Duration) Option {
	return internal.WithPoolIdleTimeout(timeout)
}
