package dialer

import (
	"context"
	"crypto/tls"
	"io"
	"net"

	"github.com/cacexp/wrequest/internal/message"
)

var schemes = map[string]string{
	"http": "80", "https": "443", "socks": "1080",
}

var zeroDialer net.Dialer
var customDNSDialer = net.Dialer{
	Resolver: &customServerResolver,
}

// Dial checks a connection to the request target out of the pool, dialing
// and handshaking a fresh one when no idle connection is around. The
// request URL must already be prepared (absolute, punycoded host).
func (d *CoreDialer) Dial(ctx context.Context, r *message.PreparedRequest) (io.ReadWriteCloser, error) {
	ctx = shadowClientTrace(ctx)
	addr, port := r.U.Host, schemes[r.U.Scheme]
	if add, prt, err := net.SplitHostPort(addr); err == nil {
		addr, port = add, prt
	}
	hp := net.JoinHostPort(addr, port)
	return d.ConnPool.Connect(ctx, hp, func(ctx context.Context) (conn net.Conn, err error) {
		conn, err = d.tryDialProxy(ctx, r)
		if err != nil {
			return nil, err
		}
		if conn == nil {
			// as of now net.Dialer could handle current DNS configurations
			network, dialer, dialctx, dst := "tcp", &zeroDialer, ctx, hp

			if cfg := d.ResolveConfig; cfg != nil {
				if cfg.Network == "ip4" {
					network = "tcp4"
				} else if cfg.Network == "ip6" {
					network = "tcp6"
				}
				if static, ok := cfg.StaticHosts[addr]; ok {
					dst = net.JoinHostPort(static, port)
				}
				if dns := cfg.CustomDNSServer; dns != "" {
					dialctx = dnsServerCtx{dialctx, dns}
					dialer = &customDNSDialer
				}
			}

			conn, err = dialer.DialContext(dialctx, network, dst)
		}
		if err != nil {
			return nil, err
		}
		if r.U.Scheme == "https" {
			config := d.TLSConfig.Clone()
			if config == nil {
				config = &tls.Config{}
			}
			config.ServerName = r.U.Hostname()
			// the transport speaks http/1.1 only, never let ALPN pick h2
			config.NextProtos = []string{"http/1.1"}
			c := tls.Client(conn, config)
			if err := c.HandshakeContext(ctx); err != nil {
				return nil, err
			}
			conn = c
		}
		return conn, nil
	})
}
