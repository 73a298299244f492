package dialer

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"

	"github.com/cacexp/wrequest/internal/message"
	"github.com/cacexp/wrequest/internal/transport"
)

type ProxyConfig struct {
	TLSConfig      *tls.Config // the [*tls.Config] to use with proxy, if nil, *[CoreDialer.TLSConfig] will be used
	ResolveLocally bool
	ResolveConfig  *ResolveConfig // overrides the resolver config for dialer for proxy
}

func (c *ProxyConfig) Clone() *ProxyConfig {
	if c == nil {
		return nil
	}
	return &ProxyConfig{
		TLSConfig:      c.TLSConfig.Clone(),
		ResolveLocally: c.ResolveLocally,
		ResolveConfig:  c.ResolveConfig.Clone(),
	}
}

var (
	h1Transport = transport.HTTP1{}
)

// shields the tunnel from the transport, which would otherwise close a
// connection it was handed as an io.Closer
type onlyReader struct {
	io.Reader
}

func (d *CoreDialer) tryDialProxy(ctx context.Context, r *message.PreparedRequest) (net.Conn, error) {
	if d.GetProxy != nil {
		proxy, perr := d.GetProxy(ctx, r.Request)
		if perr != nil {
			return nil, perr
		}
		if proxy != "" {
			proxyU, perr := url.Parse(proxy)
			if perr != nil {
				return nil, perr
			}
			return d.DialContextOverProxy(ctx, r.U, proxyU)
		}
	}
	return nil, nil
}

// DialContextOverProxy creates a connection over http/socks proxy.
// This part of logic may be reused when wrapping *[CoreDialer] into
// a new custom [Dialer]
func (d *CoreDialer) DialContextOverProxy(ctx context.Context, remote, proxy *url.URL) (net.Conn, error) {
	if proxy.Scheme != "http" && proxy.Scheme != "https" { // TODO: socks
		return nil, errors.New("unsupported proxy scheme:" + proxy.Scheme)
	}
	hp := proxy.Host
	if proxy.Port() == "" {
		hp = net.JoinHostPort(proxy.Hostname(), schemes[proxy.Scheme])
	}

	conn, err := zeroDialer.DialContext(ctx, "tcp", hp)
	if err != nil {
		return nil, err
	}

	if proxy.Scheme == "https" {
		var tlsCfg *tls.Config
		if d.ProxyConfig != nil {
			tlsCfg = d.ProxyConfig.TLSConfig
		}
		if tlsCfg == nil {
			tlsCfg = d.TLSConfig
		}
		c := tls.Client(conn, tlsCfg)
		if err := c.HandshakeContext(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		conn = c
	}

	addr, port := remote.Host, schemes[remote.Scheme]
	if add, prt, err := net.SplitHostPort(addr); err == nil {
		addr, port = add, prt
	}

	if d.ProxyConfig != nil && d.ProxyConfig.ResolveLocally {
		dnsCfg := d.ProxyConfig.ResolveConfig.Merge(d.ResolveConfig)

		if res, ok := dnsCfg.StaticHosts[addr]; ok {
			addr = res
		} else {
			ips, err := d.lookup(ctx, dnsCfg, addr)
			if err != nil {
				conn.Close()
				return nil, err
			}
			addr = ips[rand.Intn(len(ips))].String()
		}
	}

	addrport := addr + ":" + port
	connReq := &message.PreparedRequest{
		Request:       message.NewRequest(message.MethodConnect, addrport),
		HeaderHost:    remote.Host,
		U:             &url.URL{Path: addrport},
		Headers:       message.Headers{},
		ContentLength: -1,
		GetBody:       func() (io.ReadCloser, error) { return http.NoBody, nil },
	}
	if u := proxy.User; u != nil {
		pass, _ := u.Password()
		creds := base64.StdEncoding.EncodeToString([]byte(u.Username() + ":" + pass))
		connReq.Headers.Set("Proxy-Authorization", "Basic "+creds)
	}
	if err := h1Transport.Write(conn, connReq); err != nil {
		conn.Close()
		return nil, err
	}
	resp := message.NewResponse(0)
	if err := h1Transport.Read(onlyReader{conn}, connReq, resp); err != nil {
		conn.Close()
		return nil, err
	}
	if resp.StatusCode() != message.StatusOK {
		var body []byte
		if r, err := resp.Reader(); err == nil {
			body, _ = io.ReadAll(r)
			r.Close()
		}
		conn.Close()
		return nil, fmt.Errorf("proxy server returned error. status:%d, body:%s", resp.StatusCode(), string(body))
	}
	return conn, nil
}
