package dialer

import (
	"context"
	"crypto/tls"
	"io"

	"github.com/cacexp/wrequest/internal/message"
	"github.com/cacexp/wrequest/utils/netpool"
)

// Dialers handle pretty much everything related to the actual connection,
// including setting a proxy for each request, setting resolvers, etc.
type Dialer interface {
	// Dial returns an abstract stream for writing the request and reading responses.
	// the implementation of this stream could be specific to protocols.
	Dial(ctx context.Context, r *message.PreparedRequest) (io.ReadWriteCloser, error)
	Unwrap() Dialer
}

type CoreDialer struct {
	ResolveConfig *ResolveConfig

	TLSConfig *tls.Config // the config to use

	ConnPool    *netpool.PoolGroup
	GetProxy    func(ctx context.Context, r *message.Request) (string, error)
	ProxyConfig *ProxyConfig
}

func (d *CoreDialer) Clone() *CoreDialer {
	return &CoreDialer{
		ResolveConfig: d.ResolveConfig.Clone(),
		TLSConfig:     d.TLSConfig.Clone(),
		ConnPool:      d.ConnPool.NewEmpty(),
		GetProxy:      d.GetProxy,
		ProxyConfig:   d.ProxyConfig.Clone(),
	}
}

func (d *CoreDialer) Unwrap() Dialer {
	return nil
}

// Default is the dialer requests go through when the client has none
// configured. The wire codec speaks HTTP/1.1 only, so ALPN is pinned
// accordingly.
var Default = &CoreDialer{
	TLSConfig: &tls.Config{
		NextProtos: []string{"http/1.1"},
	},
	ProxyConfig: &ProxyConfig{
		TLSConfig: &tls.Config{},
	},
	ConnPool: netpool.NewGroup(100, 80),
}
