package netpool

import (
	"context"
	"net"
	"sync"
	"time"
)

// PoolGroup keeps one Pool per destination key, created lazily on first
// Connect for that key.
type PoolGroup struct {
	sync.RWMutex
	pools map[interface{}]*Pool

	maxConnsPerHost, maxIdlePerHost uint

	// MaxIdleDuration is handed to pools as they are created. Set it
	// before the group is first used.
	MaxIdleDuration time.Duration
}

func NewGroup(maxConnsPerHost, maxIdlePerHost uint) *PoolGroup {
	return &PoolGroup{
		pools:           map[interface{}]*Pool{},
		maxConnsPerHost: maxConnsPerHost, maxIdlePerHost: maxIdlePerHost,
	}
}

// NewEmpty returns a group with the same limits but none of the pools.
func (g *PoolGroup) NewEmpty() *PoolGroup {
	ng := NewGroup(g.maxConnsPerHost, g.maxIdlePerHost)
	ng.MaxIdleDuration = g.MaxIdleDuration
	return ng
}

func (g *PoolGroup) Connect(ctx context.Context, key interface{}, dial func(ctx context.Context) (net.Conn, error)) (Conn, error) {
	g.RLock()
	p, ok := g.pools[key]
	g.RUnlock()
	if ok {
		return p.Connect(ctx, dial)
	}
	g.Lock()
	if p, ok = g.pools[key]; !ok {
		p = NewPool(g.maxIdlePerHost, g.maxConnsPerHost)
		p.MaxIdleDuration = g.MaxIdleDuration
		g.pools[key] = p
	}
	g.Unlock()
	return p.Connect(ctx, dial)
}
