package netpool

import (
	"context"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/cacexp/wrequest/utils/nettools"
)

// Conn is a pooled connection. Close discards it for good, Release hands
// it back for reuse by a later Connect. Either way the caller must not
// touch the Conn afterwards.
type Conn interface {
	io.ReadWriteCloser
	Release()
	Raw() net.Conn
	Available() bool
}

// Pool bounds the connections towards one destination. A ticket is held
// for every checked-out connection and freed when it is closed or
// released, so at most maxConn requests are in flight at once while up to
// maxIdle finished connections wait around for reuse.
type Pool struct {
	connTicket chan struct{}
	idleTicket chan *conn

	// Idle connections older than MaxIdleDuration are discarded at
	// checkout. Zero keeps them forever. Set before using the pool.
	MaxIdleDuration time.Duration
}

func NewPool(maxIdle, maxConn uint) *Pool {
	return &Pool{
		connTicket: make(chan struct{}, maxConn),
		idleTicket: make(chan *conn, maxIdle),
	}
}

// Connect hands out an idle connection when a healthy one is waiting,
// dialing a fresh one otherwise. Idle candidates get their socket peeked
// first so ones the peer already hung up on are discarded instead of
// handed out. It blocks while maxConn connections are checked out, until
// one is closed or released.
func (p *Pool) Connect(ctx context.Context, dial func(ctx context.Context) (net.Conn, error)) (Conn, error) {
	select {
	case p.connTicket <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	for {
		select {
		case c := <-p.idleTicket:
			if p.MaxIdleDuration != 0 && time.Since(c.LastIdle) > p.MaxIdleDuration {
				c.closeRaw()
			} else if c.Available() && nettools.Usable(c.conn) {
				atomic.StoreUint32(&c.ticket, 1)
				return c, nil
			} else {
				c.closeRaw()
			}
		default:
			raw, err := dial(ctx)
			if err != nil {
				<-p.connTicket
				return nil, err
			}
			return &conn{conn: raw, p: p, ticket: 1}, nil
		}
	}
}
