package netpool

import (
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/projectdiscovery/gologger"
)

type conn struct {
	conn   net.Conn
	p      *Pool
	broken uint32
	// ticket is 1 while the connection is checked out of the pool
	ticket   uint32
	LastIdle time.Time
}

// Available reports whether the underlying socket is still usable.
func (c *conn) Available() bool {
	return atomic.LoadUint32(&c.broken) == 0
}

func (c *conn) Write(p []byte) (n int, err error) {
	n, err = c.conn.Write(p)
	if err != nil {
		if err != io.EOF {
			gologger.Debug().Msgf("netpool: error on write: %v", err)
		}
		c.Close()
	}
	return
}

func (c *conn) Read(p []byte) (n int, err error) {
	nb, err := c.conn.Read(p)
	if err != nil {
		if err != io.EOF {
			gologger.Debug().Msgf("netpool: error on read: %v", err)
		}
		c.Close()
	}
	return nb, err
}

// Close takes the connection out of service and frees its pool slot.
// Safe to call more than once, including after a Read or Write error
// already closed it.
func (c *conn) Close() error {
	c.freeTicket()
	return c.closeRaw()
}

// Release parks a healthy connection for reuse. Broken connections and
// overflow beyond the idle capacity are discarded instead.
func (c *conn) Release() {
	c.freeTicket()
	if !c.Available() {
		return
	}
	c.LastIdle = time.Now()
	select {
	case c.p.idleTicket <- c:
	default:
		c.closeRaw()
	}
}

func (c *conn) Raw() net.Conn {
	return c.conn
}

func (c *conn) freeTicket() {
	if atomic.CompareAndSwapUint32(&c.ticket, 1, 0) {
		<-c.p.connTicket
	}
}

func (c *conn) closeRaw() error {
	if atomic.CompareAndSwapUint32(&c.broken, 0, 1) {
		return c.conn.Close()
	}
	return nil
}
