// Package nettools inspects the socket underneath a net.Conn through its
// raw file descriptor. The connection pool uses it to weed out idle
// connections whose peer already hung up, before a request is written to
// a doomed socket.
package nettools

import (
	"net"
	"syscall"
)

// probe is installed by the platform files. The fallback cannot tell
// anything about the socket and reports every connection as usable.
var probe = func(sc syscall.RawConn) bool { return true }

// Usable reports whether an idle connection still looks usable for a new
// request: false when the socket already signals an error, a hangup, or
// bytes nobody asked for. Connections that do not expose a file
// descriptor count as usable.
func Usable(c net.Conn) bool {
	sc := rawConn(c)
	if sc == nil {
		return true
	}
	return probe(sc)
}

func rawConn(c net.Conn) syscall.RawConn {
	if t, ok := c.(interface{ NetConn() net.Conn }); ok {
		// unwrap *tls.Conn down to the underlying socket
		c = t.NetConn()
	}
	if sc, ok := c.(syscall.Conn); ok {
		if rc, err := sc.SyscallConn(); err == nil {
			return rc
		}
	}
	return nil
}
