//go:build darwin || linux
// +build darwin linux

package nettools

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func init() {
	probe = pollProbe
}

// pollProbe polls the descriptor without blocking. A parked connection
// should be completely silent, so any readiness at all, readable bytes,
// hangup or error alike, means the next request is better off on a
// fresh socket.
func pollProbe(sc syscall.RawConn) bool {
	usable := true
	if err := sc.Control(func(fd uintptr) {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, 0)
		if err != nil || n == 0 {
			// EINTR and friends: give the conn the benefit of the doubt
			return
		}
		usable = fds[0].Revents == 0
	}); err != nil {
		return true
	}
	return usable
}
