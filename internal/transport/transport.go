package transport

import (
	"io"

	"github.com/cacexp/wrequest/internal/message"
)

// Transport encodes prepared requests onto a stream and decodes responses
// off of it. Read takes the request that produced the response because
// framing depends on it (HEAD and CONNECT responses carry no body).
type Transport interface {
	Write(w io.Writer, req *message.PreparedRequest) error
	Read(r io.Reader, req *message.PreparedRequest, resp *message.Response) error
}

// Releaser is implemented by pooled connections that can be returned to
// their pool instead of closed.
type Releaser interface {
	Release()
}

// bound on how much of an unread body gets drained before giving up on
// reusing the connection
const maxDrainBytes = 256 << 10

type bodyCloser struct {
	io.Reader
	close func() error
}

func (b bodyCloser) Close() error { return b.close() }

// closeBody builds the Close implementation for a response body read from
// conn. Closing a reusable connection drains the remaining body within
// maxDrainBytes and releases the connection back to its pool; connections
// that cannot be reused are closed for real.
func closeBody(body io.Reader, conn io.Closer, reusable bool) func() error {
	if conn == nil {
		return func() error { return nil }
	}
	rel, canRelease := conn.(Releaser)
	if !canRelease || !reusable {
		return conn.Close
	}
	return func() error {
		if _, err := io.CopyN(io.Discard, body, maxDrainBytes); err == io.EOF {
			rel.Release()
			return nil
		}
		return conn.Close()
	}
}
