package message

import (
	"fmt"
	"io"

	"github.com/cacexp/wrequest/internal/cookie"
)

// Response is an HTTP response: a status code, headers and body shared
// through [Message], the Set-Cookie list, and the authentication
// challenges of 401-style responses.
//
// Responses built locally start with just a status code. Responses read
// off the wire additionally carry the protocol and status line and a
// streaming body that must be closed by the caller; Close releases the
// underlying connection.
type Response struct {
	Message
	statusCode int
	proto      string
	status     string

	cookies   []*cookie.SetCookie
	auth      []string
	proxyAuth []string

	contentLength int64
}

// NewResponse returns a response with the given status code and no
// headers, cookies or body.
func NewResponse(status int) *Response {
	return &Response{
		Message:       NewMessage(),
		statusCode:    status,
		contentLength: -1,
	}
}

// StatusCode returns the response status code.
func (r *Response) StatusCode() int { return r.statusCode }

// Proto returns the protocol of a wire-read response, "HTTP/1.1" for
// locally built ones.
func (r *Response) Proto() string {
	if r.proto == "" {
		return "HTTP/1.1"
	}
	return r.proto
}

// Status returns the status line remainder, e.g. "200 OK". For locally
// built responses it is synthesized from the status code.
func (r *Response) Status() string {
	if r.status != "" {
		return r.status
	}
	if text := StatusText(r.statusCode); text != "" {
		return fmt.Sprintf("%d %s", r.statusCode, text)
	}
	return fmt.Sprintf("%d", r.statusCode)
}

// SetStatusLine records the status line of a wire-read response.
func (r *Response) SetStatusLine(proto, status string, code int) {
	r.proto, r.status, r.statusCode = proto, status, code
}

// ContentLength returns the declared body length of a wire-read response,
// -1 when unknown (chunked or read-until-close bodies, locally built
// responses).
func (r *Response) ContentLength() int64 { return r.contentLength }

// SetContentLength records the declared body length.
func (r *Response) SetContentLength(n int64) { r.contentLength = n }

// AddCookie appends a Set-Cookie entry. Entries keep their insertion
// order and cookies differing only in name case are both kept.
func (r *Response) AddCookie(c *cookie.SetCookie) {
	r.cookies = append(r.cookies, c)
}

// Cookies returns the Set-Cookie entries in insertion order.
func (r *Response) Cookies() []*cookie.SetCookie { return r.cookies }

// AddAuth appends a WWW-Authenticate challenge.
func (r *Response) AddAuth(challenge string) {
	r.auth = append(r.auth, challenge)
}

// AuthHeaders returns the WWW-Authenticate challenges in insertion order.
func (r *Response) AuthHeaders() []string { return r.auth }

// AddProxyAuth appends a Proxy-Authenticate challenge.
func (r *Response) AddProxyAuth(challenge string) {
	r.proxyAuth = append(r.proxyAuth, challenge)
}

// ProxyAuthHeaders returns the Proxy-Authenticate challenges in
// insertion order.
func (r *Response) ProxyAuthHeaders() []string { return r.proxyAuth }

// Close closes a streaming body, releasing the connection it reads from.
// It is a no-op for buffered bodies and bodyless responses, so callers
// can defer it unconditionally.
func (r *Response) Close() error {
	if c, ok := r.Body().(io.Closer); ok {
		return c.Close()
	}
	return nil
}
