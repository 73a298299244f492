package transport_test

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/cacexp/wrequest/internal/message"
	"github.com/cacexp/wrequest/internal/transport"
)

var h1 = transport.HTTP1{}

func prepare(t *testing.T, req *message.Request) *message.PreparedRequest {
	t.Helper()
	pr, err := req.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	return pr
}

func TestWriteRequest(t *testing.T) {
	req := message.NewRequest(message.MethodGet, "http://www.example.com")
	req.SetHeader("x-123-vv", "1")

	var buf bytes.Buffer
	if err := h1.Write(&buf, prepare(t, req)); err != nil {
		t.Fatal(err)
	}
	want := "GET / HTTP/1.1\r\nHost: www.example.com\r\nX-123-Vv: 1\r\n\r\n"
	if buf.String() != want {
		t.Errorf("wrote %q, want %q", buf.String(), want)
	}
}

func TestWriteRequestHeadersSorted(t *testing.T) {
	req := message.NewRequest(message.MethodGet, "http://www.example.com/")
	req.SetHeader("user-agent", "wreq")
	req.SetHeader("x-a", "1")
	req.SetHeader("accept", "*/*")

	var buf bytes.Buffer
	if err := h1.Write(&buf, prepare(t, req)); err != nil {
		t.Fatal(err)
	}
	want := "GET / HTTP/1.1\r\nHost: www.example.com\r\n" +
		"Accept: */*\r\nUser-Agent: wreq\r\nX-A: 1\r\n\r\n"
	if buf.String() != want {
		t.Errorf("wrote %q, want %q", buf.String(), want)
	}
}

func TestWriteRequestBody(t *testing.T) {
	req := message.NewRequest(message.MethodPost, "http://www.example.com/upload")
	req.SetBody("hello")

	var buf bytes.Buffer
	if err := h1.Write(&buf, prepare(t, req)); err != nil {
		t.Fatal(err)
	}
	want := "POST /upload HTTP/1.1\r\nHost: www.example.com\r\nContent-Length: 5\r\n\r\nhello"
	if buf.String() != want {
		t.Errorf("wrote %q, want %q", buf.String(), want)
	}
}

func TestWriteRequestChunked(t *testing.T) {
	req := message.NewRequest(message.MethodPost, "http://www.example.com/upload")
	// a plain reader has no known size, so the body goes out chunked
	req.SetBody(io.LimitReader(strings.NewReader("hello"), 5))

	var buf bytes.Buffer
	if err := h1.Write(&buf, prepare(t, req)); err != nil {
		t.Fatal(err)
	}
	want := "POST /upload HTTP/1.1\r\nHost: www.example.com\r\n" +
		"Transfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n0\r\n\r\n"
	if buf.String() != want {
		t.Errorf("wrote %q, want %q", buf.String(), want)
	}
}

func readResponse(t *testing.T, wire string, req *message.Request) *message.Response {
	t.Helper()
	resp := message.NewResponse(0)
	if err := h1.Read(strings.NewReader(wire), prepare(t, req), resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestReadResponse(t *testing.T) {
	resp := readResponse(t,
		"HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\nhelloEXTRA",
		message.NewRequest(message.MethodGet, "http://example.com/"))

	if resp.Proto() != "HTTP/1.1" || resp.StatusCode() != 200 || resp.Status() != "200 OK" {
		t.Errorf("status line parsed as %q %q %d", resp.Proto(), resp.Status(), resp.StatusCode())
	}
	if resp.ContentLength() != 5 {
		t.Errorf("content length %d, want 5", resp.ContentLength())
	}
	if v, _ := resp.Header("Content-Type"); v != "text/plain" {
		t.Errorf("Content-Type %q", v)
	}
	if _, ok := resp.Header("Content-Length"); ok {
		t.Error("Content-Length should be carried outside the header map")
	}

	body, err := resp.Reader()
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" { // bounded by Content-Length, not the stream
		t.Errorf("body %q, want %q", b, "hello")
	}
}

func TestReadResponseChunked(t *testing.T) {
	resp := readResponse(t,
		"HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n6\r\n world\r\n0\r\n\r\n",
		message.NewRequest(message.MethodGet, "http://example.com/"))

	if resp.ContentLength() != -1 {
		t.Errorf("content length %d, want -1", resp.ContentLength())
	}
	body, err := resp.Reader()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(body)
	if string(b) != "hello world" {
		t.Errorf("body %q, want %q", b, "hello world")
	}
}

func TestReadResponseNoContent(t *testing.T) {
	resp := readResponse(t, "HTTP/1.1 204 No Content\r\n\r\n",
		message.NewRequest(message.MethodGet, "http://example.com/"))
	if resp.Body() != http.NoBody {
		t.Errorf("204 body should be NoBody, got %T", resp.Body())
	}
}

func TestReadResponseHead(t *testing.T) {
	// a HEAD response advertises a length but carries no body
	resp := readResponse(t, "HTTP/1.1 200 OK\r\nContent-Length: 10\r\n\r\n",
		message.NewRequest(message.MethodHead, "http://example.com/"))
	if resp.Body() != http.NoBody {
		t.Errorf("HEAD body should be NoBody, got %T", resp.Body())
	}
	if resp.ContentLength() != 10 {
		t.Errorf("content length %d, want 10", resp.ContentLength())
	}
}

func TestReadResponseUntilClose(t *testing.T) {
	resp := readResponse(t, "HTTP/1.1 200 OK\r\n\r\nstreamed until the end",
		message.NewRequest(message.MethodGet, "http://example.com/"))

	if resp.ContentLength() != -1 {
		t.Errorf("content length %d, want -1", resp.ContentLength())
	}
	body, err := resp.Reader()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(body)
	if string(b) != "streamed until the end" {
		t.Errorf("body %q", b)
	}
}

func TestReadResponseMultipleContentLength(t *testing.T) {
	resp := message.NewResponse(0)
	err := h1.Read(
		strings.NewReader("HTTP/1.1 200 OK\r\nContent-Length: 5\r\nContent-Length: 6\r\n\r\nhello"),
		prepare(t, message.NewRequest(message.MethodGet, "http://example.com/")), resp)
	if err == nil {
		t.Error("differing Content-Length headers should be rejected")
	}

	// equal duplicates collapse instead
	resp = readResponse(t, "HTTP/1.1 200 OK\r\nContent-Length: 5\r\nContent-Length: 5\r\n\r\nhello",
		message.NewRequest(message.MethodGet, "http://example.com/"))
	if resp.ContentLength() != 5 {
		t.Errorf("content length %d, want 5", resp.ContentLength())
	}
}

func TestReadResponseHeaderRouting(t *testing.T) {
	resp := readResponse(t,
		"HTTP/1.1 401 Unauthorized\r\n"+
			"Set-Cookie: id=a3fWa; Max-Age=60\r\n"+
			"Set-Cookie: =broken\r\n"+
			"WWW-Authenticate: Basic realm=\"a\"\r\n"+
			"Proxy-Authenticate: Basic realm=\"p\"\r\n"+
			"X-Multi: one\r\n"+
			"X-Multi: two\r\n"+
			"Content-Length: 0\r\n\r\n",
		message.NewRequest(message.MethodGet, "http://example.com/"))

	cookies := resp.Cookies()
	if len(cookies) != 1 { // the malformed one is dropped
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if cookies[0].Name != "id" || cookies[0].MaxAge != time.Minute {
		t.Errorf("cookie parsed as %+v", cookies[0])
	}

	if got := resp.AuthHeaders(); len(got) != 1 || got[0] != `Basic realm="a"` {
		t.Errorf("auth challenges %q", got)
	}
	if got := resp.ProxyAuthHeaders(); len(got) != 1 || got[0] != `Basic realm="p"` {
		t.Errorf("proxy auth challenges %q", got)
	}

	for _, k := range []string{"Set-Cookie", "WWW-Authenticate", "Proxy-Authenticate", "Content-Length"} {
		if _, ok := resp.Header(k); ok {
			t.Errorf("%s should be routed off the header map", k)
		}
	}
	if v, _ := resp.Header("X-Multi"); v != "one, two" {
		t.Errorf("repeated plain header joined as %q", v)
	}
}

func TestReadResponsePragma(t *testing.T) {
	resp := readResponse(t, "HTTP/1.1 200 OK\r\nPragma: no-cache\r\nContent-Length: 0\r\n\r\n",
		message.NewRequest(message.MethodGet, "http://example.com/"))
	if v, _ := resp.Header("Cache-Control"); v != "no-cache" {
		t.Errorf("Cache-Control %q, want no-cache", v)
	}

	resp = readResponse(t,
		"HTTP/1.1 200 OK\r\nPragma: no-cache\r\nCache-Control: max-age=0\r\nContent-Length: 0\r\n\r\n",
		message.NewRequest(message.MethodGet, "http://example.com/"))
	if v, _ := resp.Header("Cache-Control"); v != "max-age=0" {
		t.Errorf("existing Cache-Control overridden: %q", v)
	}
}

func TestReadResponseMalformed(t *testing.T) {
	for name, wire := range map[string]string{
		"NoStatus":    "HTTP/1.1\r\n\r\n",
		"ShortCode":   "HTTP/1.1 20 OK\r\n\r\n",
		"BadCode":     "HTTP/1.1 2x0 OK\r\n\r\n",
		"EmptyStream": "",
		"HeadersTorn": "HTTP/1.1 200 OK\r\nContent-",
	} {
		t.Run(name, func(t *testing.T) {
			resp := message.NewResponse(0)
			err := h1.Read(strings.NewReader(wire),
				prepare(t, message.NewRequest(message.MethodGet, "http://example.com/")), resp)
			if err == nil {
				t.Error("expected an error")
			}
		})
	}
}

// fakeConn stands in for a pooled connection underneath a response body.
type fakeConn struct {
	io.Reader
	closed   bool
	released bool
}

func (c *fakeConn) Close() error { c.closed = true; return nil }
func (c *fakeConn) Release()     { c.released = true }

func readOverConn(t *testing.T, wire string, req *message.Request) (*message.Response, *fakeConn) {
	t.Helper()
	conn := &fakeConn{Reader: strings.NewReader(wire)}
	resp := message.NewResponse(0)
	if err := h1.Read(conn, prepare(t, req), resp); err != nil {
		t.Fatal(err)
	}
	return resp, conn
}

func TestBodyCloseReleasesConn(t *testing.T) {
	resp, conn := readOverConn(t, "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello",
		message.NewRequest(message.MethodGet, "http://example.com/"))

	// the unread remainder is drained, then the conn goes back to the pool
	if err := resp.Close(); err != nil {
		t.Fatal(err)
	}
	if !conn.released || conn.closed {
		t.Errorf("released=%v closed=%v, want released", conn.released, conn.closed)
	}
}

func TestBodyCloseHonorsConnectionClose(t *testing.T) {
	resp, conn := readOverConn(t,
		"HTTP/1.1 200 OK\r\nContent-Length: 5\r\nConnection: close\r\n\r\nhello",
		message.NewRequest(message.MethodGet, "http://example.com/"))

	if err := resp.Close(); err != nil {
		t.Fatal(err)
	}
	if conn.released || !conn.closed {
		t.Errorf("released=%v closed=%v, want closed", conn.released, conn.closed)
	}
}

func TestBodylessResponseReleasesImmediately(t *testing.T) {
	resp, conn := readOverConn(t, "HTTP/1.1 204 No Content\r\n\r\n",
		message.NewRequest(message.MethodGet, "http://example.com/"))

	if !conn.released {
		t.Error("bodyless response should hand the conn back during read")
	}
	// closing the no-op body afterwards must not double-release
	conn.released = false
	if err := resp.Close(); err != nil {
		t.Fatal(err)
	}
	if conn.released || conn.closed {
		t.Error("second close should be a no-op")
	}
}

func TestReadUntilCloseNotReusable(t *testing.T) {
	resp, conn := readOverConn(t, "HTTP/1.1 200 OK\r\n\r\nstreamed",
		message.NewRequest(message.MethodGet, "http://example.com/"))

	if err := resp.Close(); err != nil {
		t.Fatal(err)
	}
	if conn.released || !conn.closed {
		t.Errorf("released=%v closed=%v, want closed", conn.released, conn.closed)
	}
}
