package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/cacexp/wrequest/internal/cookie"
	"github.com/cacexp/wrequest/internal/message"
	"github.com/cacexp/wrequest/internal/transport/chunked"
)

// HTTP1 is the HTTP/1.1 wire codec.
type HTTP1 struct{}

var _ Transport = HTTP1{}

func (t HTTP1) Write(w io.Writer, r *message.PreparedRequest) error {
	body, err := r.GetBody() // can write body
	if err != nil {
		return err
	}
	defer body.Close() // request body is ALWAYS closed

	chunk := r.ContentLength == -1 && r.HasBody()
	if err := t.writeHeader(w, r, chunk); err != nil {
		return err
	}
	if chunk {
		cw := chunked.NewChunkedWriter(w)
		if _, err := io.Copy(cw, body); err != nil {
			return err
		}
		return cw.Close()
	}
	_, err = io.Copy(w, body)
	return err
}

// writeHeader writes the request line and header part of an http 1.1
// request, e.g.:
//
//	GET / HTTP/1.1\r\n
//	Host: www.google.com\r\n
//	X-Xx-Yy: cccccc\r\n
//	\r\n
//
// Headers are written in sorted order so output is reproducible.
func (t HTTP1) writeHeader(w io.Writer, r *message.PreparedRequest, chunk bool) error {
	header := bufio.NewWriter(w) // default bufsize is 4096

	if _, err := header.WriteString(r.Method()); err != nil {
		return err
	}
	header.WriteByte(' ')
	header.WriteString(r.U.RequestURI())
	header.WriteString(" HTTP/1.1\r\n")

	header.WriteString("Host: ")
	header.WriteString(r.HeaderHost)
	header.WriteString("\r\n")
	if chunk {
		header.WriteString("Transfer-Encoding: chunked\r\n")
	} else if r.ContentLength != -1 {
		header.WriteString("Content-Length: ")
		header.WriteString(strconv.FormatInt(r.ContentLength, 10))
		header.WriteString("\r\n")
	}
	keys := make([]string, 0, r.Headers.Len())
	for k := range r.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		header.WriteString(k)
		header.WriteString(": ")
		header.WriteString(r.Headers[k])
		if _, err := header.WriteString("\r\n"); err != nil {
			return err
		}
	}
	if _, err := header.WriteString("\r\n"); err != nil {
		return err
	}
	return header.Flush()
}

func (t HTTP1) Read(r io.Reader, req *message.PreparedRequest, resp *message.Response) (err error) {
	conn, _ := r.(io.Closer)
	tp := textproto.NewReader(bufio.NewReader(r))

	line, err := tp.ReadLine()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	proto, status, ok := strings.Cut(line, " ")
	if !ok {
		return errors.New("malformed HTTP response")
	}
	status = strings.TrimLeft(status, " ")

	codeStr, _, _ := strings.Cut(status, " ")
	if len(codeStr) != 3 {
		return errors.New("malformed HTTP status code " + codeStr)
	}
	code, err := strconv.Atoi(codeStr)
	if err != nil || code < 0 {
		return errors.New("malformed HTTP status code")
	}
	resp.SetStatusLine(proto, status, code)

	// Parse the response headers.
	mimeHeader, err := tp.ReadMIMEHeader()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	if hp, ok := mimeHeader["Pragma"]; ok && len(hp) > 0 && hp[0] == "no-cache" {
		if _, presentcc := mimeHeader["Cache-Control"]; !presentcc {
			mimeHeader["Cache-Control"] = []string{"no-cache"}
		}
	}

	cl, err := contentLength(mimeHeader)
	if err != nil {
		return err
	}
	resp.SetContentLength(cl)

	for k, vs := range mimeHeader {
		switch k {
		case "Set-Cookie":
			// malformed cookies are dropped rather than failing the response
			for _, v := range vs {
				if c, err := cookie.Parse(v); err == nil {
					resp.AddCookie(c)
				}
			}
		case "Www-Authenticate": // canonical form of WWW-Authenticate
			for _, v := range vs {
				resp.AddAuth(v)
			}
		case "Proxy-Authenticate":
			for _, v := range vs {
				resp.AddProxyAuth(v)
			}
		case "Content-Length":
			// carried in resp.ContentLength instead
		default:
			resp.SetHeader(k, strings.Join(vs, ", "))
		}
	}

	return t.readTransfer(tp.R, req, resp, conn)
}

// contentLength extracts the response Content-Length.
// Hardening against response smuggling, taken from standard library.
func contentLength(h textproto.MIMEHeader) (int64, error) {
	lens := h["Content-Length"]
	if len(lens) > 1 {
		// Per RFC 7230 Section 3.3.2
		first := textproto.TrimString(lens[0])
		for _, ct := range lens[1:] {
			if first != textproto.TrimString(ct) {
				return 0, fmt.Errorf("http: message cannot contain multiple Content-Length headers; got %q", lens)
			}
		}
		lens = []string{first}
	}
	if len(lens) == 0 {
		return -1, nil
	}
	n, err := strconv.ParseUint(textproto.TrimString(lens[0]), 10, 63)
	if err != nil {
		// unparsable lengths fall back to read-until-close
		return -1, nil
	}
	return int64(n), nil
}

func (t HTTP1) readTransfer(br *bufio.Reader, req *message.PreparedRequest, resp *message.Response, conn io.Closer) error {
	reusable := true
	if v, ok := resp.Header("Connection"); ok && httpguts.HeaderValuesContainsToken([]string{v}, "close") {
		reusable = false
	}

	if !bodyAllowed(req, resp) {
		if err := closeBody(http.NoBody, conn, reusable)(); err != nil {
			return err
		}
		return resp.SetBody(http.NoBody)
	}

	if te, _ := resp.Header("Transfer-Encoding"); te == "chunked" {
		body := chunked.NewChunkedReader(br)
		return resp.SetBody(bodyCloser{body, closeBody(body, conn, reusable)})
	}

	switch cl := resp.ContentLength(); {
	case cl > 0:
		body := io.LimitReader(br, cl)
		return resp.SetBody(bodyCloser{body, closeBody(body, conn, reusable)})
	case cl == 0:
		if err := closeBody(http.NoBody, conn, reusable)(); err != nil {
			return err
		}
		return resp.SetBody(http.NoBody)
	default:
		// neither a length nor chunking: the body runs until the peer
		// closes, so the connection cannot be reused
		return resp.SetBody(bodyCloser{br, closeBody(br, conn, false)})
	}
}

// bodyAllowed reports whether the response may carry a body at all,
// per RFC 9110 section 6.4.1.
func bodyAllowed(req *message.PreparedRequest, resp *message.Response) bool {
	if req != nil {
		if req.Method() == message.MethodHead {
			return false
		}
		if req.Method() == message.MethodConnect && resp.StatusCode()/100 == 2 {
			return false
		}
	}
	switch {
	case resp.StatusCode() >= 100 && resp.StatusCode() <= 199:
		return false
	case resp.StatusCode() == message.StatusNoContent:
		return false
	case resp.StatusCode() == message.StatusNotModified:
		return false
	}
	return true
}
