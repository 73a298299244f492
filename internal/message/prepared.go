package message

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/net/idna"
)

// PreparedRequest is a request resolved for the wire: the parsed URL with
// query parameters merged in, the effective Host header, a header copy
// with the Cookie header rendered and framing headers extracted, and a
// rewindable body.
//
// Preparing never mutates the source request; the same Request can be
// prepared again after edits.
type PreparedRequest struct {
	*Request

	U          *url.URL
	GetBody    func() (io.ReadCloser, error)
	Headers    Headers
	HeaderHost string

	ContentLength int64
}

// Prepare resolves the request for sending. It parses the target URL,
// merges query parameters, converts non-ASCII hostnames with IDNA,
// validates header fields, renders the Cookie header, and snapshots the
// body behind GetBody with a known ContentLength where possible (-1 for
// streaming bodies, which are sent chunked).
//
// An explicit Host header overrides the URL host; an explicit
// Content-Length header must agree with the actual body size. Both are
// removed from the prepared header copy.
func (r *Request) Prepare() (*PreparedRequest, error) {
	u, err := r.URL()
	if err != nil {
		return nil, err
	}

	// merging re-encodes the query, so leave it alone when there is
	// nothing to merge and non-standard query strings pass through verbatim
	if len(r.params) > 0 {
		q := u.Query()
		for k, v := range r.params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	if err := punycodeHost(u); err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, url.InvalidHostError("empty host")
	}

	headers := r.headers.Clone()
	for k, v := range headers {
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, fmt.Errorf("invalid header name %q", k)
		}
		if !httpguts.ValidHeaderFieldValue(v) {
			return nil, fmt.Errorf("invalid value for header %q", k)
		}
	}

	// explicitly set headers win over derived ones
	host := u.Host
	if v, ok := headers.Get("Host"); ok {
		if !httpguts.ValidHostHeader(v) {
			return nil, fmt.Errorf("invalid Host header %q", v)
		}
		host = v
		headers.Del("Host")
	}

	cl := int64(-1)
	if v, ok := headers.Get("Content-Length"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid Content-Length header %q", v)
		}
		cl = n
		headers.Del("Content-Length")
	}

	if _, ok := headers.Get("Cookie"); !ok && len(r.cookies) > 0 {
		headers.Set("Cookie", r.cookieHeader())
	}

	pr := &PreparedRequest{
		Request: r,

		U:             u,
		Headers:       headers,
		HeaderHost:    host,
		ContentLength: cl,
	}
	if err := pr.snapshotBody(); err != nil {
		return nil, err
	}
	if cl != -1 && pr.ContentLength != cl {
		return nil, errors.New("conflicting value between body size and content-length request header")
	}
	return pr, nil
}

// cookieHeader renders the request cookies as one Cookie header value,
// sorted by name so output is stable.
func (r *Request) cookieHeader() string {
	names := make([]string, 0, len(r.cookies))
	for name := range r.cookies {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(r.cookies[name])
	}
	return b.String()
}

// punycodeHost rewrites a non-ASCII hostname in u to its IDNA ASCII form.
// ASCII hostnames, including IP literals, pass through untouched.
func punycodeHost(u *url.URL) error {
	hostname := u.Hostname()
	if isASCII(hostname) {
		return nil
	}
	ascii, err := idna.Lookup.ToASCII(hostname)
	if err != nil {
		return fmt.Errorf("invalid international hostname %q: %w", hostname, err)
	}
	if port := u.Port(); port != "" {
		u.Host = net.JoinHostPort(ascii, port)
	} else {
		u.Host = ascii
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// snapshotBody converts the message body into a rewindable GetBody and,
// where the size is knowable, updates ContentLength. Should only be
// called once, from Prepare.
func (pr *PreparedRequest) snapshotBody() error {
	switch b := pr.Request.Body().(type) {
	case nil:
		pr.GetBody = func() (io.ReadCloser, error) {
			return http.NoBody, nil
		}
	case string:
		pr.ContentLength = int64(len(b))
		pr.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(b)), nil
		}
	case []byte:
		pr.ContentLength = int64(len(b))
		pr.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(b)), nil
		}
	case *bytes.Buffer:
		pr.ContentLength = int64(b.Len())
		buf := b.Bytes()
		pr.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(buf)), nil
		}
	case *bytes.Reader:
		pr.ContentLength = int64(b.Len())
		snapshot := *b
		pr.GetBody = func() (io.ReadCloser, error) {
			r := snapshot
			return io.NopCloser(&r), nil
		}
	case *strings.Reader:
		pr.ContentLength = int64(b.Len())
		snapshot := *b
		pr.GetBody = func() (io.ReadCloser, error) {
			r := snapshot
			return io.NopCloser(&r), nil
		}
	case *Multipart:
		data, err := b.Render()
		if err != nil {
			return fmt.Errorf("render multipart body: %w", err)
		}
		pr.ContentLength = int64(len(data))
		pr.Headers.Set(HeaderContentType, b.ContentType())
		pr.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
	case io.Reader:
		if sizer, ok := b.(interface{ Size() int64 }); ok {
			pr.ContentLength = sizer.Size()
		}
		cb, ok := b.(io.ReadCloser)
		if !ok {
			cb = io.NopCloser(b)
		}
		var once atomic.Bool
		pr.GetBody = func() (io.ReadCloser, error) {
			if once.CompareAndSwap(false, true) {
				return cb, nil
			}
			return nil, http.ErrBodyReadAfterClose
		}
	default:
		return fmt.Errorf("unsupported body type: %T", pr.Request.Body())
	}
	return nil
}
