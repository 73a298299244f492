package message

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// HTTP request methods.
const (
	MethodGet     = "GET"
	MethodHead    = "HEAD"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodDelete  = "DELETE"
	MethodConnect = "CONNECT"
	MethodOptions = "OPTIONS"
	MethodTrace   = "TRACE"
	MethodPatch   = "PATCH"
)

// Request is an HTTP request under construction: a method, a raw target
// URL, query parameters, cookies sent in the Cookie header, and the
// headers and body shared through [Message].
//
// The target is kept verbatim until [Request.Prepare]; Target always
// returns the string as given while URL parses it on demand.
type Request struct {
	Message
	method  string
	target  string
	params  Params
	cookies Cookies
}

// NewRequest returns a request for the given method and target URL.
func NewRequest(method, target string) *Request {
	return &Request{
		Message: NewMessage(),
		method:  method,
		target:  target,
		params:  make(Params),
		cookies: make(Cookies),
	}
}

// Method returns the request method.
func (r *Request) Method() string { return r.method }

// Target returns the target URL string exactly as given, whether or not
// it parses.
func (r *Request) Target() string { return r.target }

// URL parses the target and returns the result. An unparsable target
// yields the parse error; Target is unaffected.
func (r *Request) URL() (*url.URL, error) {
	u, err := url.Parse(r.target)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("target %q is not an absolute URL", r.target)
	}
	return u, nil
}

// SetParam stores a query parameter. Parameter names are case-sensitive;
// it reports whether a previous value was replaced.
func (r *Request) SetParam(key, value string) bool {
	return r.params.Set(key, value)
}

// Param returns the value of a query parameter.
func (r *Request) Param(key string) (string, bool) {
	return r.params.Get(key)
}

// Params returns the live parameter collection of the request.
func (r *Request) Params() Params { return r.params }

// SetCookie stores a request cookie. Cookie names are case-sensitive; it
// reports whether a previous value was replaced.
func (r *Request) SetCookie(name, value string) bool {
	return r.cookies.Set(name, value)
}

// Cookie returns the value of a request cookie.
func (r *Request) Cookie(name string) (string, bool) {
	return r.cookies.Get(name)
}

// Cookies returns the live cookie collection of the request.
func (r *Request) Cookies() Cookies { return r.cookies }

// String renders the request line followed by its headers, one per line,
// in a stable order.
func (r *Request) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.method, r.target)
	names := make([]string, 0, len(r.headers))
	for name := range r.headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%s\n", name, r.headers[name])
	}
	return b.String()
}
