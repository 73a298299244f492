package message

import "net/textproto"

// Headers is a single-valued collection of HTTP header fields. Lookups,
// replacements and deletions are case-insensitive: keys are stored in
// canonical MIME form, so Set("content-Type", v) and Get("Content-type")
// address the same field.
//
// Fields that may legally repeat on the wire and carry structure of their
// own are not kept here: response Set-Cookie, WWW-Authenticate and
// Proxy-Authenticate values live on [Response] as ordered lists.
type Headers map[string]string

// Set stores a header field, replacing any value stored under an
// equal-fold key. It reports whether a previous value was replaced.
func (h Headers) Set(key, value string) bool {
	key = textproto.CanonicalMIMEHeaderKey(key)
	_, replaced := h[key]
	h[key] = value
	return replaced
}

// Get returns the value stored under an equal-fold key.
func (h Headers) Get(key string) (string, bool) {
	v, ok := h[textproto.CanonicalMIMEHeaderKey(key)]
	return v, ok
}

// Del removes a header field. It reports whether the field was present.
func (h Headers) Del(key string) bool {
	key = textproto.CanonicalMIMEHeaderKey(key)
	_, ok := h[key]
	delete(h, key)
	return ok
}

// Len returns the number of header fields.
func (h Headers) Len() int { return len(h) }

// Clone returns an independent copy of h.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	c := make(Headers, len(h))
	for k, v := range h {
		c[k] = v
	}
	return c
}

// Params is a collection of request query parameters. Unlike Headers,
// parameter names are case-sensitive: "id" and "ID" are distinct keys.
type Params map[string]string

// Set stores a parameter, reporting whether a previous value was replaced.
func (p Params) Set(key, value string) bool {
	_, replaced := p[key]
	p[key] = value
	return replaced
}

// Get returns the value stored under key.
func (p Params) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// Del removes a parameter. It reports whether the parameter was present.
func (p Params) Del(key string) bool {
	_, ok := p[key]
	delete(p, key)
	return ok
}

// Len returns the number of parameters.
func (p Params) Len() int { return len(p) }

// Clone returns an independent copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Cookies is a collection of request cookies sent in the Cookie header.
// Cookie names are case-sensitive, like Params and unlike Headers.
type Cookies map[string]string

// Set stores a cookie, reporting whether a previous value was replaced.
func (c Cookies) Set(name, value string) bool {
	_, replaced := c[name]
	c[name] = value
	return replaced
}

// Get returns the value stored under name.
func (c Cookies) Get(name string) (string, bool) {
	v, ok := c[name]
	return v, ok
}

// Del removes a cookie. It reports whether the cookie was present.
func (c Cookies) Del(name string) bool {
	_, ok := c[name]
	delete(c, name)
	return ok
}

// Len returns the number of cookies.
func (c Cookies) Len() int { return len(c) }

// Clone returns an independent copy of c.
func (c Cookies) Clone() Cookies {
	if c == nil {
		return nil
	}
	n := make(Cookies, len(c))
	for k, v := range c {
		n[k] = v
	}
	return n
}
