// Package cookie models the Set-Cookie response header: a cookie pair plus
// the RFC 6265 attributes a server may attach to it. It is a message
// model only; storing cookies between requests is a client concern this
// package deliberately does not have.
package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SameSite is the value of the SameSite cookie attribute.
type SameSite int

const (
	// SameSiteDefault omits the attribute entirely.
	SameSiteDefault SameSite = iota
	SameSiteStrict
	SameSiteLax
	SameSiteNone
)

func (s SameSite) String() string {
	switch s {
	case SameSiteStrict:
		return "Strict"
	case SameSiteLax:
		return "Lax"
	case SameSiteNone:
		return "None"
	}
	return ""
}

var (
	// ErrEmpty is returned when parsing an empty Set-Cookie value.
	ErrEmpty = errors.New("empty set-cookie value")

	// ErrNoName is returned when the cookie pair has no name.
	ErrNoName = errors.New("set-cookie value has no cookie name")
)

// SetCookie is one Set-Cookie header: the cookie pair and its attributes.
// Zero attribute values (zero Expires, zero MaxAge, empty strings, false
// flags, SameSiteDefault) are omitted when serializing.
//
// Cookie names are case-sensitive: "session" and "Session" are different
// cookies and a response may carry both.
type SetCookie struct {
	Name  string
	Value string

	Expires  time.Time
	MaxAge   time.Duration
	Domain   string
	Path     string
	Secure   bool
	HttpOnly bool
	SameSite SameSite
}

// New returns a SetCookie carrying only the cookie pair.
func New(name, value string) *SetCookie {
	return &SetCookie{Name: name, Value: value}
}

// String serializes the cookie as a Set-Cookie header value. Attributes
// appear in a fixed order: Expires, Max-Age, Domain, Path, SameSite,
// Secure, HttpOnly. MaxAge is truncated to whole seconds.
func (c *SetCookie) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)
	if !c.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(http.TimeFormat))
	}
	if c.MaxAge != 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.FormatInt(int64(c.MaxAge/time.Second), 10))
	}
	if c.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}
	if c.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}
	if s := c.SameSite.String(); s != "" {
		b.WriteString("; SameSite=")
		b.WriteString(s)
	}
	if c.Secure {
		b.WriteString("; Secure")
	}
	if c.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	return b.String()
}

// expiresFormats are the date layouts accepted for the Expires attribute:
// the IMF-fixdate preferred by RFC 7231 plus the two obsolete forms
// receivers are still required to understand.
var expiresFormats = []string{
	http.TimeFormat,
	time.RFC850,
	time.ANSIC,
}

// Parse is the inverse of String: it reads one Set-Cookie header value.
// Attribute names match case-insensitively, unknown attributes are
// skipped, and a quoted cookie value is unquoted. Parse(c.String())
// round-trips every attribute String writes.
func Parse(header string) (*SetCookie, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, ErrEmpty
	}
	pair, attrs, _ := strings.Cut(header, ";")
	name, value, ok := strings.Cut(pair, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return nil, ErrNoName
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}

	c := New(name, value)
	for _, attr := range strings.Split(attrs, ";") {
		attr = strings.TrimSpace(attr)
		if attr == "" {
			continue
		}
		key, val, _ := strings.Cut(attr, "=")
		val = strings.TrimSpace(val)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "expires":
			for _, layout := range expiresFormats {
				if t, err := time.Parse(layout, val); err == nil {
					c.Expires = t.UTC()
					break
				}
			}
		case "max-age":
			secs, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid Max-Age %q: %w", val, err)
			}
			c.MaxAge = time.Duration(secs) * time.Second
		case "domain":
			c.Domain = strings.TrimPrefix(val, ".")
		case "path":
			c.Path = val
		case "secure":
			c.Secure = true
		case "httponly":
			c.HttpOnly = true
		case "samesite":
			switch strings.ToLower(val) {
			case "strict":
				c.SameSite = SameSiteStrict
			case "lax":
				c.SameSite = SameSiteLax
			case "none":
				c.SameSite = SameSiteNone
			}
		}
	}
	return c, nil
}
