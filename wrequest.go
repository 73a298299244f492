// Package wrequest provides HTTP Request and Response types built around
// case-insensitive single-valued headers, case-sensitive query parameters
// and cookies, JSON and multipart bodies, and Set-Cookie parsing on
// responses, together with a small pooled HTTP/1.1 client to send them.
package wrequest

import (
	"github.com/cacexp/wrequest/internal/cookie"
	"github.com/cacexp/wrequest/internal/message"
)

type (
	Message         = message.Message
	Request         = message.Request
	PreparedRequest = message.PreparedRequest
	Response        = message.Response
	Headers         = message.Headers
	Params          = message.Params
	Cookies         = message.Cookies
	Multipart       = message.Multipart

	SetCookie = cookie.SetCookie
	SameSite  = cookie.SameSite
)

const (
	MethodGet     = message.MethodGet
	MethodHead    = message.MethodHead
	MethodPost    = message.MethodPost
	MethodPut     = message.MethodPut
	MethodDelete  = message.MethodDelete
	MethodConnect = message.MethodConnect
	MethodOptions = message.MethodOptions
	MethodTrace   = message.MethodTrace
	MethodPatch   = message.MethodPatch
)

const (
	HeaderContentType   = message.HeaderContentType
	HeaderAccept        = message.HeaderAccept
	MIMEApplicationJSON = message.MIMEApplicationJSON
)

const (
	SameSiteDefault = cookie.SameSiteDefault
	SameSiteStrict  = cookie.SameSiteStrict
	SameSiteLax     = cookie.SameSiteLax
	SameSiteNone    = cookie.SameSiteNone
)

var (
	ErrNoBody        = message.ErrNoBody
	ErrStreamingBody = message.ErrStreamingBody
	ErrCookieEmpty   = cookie.ErrEmpty
	ErrCookieNoName  = cookie.ErrNoName
)

// NewRequest builds a request with an arbitrary method. The target is
// kept verbatim; it is parsed and validated when the request is sent.
func NewRequest(method, target string) *Request { return message.NewRequest(method, target) }

func Get(target string) *Request     { return message.NewRequest(message.MethodGet, target) }
func Head(target string) *Request    { return message.NewRequest(message.MethodHead, target) }
func Post(target string) *Request    { return message.NewRequest(message.MethodPost, target) }
func Put(target string) *Request     { return message.NewRequest(message.MethodPut, target) }
func Delete(target string) *Request  { return message.NewRequest(message.MethodDelete, target) }
func Connect(target string) *Request { return message.NewRequest(message.MethodConnect, target) }
func Options(target string) *Request { return message.NewRequest(message.MethodOptions, target) }
func Trace(target string) *Request   { return message.NewRequest(message.MethodTrace, target) }
func Patch(target string) *Request   { return message.NewRequest(message.MethodPatch, target) }

// NewResponse builds a response with the given status code, mainly
// useful for tests and server-side fakes.
func NewResponse(status int) *Response { return message.NewResponse(status) }

// NewMultipart starts an empty multipart/form-data body with a fresh
// random boundary.
func NewMultipart() *Multipart { return message.NewMultipart() }

// NewSetCookie builds a Set-Cookie model with no attributes set.
func NewSetCookie(name, value string) *SetCookie { return cookie.New(name, value) }

// ParseSetCookie parses a Set-Cookie header value.
func ParseSetCookie(header string) (*SetCookie, error) { return cookie.Parse(header) }

// StatusText returns the reason phrase for code, "" when unknown.
func StatusText(code int) string { return message.StatusText(code) }

const (
	StatusContinue           = message.StatusContinue
	StatusSwitchingProtocols = message.StatusSwitchingProtocols

	StatusOK                   = message.StatusOK
	StatusCreated              = message.StatusCreated
	StatusAccepted             = message.StatusAccepted
	StatusNonAuthoritativeInfo = message.StatusNonAuthoritativeInfo
	StatusNoContent            = message.StatusNoContent
	StatusResetContent         = message.StatusResetContent

	StatusMultipleChoices   = message.StatusMultipleChoices
	StatusMovedPermanently  = message.StatusMovedPermanently
	StatusFound             = message.StatusFound
	StatusSeeOther          = message.StatusSeeOther
	StatusNotModified       = message.StatusNotModified
	StatusUseProxy          = message.StatusUseProxy
	StatusTemporaryRedirect = message.StatusTemporaryRedirect

	StatusBadRequest           = message.StatusBadRequest
	StatusUnauthorized         = message.StatusUnauthorized
	StatusPaymentRequired      = message.StatusPaymentRequired
	StatusForbidden            = message.StatusForbidden
	StatusNotFound             = message.StatusNotFound
	StatusMethodNotAllowed     = message.StatusMethodNotAllowed
	StatusNotAcceptable        = message.StatusNotAcceptable
	StatusRequestTimeout       = message.StatusRequestTimeout
	StatusConflict             = message.StatusConflict
	StatusGone                 = message.StatusGone
	StatusLengthRequired       = message.StatusLengthRequired
	StatusPayloadTooLarge      = message.StatusPayloadTooLarge
	StatusURITooLong           = message.StatusURITooLong
	StatusUnsupportedMediaType = message.StatusUnsupportedMediaType
	StatusExpectationFailed    = message.StatusExpectationFailed
	StatusUpgradeRequired      = message.StatusUpgradeRequired

	StatusInternalServerError     = message.StatusInternalServerError
	StatusNotImplemented          = message.StatusNotImplemented
	StatusBadGateway              = message.StatusBadGateway
	StatusServiceUnavailable      = message.StatusServiceUnavailable
	StatusGatewayTimeout          = message.StatusGatewayTimeout
	StatusHTTPVersionNotSupported = message.StatusHTTPVersionNotSupported
)
