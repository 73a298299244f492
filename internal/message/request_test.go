package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequest(t *testing.T) {
	for _, method := range []string{
		MethodGet, MethodHead, MethodPost, MethodPut, MethodDelete,
		MethodConnect, MethodOptions, MethodTrace, MethodPatch,
	} {
		r := NewRequest(method, "http://example.com/user")
		assert.Equal(t, method, r.Method())
		assert.Equal(t, "http://example.com/user", r.Target())

		u, err := r.URL()
		if err != nil {
			t.Error(err)
		}
		assert.Equal(t, "example.com", u.Host)
		assert.Equal(t, "/user", u.Path)
	}
}

func TestRequestBadTarget(t *testing.T) {
	// a missing scheme separator keeps the target verbatim but fails URL
	r := NewRequest(MethodGet, "http//example.com/user")
	assert.Equal(t, MethodGet, r.Method())
	assert.Equal(t, "http//example.com/user", r.Target())

	_, err := r.URL()
	assert.Error(t, err)
}

func TestRequestHeaders(t *testing.T) {
	r := NewRequest(MethodConnect, "http://example.com/user")
	r.SetHeader("Content-Type", "application/json")

	// case insensitive on get
	v, ok := r.Header("content-type")
	assert.True(t, ok)
	assert.Equal(t, "application/json", v)

	// case insensitive on insert
	assert.True(t, r.SetHeader("content-Type", "application/json"))
	v, _ = r.Header("Content-type")
	assert.Equal(t, "application/json", v)

	r.SetHeader("Accept", "application/json")
	assert.Equal(t, Headers{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}, r.Headers())
}

func TestRequestParams(t *testing.T) {
	r := NewRequest(MethodConnect, "http://example.com/user")
	r.SetParam("id", "1234")
	r.SetParam("departament", "marketing")

	_, ok := r.Param("ID")
	assert.False(t, ok)
	v, ok := r.Param("id")
	assert.True(t, ok)
	assert.Equal(t, "1234", v)

	assert.Equal(t, Params{"id": "1234", "departament": "marketing"}, r.Params())
}

func TestRequestCookies(t *testing.T) {
	r := NewRequest(MethodConnect, "http://example.com/user")
	r.SetCookie("id", "1234")

	_, ok := r.Cookie("ID")
	assert.False(t, ok)

	// names differing only in case are distinct cookies
	r.SetCookie("ID", "3456")
	r.SetCookie("departament", "marketing")
	assert.Equal(t, Cookies{
		"id":          "1234",
		"ID":          "3456",
		"departament": "marketing",
	}, r.Cookies())
}

func TestRequestString(t *testing.T) {
	r := NewRequest(MethodGet, "https://api.example.com/user")
	r.SetHeader("accept", "application/json")
	r.SetHeader("X-Trace", "abc")

	assert.Equal(t,
		"GET https://api.example.com/user\nAccept=application/json\nX-Trace=abc\n",
		r.String())
}
