package message

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// common header names and values
const (
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"

	MIMEApplicationJSON = "application/json"
)

var (
	// ErrNoBody is returned when body content is requested from a message
	// that carries none.
	ErrNoBody = errors.New("message has no body")

	// ErrStreamingBody is returned when buffered access is requested for a
	// body that is backed by a plain io.Reader and can only be consumed once.
	ErrStreamingBody = errors.New("message body is streaming and cannot be buffered")
)

// Message is the part shared by Request and Response: a case-insensitive
// header collection and an optional body.
//
// A body is one of:
//   - a buffered value: string, []byte, *bytes.Buffer, *bytes.Reader or
//     *strings.Reader, which can be inspected repeatedly,
//   - a *Multipart form under construction,
//   - any other io.Reader, which is streamed and consumed exactly once.
type Message struct {
	headers Headers
	body    interface{}
}

// NewMessage returns an empty message with no headers and no body.
func NewMessage() Message {
	return Message{headers: make(Headers)}
}

// SetHeader stores a header field on the message. Header names are
// case-insensitive; it reports whether a previous value was replaced.
func (m *Message) SetHeader(key, value string) bool {
	return m.headers.Set(key, value)
}

// Header returns the value of a header field by its case-insensitive name.
func (m *Message) Header(key string) (string, bool) {
	return m.headers.Get(key)
}

// DelHeader removes a header field, reporting whether it was present.
func (m *Message) DelHeader(key string) bool {
	return m.headers.Del(key)
}

// Headers returns the live header collection of the message. Mutating the
// returned map mutates the message.
func (m *Message) Headers() Headers {
	return m.headers
}

// SetBody installs v as the message body, replacing any previous body.
// Supported types are the ones listed on [Message]; anything else is
// rejected. A nil v clears the body.
func (m *Message) SetBody(v interface{}) error {
	switch v.(type) {
	case nil, string, []byte, *bytes.Buffer, *bytes.Reader, *strings.Reader, *Multipart, io.Reader:
	default:
		return fmt.Errorf("unsupported body type: %T", v)
	}
	m.body = v
	return nil
}

// Body returns the raw body value as given to SetBody, nil when absent.
func (m *Message) Body() interface{} { return m.body }

// HasBody reports whether any body is set.
func (m *Message) HasBody() bool { return m.body != nil }

// HasBufferedBody reports whether the body is an in-memory value that
// BodyBytes can materialize without consuming it.
func (m *Message) HasBufferedBody() bool {
	switch m.body.(type) {
	case string, []byte, *bytes.Buffer, *bytes.Reader, *strings.Reader:
		return true
	}
	return false
}

// HasMultipartBody reports whether the body is a multipart form.
func (m *Message) HasMultipartBody() bool {
	_, ok := m.body.(*Multipart)
	return ok
}

// BodyBytes materializes the body without consuming it. Multipart bodies
// are rendered; streaming bodies return ErrStreamingBody and an absent
// body returns ErrNoBody.
func (m *Message) BodyBytes() ([]byte, error) {
	switch b := m.body.(type) {
	case nil:
		return nil, ErrNoBody
	case string:
		return []byte(b), nil
	case []byte:
		return b, nil
	case *bytes.Buffer:
		return b.Bytes(), nil
	case *bytes.Reader:
		// read a stack copy so the original reader keeps its position
		snapshot := *b
		return io.ReadAll(&snapshot)
	case *strings.Reader:
		snapshot := *b
		return io.ReadAll(&snapshot)
	case *Multipart:
		return b.Render()
	default:
		return nil, ErrStreamingBody
	}
}

// Reader returns the body as a ReadCloser. Buffered and multipart bodies
// yield a fresh reader on every call; a streaming body is returned as-is
// and can only be read once. Closing the returned reader closes the
// underlying body when it is closable.
func (m *Message) Reader() (io.ReadCloser, error) {
	switch b := m.body.(type) {
	case nil:
		return nil, ErrNoBody
	case io.ReadCloser:
		return b, nil
	case io.Reader:
		if data, err := m.BodyBytes(); err == nil {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
		return io.NopCloser(b), nil
	default:
		data, err := m.BodyBytes()
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}
