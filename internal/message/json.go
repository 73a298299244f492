package message

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SetJSON marshals v, installs the result as the message body and forces
// Content-Type: application/json. The body is indented so it stays
// readable in logs and byte-stable across calls.
func (m *Message) SetJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode json body: %w", err)
	}
	m.body = data
	m.headers.Set(HeaderContentType, MIMEApplicationJSON)
	return nil
}

// JSON parses the message body into target. The body must be buffered (or
// multipart, which is rendered first); an absent body yields ErrNoBody and
// malformed content yields a decode error.
func (m *Message) JSON(target interface{}) error {
	data, err := m.BodyBytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode json body: %w", err)
	}
	return nil
}
