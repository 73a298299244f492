package message

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
)

// Multipart accumulates the parts of a multipart/form-data body. Parts are
// rendered in insertion order with a boundary fixed at construction time,
// so rendering the same form twice produces identical bytes.
type Multipart struct {
	boundary string
	parts    []formPart
}

type formPart struct {
	field    string
	filename string
	mimeType string
	data     []byte
}

// NewMultipart returns an empty form with a random boundary.
func NewMultipart() *Multipart {
	var buf [16]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		panic(err) // rand.Reader does not fail on supported platforms
	}
	return &Multipart{boundary: fmt.Sprintf("%x", buf[:])}
}

// AddField appends a plain text field to the form.
func (m *Multipart) AddField(name, value string) {
	m.parts = append(m.parts, formPart{field: name, data: []byte(value)})
}

// AddFile appends a file part to the form. An empty mimeType defaults to
// application/octet-stream when rendered.
func (m *Multipart) AddFile(field, filename, mimeType string, data []byte) {
	m.parts = append(m.parts, formPart{
		field:    field,
		filename: filename,
		mimeType: mimeType,
		data:     data,
	})
}

// Boundary returns the form boundary.
func (m *Multipart) Boundary() string { return m.boundary }

// ContentType returns the Content-Type header value announcing the form,
// including its boundary parameter.
func (m *Multipart) ContentType() string {
	return "multipart/form-data; boundary=" + m.boundary
}

// Len returns the number of parts added so far.
func (m *Multipart) Len() int { return len(m.parts) }

// Render serializes the form into a multipart/form-data byte sequence.
func (m *Multipart) Render() ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(m.boundary); err != nil {
		return nil, err
	}
	for _, p := range m.parts {
		if p.filename == "" && p.mimeType == "" {
			if err := w.WriteField(p.field, string(p.data)); err != nil {
				return nil, err
			}
			continue
		}
		mimeType := p.mimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader, 2)
		h.Set("Content-Disposition", fmt.Sprintf(
			`form-data; name=%q; filename=%q`, p.field, p.filename,
		))
		h.Set("Content-Type", mimeType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(p.data); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
