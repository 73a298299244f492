package message

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBodyTypes(t *testing.T) {
	m := NewMessage()
	assert.NoError(t, m.SetBody("text"))
	assert.NoError(t, m.SetBody([]byte("raw")))
	assert.NoError(t, m.SetBody(bytes.NewBuffer([]byte("buf"))))
	assert.NoError(t, m.SetBody(bytes.NewReader([]byte("rd"))))
	assert.NoError(t, m.SetBody(strings.NewReader("rd")))
	assert.NoError(t, m.SetBody(NewMultipart()))
	assert.NoError(t, m.SetBody(io.LimitReader(strings.NewReader("stream"), 6)))

	assert.Error(t, m.SetBody(42))
	assert.Error(t, m.SetBody(struct{ Name string }{"x"}))

	assert.NoError(t, m.SetBody(nil))
	assert.False(t, m.HasBody())
}

func TestBodyBytes(t *testing.T) {
	m := NewMessage()

	_, err := m.BodyBytes()
	assert.Equal(t, ErrNoBody, err)

	m.SetBody("hello")
	b, err := m.BodyBytes()
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)

	m.SetBody([]byte{1, 2, 3})
	b, _ = m.BodyBytes()
	assert.Equal(t, []byte{1, 2, 3}, b)

	m.SetBody(bytes.NewBufferString("buffered"))
	b, _ = m.BodyBytes()
	assert.Equal(t, []byte("buffered"), b)
}

func TestBodyBytesDoesNotConsume(t *testing.T) {
	m := NewMessage()
	r := strings.NewReader("payload")
	m.SetBody(r)

	for i := 0; i < 2; i++ {
		b, err := m.BodyBytes()
		assert.NoError(t, err)
		assert.Equal(t, []byte("payload"), b)
	}
	// the original reader never moved
	assert.Equal(t, int64(7), r.Size())
	assert.Equal(t, 7, r.Len())
}

func TestBodyBytesStreaming(t *testing.T) {
	m := NewMessage()
	m.SetBody(io.LimitReader(strings.NewReader("stream"), 6))

	_, err := m.BodyBytes()
	assert.Equal(t, ErrStreamingBody, err)
	assert.True(t, m.HasBody())
	assert.False(t, m.HasBufferedBody())
}

func TestHasBufferedBody(t *testing.T) {
	m := NewMessage()
	assert.False(t, m.HasBufferedBody())

	m.SetBody("x")
	assert.True(t, m.HasBufferedBody())

	m.SetBody(NewMultipart())
	assert.False(t, m.HasBufferedBody())
	assert.True(t, m.HasMultipartBody())
}

func TestReader(t *testing.T) {
	m := NewMessage()

	_, err := m.Reader()
	assert.Equal(t, ErrNoBody, err)

	m.SetBody("hello")
	// buffered bodies hand out a fresh reader per call
	for i := 0; i < 2; i++ {
		r, err := m.Reader()
		assert.NoError(t, err)
		b, err := io.ReadAll(r)
		assert.NoError(t, err)
		assert.Equal(t, []byte("hello"), b)
		assert.NoError(t, r.Close())
	}
}

func TestReaderStreaming(t *testing.T) {
	m := NewMessage()
	m.SetBody(io.LimitReader(strings.NewReader("stream"), 6))

	r, err := m.Reader()
	assert.NoError(t, err)
	b, _ := io.ReadAll(r)
	assert.Equal(t, []byte("stream"), b)

	// a second read finds the stream consumed
	r, err = m.Reader()
	assert.NoError(t, err)
	b, _ = io.ReadAll(r)
	assert.Empty(t, b)
}
