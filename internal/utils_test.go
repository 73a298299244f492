package internal_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cacexp/wrequest/internal"
	"github.com/cacexp/wrequest/internal/dialer"
	"github.com/cacexp/wrequest/internal/message"
)

type CombinedReadWriteCloser struct {
	io.Reader
	io.Writer
	io.Closer
}

type TestDialer struct {
	io.ReadWriteCloser
}

// Dial implements internal.Dialer.
func (t *TestDialer) Dial(ctx context.Context, r *message.PreparedRequest) (io.ReadWriteCloser, error) {
	return t.ReadWriteCloser, nil
}

// Unwrap implements internal.Dialer.
func (t *TestDialer) Unwrap() dialer.Dialer {
	return nil
}

func SendSingleRequest(t *testing.T, req *message.Request) io.Reader {
	readResponse, writeResponse := io.Pipe()
	go io.Copy(writeResponse, strings.NewReader("HTTP/1.1 200 OK\r\nContent-Length: 0\r\nConnection: close\r\n\r\n"))

	readRequest, writeRequest := io.Pipe()
	c := &internal.Client{}
	c.UseDialer(func(dialer.Dialer) dialer.Dialer {
		return &TestDialer{CombinedReadWriteCloser{
			Reader: readResponse,
			Writer: writeRequest,
			Closer: writeRequest,
		}}
	})
	go func() {
		resp, err := c.CtxDo(context.Background(), req)
		if err != nil {
			t.Error(err)
			return
		}
		resp.Close()
	}()
	return readRequest
}
