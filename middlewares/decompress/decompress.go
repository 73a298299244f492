// Package decompress adds transparent response body decompression to a
// client. Requests advertise gzip, deflate and brotli unless the caller
// already chose an Accept-Encoding, and compressed response bodies are
// unwrapped on the fly as they are read.
package decompress

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/cacexp/wrequest"
)

const acceptEncoding = "gzip, deflate, br"

// New returns the middleware. Install it with [wrequest.Client.Use].
func New() wrequest.Middleware {
	return func(next wrequest.Handler) wrequest.Handler {
		return func(ctx context.Context, req *wrequest.PreparedRequest) (*wrequest.Response, error) {
			if _, ok := req.Headers.Get("Accept-Encoding"); !ok {
				req.Headers.Set("Accept-Encoding", acceptEncoding)
			}
			resp, err := next(ctx, req)
			if err != nil {
				return resp, err
			}
			if err := Decode(resp); err != nil {
				resp.Close()
				return nil, err
			}
			return resp, nil
		}
	}
}

// Decode swaps the response body for a decoding reader matching the
// Content-Encoding header, which is removed along with the now
// meaningless Content-Length. Identity and unrecognized encodings are
// left untouched.
func Decode(resp *wrequest.Response) error {
	enc, ok := resp.Header("Content-Encoding")
	if !ok || resp.Body() == nil || resp.Body() == http.NoBody {
		return nil
	}
	body, err := resp.Reader()
	if err != nil {
		return nil
	}

	var dec io.Reader
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "gzip", "x-gzip":
		gz, err := gzip.NewReader(body)
		if err != nil {
			return fmt.Errorf("corrupt gzip body: %w", err)
		}
		dec = gz
	case "deflate":
		zr, err := zlib.NewReader(body)
		if err != nil {
			return fmt.Errorf("corrupt deflate body: %w", err)
		}
		dec = zr
	case "br":
		dec = brotli.NewReader(body)
	default:
		return nil
	}

	resp.DelHeader("Content-Encoding")
	resp.SetContentLength(-1)
	return resp.SetBody(decodedBody{dec, body})
}

// decodedBody reads decoded bytes while closing through to the wire
// body, so pooled connections still make it back to their pool.
type decodedBody struct {
	io.Reader
	wire io.ReadCloser
}

func (d decodedBody) Close() error {
	if c, ok := d.Reader.(io.Closer); ok {
		c.Close()
	}
	return d.wire.Close()
}
