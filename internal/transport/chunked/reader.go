package chunked

import (
	"bufio"
	"errors"
	"io"
)

// NewChunkedReader returns a reader that translates chunked transfer
// coding read from r into the plain data stream. After the terminating
// zero-length chunk, the trailer section is consumed off r so a following
// message can be read from the same stream.
func NewChunkedReader(r io.Reader) io.Reader {
	var br *bufio.Reader
	if v, ok := r.(*bufio.Reader); ok {
		br = v
	} else {
		br = bufio.NewReader(r)
	}
	return &chunkedReader{Reader: br}
}

type chunkedReader struct {
	*bufio.Reader
	currentChunk                   io.Reader
	currentCount, currentChunkSize int64
	done                           bool
}

func (c *chunkedReader) readChunkHeader() (size uint64, err error) {
	cnt := 0
	isPref := true
	skipExt := false
	for isPref {
		var line []byte
		line, isPref, err = c.ReadLine()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if skipExt {
			continue
		}
		for _, b := range line {
			// chunk extensions (and the whitespace some servers put
			// before them) are discarded
			if b == ';' || b == ' ' || b == '\t' {
				skipExt = true
				break
			}
			cnt++
			switch {
			case '0' <= b && b <= '9':
				b = b - '0'
			case 'a' <= b && b <= 'f':
				b = b - 'a' + 10
			case 'A' <= b && b <= 'F':
				b = b - 'A' + 10
			default:
				return 0, errors.New("invalid byte in chunk length")
			}
			size <<= 4
			size |= uint64(b)
		}
		if cnt >= 16 {
			return 0, errors.New("http chunk length too large")
		}
	}
	if cnt == 0 {
		return 0, errors.New("empty chunk length")
	}
	return
}

// discardTrailer consumes the optional trailer fields after the last
// chunk, up to and including the blank line that ends the message.
func (c *chunkedReader) discardTrailer() error {
	for {
		line, isPref, err := c.ReadLine()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		for isPref {
			if _, isPref, err = c.ReadLine(); err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				return err
			}
		}
		if len(line) == 0 {
			return nil
		}
	}
}

func (c *chunkedReader) Read(p []byte) (n int, err error) {
	if c.done {
		return 0, io.EOF
	}
	if c.currentChunk == nil {
		l, err := c.readChunkHeader()
		if err != nil {
			return 0, err
		}
		if l == 0 {
			if err := c.discardTrailer(); err != nil {
				return 0, err
			}
			c.done = true
			return 0, io.EOF
		}
		c.currentChunk = io.LimitReader(c.Reader, int64(l))
		c.currentChunkSize = int64(l)
	}
	n, err = c.currentChunk.Read(p)
	c.currentCount += int64(n)
	if err == io.EOF {
		if c.currentCount != c.currentChunkSize {
			return n, io.ErrUnexpectedEOF
		}
		err = nil
		dr, _ := c.Reader.ReadByte()
		dn, err := c.Reader.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return n, err
		}
		if dr != '\r' || dn != '\n' {
			return n, errors.New("malformed chunked encoding")
		}
		c.currentChunk = nil
		c.currentCount = 0
	}
	return
}
