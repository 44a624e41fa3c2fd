package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipEncoderDecoder implements the EncoderAndDecoder interface using gzip.
type GzipEncoderDecoder struct {
	Level int
}

func (g GzipEncoderDecoder) Encode(data []byte) ([]byte, error) {
	level := g.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}
	var buf bytes.Buffer
	gw, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	// Close flushes the footer.
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewReader reads the gzip header eagerly, so a body that is not gzip fails here.
func (g GzipEncoderDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
