package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

// DeflateEncoderDecoder implements the EncoderAndDecoder interface using raw deflate.
type DeflateEncoderDecoder struct {
	Level int
}

func (d DeflateEncoderDecoder) level() int {
	if d.Level == 0 {
		return flate.DefaultCompression
	}
	return d.Level
}

func (d DeflateEncoderDecoder) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, d.level())
	if err != nil {
		return nil, err
	}
	if _, err = fw.Write(data); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d DeflateEncoderDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	return flate.NewReader(r), nil
}
