package compression

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

// BrotliEncoderDecoder implements the EncoderAndDecoder interface using Brotli.
type BrotliEncoderDecoder struct {
	Quality int
}

func (b BrotliEncoderDecoder) quality() int {
	if b.Quality == 0 {
		return brotli.DefaultCompression
	}
	return b.Quality
}

func (b BrotliEncoderDecoder) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriterLevel(&buf, b.quality())
	if _, err := bw.Write(data); err != nil {
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b BrotliEncoderDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}
