package compression

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// ZstdEncoderDecoder implements the EncoderAndDecoder interface using Zstandard.
type ZstdEncoderDecoder struct{}

func (z ZstdEncoderDecoder) Encode(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer encoder.Close()

	return encoder.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// Closing the returned reader releases the decoder.
func (z ZstdEncoderDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}
