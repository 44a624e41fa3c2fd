// Package compression holds the HTTP content codings used for API request
// and response bodies.
package compression

import "io"

type Encoder interface {
	Encode([]byte) ([]byte, error)
}

// Decoder wraps a stream compressed with one content coding.
type Decoder interface {
	NewReader(io.Reader) (io.ReadCloser, error)
}

type EncoderAndDecoder interface {
	Encoder
	Decoder
}
