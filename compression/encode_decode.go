package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

func codecFor(encoding string) (EncoderAndDecoder, error) {
	switch encoding {
	case "gzip", "x-gzip":
		return GzipEncoderDecoder{}, nil
	case "brotli", "br":
		return BrotliEncoderDecoder{}, nil
	case "deflate":
		return DeflateEncoderDecoder{}, nil
	case "zstd":
		return ZstdEncoderDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, encoding)
	}
}

func isIdentity(encoding string) bool {
	return encoding == "plain" || encoding == "identity" || encoding == ""
}

func Encode(data []byte, encoding string) ([]byte, error) {
	if isIdentity(encoding) {
		return data, nil
	}
	encoder, err := codecFor(encoding)
	if err != nil {
		return nil, err
	}
	return encoder.Encode(data)
}

// NewReader returns a reader that undoes the Content-Encoding coding on r.
// Unsupported codings fail with ErrUnknownEncoding.
func NewReader(r io.Reader, encoding string) (io.ReadCloser, error) {
	encoding = strings.ToLower(strings.TrimSpace(encoding))
	if isIdentity(encoding) {
		return io.NopCloser(r), nil
	}
	decoder, err := codecFor(encoding)
	if err != nil {
		return nil, err
	}
	return decoder.NewReader(r)
}

func Decode(data []byte, encoding string) ([]byte, error) {
	rc, err := NewReader(bytes.NewReader(data), encoding)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// parseAcceptEncoding returns the codings of an Accept-Encoding header in
// header order, lowercased, dropping those with q=0.
func parseAcceptEncoding(acceptEncoding string) []string {
	var out []string
	for _, chunk := range strings.Split(acceptEncoding, ",") {
		params := strings.Split(chunk, ";")
		name := strings.ToLower(strings.TrimSpace(params[0]))
		if name == "" {
			continue
		}
		rejected := false
		for _, p := range params[1:] {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || strings.TrimSpace(k) != "q" {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && q == 0 {
				rejected = true
			}
		}
		if !rejected {
			out = append(out, name)
		}
	}
	return out
}

// EncodeWithAccepted compresses data with the first coding from
// acceptEncoding that this package supports and that makes data smaller.
// It returns the coding used, or "" when data is returned as is.
func EncodeWithAccepted(data []byte, acceptEncoding string) ([]byte, string, error) {
	for _, encoding := range parseAcceptEncoding(acceptEncoding) {
		if isIdentity(encoding) {
			continue
		}
		if _, err := codecFor(encoding); err != nil {
			continue
		}
		encoded, err := Encode(data, encoding)
		if err != nil {
			return nil, "", err
		}
		if len(encoded) < len(data) {
			return encoded, encoding, nil
		}
	}

	return data, "", nil
}
