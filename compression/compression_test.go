package compression

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = []byte(strings.Repeat(`{"success":true,"data":"SGVsbG8gV29ybGQ="}`, 50))

func TestRoundTrip(t *testing.T) {
	for _, encoding := range []string{"gzip", "br", "brotli", "deflate", "zstd", "identity", ""} {
		t.Run(encoding, func(t *testing.T) {
			encoded, err := Encode(payload, encoding)
			require.NoError(t, err)
			decoded, err := Decode(encoded, encoding)
			require.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestUnknownEncoding(t *testing.T) {
	_, err := Encode(payload, "lzma")
	assert.ErrorContains(t, err, "unknown encoding: lzma")
	_, err = Decode(payload, "lzma")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
	_, err = NewReader(bytes.NewReader(payload), "compress")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestNewReader(t *testing.T) {
	for _, encoding := range []string{"gzip", "x-gzip", "br", "deflate", "zstd"} {
		t.Run(encoding, func(t *testing.T) {
			encoded, err := Encode(payload, encoding)
			require.NoError(t, err)

			rc, err := NewReader(bytes.NewReader(encoded), " "+strings.ToUpper(encoding))
			require.NoError(t, err)
			defer rc.Close()
			decoded, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}

	rc, err := NewReader(strings.NewReader("plain"), "")
	require.NoError(t, err)
	decoded, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "plain", string(decoded))

	_, err = NewReader(strings.NewReader("not gzip at all"), "gzip")
	assert.Error(t, err)
}

func TestParseAcceptEncoding(t *testing.T) {
	assert.Equal(t, []string{"gzip", "br", "zstd"}, parseAcceptEncoding("gzip, deflate;q=0, br;q=0.8, ZSTD"))
	assert.Empty(t, parseAcceptEncoding(""))
	assert.Equal(t, []string{"*"}, parseAcceptEncoding(" , *"))
}

func TestEncodeWithAccepted(t *testing.T) {
	encoded, encoding, err := EncodeWithAccepted(payload, "lzma, br;q=0.9, gzip")
	require.NoError(t, err)
	assert.Equal(t, "br", encoding)
	assert.Less(t, len(encoded), len(payload))

	decoded, err := Decode(encoded, encoding)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestEncodeWithAcceptedKeepsSmallBodies(t *testing.T) {
	small := []byte("{}")
	out, encoding, err := EncodeWithAccepted(small, "gzip")
	require.NoError(t, err)
	assert.Equal(t, "", encoding)
	assert.Equal(t, small, out)

	out, encoding, err = EncodeWithAccepted(payload, "identity")
	require.NoError(t, err)
	assert.Equal(t, "", encoding)
	assert.Equal(t, payload, out)
}
