package encoding

import (
	"encoding/ascii85"
	"strings"
)

// Ascii85EncoderDecoder implements the EncoderAndDecoder interface using
// ASCII85 (btoa style, no <~ ~> delimiters on output).
type Ascii85EncoderDecoder struct{}

func (Ascii85EncoderDecoder) Encode(input string) Result {
	return EncodeToAscii85(input)
}

func (Ascii85EncoderDecoder) Decode(input string) Result {
	return DecodeFromAscii85(input)
}

// EncodeToAscii85 encodes the UTF-8 bytes of input in 4-byte groups. A full
// group of zero bytes becomes 'z'. A trailing group of n < 4 bytes is read
// as an n-byte big-endian number, not zero padded, and only the first n+1 of
// its five digits are written.
func EncodeToAscii85(input string) Result {
	data := []byte(input)
	var sb strings.Builder
	sb.Grow(len(data)/4*5 + 5)

	var digits [5]byte
	for i := 0; i < len(data); i += 4 {
		group := data[i:min(i+4, len(data))]

		var value uint32
		for _, b := range group {
			value = value<<8 | uint32(b)
		}
		if len(group) == 4 && value == 0 {
			sb.WriteByte('z')
			continue
		}
		for k := 4; k >= 0; k-- {
			digits[k] = '!' + byte(value%85)
			value /= 85
		}
		sb.Write(digits[:len(group)+1])
	}
	return encoded(input, sb.String())
}

// DecodeFromAscii85 decodes standard ASCII85, ignoring whitespace and
// optional <~ ~> delimiters. A short final group is zero padded the Adobe
// way, so only output of EncodeToAscii85 whose input length is a multiple of
// 4 decodes back to the original text. Invalid UTF-8 sequences become U+FFFD.
func DecodeFromAscii85(input string) Result {
	clean := stripWhitespace(input)
	clean = strings.TrimSuffix(strings.TrimPrefix(clean, "<~"), "~>")
	if clean == "" {
		return failed(KindEmptyInput, "Input must be a non-empty string")
	}
	for i := 0; i < len(clean); i++ {
		c := clean[i]
		if (c < '!' || c > 'u') && c != 'z' {
			return failed(KindFormatValidation, "Invalid ASCII85 format")
		}
	}
	dst := make([]byte, 4*len(clean))
	n, _, err := ascii85.Decode(dst, []byte(clean), true)
	if err != nil {
		return codecFailed(err)
	}
	return decoded(clean, lenientUTF8(dst[:n]))
}
