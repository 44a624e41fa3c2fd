package encoding

import (
	"strconv"
	"strings"
)

// BinaryEncoderDecoder implements the EncoderAndDecoder interface using
// space separated 8-bit groups over UTF-8 text.
type BinaryEncoderDecoder struct{}

func (BinaryEncoderDecoder) Encode(input string) Result {
	return EncodeToBinary(input)
}

func (BinaryEncoderDecoder) Decode(input string) Result {
	return DecodeFromBinary(input)
}

// EncodeToBinary renders each UTF-8 byte of input as eight binary digits,
// joined by single spaces.
func EncodeToBinary(input string) Result {
	data := []byte(input)
	var sb strings.Builder
	sb.Grow(len(data) * 9)
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		s := strconv.FormatUint(uint64(b), 2)
		sb.WriteString(strings.Repeat("0", 8-len(s)))
		sb.WriteString(s)
	}
	return encoded(input, sb.String())
}

// DecodeFromBinary parses 8-bit groups, ignoring whitespace, and decodes the
// bytes as UTF-8. Invalid sequences become U+FFFD.
func DecodeFromBinary(input string) Result {
	clean := stripWhitespace(input)
	if !binaryRegex.MatchString(clean) {
		return failed(KindFormatValidation, "Invalid binary format")
	}
	if len(clean)%8 != 0 {
		return failed(KindFormatValidation, "Binary string length must be multiple of 8")
	}
	data := make([]byte, len(clean)/8)
	for i := range data {
		v, err := strconv.ParseUint(clean[i*8:i*8+8], 2, 8)
		if err != nil {
			return codecFailed(err)
		}
		data[i] = byte(v)
	}
	return decoded(clean, lenientUTF8(data))
}
