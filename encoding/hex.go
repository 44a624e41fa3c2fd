package encoding

import (
	"encoding/hex"
)

// HexEncoderDecoder implements the EncoderAndDecoder interface using
// lowercase hexadecimal over UTF-8 text.
type HexEncoderDecoder struct{}

func (HexEncoderDecoder) Encode(input string) Result {
	return EncodeToHex(input)
}

func (HexEncoderDecoder) Decode(input string) Result {
	return DecodeFromHex(input)
}

// EncodeToHex renders each UTF-8 byte of input as two lowercase hex digits.
func EncodeToHex(input string) Result {
	return encoded(input, hex.EncodeToString([]byte(input)))
}

// DecodeFromHex parses hex digit pairs, ignoring whitespace, and decodes the
// bytes as UTF-8. Invalid sequences become U+FFFD.
func DecodeFromHex(input string) Result {
	clean := stripWhitespace(input)
	if !hexRegex.MatchString(clean) {
		return failed(KindFormatValidation, "Invalid hex format")
	}
	if len(clean)%2 != 0 {
		return failed(KindFormatValidation, "Hex string must have even length")
	}
	data, err := hex.DecodeString(clean)
	if err != nil {
		return codecFailed(err)
	}
	return decoded(clean, lenientUTF8(data))
}

// lenientUTF8 replaces every byte that is not part of a valid UTF-8 sequence
// with U+FFFD.
func lenientUTF8(data []byte) string {
	return string([]rune(string(data)))
}
