package encoding

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

const DefaultFileName = "decoded-file"

var errMalformedUTF8 = errors.New("URI malformed: decoded bytes are not valid UTF-8")

// Base64EncoderDecoder implements the EncoderAndDecoder interface using
// standard padded Base64 over UTF-8 text.
type Base64EncoderDecoder struct{}

func (Base64EncoderDecoder) Encode(input string) Result {
	return EncodeToBase64(input)
}

func (Base64EncoderDecoder) Decode(input string) Result {
	return DecodeFromBase64(input)
}

// Base64URLEncoderDecoder implements the EncoderAndDecoder interface using
// unpadded URL-safe Base64.
type Base64URLEncoderDecoder struct{}

func (Base64URLEncoderDecoder) Encode(input string) Result {
	return EncodeToBase64URLSafe(input)
}

func (Base64URLEncoderDecoder) Decode(input string) Result {
	return DecodeFromBase64URLSafe(input)
}

// EncodeToBase64 encodes the UTF-8 bytes of input.
func EncodeToBase64(input string) Result {
	return encoded(input, base64.StdEncoding.EncodeToString([]byte(input)))
}

// EncodeToBase64URLSafe is EncodeToBase64 with '-' and '_' in place of '+'
// and '/', and without padding.
func EncodeToBase64URLSafe(input string) Result {
	res := EncodeToBase64(input)
	if !res.Success {
		return res
	}
	res.Data = toURLSafe(res.Data)
	res.EncodedSize = len(res.Data)
	return res
}

func toURLSafe(s string) string {
	s = strings.NewReplacer("+", "-", "/", "_").Replace(s)
	return strings.TrimRight(s, "=")
}

// DecodeFromBase64 decodes padded standard Base64 into UTF-8 text.
// Whitespace anywhere in the input is ignored.
func DecodeFromBase64(input string) Result {
	data, clean, res := decodeBase64Bytes(input)
	if !res.Success {
		return res
	}
	if !utf8.Valid(data) {
		return codecFailed(errMalformedUTF8)
	}
	return decoded(clean, string(data))
}

// DecodeFromBase64URLSafe restores the standard alphabet and padding, then
// decodes as DecodeFromBase64.
func DecodeFromBase64URLSafe(input string) Result {
	return DecodeFromBase64(fromURLSafe(input))
}

func fromURLSafe(s string) string {
	s = stripWhitespace(s)
	s = strings.NewReplacer("-", "+", "_", "/").Replace(s)
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat("=", 4-rem)
	}
	return s
}

// DecodeBase64ToFile decodes Base64 into raw bytes for saving as a file.
// Data holds the file name; Content holds the bytes. OriginalSize counts the
// input as given, whitespace included.
func DecodeBase64ToFile(input, fileName string) FileResult {
	if fileName == "" {
		fileName = DefaultFileName
	}
	// Unlike text decoding, empty input is just not Base64.
	if !IsValidBase64(input) {
		return FileResult{Result: failed(KindFormatValidation, "Invalid Base64 format"), FileName: fileName}
	}
	data, err := base64.StdEncoding.DecodeString(stripWhitespace(input))
	if err != nil {
		return FileResult{Result: codecFailed(err), FileName: fileName}
	}
	return FileResult{
		Result:   succeeded(fileName, utf8.RuneCountInString(input), len(data)),
		FileName: fileName,
		FileType: mimetype.Detect(data).String(),
		Content:  data,
	}
}

// EncodeFileToBase64 encodes raw file content. An empty contentType is
// sniffed from the data.
func EncodeFileToBase64(fileName, contentType string, data []byte) FileResult {
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}
	out := base64.StdEncoding.EncodeToString(data)
	return FileResult{
		Result:   succeeded(out, len(data), len(out)),
		FileName: fileName,
		FileType: contentType,
	}
}

func decodeBase64Bytes(input string) ([]byte, string, Result) {
	if input == "" {
		return nil, "", failed(KindEmptyInput, "Input must be a non-empty string")
	}
	clean := stripWhitespace(input)
	if !IsValidBase64(clean) {
		return nil, clean, failed(KindFormatValidation, "Invalid Base64 format")
	}
	data, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, clean, codecFailed(err)
	}
	return data, clean, Result{Success: true}
}
