package encoding

import (
	"net/url"
	"strings"
)

// DetectInputFormat guesses the format of s. It is the same classifier as
// DetectInputFormatEnhanced.
func DetectInputFormat(s string) Format {
	return DetectInputFormatEnhanced(s)
}

// DetectInputFormatEnhanced returns the first match, in order, of: url,
// binary, hex, base64url (longer than 4 characters), base64, text. Blank
// input is unknown.
//
// Short binary and hex strings are usually valid Base64 too, which is why
// they are tried first. The answer is a guess.
func DetectInputFormatEnhanced(s string) Format {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return UnknownFormat
	}
	if isAbsoluteURL(trimmed) {
		return URLFormat
	}
	if IsValidBinary(trimmed) {
		return BinaryFormat
	}
	if IsValidHex(trimmed) {
		return HexFormat
	}
	if len(trimmed) > 4 && base64URLRegex.MatchString(trimmed) {
		return Base64URLFormat
	}
	if IsValidBase64(trimmed) {
		return Base64Format
	}
	return TextFormat
}

// isAbsoluteURL reports whether s parses as a URL with a scheme. Like a
// browser URL parser it accepts spaces inside, so "Hello: World" counts.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}
