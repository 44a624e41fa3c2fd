package encoding

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	base64Regex    = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)
	base64URLRegex = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)
	hexRegex       = regexp.MustCompile(`^[0-9a-fA-F]*$`)
	binaryRegex    = regexp.MustCompile(`^[01]*$`)
)

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// IsValidBase64 reports whether s, ignoring whitespace, is non-empty padded
// standard Base64.
func IsValidBase64(s string) bool {
	clean := stripWhitespace(s)
	if clean == "" || len(clean)%4 != 0 {
		return false
	}
	return base64Regex.MatchString(clean)
}

// IsValidHex reports whether s, ignoring whitespace, is a non-empty run of
// hex digit pairs.
func IsValidHex(s string) bool {
	clean := stripWhitespace(s)
	return clean != "" && hexRegex.MatchString(clean) && len(clean)%2 == 0
}

// IsValidBinary reports whether s, ignoring whitespace, is a non-empty run of
// 8-bit groups.
func IsValidBinary(s string) bool {
	clean := stripWhitespace(s)
	return clean != "" && binaryRegex.MatchString(clean) && len(clean)%8 == 0
}
