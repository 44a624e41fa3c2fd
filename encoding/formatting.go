package encoding

import (
	"math"
	"strconv"
	"strings"
)

const DefaultLineLength = 76

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// Base64Format removes whitespace from s and breaks it into lines of at most
// lineLength characters. A non-positive lineLength means DefaultLineLength.
func FormatBase64(s string, lineLength int) string {
	if lineLength <= 0 {
		lineLength = DefaultLineLength
	}
	clean := []rune(stripWhitespace(s))
	if len(clean) <= lineLength {
		return string(clean)
	}
	lines := make([]string, 0, len(clean)/lineLength+1)
	for start := 0; start < len(clean); start += lineLength {
		end := min(start+lineLength, len(clean))
		lines = append(lines, string(clean[start:end]))
	}
	return strings.Join(lines, "\n")
}

// FormatFileSize renders a byte count as e.g. "1.5 KB", with at most two
// decimals and no trailing zeros. GB is the largest unit.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
