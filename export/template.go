// Package export builds the files a user downloads: converted text, decoded
// files and batch result tables.
package export

import (
	"fmt"
	"regexp"
	"strings"
)

var fmtRegex = regexp.MustCompile(`\$\{([a-zA-Z0-9_:(),]+)}`)

// FormatString expands ${var} and ${var:formatter:...} placeholders from
// dictionary. Unknown variables are left as is.
func FormatString(s string, dictionary map[string]string) (string, error) {
	formatPieces := fmtRegex.FindAllStringSubmatch(s, -1)
	for _, pieces := range formatPieces {
		split := strings.Split(pieces[1], ":")
		variable := split[0]
		value, ok := dictionary[variable]
		if !ok {
			continue
		}
		formatted, err := formatWithFormatters(value, split[1:])
		if err != nil {
			return "", err
		}
		s = strings.ReplaceAll(s, pieces[0], formatted)
	}

	return s, nil
}

// ValidateTemplate expands s with placeholder values so that unknown
// formatters and bad arguments are reported up front.
func ValidateTemplate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("empty file name template")
	}
	_, err := FormatString(s, map[string]string{
		varMode:      "encode",
		varFormat:    "base64",
		varTimestamp: "0",
	})
	return err
}
