// Package converter runs a single interactive conversion: the codec call
// plus output wrapping, size stats and a hint when the input looks like a
// different format than the one selected.
package converter

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"base64_converter/encoding"
)

type Options struct {
	LineBreaks bool `json:"lineBreaks"`
	LineLength int  `json:"lineLength"`
	AutoDetect bool `json:"autoDetect"`
}

func DefaultOptions() Options {
	return Options{
		LineLength: encoding.DefaultLineLength,
		AutoDetect: true,
	}
}

type Stats struct {
	OriginalSize  int    `json:"originalSize"`
	EncodedSize   int    `json:"encodedSize"`
	RatioPercent  int    `json:"ratioPercent"`
	OriginalHuman string `json:"originalHuman"`
	EncodedHuman  string `json:"encodedHuman"`
}

type Output struct {
	Mode     encoding.Mode      `json:"mode"`
	Format   encoding.Format    `json:"format"`
	Success  bool               `json:"success"`
	Output   string             `json:"output"`
	Error    string             `json:"error,omitempty"`
	Kind     encoding.ErrorKind `json:"kind,omitempty"`
	Hint     string             `json:"hint,omitempty"`
	Detected encoding.Format    `json:"detected,omitempty"`
	Stats    *Stats             `json:"stats,omitempty"`
}

func (o Output) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"mode":    o.Mode,
		"format":  o.Format,
		"success": o.Success,
		"kind":    o.Kind,
	}
}

// Convert converts input. Blank input gives an empty successful output.
func Convert(input string, mode encoding.Mode, format encoding.Format, opts Options) Output {
	out := Output{Mode: mode, Format: format}
	if opts.AutoDetect {
		out.Detected = encoding.DetectInputFormatEnhanced(input)
		out.Hint = DetectionHint(out.Detected, format)
	}
	if strings.TrimSpace(input) == "" {
		out.Success = true
		return out
	}

	res := encoding.Convert(input, mode, format)
	if !res.Success || res.Data == "" {
		out.Error = res.Error
		if out.Error == "" {
			out.Error = "Conversion failed"
		}
		out.Kind = res.Kind
		return out
	}

	out.Success = true
	out.Output = res.Data
	if mode == encoding.ModeEncode && opts.LineBreaks && isBase64Family(format) {
		out.Output = encoding.FormatBase64(out.Output, opts.LineLength)
	}
	if res.OriginalSize > 0 && res.EncodedSize > 0 {
		out.Stats = newStats(res.OriginalSize, res.EncodedSize)
	}
	return out
}

func isBase64Family(format encoding.Format) bool {
	return format == encoding.Base64Format || format == encoding.Base64URLFormat
}

func newStats(originalSize, encodedSize int) *Stats {
	return &Stats{
		OriginalSize:  originalSize,
		EncodedSize:   encodedSize,
		RatioPercent:  int(math.Round(float64(encodedSize) / float64(originalSize) * 100)),
		OriginalHuman: encoding.FormatFileSize(int64(originalSize)),
		EncodedHuman:  encoding.FormatFileSize(int64(encodedSize)),
	}
}

// DetectionHint suggests switching formats when detected is a codec format
// other than the selected one.
func DetectionHint(detected, selected encoding.Format) string {
	if detected == selected {
		return ""
	}
	switch detected {
	case encoding.Base64Format, encoding.HexFormat, encoding.BinaryFormat:
		return fmt.Sprintf("%s detected! Consider switching to %s format.", detected.Label(), detected.Label())
	case encoding.Base64URLFormat:
		return "URL-safe Base64 detected! Consider switching to Base64 URL format."
	}
	return ""
}
