package encoding

import (
	"fmt"
	"strings"
)

// Format tags the shape of a string.
type Format string

const (
	Base64Format    Format = "base64"
	Base64URLFormat Format = "base64url"
	HexFormat       Format = "hex"
	BinaryFormat    Format = "binary"
	Ascii85Format   Format = "ascii85"
	TextFormat      Format = "text"
	URLFormat       Format = "url"
	UnknownFormat   Format = "unknown"
)

// CodecFormats lists the formats that can be encoded to and decoded from.
var CodecFormats = []Format{
	Base64Format,
	Base64URLFormat,
	HexFormat,
	BinaryFormat,
	Ascii85Format,
}

// Label is the human name of a format, as shown to users.
func (f Format) Label() string {
	switch f {
	case Base64Format:
		return "Base64"
	case Base64URLFormat:
		return "Base64 URL"
	case HexFormat:
		return "Hex"
	case BinaryFormat:
		return "Binary"
	case Ascii85Format:
		return "ASCII85"
	case TextFormat:
		return "Text"
	case URLFormat:
		return "URL"
	}
	return "Unknown"
}

// ParseFormat accepts a codec format name, case-insensitively. An empty name
// means base64.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Base64Format, nil
	}
	for _, f := range CodecFormats {
		if string(f) == name {
			return f, nil
		}
	}
	switch name {
	case "base64-url", "base64_url", "b64url":
		return Base64URLFormat, nil
	case "a85":
		return Ascii85Format, nil
	}
	return "", fmt.Errorf("unknown format: %s", name)
}

// Mode is the direction of a conversion.
type Mode string

const (
	ModeEncode Mode = "encode"
	ModeDecode Mode = "decode"
)

func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case ModeEncode, "":
		return ModeEncode, nil
	case ModeDecode:
		return ModeDecode, nil
	}
	return "", fmt.Errorf("unknown mode: %s", name)
}

// Opposite returns the other direction.
func (m Mode) Opposite() Mode {
	if m == ModeDecode {
		return ModeEncode
	}
	return ModeDecode
}
