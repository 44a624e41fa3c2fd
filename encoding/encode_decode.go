package encoding

import (
	"fmt"
)

func codecFor(format Format) (EncoderAndDecoder, error) {
	switch format {
	case Base64Format, "":
		return Base64EncoderDecoder{}, nil
	case Base64URLFormat:
		return Base64URLEncoderDecoder{}, nil
	case HexFormat:
		return HexEncoderDecoder{}, nil
	case BinaryFormat:
		return BinaryEncoderDecoder{}, nil
	case Ascii85Format:
		return Ascii85EncoderDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func Encode(input string, format Format) Result {
	encoder, err := codecFor(format)
	if err != nil {
		return failed(KindFormatValidation, err.Error())
	}
	return encoder.Encode(input)
}

func Decode(input string, format Format) Result {
	decoder, err := codecFor(format)
	if err != nil {
		return failed(KindFormatValidation, err.Error())
	}
	return decoder.Decode(input)
}

// Convert runs Encode or Decode depending on mode.
func Convert(input string, mode Mode, format Format) Result {
	switch mode {
	case ModeEncode, "":
		return Encode(input, format)
	case ModeDecode:
		return Decode(input, format)
	default:
		return failed(KindFormatValidation, fmt.Sprintf("unknown mode: %s", mode))
	}
}
