// Package encoding converts text to and from Base64, URL-safe Base64, hex,
// binary and ASCII85, and guesses which of those shapes a string has.
//
// Every function is pure and returns a Result. Nothing in this package
// panics on bad input.
package encoding

type Encoder interface {
	Encode(string) Result
}

type Decoder interface {
	Decode(string) Result
}

type EncoderAndDecoder interface {
	Encoder
	Decoder
}
