package encoding

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrorKind classifies a failed Result.
type ErrorKind string

const (
	KindNone             ErrorKind = ""
	KindInputType        ErrorKind = "input_type"
	KindEmptyInput       ErrorKind = "empty_input"
	KindFormatValidation ErrorKind = "format_validation"
	KindUnexpectedCodec  ErrorKind = "unexpected_codec"
)

var (
	ErrInputType        = errors.New("input type error")
	ErrEmptyInput       = errors.New("empty input")
	ErrFormatValidation = errors.New("format validation error")
	ErrUnexpectedCodec  = errors.New("unexpected codec error")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInputType:
		return ErrInputType
	case KindEmptyInput:
		return ErrEmptyInput
	case KindFormatValidation:
		return ErrFormatValidation
	case KindUnexpectedCodec:
		return ErrUnexpectedCodec
	}
	return nil
}

// CodecError is the error form of a failed Result. It matches the sentinel
// of its kind with errors.Is and unwraps to the codec error, if any.
type CodecError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *CodecError) Error() string {
	return e.Message
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func (e *CodecError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Result is the outcome of one codec operation.
type Result struct {
	Success      bool      `json:"success"`
	Data         string    `json:"data"`
	Error        string    `json:"error,omitempty"`
	Kind         ErrorKind `json:"kind,omitempty"`
	OriginalSize int       `json:"originalSize,omitempty"`
	EncodedSize  int       `json:"encodedSize,omitempty"`

	cause error
}

// Err returns nil for a successful Result and a *CodecError otherwise.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &CodecError{Kind: r.Kind, Message: r.Error, Err: r.cause}
}

// FileResult is a Result for file payloads. Content holds the raw bytes of a
// decoded file.
type FileResult struct {
	Result
	FileName string `json:"fileName,omitempty"`
	FileType string `json:"fileType,omitempty"`
	Content  []byte `json:"-"`
}

func succeeded(data string, originalSize, encodedSize int) Result {
	return Result{
		Success:      true,
		Data:         data,
		OriginalSize: originalSize,
		EncodedSize:  encodedSize,
	}
}

// encoded builds the Result of encoding input into output.
func encoded(input, output string) Result {
	return succeeded(output, utf8.RuneCountInString(input), utf8.RuneCountInString(output))
}

// decoded builds the Result of decoding the cleaned input into output.
func decoded(cleanInput, output string) Result {
	return succeeded(output, utf8.RuneCountInString(cleanInput), utf8.RuneCountInString(output))
}

func failed(kind ErrorKind, msg string) Result {
	return Result{Kind: kind, Error: msg}
}

func codecFailed(err error) Result {
	return Result{Kind: KindUnexpectedCodec, Error: err.Error(), cause: err}
}

// InputFromValue accepts a value from a dynamically typed source, such as a
// decoded JSON document, and returns it as a string. Anything other than a
// string fails with ErrInputType.
func InputFromValue(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", &CodecError{Kind: KindInputType, Message: "Input must be a string, got null"}
	default:
		return "", &CodecError{Kind: KindInputType, Message: fmt.Sprintf("Input must be a string, got %T", v)}
	}
}

// ResultFromError turns an error from InputFromValue (or any other error)
// into a failed Result.
func ResultFromError(err error) Result {
	var ce *CodecError
	if errors.As(err, &ce) {
		return Result{Kind: ce.Kind, Error: ce.Message, cause: ce.Err}
	}
	return codecFailed(err)
}
