package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type FormatterType string

const (
	formatterTypeTitle    FormatterType = "title"
	formatterTypeUpper    FormatterType = "upper"
	formatterTypeLower    FormatterType = "lower"
	formatterTypeLeftPad  FormatterType = "leftpad"
	formatterTypeRightPad FormatterType = "rightpad"
)

type formatter interface {
	Format(val string, args []string) (string, error)
	Type() FormatterType
}

type FormatterTitle struct{}

func (f FormatterTitle) Format(val string, args []string) (string, error) {
	return cases.Title(language.Und).String(val), nil
}

func (f FormatterTitle) Type() FormatterType {
	return formatterTypeTitle
}

type FormatterUpper struct{}

func (f FormatterUpper) Format(val string, args []string) (string, error) {
	return strings.ToUpper(val), nil
}

func (f FormatterUpper) Type() FormatterType {
	return formatterTypeUpper
}

type FormatterLower struct{}

func (f FormatterLower) Format(val string, args []string) (string, error) {
	return strings.ToLower(val), nil
}

func (f FormatterLower) Type() FormatterType {
	return formatterTypeLower
}

func readPadWidth(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("no padding length provided")
	}

	return strconv.Atoi(strings.TrimSpace(args[0]))
}

// padChar is the second formatter argument, or a space.
func padChar(args []string) string {
	if len(args) > 1 && args[1] != "" {
		return args[1][:1]
	}
	return " "
}

type FormatterLeftPad struct{}

func (f FormatterLeftPad) Format(val string, args []string) (string, error) {
	cnt, err := readPadWidth(args)
	if err != nil {
		return "", err
	}
	if n := cnt - len(val); n > 0 {
		val = strings.Repeat(padChar(args), n) + val
	}
	return val, nil
}

func (f FormatterLeftPad) Type() FormatterType {
	return formatterTypeLeftPad
}

type FormatterRightPad struct{}

func (f FormatterRightPad) Format(val string, args []string) (string, error) {
	cnt, err := readPadWidth(args)
	if err != nil {
		return "", err
	}
	if n := cnt - len(val); n > 0 {
		val += strings.Repeat(padChar(args), n)
	}
	return val, nil
}

func (f FormatterRightPad) Type() FormatterType {
	return formatterTypeRightPad
}

func formatterFor(name string) (formatter, error) {
	switch FormatterType(name) {
	case formatterTypeTitle:
		return FormatterTitle{}, nil
	case formatterTypeUpper:
		return FormatterUpper{}, nil
	case formatterTypeLower:
		return FormatterLower{}, nil
	case formatterTypeLeftPad:
		return FormatterLeftPad{}, nil
	case formatterTypeRightPad:
		return FormatterRightPad{}, nil
	}
	return nil, fmt.Errorf("unknown formatter: %s", name)
}

// parseFormatter splits "leftpad(5,0)" into its name and arguments.
func parseFormatter(expr string) (string, []string, error) {
	start := strings.Index(expr, "(")
	if start < 0 {
		return expr, nil, nil
	}
	end := strings.LastIndex(expr, ")")
	if end < start {
		return "", nil, fmt.Errorf("unterminated arguments in formatter %q", expr)
	}
	return expr[:start], strings.Split(expr[start+1:end], ","), nil
}

func formatWithFormatters(val string, formatters []string) (string, error) {
	for _, expr := range formatters {
		name, args, err := parseFormatter(expr)
		if err != nil {
			return "", err
		}
		f, err := formatterFor(name)
		if err != nil {
			return "", err
		}
		val, err = f.Format(val, args)
		if err != nil {
			return "", err
		}
	}

	return val, nil
}
