// Package batch converts many independent inputs with one mode and format.
package batch

import (
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"base64_converter/encoding"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const (
	errEmptyInput       = "Empty input"
	errConversionFailed = "Conversion failed"
)

type Item struct {
	ID     string `json:"id"`
	Input  string `json:"input"`
	Output string `json:"output"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

func NewItem(input string) Item {
	return Item{
		ID:     ulid.Make().String(),
		Input:  input,
		Status: StatusPending,
	}
}

func NewItems(inputs []string) []Item {
	items := make([]Item, 0, len(inputs))
	for _, input := range inputs {
		items = append(items, NewItem(input))
	}
	return items
}

// ConvertItem converts one input. It returns the output, or the reason the
// item failed.
func ConvertItem(input string, mode encoding.Mode, format encoding.Format) (string, string) {
	if strings.TrimSpace(input) == "" {
		return "", errEmptyInput
	}
	res := encoding.Convert(input, mode, format)
	if res.Success && res.Data != "" {
		return res.Data, ""
	}
	if res.Error != "" {
		return "", res.Error
	}
	return "", errConversionFailed
}

// Process converts every item and returns the results in input order. The
// given slice is not modified.
func Process(items []Item, mode encoding.Mode, format encoding.Format) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		output, errMsg := ConvertItem(item.Input, mode, format)
		item.Output = output
		item.Error = errMsg
		if errMsg != "" {
			item.Status = StatusError
		} else {
			item.Status = StatusSuccess
		}
		out[i] = item
	}

	summary := Summarize(out)
	logrus.WithFields(logrus.Fields{
		"mode":      mode,
		"format":    format,
		"total":     summary.Total,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	}).Debug("Batch processed")
	return out
}

// ProcessValues is Process for inputs of unknown type, such as a decoded
// JSON array. Values that are not strings fail on their own.
func ProcessValues(values []any, mode encoding.Mode, format encoding.Format) []Item {
	items := make([]Item, len(values))
	valid := make([]Item, 0, len(values))
	at := make([]int, 0, len(values))
	for i, v := range values {
		input, err := encoding.InputFromValue(v)
		items[i] = NewItem(input)
		if err != nil {
			items[i].Status = StatusError
			items[i].Error = err.Error()
			continue
		}
		valid = append(valid, items[i])
		at = append(at, i)
	}
	for j, item := range Process(valid, mode, format) {
		items[at[j]] = item
	}
	return items
}

// CopyAll joins the outputs of successful items with newlines.
func CopyAll(items []Item) string {
	outputs := make([]string, 0, len(items))
	for _, item := range items {
		if item.Status == StatusSuccess && item.Output != "" {
			outputs = append(outputs, item.Output)
		}
	}
	return strings.Join(outputs, "\n")
}

type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Pending   int `json:"pending"`
}

func Summarize(items []Item) Summary {
	s := Summary{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case StatusSuccess:
			s.Succeeded++
		case StatusError:
			s.Failed++
		default:
			s.Pending++
		}
	}
	return s
}
