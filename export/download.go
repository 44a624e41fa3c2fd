package export

import (
	"strconv"
	"strings"
	"time"

	"base64_converter/batch"
	"base64_converter/encoding"
)

const (
	ContentTypeText   = "text/plain"
	ContentTypeCSV    = "text/csv"
	ContentTypeBinary = "application/octet-stream"

	DefaultTextName  = "${mode}-${format}-${timestamp}.txt"
	DefaultBatchName = "batch-${mode}-${format}-${timestamp}.csv"
)

const (
	varMode      = "mode"
	varFormat    = "format"
	varTimestamp = "timestamp"
)

// Download is a file offered to the user.
type Download struct {
	FileName    string
	ContentType string
	Body        []byte
}

// Namer names downloads from templates. Zero values fall back to the
// defaults.
type Namer struct {
	TextTemplate  string
	BatchTemplate string
	Now           func() time.Time
}

func (n Namer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func (n Namer) name(tmpl, fallback string, mode encoding.Mode, format encoding.Format) (string, error) {
	if tmpl == "" {
		tmpl = fallback
	}
	return FormatString(tmpl, map[string]string{
		varMode:      string(mode),
		varFormat:    string(format),
		varTimestamp: strconv.FormatInt(n.now().UnixMilli(), 10),
	})
}

func (n Namer) TextName(mode encoding.Mode, format encoding.Format) (string, error) {
	return n.name(n.TextTemplate, DefaultTextName, mode, format)
}

func (n Namer) BatchName(mode encoding.Mode, format encoding.Format) (string, error) {
	return n.name(n.BatchTemplate, DefaultBatchName, mode, format)
}

// Text wraps a conversion output as a text/plain download.
func (n Namer) Text(mode encoding.Mode, format encoding.Format, output string) (Download, error) {
	name, err := n.TextName(mode, format)
	if err != nil {
		return Download{}, err
	}
	return Download{FileName: name, ContentType: ContentTypeText, Body: []byte(output)}, nil
}

// Batch wraps batch results as a CSV download.
func (n Namer) Batch(mode encoding.Mode, format encoding.Format, items []batch.Item) (Download, error) {
	name, err := n.BatchName(mode, format)
	if err != nil {
		return Download{}, err
	}
	return Download{FileName: name, ContentType: ContentTypeCSV, Body: []byte(BatchCSV(items))}, nil
}

// File wraps a decoded file as an octet stream download.
func File(res encoding.FileResult) Download {
	name := res.FileName
	if name == "" {
		name = encoding.DefaultFileName
	}
	return Download{FileName: name, ContentType: ContentTypeBinary, Body: res.Content}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// BatchCSV renders items as Input,Output,Status,Error rows. Input, Output and
// Error are always quoted, Status never is.
func BatchCSV(items []batch.Item) string {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, "Input,Output,Status,Error")
	for _, item := range items {
		lines = append(lines, strings.Join([]string{
			quote(item.Input),
			quote(item.Output),
			string(item.Status),
			quote(item.Error),
		}, ","))
	}
	return strings.Join(lines, "\n")
}
