package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"wordfreq/internal/domain"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Render formats result as tab-separated "token\tcount" lines or as JSON.
func Render(result domain.RankedResult, format string) (string, error) {
	switch format {
	case FormatJSON:
		if result == nil {
			result = domain.RankedResult{}
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatText, "":
		lines := make([]string, len(result))
		for i, e := range result {
			lines[i] = e.Token + "\t" + strconv.Itoa(e.Count)
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidArgument, format)
}

// Writer prints reports to a stream and optionally saves them to a file.
type Writer struct {
	out    io.Writer
	path   string
	format string
}

// NewWriter creates a Writer. An empty path disables the file copy.
func NewWriter(out io.Writer, path, format string) *Writer {
	return &Writer{out: out, path: path, format: format}
}

// Report prints the rendered result and, when a path is set, overwrites
// that file with the same text plus a trailing newline. An empty result
// prints nothing and leaves an empty file.
func (w *Writer) Report(result domain.RankedResult) error {
	text, err := Render(result, w.format)
	if err != nil {
		return err
	}

	if text != "" {
		if _, err := fmt.Fprintln(w.out, text); err != nil {
			return err
		}
	}

	if w.path == "" {
		return nil
	}
	content := text
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(w.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
