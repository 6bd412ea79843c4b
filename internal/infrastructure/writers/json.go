package writers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// JSONWriter writes JSON-formatted output. Reports are written as the bare
// view model so that consumers read the same contract the dashboard does.
type JSONWriter struct {
	out    io.Writer
	pretty bool
}

// JSONOption configures the JSON writer.
type JSONOption func(*JSONWriter)

// WithJSONOutput sets the output writer.
func WithJSONOutput(out io.Writer) JSONOption {
	return func(w *JSONWriter) {
		w.out = out
	}
}

// WithPrettyPrint enables pretty-printed JSON.
func WithPrettyPrint(enabled bool) JSONOption {
	return func(w *JSONWriter) {
		w.pretty = enabled
	}
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(opts ...JSONOption) *JSONWriter {
	w := &JSONWriter{
		out:    os.Stdout,
		pretty: false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// SetOutput sets the output destination.
func (w *JSONWriter) SetOutput(out io.Writer) {
	w.out = out
}

// SetPretty enables or disables pretty-printed JSON.
func (w *JSONWriter) SetPretty(enabled bool) {
	w.pretty = enabled
}

// Close closes any open file handles.
func (w *JSONWriter) Close() error {
	if closer, ok := w.out.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// WriteReport writes the view model of a mapping as JSON. A fallback still
// writes the placeholder view model.
func (w *JSONWriter) WriteReport(result ports.MapResult) error {
	if result.Report == nil {
		return fmt.Errorf("no %s view model to write", result.Domain)
	}
	return w.writeJSON(result.Report)
}

// WriteSummary writes the headline of a view model as JSON.
func (w *JSONWriter) WriteSummary(summary seo.Summary) error {
	if summary.Lines == nil {
		summary.Lines = []seo.SummaryLine{}
	}
	if summary.TopIssues == nil {
		summary.TopIssues = []string{}
	}
	return w.writeJSON(summary)
}

// WriteError writes an error message.
func (w *JSONWriter) WriteError(err error) error {
	errOutput := JSONError{
		Type:      "error",
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
	return w.writeJSON(errOutput)
}

// Flush ensures all output is written.
func (w *JSONWriter) Flush() error {
	return nil
}

// writeJSON writes a value as JSON.
func (w *JSONWriter) writeJSON(v interface{}) error {
	var data []byte
	var err error

	if w.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// JSONError represents an error message.
type JSONError struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Ensure JSONWriter implements the interface.
var _ ports.JSONWriter = (*JSONWriter)(nil)
