package ports

import (
	"io"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// ReportWriter defines the interface for writing mapped view models.
type ReportWriter interface {
	// WriteReport writes the full view model of a mapping.
	WriteReport(result MapResult) error

	// WriteSummary writes the headline of a view model.
	WriteSummary(summary seo.Summary) error

	// WriteError writes error messages.
	WriteError(err error) error

	// Flush ensures all output is written.
	Flush() error
}

// ConsoleWriter writes to stdout/stderr with optional colors.
type ConsoleWriter interface {
	ReportWriter

	// SetColor enables or disables colored output.
	SetColor(enabled bool)

	// SetVerbosity sets the output detail level.
	SetVerbosity(v Verbosity)
}

// JSONWriter writes view models as JSON.
type JSONWriter interface {
	ReportWriter

	// SetOutput sets the output destination.
	SetOutput(w io.Writer)

	// SetPretty enables or disables pretty-printed JSON.
	SetPretty(enabled bool)
}

// WriterFactory creates writers based on configuration.
type WriterFactory interface {
	// Create returns a writer for the specified format.
	Create(format OutputFormat, config OutputConfig) (ReportWriter, error)

	// CreateConsole returns a console writer.
	CreateConsole(config OutputConfig) ConsoleWriter

	// CreateJSON returns a JSON writer.
	CreateJSON(w io.Writer, pretty bool) JSONWriter
}

// MultiWriter writes to multiple destinations.
type MultiWriter struct {
	writers []ReportWriter
}

// NewMultiWriter creates a writer that writes to all provided writers.
func NewMultiWriter(writers ...ReportWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteReport writes to all writers.
func (m *MultiWriter) WriteReport(result MapResult) error {
	for _, w := range m.writers {
		if err := w.WriteReport(result); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary writes to all writers.
func (m *MultiWriter) WriteSummary(summary seo.Summary) error {
	for _, w := range m.writers {
		if err := w.WriteSummary(summary); err != nil {
			return err
		}
	}
	return nil
}

// WriteError writes to all writers.
func (m *MultiWriter) WriteError(err error) error {
	for _, w := range m.writers {
		if writeErr := w.WriteError(err); writeErr != nil {
			return writeErr
		}
	}
	return nil
}

// Flush flushes all writers.
func (m *MultiWriter) Flush() error {
	for _, w := range m.writers {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
