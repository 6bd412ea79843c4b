package writers

import (
	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// SilentWriter discards all output, useful for programmatic contexts like MCP.
type SilentWriter struct{}

// NewSilentWriter creates a new silent writer.
func NewSilentWriter() *SilentWriter {
	return &SilentWriter{}
}

// WriteReport discards the report output.
func (w *SilentWriter) WriteReport(result ports.MapResult) error {
	return nil
}

// WriteSummary discards the summary output.
func (w *SilentWriter) WriteSummary(summary seo.Summary) error {
	return nil
}

// WriteError discards error messages.
func (w *SilentWriter) WriteError(err error) error {
	return nil
}

// Flush is a no-op for SilentWriter.
func (w *SilentWriter) Flush() error {
	return nil
}

var _ ports.ReportWriter = (*SilentWriter)(nil)
