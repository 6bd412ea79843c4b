package ports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// mockWriter is a test implementation of ReportWriter
type mockWriter struct {
	reports    []seo.Domain
	summaries  []seo.Domain
	errors     []error
	flushed    int
	shouldFail bool
}

func (m *mockWriter) WriteReport(result MapResult) error {
	if m.shouldFail {
		return errors.New("write failed")
	}
	m.reports = append(m.reports, result.Domain)
	return nil
}

func (m *mockWriter) WriteSummary(summary seo.Summary) error {
	if m.shouldFail {
		return errors.New("write failed")
	}
	m.summaries = append(m.summaries, summary.Domain)
	return nil
}

func (m *mockWriter) WriteError(err error) error {
	if m.shouldFail {
		return errors.New("write failed")
	}
	m.errors = append(m.errors, err)
	return nil
}

func (m *mockWriter) Flush() error {
	if m.shouldFail {
		return errors.New("flush failed")
	}
	m.flushed++
	return nil
}

func TestMultiWriter_WritesToAll(t *testing.T) {
	w1 := &mockWriter{}
	w2 := &mockWriter{}
	multi := NewMultiWriter(w1, w2)

	assert.NoError(t, multi.WriteReport(MapResult{Domain: seo.DomainSecurity}))
	assert.NoError(t, multi.WriteSummary(seo.Summary{Domain: seo.DomainContent}))
	assert.NoError(t, multi.WriteError(errors.New("oops")))
	assert.NoError(t, multi.Flush())

	for _, w := range []*mockWriter{w1, w2} {
		assert.Equal(t, []seo.Domain{seo.DomainSecurity}, w.reports)
		assert.Equal(t, []seo.Domain{seo.DomainContent}, w.summaries)
		assert.Len(t, w.errors, 1)
		assert.Equal(t, 1, w.flushed)
	}
}

func TestMultiWriter_StopsOnFailure(t *testing.T) {
	failing := &mockWriter{shouldFail: true}
	after := &mockWriter{}
	multi := NewMultiWriter(failing, after)

	assert.Error(t, multi.WriteReport(MapResult{}))
	assert.Error(t, multi.WriteSummary(seo.Summary{}))
	assert.Error(t, multi.WriteError(errors.New("x")))
	assert.Error(t, multi.Flush())
	assert.Empty(t, after.reports)
	assert.Empty(t, after.summaries)
}

func TestMapResult_OK(t *testing.T) {
	assert.True(t, MapResult{}.OK())
	assert.False(t, MapResult{Fallback: true}.OK())
}

func TestNopMetrics(t *testing.T) {
	var rec MetricsRecorder = NopMetrics{}
	assert.NotPanics(t, func() { rec.RecordMapping("overview", 0, true, "decode", 0) })
}
