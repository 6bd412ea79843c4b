package writers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/pkg/redact"
)

// maxTopIssues is the number of issues shown outside verbose mode.
const maxTopIssues = 5

// ConsoleWriter writes human-readable output to the console.
type ConsoleWriter struct {
	out       io.Writer
	err       io.Writer
	color     bool
	verbosity ports.Verbosity
	redactor  *redact.Redactor

	// Color functions
	red    func(a ...interface{}) string
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	blue   func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	bold   func(a ...interface{}) string
	dim    func(a ...interface{}) string
}

// NewConsoleWriter creates a new console writer.
func NewConsoleWriter(opts ...ConsoleOption) *ConsoleWriter {
	w := &ConsoleWriter{
		out:       os.Stdout,
		err:       os.Stderr,
		color:     true,
		verbosity: ports.VerbosityNormal,
		redactor:  redact.New(),
	}

	for _, opt := range opts {
		opt(w)
	}

	w.initColors()
	return w
}

// ConsoleOption configures the console writer.
type ConsoleOption func(*ConsoleWriter)

// WithOutput sets the output writer.
func WithOutput(out io.Writer) ConsoleOption {
	return func(w *ConsoleWriter) {
		w.out = out
	}
}

// WithErrorOutput sets the error output writer.
func WithErrorOutput(err io.Writer) ConsoleOption {
	return func(w *ConsoleWriter) {
		w.err = err
	}
}

// WithColor enables or disables colored output.
func WithColor(enabled bool) ConsoleOption {
	return func(w *ConsoleWriter) {
		w.color = enabled
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v ports.Verbosity) ConsoleOption {
	return func(w *ConsoleWriter) {
		w.verbosity = v
	}
}

// initColors initializes color functions based on color setting.
func (w *ConsoleWriter) initColors() {
	if w.color {
		w.red = color.New(color.FgRed).SprintFunc()
		w.green = color.New(color.FgGreen).SprintFunc()
		w.yellow = color.New(color.FgYellow).SprintFunc()
		w.blue = color.New(color.FgBlue).SprintFunc()
		w.cyan = color.New(color.FgCyan).SprintFunc()
		w.bold = color.New(color.Bold).SprintFunc()
		w.dim = color.New(color.Faint).SprintFunc()
	} else {
		noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
		w.red = noColor
		w.green = noColor
		w.yellow = noColor
		w.blue = noColor
		w.cyan = noColor
		w.bold = noColor
		w.dim = noColor
	}
}

// SetColor enables or disables colored output.
func (w *ConsoleWriter) SetColor(enabled bool) {
	w.color = enabled
	w.initColors()
}

// SetVerbosity sets the output detail level.
func (w *ConsoleWriter) SetVerbosity(v ports.Verbosity) {
	w.verbosity = v
}

// WriteReport writes the headline of a mapping followed by its status.
func (w *ConsoleWriter) WriteReport(result ports.MapResult) error {
	summary := reportSummary(result)

	w.writeHeader(summary)
	w.writeLines(summary)
	w.writeTopIssues(summary)
	w.writeStatus(result)

	return nil
}

// WriteSummary writes a brief summary.
func (w *ConsoleWriter) WriteSummary(summary seo.Summary) error {
	w.writeHeader(summary)
	w.writeCounts(summary)
	return nil
}

// WriteProgress writes a progress message.
func (w *ConsoleWriter) WriteProgress(message string) error {
	if w.verbosity == ports.VerbosityQuiet {
		return nil
	}

	fmt.Fprintf(w.out, "%s %s\n", w.dim(">>>"), message)
	return nil
}

// WriteError writes an error message.
func (w *ConsoleWriter) WriteError(err error) error {
	fmt.Fprintf(w.err, "%s %s\n", w.red("ERROR:"), w.redactor.RedactString(err.Error()))
	return nil
}

// Flush ensures all output is written.
func (w *ConsoleWriter) Flush() error {
	return nil
}

// writeHeader writes the analysis header.
func (w *ConsoleWriter) writeHeader(s seo.Summary) {
	fmt.Fprintln(w.out)
	fmt.Fprintf(w.out, "%s\n", w.bold(fmt.Sprintf("Fire Salamander %s Analysis", domainTitle(s.Domain))))
	fmt.Fprintf(w.out, "%s\n", strings.Repeat("=", 40))
	if s.Target != "" {
		fmt.Fprintf(w.out, "Target: %s\n", w.cyan(s.Target))
	}
	if s.Unavailable {
		fmt.Fprintf(w.out, "Score: %s\n", w.red("data unavailable"))
	} else {
		fmt.Fprintf(w.out, "Score: %s (%s)\n", w.scoreString(s.Score), w.gradeString(s.Grade))
	}
	fmt.Fprintln(w.out)
}

// writeCounts writes the issue counts by severity.
func (w *ConsoleWriter) writeCounts(s seo.Summary) {
	fmt.Fprintf(w.out, "%s\n", w.bold("Issues"))
	fmt.Fprintf(w.out, "%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(w.out, "  Critical: %s\n", w.countString(s.Critical, w.red))
	fmt.Fprintf(w.out, "  Warning:  %s\n", w.countString(s.Warnings, w.yellow))
	fmt.Fprintf(w.out, "  Info:     %s\n", w.countString(s.Info, w.blue))
	fmt.Fprintln(w.out)
}

// writeLines writes the labelled figures of the summary.
func (w *ConsoleWriter) writeLines(s seo.Summary) {
	w.writeCounts(s)
	if w.verbosity == ports.VerbosityQuiet || len(s.Lines) == 0 {
		return
	}

	width := 0
	for _, line := range s.Lines {
		width = max(width, len(line.Label))
	}

	fmt.Fprintf(w.out, "%s\n", w.bold("Summary"))
	fmt.Fprintf(w.out, "%s\n", strings.Repeat("-", 40))
	for _, line := range s.Lines {
		fmt.Fprintf(w.out, "  %s %s\n", w.dim(fmt.Sprintf("%-*s", width+1, line.Label+":")), line.Value)
	}
	fmt.Fprintln(w.out)
}

// writeTopIssues writes the most important issues.
func (w *ConsoleWriter) writeTopIssues(s seo.Summary) {
	if w.verbosity == ports.VerbosityQuiet || len(s.TopIssues) == 0 {
		return
	}

	issues := s.TopIssues
	if w.verbosity != ports.VerbosityVerbose && len(issues) > maxTopIssues {
		issues = issues[:maxTopIssues]
	}

	fmt.Fprintf(w.out, "%s\n", w.bold("Top Issues"))
	fmt.Fprintf(w.out, "%s\n", strings.Repeat("-", 40))
	for _, issue := range issues {
		fmt.Fprintf(w.out, "  %s %s\n", w.yellow("•"), issue)
	}
	if hidden := len(s.TopIssues) - len(issues); hidden > 0 {
		fmt.Fprintf(w.out, "  %s\n", w.dim(fmt.Sprintf("... and %d more (use --verbose)", hidden)))
	}
	fmt.Fprintln(w.out)
}

// writeStatus writes the mapping outcome.
func (w *ConsoleWriter) writeStatus(result ports.MapResult) {
	if result.Fallback {
		fmt.Fprintf(w.out, "%s %s\n", w.red("✗"), w.bold("Data unavailable: placeholder view model returned"))
		if result.Err != nil && w.verbosity != ports.VerbosityQuiet {
			fmt.Fprintf(w.out, "  %s %s\n", w.dim("Reason:"), w.redactor.RedactString(result.Err.Error()))
		}
	} else {
		fmt.Fprintf(w.out, "%s %s\n", w.green("✓"), w.bold("Mapped successfully"))
	}

	if w.verbosity == ports.VerbosityVerbose {
		fmt.Fprintf(w.out, "  %s %d\n", w.dim("Entities:"), result.Entities)
		fmt.Fprintf(w.out, "  %s %s\n", w.dim("Duration:"), result.Duration.Round(1e3))
	}
}

// scoreString formats a 0-100 score colored by its grade band.
func (w *ConsoleWriter) scoreString(score float64) string {
	text := fmt.Sprintf("%.1f/100", score)
	return w.colorForGrade(string(scoring.GradeFromScore(score)))(text)
}

// gradeString returns a colored letter grade.
func (w *ConsoleWriter) gradeString(grade string) string {
	if grade == "" {
		return w.dim("ungraded")
	}
	return w.colorForGrade(grade)(grade)
}

func (w *ConsoleWriter) colorForGrade(grade string) func(a ...interface{}) string {
	switch scoring.Grade(grade) {
	case scoring.GradeAPlus, scoring.GradeA, scoring.GradeB:
		return w.green
	case scoring.GradeC, scoring.GradeD:
		return w.yellow
	case scoring.GradeF:
		return w.red
	default:
		return w.dim
	}
}

// countString colors non-zero counts.
func (w *ConsoleWriter) countString(n int, paint func(a ...interface{}) string) string {
	if n == 0 {
		return w.dim("0")
	}
	return paint(n)
}

// reportSummary returns the headline of a mapping result, marking it
// unavailable when the mapper fell back.
func reportSummary(result ports.MapResult) seo.Summary {
	var s seo.Summary
	if result.Report != nil {
		s = result.Report.Summary()
	}
	if s.Domain == "" {
		s.Domain = result.Domain
	}
	s.Unavailable = s.Unavailable || result.Fallback
	return s
}

func domainTitle(d seo.Domain) string {
	name := string(d)
	if name == "" {
		return "SEO"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// Ensure ConsoleWriter implements the interface.
var _ ports.ConsoleWriter = (*ConsoleWriter)(nil)
