package engine

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Report is one diagnostic record surfaced by a run, kept independent of
// the zap.Logger that also receives it so callers embedding the engine
// (cmd/titanium-analyze) can collect a structured slice for JSON output
// without scraping log lines.
type Report struct {
	ID       string
	Severity string
	Message  string
	Filename string
	Class    string
}

// diagnosticsSink fans every diagnostic out to a zap.Logger and an
// in-memory Report slice, so callers get structured log fields for
// observability and a plain Go value for programmatic inspection of the
// same run.
type diagnosticsSink struct {
	logger  *zap.Logger
	reports []Report
}

func newDiagnosticsSink(logger *zap.Logger) *diagnosticsSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &diagnosticsSink{logger: logger}
}

func (d *diagnosticsSink) warn(format string, args ...any) {
	d.record("warning", fmt.Sprintf(format, args...), "")
}

func (d *diagnosticsSink) error(class, message string) {
	d.record("error", message, class)
}

func (d *diagnosticsSink) record(severity, message, class string) {
	id := uuid.New().String()
	d.reports = append(d.reports, Report{ID: id, Severity: severity, Message: message, Class: class})
	switch severity {
	case "error":
		d.logger.Error(message, zap.String("diagnostic_id", id), zap.String("class", class))
	default:
		d.logger.Warn(message, zap.String("diagnostic_id", id))
	}
}

// Reports returns every diagnostic recorded so far, oldest first.
func (vm *VM) Reports() []Report {
	if vm.diagnostics == nil {
		return nil
	}
	return vm.diagnostics.reports
}
