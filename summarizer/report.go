package summarizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MMichael-S/request-log-analyzer/reportio"
)

// logOrderingHelpURL points readers at guidance for logs whose
// continuation lines precede their header line.
const logOrderingHelpURL = "https://github.com/wvanbergen/request-log-analyzer/wiki"

// Report renders the run summary: a header block with source metadata,
// one section per tracker in registration order, and an advisory footer
// when log-ordering warnings were recorded.
func (s *Summarizer) Report(out reportio.Output) error {
	if out == nil {
		return fmt.Errorf("output must not be nil")
	}
	if s.phase != phaseFinalized {
		return fmt.Errorf("%w: report called in phase %s", ErrLifecycle, s.phase)
	}

	s.reportHeader(out)

	if s.source.ParsedRequests() == 0 {
		out.Puts("There were no requests analyzed.")
	} else {
		for _, tracker := range s.trackers {
			out.ReportTracker(tracker)
		}
	}

	s.reportFooter(out)
	s.phase = phaseReported
	return nil
}

func (s *Summarizer) reportHeader(out reportio.Output) {
	out.Table(
		reportio.TableStyle{Title: "Request summary"},
		[]reportio.TableColumn{
			{Heading: ""},
			{Heading: "", Align: reportio.AlignRight},
		},
		func(b *reportio.TableBuilder) {
			for _, file := range s.source.ProcessedFiles() {
				b.Row("Processed File", file)
			}
			b.Row("Parsed lines", strconv.Itoa(s.source.ParsedLines()))
			b.Row("Skipped lines", strconv.Itoa(s.source.SkippedLines()))
			b.Row("Parsed requests", strconv.Itoa(s.source.ParsedRequests()))
			b.Row("Skipped requests", strconv.Itoa(s.source.SkippedRequests()))
			if s.HasWarnings() {
				b.Row("Warnings", s.warningSummary())
			}
		})
}

func (s *Summarizer) warningSummary() string {
	parts := make([]string, 0, len(s.warnings.Kinds()))
	for _, kind := range s.warnings.Kinds() {
		parts = append(parts, fmt.Sprintf("%s: %d", kind, s.warnings.Count(kind)))
	}
	return strings.Join(parts, ", ")
}

func (s *Summarizer) reportFooter(out reportio.Output) {
	if !s.HasLogOrderingWarnings() {
		return
	}
	out.Title("Log parsing problems")
	out.Puts(fmt.Sprintf(
		"%d parsable lines were encountered without a preceding request header line.",
		s.warnings.Count(WarningNoCurrentRequest)))
	out.Puts("This usually means the log is not ordered chronologically or mixes several processes.")
	out.WithStyle(reportio.Style{Bold: true}, func() {
		out.Puts("See " + out.Link(logOrderingHelpURL) + " for hints on log ordering.")
	})
}
