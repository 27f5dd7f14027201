package reportio

import (
	"github.com/MMichael-S/request-log-analyzer/request"
	"github.com/MMichael-S/request-log-analyzer/trackers"
)

// Source supplies the request stream metadata for a run: which files were
// processed, how many lines and requests were parsed or skipped, and which
// trackers apply to the log format at hand.
//
// The summarizer never chooses trackers itself; it delegates to the
// source's file format, which knows the shape of its log lines.
type Source interface {
	FileFormat() FileFormat
	ProcessedFiles() []string
	ParsedLines() int
	SkippedLines() int
	ParsedRequests() int
	SkippedRequests() int
}

// FileFormat describes a log format and declares the trackers that apply
// to it.
type FileFormat interface {
	Name() string
	ReportTrackers() []trackers.Spec
}

// RequestStream is a pull iterator over parsed requests. Next returns
// io.EOF once the stream is exhausted.
type RequestStream interface {
	Next() (*request.Request, error)
}

// Alignment positions cell content within a table column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// TableStyle carries the presentation options for one table.
type TableStyle struct {
	Title string
}

// TableColumn configures a single table column.
type TableColumn struct {
	Heading   string
	Align     Alignment
	Highlight bool
}

// TableBuilder collects rows for a table while the output decides how to
// lay them out.
type TableBuilder struct {
	rows [][]string
}

// Row appends a row of cells.
func (b *TableBuilder) Row(cells ...string) {
	b.rows = append(b.rows, cells)
}

// Rows returns the collected rows.
func (b *TableBuilder) Rows() [][]string {
	return b.rows
}

// Style carries scoped text styling. Outputs that cannot style text may
// ignore it, but must still honor the scoping of WithStyle.
type Style struct {
	Bold  bool
	Color string
}

// Output renders report primitives. The visual layout engine behind it is
// deliberately out of scope; implementations receive structure, not
// formatting instructions.
type Output interface {
	// Title emits a section heading.
	Title(text string)

	// Puts emits a single line of text.
	Puts(text string)

	// Link renders a URL and returns the text to embed.
	Link(url string) string

	// Table renders tabular data. The builder function is called once to
	// collect the rows.
	Table(style TableStyle, columns []TableColumn, build func(*TableBuilder))

	// ReportTracker renders a tracker's result. The output, not the
	// summarizer, knows how to format a given tracker's export shape.
	ReportTracker(t trackers.Tracker)

	// WithStyle applies the style for the duration of fn and restores the
	// previous style afterwards.
	WithStyle(style Style, fn func())
}
