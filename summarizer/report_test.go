package summarizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MMichael-S/request-log-analyzer/reportio"
	"github.com/MMichael-S/request-log-analyzer/request"
	"github.com/MMichael-S/request-log-analyzer/trackers"
)

type recordingOutput struct {
	titles       []string
	lines        []string
	tables       [][][]string
	tableTitles  []string
	trackerNames []string
	links        []string
	styled       int
}

func (r *recordingOutput) Title(text string) { r.titles = append(r.titles, text) }
func (r *recordingOutput) Puts(text string)  { r.lines = append(r.lines, text) }

func (r *recordingOutput) Link(url string) string {
	r.links = append(r.links, url)
	return url
}

func (r *recordingOutput) Table(style reportio.TableStyle, columns []reportio.TableColumn, build func(*reportio.TableBuilder)) {
	builder := &reportio.TableBuilder{}
	build(builder)
	r.tableTitles = append(r.tableTitles, style.Title)
	r.tables = append(r.tables, builder.Rows())
}

func (r *recordingOutput) ReportTracker(t trackers.Tracker) {
	r.trackerNames = append(r.trackerNames, t.Title())
}

func (r *recordingOutput) WithStyle(_ reportio.Style, fn func()) {
	r.styled++
	fn()
}

func finalized(t *testing.T, source *stubSource) *Summarizer {
	t.Helper()
	s, err := New(source)
	require.NoError(t, err)
	require.NoError(t, s.Prepare())
	for i := 0; i < source.parsedRequests; i++ {
		require.NoError(t, s.Aggregate(request.New(nil)))
	}
	require.NoError(t, s.Finalize())
	return s
}

func TestReportHeaderRows(t *testing.T) {
	source := sourceFor(2, &stubTracker{title: "A"})
	source.files = []string{"a.log", "b.log"}
	source.parsedLines = 10
	source.skippedLines = 3
	source.skippedRequests = 1

	s := finalized(t, source)
	out := &recordingOutput{}
	require.NoError(t, s.Report(out))

	require.Equal(t, []string{"Request summary"}, out.tableTitles)
	require.Len(t, out.tables, 1)
	require.Equal(t, [][]string{
		{"Processed File", "a.log"},
		{"Processed File", "b.log"},
		{"Parsed lines", "10"},
		{"Skipped lines", "3"},
		{"Parsed requests", "2"},
		{"Skipped requests", "1"},
	}, out.tables[0])
	require.Equal(t, []string{"A"}, out.trackerNames)
}

func TestReportIncludesWarningRow(t *testing.T) {
	source := sourceFor(1, &stubTracker{title: "A"})
	s, err := New(source)
	require.NoError(t, err)
	require.NoError(t, s.Prepare())
	s.Warning(WarningUnclosedRequest, "x", 1)
	s.Warning(WarningNoCurrentRequest, "y", 2)
	s.Warning(WarningNoCurrentRequest, "z", 3)
	require.NoError(t, s.Aggregate(request.New(nil)))
	require.NoError(t, s.Finalize())

	out := &recordingOutput{}
	require.NoError(t, s.Report(out))

	rows := out.tables[0]
	last := rows[len(rows)-1]
	require.Equal(t, "Warnings", last[0])
	require.Equal(t, "no_current_request: 2, unclosed_request: 1", last[1])
}

func TestReportWithoutRequestsSkipsTrackers(t *testing.T) {
	source := sourceFor(0, &stubTracker{title: "A"})
	s, err := New(source)
	require.NoError(t, err)
	require.NoError(t, s.Prepare())
	require.NoError(t, s.Finalize())

	out := &recordingOutput{}
	require.NoError(t, s.Report(out))

	require.Empty(t, out.trackerNames)
	require.Contains(t, out.lines, "There were no requests analyzed.")
}

func TestReportTrackerOrder(t *testing.T) {
	titles := []string{"Charlie", "Alpha", "Bravo"}
	instances := make([]trackers.Tracker, 0, len(titles))
	for _, title := range titles {
		instances = append(instances, &stubTracker{title: title})
	}
	s := finalized(t, sourceFor(1, instances...))

	out := &recordingOutput{}
	require.NoError(t, s.Report(out))
	require.Equal(t, titles, out.trackerNames)
}

func TestReportFooterOnLogOrderingWarnings(t *testing.T) {
	source := sourceFor(1, &stubTracker{title: "A"})
	s, err := New(source)
	require.NoError(t, err)
	require.NoError(t, s.Prepare())
	s.Warning(WarningNoCurrentRequest, "continuation without header", 7)
	require.NoError(t, s.Aggregate(request.New(nil)))
	require.NoError(t, s.Finalize())

	out := &recordingOutput{}
	require.NoError(t, s.Report(out))

	require.Contains(t, out.titles, "Log parsing problems")
	require.Equal(t, []string{logOrderingHelpURL}, out.links)
	require.Equal(t, 1, out.styled)
}

func TestReportWithoutFooterWhenNoOrderingWarnings(t *testing.T) {
	s := finalized(t, sourceFor(1, &stubTracker{title: "A"}))

	out := &recordingOutput{}
	require.NoError(t, s.Report(out))
	require.NotContains(t, out.titles, "Log parsing problems")
	require.Empty(t, out.links)
}

func TestReportRequiresFinalize(t *testing.T) {
	s, err := New(sourceFor(1, &stubTracker{title: "A"}))
	require.NoError(t, err)
	require.NoError(t, s.Prepare())
	require.ErrorIs(t, s.Report(&recordingOutput{}), ErrLifecycle)
}

func TestReportTwiceFails(t *testing.T) {
	s := finalized(t, sourceFor(1, &stubTracker{title: "A"}))
	require.NoError(t, s.Report(&recordingOutput{}))
	require.ErrorIs(t, s.Report(&recordingOutput{}), ErrLifecycle)
}
