package analyzer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MMichael-S/request-log-analyzer/config"
	"github.com/MMichael-S/request-log-analyzer/reportio"
	"github.com/MMichael-S/request-log-analyzer/request"
	"github.com/MMichael-S/request-log-analyzer/summarizer"
	"github.com/MMichael-S/request-log-analyzer/trackers"
)

type sliceStream struct {
	requests []*request.Request
	next     int
	err      error
}

func (s *sliceStream) Next() (*request.Request, error) {
	if s.next >= len(s.requests) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	req := s.requests[s.next]
	s.next++
	return req, nil
}

type testSource struct {
	format reportio.FileFormat
	count  int
}

func (s *testSource) FileFormat() reportio.FileFormat { return s.format }
func (s *testSource) ProcessedFiles() []string        { return []string{"access.log"} }
func (s *testSource) ParsedLines() int                { return s.count }
func (s *testSource) SkippedLines() int               { return 0 }
func (s *testSource) ParsedRequests() int             { return s.count }
func (s *testSource) SkippedRequests() int            { return 0 }

func testConfig(t *testing.T, exportPath string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(`
trackers:
  - type: duration
    category: controller
  - type: frequency
    value: method
  - type: timespan
`))
	require.NoError(t, err)
	cfg.YAML = exportPath
	return cfg
}

func sampleRequests() []*request.Request {
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	methods := []string{"GET", "POST", "GET"}
	out := make([]*request.Request, 0, len(methods))
	for i, method := range methods {
		req := request.New(map[string]any{
			"method":     method,
			"controller": "users",
			"duration":   0.1 * float64(i+1),
		})
		req.Timestamp = base.Add(time.Duration(i) * time.Minute)
		req.LineNumber = i + 1
		out = append(out, req)
	}
	return out
}

func TestRunEndToEnd(t *testing.T) {
	exportPath := filepath.Join(t.TempDir(), "export.yml")
	cfg := testConfig(t, exportPath)
	format, err := cfg.FileFormat()
	require.NoError(t, err)

	var report strings.Builder
	a, err := New(
		WithConfig(cfg),
		WithLogger(zerolog.Nop()),
		WithOutput(reportio.NewTextOutput(&report)),
	)
	require.NoError(t, err)
	defer a.Close()

	requests := sampleRequests()
	source := &testSource{format: format, count: len(requests)}
	s, err := a.Run(context.Background(), source, &sliceStream{requests: requests})
	require.NoError(t, err)
	require.NotNil(t, s)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "Request duration")
	require.Contains(t, decoded, "Frequency")
	require.Contains(t, decoded, "Timespan")

	text := report.String()
	require.Contains(t, text, "Request summary")
	require.Contains(t, text, "access.log")
	require.Contains(t, text, "Request duration")
}

func TestRunFailsOnEmptyTrackerList(t *testing.T) {
	a, err := New(WithOutput(reportio.NewTextOutput(&strings.Builder{})))
	require.NoError(t, err)
	defer a.Close()

	source := &testSource{format: emptyFormat{}}
	_, err = a.Run(context.Background(), source, &sliceStream{})
	require.ErrorIs(t, err, summarizer.ErrNoTrackers)
}

type emptyFormat struct{}

func (emptyFormat) Name() string                    { return "empty" }
func (emptyFormat) ReportTrackers() []trackers.Spec { return nil }

func TestRunSurfacesStreamError(t *testing.T) {
	cfg := testConfig(t, "")
	format, err := cfg.FileFormat()
	require.NoError(t, err)

	a, err := New(WithOutput(reportio.NewTextOutput(&strings.Builder{})))
	require.NoError(t, err)
	defer a.Close()

	boom := errors.New("truncated log")
	source := &testSource{format: format, count: 1}
	_, err = a.Run(context.Background(), source, &sliceStream{err: boom})
	require.ErrorIs(t, err, boom)
}

func TestRunHonorsContextCancellation(t *testing.T) {
	cfg := testConfig(t, "")
	format, err := cfg.FileFormat()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, err := New(WithOutput(reportio.NewTextOutput(&strings.Builder{})))
	require.NoError(t, err)
	defer a.Close()

	source := &testSource{format: format, count: 1}
	_, err = a.Run(ctx, source, &sliceStream{requests: sampleRequests()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunReportsAfterExportFailure(t *testing.T) {
	exportPath := filepath.Join(t.TempDir(), "missing", "export.yml")
	cfg := testConfig(t, exportPath)
	format, err := cfg.FileFormat()
	require.NoError(t, err)

	var report strings.Builder
	a, err := New(
		WithConfig(cfg),
		WithLogger(zerolog.Nop()),
		WithOutput(reportio.NewTextOutput(&report)),
	)
	require.NoError(t, err)
	defer a.Close()

	requests := sampleRequests()
	source := &testSource{format: format, count: len(requests)}
	_, err = a.Run(context.Background(), source, &sliceStream{requests: requests})
	require.Error(t, err)
	// The report is still rendered from the completed aggregation.
	require.Contains(t, report.String(), "Request summary")
}

func TestWithExportPathOverridesConfig(t *testing.T) {
	override := filepath.Join(t.TempDir(), "override.yml")
	cfg := testConfig(t, filepath.Join(t.TempDir(), "ignored.yml"))
	format, err := cfg.FileFormat()
	require.NoError(t, err)

	a, err := New(
		WithConfig(cfg),
		WithLogger(zerolog.Nop()),
		WithExportPath(override),
		WithOutput(reportio.NewTextOutput(&strings.Builder{})),
	)
	require.NoError(t, err)
	defer a.Close()

	requests := sampleRequests()
	source := &testSource{format: format, count: len(requests)}
	_, err = a.Run(context.Background(), source, &sliceStream{requests: requests})
	require.NoError(t, err)

	_, err = os.Stat(override)
	require.NoError(t, err)
}
