package reportio

import (
	"fmt"
	"io"
	"strings"

	"github.com/MMichael-S/request-log-analyzer/export"
	"github.com/MMichael-S/request-log-analyzer/trackers"
)

// TextOutput writes report primitives as plain text. It pads table cells
// to column width but performs no further layout; anything fancier is the
// job of an external rendering engine.
type TextOutput struct {
	w     io.Writer
	style Style
}

// NewTextOutput creates a plain-text output around the writer.
func NewTextOutput(w io.Writer) *TextOutput {
	return &TextOutput{w: w}
}

func (o *TextOutput) Title(text string) {
	fmt.Fprintf(o.w, "\n%s\n%s\n", text, strings.Repeat("=", len(text)))
}

func (o *TextOutput) Puts(text string) {
	fmt.Fprintln(o.w, text)
}

func (o *TextOutput) Link(url string) string {
	return url
}

func (o *TextOutput) Table(style TableStyle, columns []TableColumn, build func(*TableBuilder)) {
	if style.Title != "" {
		o.Title(style.Title)
	}
	builder := &TableBuilder{}
	build(builder)
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col.Heading)
	}
	for _, row := range builder.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for _, row := range builder.rows {
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			align := AlignLeft
			width := len(cell)
			if i < len(columns) {
				align = columns[i].Align
				width = widths[i]
			}
			if align == AlignRight {
				cells = append(cells, fmt.Sprintf("%*s", width, cell))
			} else {
				cells = append(cells, fmt.Sprintf("%-*s", width, cell))
			}
		}
		fmt.Fprintln(o.w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// ReportTracker renders the tracker title followed by its exported state.
// Flat mappings become two-column tables; nested structures fall back to
// indented YAML.
func (o *TextOutput) ReportTracker(t trackers.Tracker) {
	o.Title(t.Title())
	state := t.Export()
	mapping, ok := state.(*export.Mapping)
	if !ok || mapping.Len() == 0 {
		o.renderValue(state)
		return
	}
	if flat(mapping) {
		o.Table(TableStyle{}, []TableColumn{
			{Heading: ""},
			{Heading: "", Align: AlignRight},
		}, func(b *TableBuilder) {
			for _, key := range mapping.Keys() {
				value, _ := mapping.Get(key)
				b.Row(key, scalarText(value))
			}
		})
		return
	}
	o.renderValue(mapping)
}

func (o *TextOutput) WithStyle(style Style, fn func()) {
	previous := o.style
	o.style = style
	fn()
	o.style = previous
}

func (o *TextOutput) renderValue(value Value) {
	data, err := export.EncodeYAML(value)
	if err != nil {
		o.Puts(fmt.Sprintf("(unrenderable tracker state: %v)", err))
		return
	}
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		o.Puts("  " + line)
	}
}

// Value aliases the export tree so output implementations can be written
// without importing the export package at call sites.
type Value = export.Value

func flat(m *export.Mapping) bool {
	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		switch value.(type) {
		case *export.Mapping, export.Sequence:
			return false
		}
	}
	return true
}

func scalarText(value Value) string {
	switch v := value.(type) {
	case export.String:
		return string(v)
	case export.Integer:
		return fmt.Sprintf("%d", int64(v))
	case export.Number:
		return fmt.Sprintf("%g", float64(v))
	case export.Null, nil:
		return "-"
	default:
		return fmt.Sprint(v)
	}
}
