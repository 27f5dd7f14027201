package trackers

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/MMichael-S/request-log-analyzer/request"
)

// filter implements the option handling shared by all concrete trackers:
// the value field, the report title, the category field, the line type
// gate and the if/unless filter conditions.
type filter struct {
	valueField    string
	title         string
	categoryField string
	lineType      string
	ifProg        *vm.Program
	unlessProg    *vm.Program
}

func newFilter(defaultTitle, defaultValue string, opts Options) (*filter, error) {
	f := &filter{
		valueField: defaultValue,
		title:      defaultTitle,
	}
	if value, ok := opts.String(OptionValue); ok {
		f.valueField = value
	}
	if title, ok := opts.String("title"); ok {
		f.title = title
	}
	if category, ok := opts.String("category"); ok {
		f.categoryField = category
	}
	if lineType, ok := opts.String("line_type"); ok {
		f.lineType = lineType
	}
	if cond, ok := opts.String("if"); ok {
		prog, err := compileCondition(cond)
		if err != nil {
			return nil, fmt.Errorf("if condition: %w", err)
		}
		f.ifProg = prog
	}
	if cond, ok := opts.String("unless"); ok {
		prog, err := compileCondition(cond)
		if err != nil {
			return nil, fmt.Errorf("unless condition: %w", err)
		}
		f.unlessProg = prog
	}
	return f, nil
}

func compileCondition(src string) (*vm.Program, error) {
	return expr.Compile(src, expr.Env(map[string]any{}), expr.AllowUndefinedVariables())
}

// shouldUpdate applies the common gates. Trackers may add further checks
// on top (value presence, timestamp availability).
func (f *filter) shouldUpdate(req *request.Request) bool {
	if req == nil {
		return false
	}
	if f.lineType != "" {
		lineType, ok := req.String("line_type")
		if !ok || lineType != f.lineType {
			return false
		}
	}
	if f.ifProg != nil && !evalCondition(f.ifProg, req) {
		return false
	}
	if f.unlessProg != nil && evalCondition(f.unlessProg, req) {
		return false
	}
	return true
}

// evalCondition runs a compiled condition against the request fields. Any
// evaluation error or non-boolean result counts as false.
func evalCondition(prog *vm.Program, req *request.Request) bool {
	result, err := expr.Run(prog, req.Env())
	if err != nil {
		return false
	}
	value, ok := result.(bool)
	return ok && value
}

// category resolves the grouping key for the request. Without a category
// option every request falls into a single bucket.
func (f *filter) category(req *request.Request) string {
	if f.categoryField == "" {
		return "all"
	}
	if value, ok := req.String(f.categoryField); ok {
		return value
	}
	if value, ok := req.Field(f.categoryField); ok {
		return fmt.Sprint(value)
	}
	return "unknown"
}
