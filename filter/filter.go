// Package filter compiles expr-lang expressions for filtering raw show
// objects returned by the TVMaze API.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ShowFilter is a compiled filter expression evaluated against one show.
type ShowFilter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable show filter.
//
// The expression is evaluated with the raw show object as its environment,
// so any field of the API payload can be referenced directly:
//
//	name == "Breaking Bad"
//	premiered startsWith "2019"
//	rating?.average > 8.0
func Compile(expression string) (*ShowFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}

	return &ShowFilter{
		expression: expression,
		program:    program,
	}, nil
}

// Expression returns the source expression of the filter.
func (f *ShowFilter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one raw show object.
func (f *ShowFilter) Match(show map[string]any) (bool, error) {
	output, err := expr.Run(f.program, show)
	if err != nil {
		return false, fmt.Errorf("filter %q failed: %w", f.expression, err)
	}

	matched, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q did not evaluate to a boolean", f.expression)
	}

	return matched, nil
}

// Apply returns the shows matching the filter. Entries that are not JSON
// objects are skipped.
func (f *ShowFilter) Apply(shows []any) ([]map[string]any, error) {
	var matched []map[string]any
	for _, entry := range shows {
		show, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		ok, err := f.Match(show)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, show)
		}
	}
	return matched, nil
}
