// Package filter evaluates expr-lang expressions against Fyle project
// records, for narrowing list output on the client side.
//
// Inside an expression the record is available as Project, a map of the
// fields the server returned:
//
//	Project.active == true and iprefix(field("name"), "ops")
//
// Helpers: field(name) returns a field as a string, has(name) reports
// whether the server sent it, and icontains, iprefix and isuffix match
// strings ignoring case. The expr operators contains, startsWith and
// endsWith and the builtins lower and upper are available as usual:
//
//	lower(field("name")) startsWith "acme"
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/fylein/fyle-sdk-go/fyle"
)

// Filter is a compiled project filter
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable filter
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(newEnvironment(fyle.Project{})),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a single project
func (f *Filter) Match(project fyle.Project) (bool, error) {
	result, err := expr.Run(f.program, newEnvironment(project))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			ProjectID:  project.ID(),
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool), nil
}

// Apply returns the projects the filter matches, in their original order.
// Evaluation stops at the first error.
func (f *Filter) Apply(projects []fyle.Project) ([]fyle.Project, error) {
	matched := make([]fyle.Project, 0, len(projects))
	for _, p := range projects {
		ok, err := f.Match(p)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// newEnvironment creates the runtime environment for filter evaluation
func newEnvironment(project fyle.Project) map[string]any {
	if project == nil {
		project = fyle.Project{}
	}

	return map[string]any{
		"Project": map[string]any(project),

		"field": func(name string) string {
			v, ok := project[name]
			if !ok || v == nil {
				return ""
			}
			return fmt.Sprint(v)
		},
		"has": func(name string) bool {
			_, ok := project[name]
			return ok
		},

		// Case-insensitive string helpers; contains, startsWith and endsWith
		// are operators in expr and cannot be redefined.
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"iprefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"isuffix": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
	}
}
