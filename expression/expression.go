// Package expression turns user supplied boolean expressions over the
// variable i into filters.
package expression

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pouriyajamshidi/optrun"
)

// Variable is the name under which the current integer is exposed to expressions.
const Variable = "i"

// ErrEmptyExpression is returned when the source has nothing to compile.
var ErrEmptyExpression = errors.New("expression cannot be empty")

// Predicate is a compiled expression usable as a filter.
type Predicate struct {
	Source  string
	program *vm.Program
	err     error
}

// Compile parses src and checks that it yields a boolean, e.g. "i % 3 == 0"
// or "i in [2, 3, 5, 7]".
func Compile(src string) (*Predicate, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(src, expr.Env(map[string]any{Variable: 0}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", src, err)
	}

	return &Predicate{Source: src, program: program}, nil
}

// Eval runs the expression for i.
func (p *Predicate) Eval(i int) (bool, error) {
	out, err := expr.Run(p.program, map[string]any{Variable: i})
	if err != nil {
		return false, fmt.Errorf("evaluate %q for %s=%d: %w", p.Source, Variable, i, err)
	}

	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("evaluate %q for %s=%d: got %T, want bool", p.Source, Variable, i, out)
	}

	return result, nil
}

// Filter adapts the predicate to an optrun.Filter. Evaluation errors reject
// the integer; the first one is kept and reported by Err.
func (p *Predicate) Filter() optrun.Filter {
	return func(i int) bool {
		ok, err := p.Eval(i)
		if err != nil && p.err == nil {
			p.err = err
		}
		return ok
	}
}

// Err returns the first evaluation error seen by the filter.
func (p *Predicate) Err() error {
	return p.err
}
