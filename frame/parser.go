package frame

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
)

// ParseOpt supplies constants to an expression.
type ParseOpt func(consts map[string]any) error

// ParseConst makes val available to expressions as name. A constant may not shadow a column.
func ParseConst(name string, val any) ParseOpt {
	return func(consts map[string]any) error {
		if name == "" {
			return fmt.Errorf("constant with no name")
		}

		consts[name] = val
		return nil
	}
}

// Parse evaluates eqn, of the form "name := expression", on every row of df and appends the
// result to df as column name. Column names are variables in the expression. A row where any
// referenced column is null yields null.
//
// Example:
//
//	Parse(df, "weeks := price / (income / 52)", ParseConst("price", 1349.0))
func Parse(df *Frame, eqn string, opts ...ParseOpt) (*Col, error) {
	var left, right string

	if indx := strings.Index(eqn, ":="); indx > 0 {
		left = strings.TrimSpace(eqn[:indx])
		right = eqn[indx+2:]
	}

	if left == "" {
		return nil, fmt.Errorf("parse %q: expected name := expression", eqn)
	}

	var (
		ev *evaluator
		e  error
	)
	if ev, e = newEvaluator(df, right, opts); e != nil {
		return nil, fmt.Errorf("parse %q: %w", eqn, e)
	}

	vals := make([]any, df.RowCount())
	for row := range vals {
		if vals[row], e = ev.eval(row); e != nil {
			return nil, fmt.Errorf("parse %q, row %d: %w", eqn, row, e)
		}
	}

	var v *Vector
	if v, e = toVector(vals); e != nil {
		return nil, fmt.Errorf("parse %q: %w", eqn, e)
	}

	var col *Col
	if col, e = NewCol(v, ColName(left)); e != nil {
		return nil, e
	}

	if e := df.AppendColumn(col); e != nil {
		return nil, e
	}

	return col, nil
}

// Filter returns the rows of df for which the boolean expression cond is true.
// Rows where a referenced column is null are dropped.
func Filter(df *Frame, cond string, opts ...ParseOpt) (*Frame, error) {
	var (
		ev *evaluator
		e  error
	)
	if ev, e = newEvaluator(df, cond, opts, expr.AsBool()); e != nil {
		return nil, fmt.Errorf("filter %q: %w", cond, e)
	}

	keep := make([]bool, df.RowCount())
	for row := range keep {
		var val any
		if val, e = ev.eval(row); e != nil {
			return nil, fmt.Errorf("filter %q, row %d: %w", cond, row, e)
		}

		keep[row] = val != nil && val.(bool)
	}

	return df.Where(keep)
}

// *********** evaluator ***********

type evaluator struct {
	df      *Frame
	program *vm.Program
	consts  map[string]any
	refs    []*Col
}

func newEvaluator(df *Frame, code string, opts []ParseOpt, exprOpts ...expr.Option) (*evaluator, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}

	consts := make(map[string]any)
	for _, opt := range opts {
		if e := opt(consts); e != nil {
			return nil, e
		}
	}

	// the type checker works from an environment holding one value of each column's type
	env := make(map[string]any)
	for _, c := range df.cols {
		env[c.Name()] = zero(c.DataType())
	}

	for k, v := range consts {
		if _, ok := env[k]; ok {
			return nil, fmt.Errorf("constant %s has the same name as a column", k)
		}

		env[k] = v
	}

	var (
		program *vm.Program
		e       error
	)
	if program, e = expr.Compile(code, append([]expr.Option{expr.Env(env)}, exprOpts...)...); e != nil {
		return nil, e
	}

	ev := &evaluator{df: df, program: program, consts: consts}

	node := program.Node()
	idents := &identifiers{}
	ast.Walk(&node, idents)
	for _, name := range idents.names {
		if c, e := df.Column(name); e == nil {
			ev.refs = append(ev.refs, c)
		}
	}

	return ev, nil
}

func (ev *evaluator) eval(row int) (any, error) {
	for _, c := range ev.refs {
		if c.IsNull(row) {
			return nil, nil
		}
	}

	env := ev.df.Row(row)
	for k, v := range ev.consts {
		env[k] = v
	}

	return expr.Run(ev.program, env)
}

type identifiers struct {
	names []string
}

func (id *identifiers) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IdentifierNode); ok && !has(n.Value, id.names) {
		id.names = append(id.names, n.Value)
	}
}

func zero(dt DataTypes) any {
	switch dt {
	case DTfloat:
		return 0.0
	case DTbool:
		return false
	default:
		return ""
	}
}

// toVector builds a vector from expression results; the type is set by the first non-null value.
// All-null results give a DTfloat vector.
func toVector(vals []any) (*Vector, error) {
	dt := DTfloat
	for _, x := range vals {
		if x == nil {
			continue
		}

		switch x.(type) {
		case int:
			dt = DTfloat
		default:
			if dt = WhatAmI(x); dt == DTunknown {
				return nil, fmt.Errorf("unsupported result type %T", x)
			}
		}

		break
	}

	v := MakeVector(dt, len(vals))
	for ind, x := range vals {
		if e := v.Set(x, ind); e != nil {
			return nil, fmt.Errorf("row %d: %w", ind, e)
		}
	}

	return v, nil
}
