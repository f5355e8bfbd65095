package frame

import (
	"errors"
	"fmt"
)

var ErrColumnNotFound = errors.New("column not found")

// Frame is an ordered set of equal-length, uniquely named columns.
type Frame struct {
	cols []*Col
}

func NewFrame(cols ...*Col) (*Frame, error) {
	if cols == nil {
		return nil, fmt.Errorf("no columns in NewFrame")
	}

	f := &Frame{}
	for _, col := range cols {
		if e := f.AppendColumn(col); e != nil {
			return nil, e
		}
	}

	return f, nil
}

// *********** Frame - Info ***********

func (f *Frame) RowCount() int {
	if len(f.cols) == 0 {
		return 0
	}

	return f.cols[0].Len()
}

func (f *Frame) ColumnCount() int {
	return len(f.cols)
}

func (f *Frame) ColumnNames() []string {
	var names []string
	for _, c := range f.cols {
		names = append(names, c.Name())
	}

	return names
}

func (f *Frame) Column(colName string) (*Col, error) {
	for _, c := range f.cols {
		if c.Name() == colName {
			return c, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, colName)
}

// Row returns the values of row as a map from column name to value; nulls are nil.
func (f *Frame) Row(row int) map[string]any {
	out := make(map[string]any, len(f.cols))
	for _, c := range f.cols {
		out[c.Name()] = c.Element(row)
	}

	return out
}

// *********** Frame - Columns ***********

func (f *Frame) AppendColumn(col *Col) error {
	if col == nil {
		return fmt.Errorf("nil column in AppendColumn")
	}

	if col.Name() == "" {
		return fmt.Errorf("column with no name in AppendColumn")
	}

	if has(col.Name(), f.ColumnNames()) {
		return fmt.Errorf("duplicate column name: %s", col.Name())
	}

	if len(f.cols) > 0 && col.Len() != f.RowCount() {
		return fmt.Errorf("length mismatch: frame - %d, append col - %d", f.RowCount(), col.Len())
	}

	f.cols = append(f.cols, col)

	return nil
}

// KeepColumns returns a new Frame with copies of colNames, in that order.
func (f *Frame) KeepColumns(colNames ...string) (*Frame, error) {
	if len(colNames) == 0 {
		return nil, fmt.Errorf("no columns in KeepColumns")
	}

	var cols []*Col
	for _, cName := range colNames {
		var (
			col *Col
			e   error
		)

		if col, e = f.Column(cName); e != nil {
			return nil, e
		}

		cols = append(cols, col.Copy())
	}

	return NewFrame(cols...)
}

func (f *Frame) Rename(oldName, newName string) error {
	var (
		col *Col
		e   error
	)

	if col, e = f.Column(oldName); e != nil {
		return e
	}

	if oldName != newName && has(newName, f.ColumnNames()) {
		return fmt.Errorf("column %s already exists, cannot Rename", newName)
	}

	return col.Rename(newName)
}

// *********** Frame - Rows ***********

// Where returns a new Frame with the rows for which keep is true.
func (f *Frame) Where(keep []bool) (*Frame, error) {
	if len(keep) != f.RowCount() {
		return nil, fmt.Errorf("where mask has %d rows, frame has %d", len(keep), f.RowCount())
	}

	var cols []*Col
	for _, c := range f.cols {
		cols = append(cols, &Col{Vector: c.Vector.Where(keep), name: c.Name()})
	}

	return NewFrame(cols...)
}

// Head returns a new Frame with the first n rows.
func (f *Frame) Head(n int) *Frame {
	n = min(n, f.RowCount())

	var cols []*Col
	for _, c := range f.cols {
		cols = append(cols, &Col{Vector: c.Take(seq(n)), name: c.Name()})
	}

	out, _ := NewFrame(cols...)

	return out
}

// AppendRows stacks the rows of df2 below those of f. Both must have the same column names and types,
// though not necessarily in the same order.
func (f *Frame) AppendRows(df2 *Frame) (*Frame, error) {
	if f.ColumnCount() != df2.ColumnCount() {
		return nil, fmt.Errorf("cannot append rows: %d columns vs %d columns", f.ColumnCount(), df2.ColumnCount())
	}

	var cols []*Col
	for _, c := range f.cols {
		var (
			c2 *Col
			e  error
		)

		if c2, e = df2.Column(c.Name()); e != nil {
			return nil, fmt.Errorf("cannot append rows: %w", e)
		}

		var v *Vector
		if v, e = c.AppendVector(c2.Vector); e != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name(), e)
		}

		cols = append(cols, &Col{Vector: v, name: c.Name()})
	}

	return NewFrame(cols...)
}

// LeftJoin keeps every row of f and adds the columns of right, matched on column "on" by exact value.
// Rows without a match get nulls. If a key repeats in right, its first row is used.
func (f *Frame) LeftJoin(right *Frame, on string) (*Frame, error) {
	var (
		leftKey, rightKey *Col
		e                 error
	)

	if leftKey, e = f.Column(on); e != nil {
		return nil, fmt.Errorf("left side of join: %w", e)
	}

	if rightKey, e = right.Column(on); e != nil {
		return nil, fmt.Errorf("right side of join: %w", e)
	}

	if leftKey.DataType() != rightKey.DataType() {
		return nil, fmt.Errorf("join key %s is %s on the left and %s on the right", on, leftKey.DataType(), rightKey.DataType())
	}

	index := make(map[any]int)
	for row := 0; row < right.RowCount(); row++ {
		k := rightKey.Element(row)
		if k == nil {
			continue
		}

		if _, ok := index[k]; !ok {
			index[k] = row
		}
	}

	rows := make([]int, f.RowCount())
	for row := range rows {
		rows[row] = -1
		if k := leftKey.Element(row); k != nil {
			if r, ok := index[k]; ok {
				rows[row] = r
			}
		}
	}

	var cols []*Col
	for _, c := range f.cols {
		cols = append(cols, c.Copy())
	}

	for _, c := range right.cols {
		if c.Name() == on {
			continue
		}

		if has(c.Name(), f.ColumnNames()) {
			return nil, fmt.Errorf("column %s is on both sides of the join", c.Name())
		}

		cols = append(cols, &Col{Vector: c.Take(rows), name: c.Name()})
	}

	return NewFrame(cols...)
}

// Duplicates returns the values of colName that appear more than once, in order of first repeat.
func (f *Frame) Duplicates(colName string) ([]any, error) {
	var (
		col *Col
		e   error
	)

	if col, e = f.Column(colName); e != nil {
		return nil, e
	}

	seen := make(map[any]int)
	var dups []any
	for row := 0; row < col.Len(); row++ {
		k := col.Element(row)
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}

	return dups, nil
}

func (f *Frame) String() string {
	var vs []*Vector
	for _, c := range f.cols {
		vs = append(vs, c.Vector)
	}

	return prettyPrint(f.ColumnNames(), vs...)
}
