package frame

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the finite, non-null values of a DTfloat column.
type Summary struct {
	Name string

	N, Nulls, NonFinite int

	Mean, StdDev     float64
	Min, Median, Max float64
}

func (s *Summary) String() string {
	return fmt.Sprintf("%s: n=%d nulls=%d nonfinite=%d mean=%.4f sd=%.4f min=%.4f median=%.4f max=%.4f",
		s.Name, s.N, s.Nulls, s.NonFinite, s.Mean, s.StdDev, s.Min, s.Median, s.Max)
}

// Summarize computes the Summary of colName. Statistics are NaN when there are no finite values.
func (f *Frame) Summarize(colName string) (*Summary, error) {
	var (
		col *Col
		e   error
	)

	if col, e = f.Column(colName); e != nil {
		return nil, e
	}

	if col.DataType() != DTfloat {
		return nil, fmt.Errorf("column %s is %s, need %s", colName, col.DataType(), DTfloat)
	}

	s := &Summary{Name: colName, Nulls: col.NullCount()}
	x := finite(col, nil)
	s.N = len(x)
	s.NonFinite = col.Len() - s.Nulls - s.N

	if s.N == 0 {
		s.Mean, s.StdDev, s.Min, s.Median, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s, nil
	}

	sort.Float64s(x)
	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	s.Min, s.Max = floats.Min(x), floats.Max(x)
	s.Median = stat.Quantile(0.5, stat.Empirical, x, nil)

	return s, nil
}

// Correlation returns the Pearson correlation of two DTfloat columns over the rows where both are finite.
func (f *Frame) Correlation(colName1, colName2 string) (float64, error) {
	var (
		c1, c2 *Col
		e      error
	)

	if c1, e = f.Column(colName1); e != nil {
		return 0, e
	}

	if c2, e = f.Column(colName2); e != nil {
		return 0, e
	}

	if c1.DataType() != DTfloat || c2.DataType() != DTfloat {
		return 0, fmt.Errorf("correlation needs %s columns", DTfloat)
	}

	both := make([]bool, f.RowCount())
	for row := range both {
		x1, ok1 := c1.ElementFloat(row)
		x2, ok2 := c2.ElementFloat(row)
		both[row] = ok1 && ok2 && isFinite(x1) && isFinite(x2)
	}

	x, y := finite(c1, both), finite(c2, both)
	if len(x) < 2 {
		return math.NaN(), nil
	}

	return stat.Correlation(x, y, nil), nil
}

// finite returns the non-null finite values of col, restricted to rows where keep is true (all rows if keep is nil).
func finite(col *Col, keep []bool) []float64 {
	var x []float64
	for row := 0; row < col.Len(); row++ {
		if keep != nil && !keep[row] {
			continue
		}

		if v, ok := col.ElementFloat(row); ok && isFinite(v) {
			x = append(x, v)
		}
	}

	return x
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
