package pipeline

import (
	"fmt"
	"strings"

	"github.com/invertedv/glp1/config"
	"github.com/invertedv/glp1/frame"
	"go.uber.org/zap"
)

// columns of the state master table
const (
	ColState         = "State"
	ColObesityPct    = "Obesity_Pct"
	ColMedianIncome  = "Median_Household_Income"
	ColMedicaid      = "Medicaid_Covers_GLP1"
	ColWeeksOfIncome = "Weeks_Income_for_Wegovy"

	colPrevalence = "Prevalence"
)

// BuildMaster loads the obesity and income files and builds the state master table.
// Warnings go to res.
func (p *Pipeline) BuildMaster(res *StageResult) (*frame.Frame, error) {
	var (
		obesity, income *frame.Frame
		e               error
	)

	if obesity, e = p.loadObesity(); e != nil {
		return nil, e
	}

	if e = requireFile(p.paths.Income); e != nil {
		return nil, e
	}

	var (
		files *frame.Files
		raw   *frame.Frame
	)
	if files, e = frame.NewFiles(); e != nil {
		return nil, e
	}

	if raw, e = files.Load(p.paths.Income); e != nil {
		return nil, e
	}

	var (
		row     int
		byLabel bool
	)
	if row, byLabel, e = MedianIncomeRow(raw, p.cfg.Income); e != nil {
		return nil, e
	}

	if !byLabel {
		p.warn(res, "median income row located by position", zap.Int("row", row))
	}

	if income, e = IncomeByState(raw, row, p.cfg.Income.ColumnMarker); e != nil {
		return nil, e
	}

	if income.RowCount() == 0 {
		p.warn(res, "no household estimate columns in income file", zap.String("marker", p.cfg.Income.ColumnMarker))
	}

	var dups []any
	if dups, e = income.Duplicates(ColState); e != nil {
		return nil, e
	}

	for _, d := range dups {
		p.warn(res, "state repeated in income file, first value used", zap.Any("state", d))
	}

	return Master(obesity, income, p.cfg)
}

func (p *Pipeline) loadObesity() (*frame.Frame, error) {
	if e := requireFile(p.paths.Obesity); e != nil {
		return nil, e
	}

	var (
		files *frame.Files
		df    *frame.Frame
		e     error
	)
	if files, e = frame.NewFiles(frame.FileFloats(colPrevalence)); e != nil {
		return nil, e
	}

	if df, e = files.Load(p.paths.Obesity); e != nil {
		return nil, e
	}

	if df, e = df.KeepColumns(ColState, colPrevalence); e != nil {
		return nil, fmt.Errorf("obesity file: %w", e)
	}

	if e = df.Rename(colPrevalence, ColObesityPct); e != nil {
		return nil, e
	}

	return df, nil
}

// Master joins income onto obesity by state and adds the Medicaid coverage flag and
// weeks-of-income columns. obesity has columns State, Obesity_Pct; income has State,
// Median_Household_Income.
//
// Weeks of income is null when income is null and +Inf when income is zero.
func Master(obesity, income *frame.Frame, cfg *config.Config) (*frame.Frame, error) {
	var (
		df *frame.Frame
		e  error
	)

	if df, e = obesity.LeftJoin(income, ColState); e != nil {
		return nil, fmt.Errorf("join obesity and income: %w", e)
	}

	if _, e = frame.Parse(df, ColMedicaid+" := "+ColState+" in MedicaidStates",
		frame.ParseConst("MedicaidStates", cfg.MedicaidStates)); e != nil {
		return nil, e
	}

	if _, e = frame.Parse(df, ColWeeksOfIncome+" := ListPrice / ("+ColMedianIncome+" / WeeksPerYear)",
		frame.ParseConst("ListPrice", cfg.Affordability.ListPrice),
		frame.ParseConst("WeeksPerYear", cfg.Affordability.WeeksPerYear)); e != nil {
		return nil, e
	}

	return df.KeepColumns(ColState, ColObesityPct, ColMedianIncome, ColMedicaid, ColWeeksOfIncome)
}

// MedianIncomeRow finds the row of the S1901 table whose first column starts with cfg.MedianLabel
// (ignoring case and surrounding space). If there is none, cfg.FallbackRow is used and byLabel is false.
func MedianIncomeRow(income *frame.Frame, cfg config.IncomeConfig) (row int, byLabel bool, err error) {
	labels, e := income.Column(income.ColumnNames()[0])
	if e != nil {
		return -1, false, e
	}

	if labels.DataType() == frame.DTstring && cfg.MedianLabel != "" {
		for ind := 0; ind < labels.Len(); ind++ {
			if lbl, ok := labels.ElementString(ind); ok && hasLabel(lbl, cfg.MedianLabel) {
				return ind, true, nil
			}
		}
	}

	if cfg.FallbackRow >= income.RowCount() {
		return -1, false, fmt.Errorf("%w: no %q label and only %d rows (fallback row %d)",
			ErrNoIncomeRow, cfg.MedianLabel, income.RowCount(), cfg.FallbackRow)
	}

	return cfg.FallbackRow, false, nil
}

func hasLabel(value, label string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(value)), strings.ToLower(label))
}

// IncomeByState reads row of the S1901 table across every column whose name contains marker.
// The state is the text of the column name before the first "!!". Values that aren't numbers
// once ',', '$' and '+' are removed are null.
func IncomeByState(income *frame.Frame, row int, marker string) (*frame.Frame, error) {
	if row < 0 || row >= income.RowCount() {
		return nil, fmt.Errorf("income row %d out of range, table has %d rows", row, income.RowCount())
	}

	var (
		states []string
		vals   []*float64
	)

	cells := income.Row(row)
	for _, name := range income.ColumnNames() {
		if !strings.Contains(name, marker) {
			continue
		}

		states = append(states, StateFromColumn(name))

		var val *float64
		if s, ok := cells[name].(string); ok {
			if f, ok := frame.CleanNumber(s); ok {
				val = &f
			}
		}

		vals = append(vals, val)
	}

	if states == nil {
		states = []string{}
	}

	var (
		stateCol, incomeCol *frame.Col
		e                   error
	)
	if stateCol, e = frame.NewCol(states, frame.ColName(ColState)); e != nil {
		return nil, e
	}

	if incomeCol, e = frame.NewCol(frame.NewFloatVector(vals), frame.ColName(ColMedianIncome)); e != nil {
		return nil, e
	}

	return frame.NewFrame(stateCol, incomeCol)
}

// StateFromColumn returns the text before the first "!!" of an S1901 column name.
func StateFromColumn(name string) string {
	state, _, _ := strings.Cut(name, "!!")
	return state
}

func (p *Pipeline) logMasterSummary(df *frame.Frame) {
	for _, colName := range []string{ColObesityPct, ColMedianIncome, ColWeeksOfIncome} {
		if s, e := df.Summarize(colName); e == nil {
			p.logger.Info("summary", zap.Stringer("column", s))
		}
	}

	if r, e := df.Correlation(ColObesityPct, ColMedianIncome); e == nil {
		p.logger.Info("obesity/income correlation", zap.Float64("r", r))
	}
}
