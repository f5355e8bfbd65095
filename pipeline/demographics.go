package pipeline

import (
	"fmt"

	"github.com/invertedv/glp1/frame"
	"go.uber.org/zap"
)

// columns of the demographics table
const (
	ColGroup       = "Group"
	ColObesityRate = "Obesity_Rate"
	ColCategory    = "Category"

	colResponse     = "Response"
	colLocationDesc = "Locationdesc"
	colBreakOut     = "Break_Out"
	colDataValue    = "Data_value"
)

// categories of the demographics table
const (
	CategoryEducation = "Education"
	CategoryIncome    = "Income"
)

type demographicSource struct {
	path     string
	category string
}

func (p *Pipeline) demographicSources() []demographicSource {
	return []demographicSource{
		{path: p.paths.Education, category: CategoryEducation},
		{path: p.paths.HouseholdIncome, category: CategoryIncome},
	}
}

// BuildDemographics stacks the obese-response rows of the BRFSS education and household income
// extracts. A missing extract is skipped with a warning; if both are missing the error is ErrNoDemographics.
func (p *Pipeline) BuildDemographics(res *StageResult) (*frame.Frame, error) {
	var (
		files *frame.Files
		e     error
	)
	if files, e = frame.NewFiles(frame.FileFloats(colDataValue)); e != nil {
		return nil, e
	}

	var out *frame.Frame
	for _, src := range p.demographicSources() {
		if e := requireFile(src.path); e != nil {
			p.warn(res, "Warning: File not found: "+src.path, zap.String("category", src.category))
			continue
		}

		var raw, df *frame.Frame
		if raw, e = files.Load(src.path); e != nil {
			return nil, e
		}

		if df, e = Demographic(raw, src.category, p.cfg.ObeseResponse); e != nil {
			return nil, fmt.Errorf("%s: %w", src.path, e)
		}

		p.logger.Debug("demographic extract loaded", zap.String("category", src.category),
			zap.Int("rows", raw.RowCount()), zap.Int("kept", df.RowCount()))

		if out == nil {
			out = df
			continue
		}

		if out, e = out.AppendRows(df); e != nil {
			return nil, e
		}
	}

	if out == nil {
		return nil, ErrNoDemographics
	}

	return out, nil
}

// Demographic keeps the rows of a BRFSS extract whose Response is exactly response and
// returns them as State, Group, Obesity_Rate, Category with Category set to category.
func Demographic(raw *frame.Frame, category, response string) (*frame.Frame, error) {
	var (
		df *frame.Frame
		e  error
	)

	if df, e = frame.Filter(raw, colResponse+" == ObeseResponse", frame.ParseConst("ObeseResponse", response)); e != nil {
		return nil, e
	}

	if df, e = df.KeepColumns(colLocationDesc, colBreakOut, colDataValue); e != nil {
		return nil, e
	}

	renames := [][2]string{{colLocationDesc, ColState}, {colBreakOut, ColGroup}, {colDataValue, ColObesityRate}}
	for _, rn := range renames {
		if e = df.Rename(rn[0], rn[1]); e != nil {
			return nil, e
		}
	}

	cats := make([]string, df.RowCount())
	for ind := range cats {
		cats[ind] = category
	}

	var col *frame.Col
	if col, e = frame.NewCol(cats, frame.ColName(ColCategory)); e != nil {
		return nil, e
	}

	if e = df.AppendColumn(col); e != nil {
		return nil, e
	}

	return df, nil
}

func (p *Pipeline) logDemographicsSummary(df *frame.Frame) {
	for _, cat := range []string{CategoryEducation, CategoryIncome} {
		sub, e := frame.Filter(df, ColCategory+" == Cat", frame.ParseConst("Cat", cat))
		if e != nil || sub.RowCount() == 0 {
			continue
		}

		if s, e := sub.Summarize(ColObesityRate); e == nil {
			p.logger.Info("summary", zap.String("category", cat), zap.Stringer("column", s))
		}
	}
}
