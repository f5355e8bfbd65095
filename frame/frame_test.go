package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(x float64) *float64 { return &x }

func makeFrame(t *testing.T) *Frame {
	state, e := NewCol([]string{"Alabama", "Alaska", "California"}, ColName("State"))
	require.NoError(t, e)

	pct, e := NewCol(NewFloatVector([]*float64{fp(39.9), nil, fp(28.1)}), ColName("Obesity_Pct"))
	require.NoError(t, e)

	df, e := NewFrame(state, pct)
	require.NoError(t, e)

	return df
}

func TestFrame_Column(t *testing.T) {
	df := makeFrame(t)

	assert.Equal(t, 3, df.RowCount())
	assert.Equal(t, 2, df.ColumnCount())
	assert.Equal(t, []string{"State", "Obesity_Pct"}, df.ColumnNames())

	c, e := df.Column("State")
	assert.Nil(t, e)
	assert.Equal(t, []string{"Alabama", "Alaska", "California"}, c.AsString())

	_, e = df.Column("nope")
	assert.ErrorIs(t, e, ErrColumnNotFound)
}

func TestFrame_AppendColumn(t *testing.T) {
	df := makeFrame(t)

	short, _ := NewCol([]float64{1, 2}, ColName("short"))
	assert.NotNil(t, df.AppendColumn(short))

	dup, _ := NewCol([]float64{1, 2, 3}, ColName("State"))
	assert.NotNil(t, df.AppendColumn(dup))

	noName, _ := NewCol([]float64{1, 2, 3})
	assert.NotNil(t, df.AppendColumn(noName))

	ok, _ := NewCol([]bool{true, false, true}, ColName("flag"))
	assert.Nil(t, df.AppendColumn(ok))
	assert.Equal(t, 3, df.ColumnCount())
}

func TestFrame_KeepRename(t *testing.T) {
	df := makeFrame(t)

	kept, e := df.KeepColumns("Obesity_Pct", "State")
	require.NoError(t, e)
	assert.Equal(t, []string{"Obesity_Pct", "State"}, kept.ColumnNames())

	// copies, so the original is untouched
	assert.Nil(t, kept.Rename("Obesity_Pct", "Prevalence"))
	assert.Equal(t, []string{"State", "Obesity_Pct"}, df.ColumnNames())

	assert.NotNil(t, kept.Rename("Prevalence", "State"))
	assert.ErrorIs(t, kept.Rename("missing", "x"), ErrColumnNotFound)

	_, e = df.KeepColumns("State", "missing")
	assert.ErrorIs(t, e, ErrColumnNotFound)
}

func TestFrame_Where(t *testing.T) {
	df := makeFrame(t)

	sub, e := df.Where([]bool{false, true, true})
	require.NoError(t, e)
	assert.Equal(t, 2, sub.RowCount())

	pct, _ := sub.Column("Obesity_Pct")
	assert.True(t, pct.IsNull(0))
	x, ok := pct.ElementFloat(1)
	assert.True(t, ok)
	assert.Equal(t, 28.1, x)

	_, e = df.Where([]bool{true})
	assert.NotNil(t, e)

	none, e := df.Where([]bool{false, false, false})
	require.NoError(t, e)
	assert.Equal(t, 0, none.RowCount())
	assert.Equal(t, 2, none.ColumnCount())
}

func TestFrame_AppendRows(t *testing.T) {
	df1 := makeFrame(t)
	df2, e := makeFrame(t).KeepColumns("Obesity_Pct", "State")
	require.NoError(t, e)

	out, e := df1.AppendRows(df2)
	require.NoError(t, e)
	assert.Equal(t, 6, out.RowCount())
	assert.Equal(t, []string{"State", "Obesity_Pct"}, out.ColumnNames())

	state, _ := out.Column("State")
	assert.Equal(t, "Alabama", state.Element(3))

	pct, _ := out.Column("Obesity_Pct")
	assert.Equal(t, 2, pct.NullCount())
	assert.True(t, pct.IsNull(4))

	// type mismatch
	s, _ := NewCol([]string{"a", "b", "c"}, ColName("Obesity_Pct"))
	st, _ := NewCol([]string{"x", "y", "z"}, ColName("State"))
	df3, _ := NewFrame(st, s)
	_, e = df1.AppendRows(df3)
	assert.NotNil(t, e)

	// different columns
	_, e = df1.AppendRows(df1.Head(1).mustKeep(t, "State"))
	assert.NotNil(t, e)
}

func (f *Frame) mustKeep(t *testing.T, cols ...string) *Frame {
	out, e := f.KeepColumns(cols...)
	require.NoError(t, e)

	return out
}

func TestFrame_LeftJoin(t *testing.T) {
	left := makeFrame(t)

	st, _ := NewCol([]string{"California", "Alabama", "Alabama", "Texas"}, ColName("State"))
	inc, _ := NewCol(NewFloatVector([]*float64{fp(96334), fp(52035), fp(1), nil}), ColName("Median_Household_Income"))
	right, e := NewFrame(st, inc)
	require.NoError(t, e)

	out, e := left.LeftJoin(right, "State")
	require.NoError(t, e)

	assert.Equal(t, 3, out.RowCount())
	assert.Equal(t, []string{"State", "Obesity_Pct", "Median_Household_Income"}, out.ColumnNames())

	c, _ := out.Column("Median_Household_Income")
	x, ok := c.ElementFloat(0)
	assert.True(t, ok)
	assert.Equal(t, 52035.0, x) // first Alabama row wins
	assert.True(t, c.IsNull(1)) // no Alaska on the right
	x, _ = c.ElementFloat(2)
	assert.Equal(t, 96334.0, x)

	dups, e := right.Duplicates("State")
	require.NoError(t, e)
	assert.Equal(t, []any{"Alabama"}, dups)

	_, e = left.LeftJoin(right, "nope")
	assert.ErrorIs(t, e, ErrColumnNotFound)
}

func TestFrame_LeftJoinCaseSensitive(t *testing.T) {
	left := makeFrame(t)

	st, _ := NewCol([]string{"alabama", "Alaska "}, ColName("State"))
	inc, _ := NewCol([]float64{1, 2}, ColName("Median_Household_Income"))
	right, _ := NewFrame(st, inc)

	out, e := left.LeftJoin(right, "State")
	require.NoError(t, e)

	c, _ := out.Column("Median_Household_Income")
	assert.Equal(t, 3, c.NullCount())
}

func TestFrame_String(t *testing.T) {
	df := makeFrame(t)
	s := df.Head(2).String()

	assert.Contains(t, s, "State")
	assert.Contains(t, s, "Alabama")
	assert.Contains(t, s, "<nil>")
	assert.NotContains(t, s, "California")
}

func TestVector(t *testing.T) {
	v := MakeVector(DTfloat, 3)
	v.SetFloat(1.5, 0)
	v.SetNull(1)
	v.SetFloat(math.Inf(1), 2)

	assert.Nil(t, v.Element(1))
	assert.Equal(t, 1, v.NullCount())
	assert.True(t, math.IsInf(v.Element(2).(float64), 1))

	v.SetFloat(2, 1)
	assert.False(t, v.IsNull(1))

	assert.NotNil(t, v.Set("x", 0))
	assert.Panics(t, func() { v.SetString("x", 0) })
	assert.Panics(t, func() { v.SetFloat(1, 3) })

	_, e := NewVector([]int{1}, DTfloat)
	assert.NotNil(t, e)

	cp := v.Copy()
	cp.SetFloat(9, 0)
	assert.Equal(t, 1.5, v.Element(0))
}
