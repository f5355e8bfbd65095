package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incomeFrame(t *testing.T) *Frame {
	st, _ := NewCol([]string{"Alabama", "Alaska", "Utah", "Oregon"}, ColName("State"))
	inc, _ := NewCol(NewFloatVector([]*float64{fp(52035), nil, fp(0), fp(78000)}), ColName("Income"))
	df, e := NewFrame(st, inc)
	require.NoError(t, e)

	return df
}

func TestParse_Float(t *testing.T) {
	df := incomeFrame(t)

	col, e := Parse(df, "Weeks := Price / (Income / 52)", ParseConst("Price", 1349.0))
	require.NoError(t, e)

	assert.Equal(t, "Weeks", col.Name())
	assert.Equal(t, DTfloat, col.DataType())
	assert.Equal(t, 3, df.ColumnCount())

	x, ok := col.ElementFloat(0)
	assert.True(t, ok)
	assert.InDelta(t, 1349/(52035.0/52), x, 1e-12)
	assert.InDelta(t, 1.3481, x, 1e-4)

	assert.True(t, col.IsNull(1))

	x, ok = col.ElementFloat(2)
	assert.True(t, ok)
	assert.True(t, math.IsInf(x, 1))
}

func TestParse_Bool(t *testing.T) {
	df := incomeFrame(t)

	col, e := Parse(df, "covered := State in States", ParseConst("States", []string{"Oregon", "New York"}))
	require.NoError(t, e)

	assert.Equal(t, DTbool, col.DataType())
	assert.Equal(t, []bool{false, false, false, true}, col.AsBool())
	assert.Equal(t, 0, col.NullCount())
}

func TestParse_Int(t *testing.T) {
	df := incomeFrame(t)

	col, e := Parse(df, "two := 1 + 1")
	require.NoError(t, e)
	assert.Equal(t, DTfloat, col.DataType())
	assert.Equal(t, 2.0, col.Element(3))
}

func TestParse_Errors(t *testing.T) {
	df := incomeFrame(t)

	_, e := Parse(df, "Income / 52")
	assert.NotNil(t, e)

	_, e = Parse(df, "x := ")
	assert.NotNil(t, e)

	_, e = Parse(df, "x := Missing * 2")
	assert.NotNil(t, e)

	_, e = Parse(df, "x := Income * 2", ParseConst("State", "Ohio"))
	assert.NotNil(t, e)

	// name collision on append
	_, e = Parse(df, "Income := Income * 2")
	assert.NotNil(t, e)

	assert.Equal(t, 2, df.ColumnCount())
}

func TestFilter(t *testing.T) {
	df := incomeFrame(t)

	out, e := Filter(df, `State == "Utah" || State == Want`, ParseConst("Want", "Alabama"))
	require.NoError(t, e)
	assert.Equal(t, 2, out.RowCount())

	st, _ := out.Column("State")
	assert.Equal(t, []string{"Alabama", "Utah"}, st.AsString())

	// null incomes are dropped
	out, e = Filter(df, "Income >= 0")
	require.NoError(t, e)
	assert.Equal(t, 3, out.RowCount())

	_, e = Filter(df, "Income * 2")
	assert.NotNil(t, e)
}
