package frame

import (
	"fmt"
	"math"
)

// Vector holds the data of a column. na marks null elements; it is nil when nothing is null.
type Vector struct {
	dt DataTypes

	data any
	na   []bool
}

func NewVector(data any, dt DataTypes) (*Vector, error) {
	if WhatAmI(data) != dt {
		return nil, fmt.Errorf("cannot make vector of type %s from %T", dt, data)
	}

	return &Vector{dt: dt, data: data}, nil
}

func MakeVector(dt DataTypes, n int) *Vector {
	switch dt {
	case DTfloat:
		return &Vector{dt: dt, data: make([]float64, n)}
	case DTstring:
		return &Vector{dt: dt, data: make([]string, n)}
	case DTbool:
		return &Vector{dt: dt, data: make([]bool, n)}
	default:
		panic(fmt.Errorf("cannot make Vector with data type %s", dt))
	}
}

// NewFloatVector builds a DTfloat vector from nullable values.
func NewFloatVector(vals []*float64) *Vector {
	v := MakeVector(DTfloat, len(vals))
	for ind, x := range vals {
		if x == nil {
			v.SetNull(ind)
			continue
		}

		v.SetFloat(*x, ind)
	}

	return v
}

func (v *Vector) VectorType() DataTypes {
	return v.dt
}

func (v *Vector) Len() int {
	switch v.dt {
	case DTfloat:
		return len(v.data.([]float64))
	case DTstring:
		return len(v.data.([]string))
	case DTbool:
		return len(v.data.([]bool))
	default:
		return -1
	}
}

func (v *Vector) checkIndex(indx int) {
	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}
}

func (v *Vector) SetFloat(val float64, indx int) {
	if v.VectorType() != DTfloat {
		panic(fmt.Errorf("vector isn't DTfloat"))
	}

	v.checkIndex(indx)
	v.data.([]float64)[indx] = val
	v.clearNull(indx)
}

func (v *Vector) SetString(val string, indx int) {
	if v.VectorType() != DTstring {
		panic(fmt.Errorf("vector isn't DTstring"))
	}

	v.checkIndex(indx)
	v.data.([]string)[indx] = val
	v.clearNull(indx)
}

func (v *Vector) SetBool(val bool, indx int) {
	if v.VectorType() != DTbool {
		panic(fmt.Errorf("vector isn't DTbool"))
	}

	v.checkIndex(indx)
	v.data.([]bool)[indx] = val
	v.clearNull(indx)
}

// SetNull marks element indx as missing. The underlying value is zeroed (NaN for floats).
func (v *Vector) SetNull(indx int) {
	v.checkIndex(indx)
	if v.na == nil {
		v.na = make([]bool, v.Len())
	}

	v.na[indx] = true

	switch v.dt {
	case DTfloat:
		v.data.([]float64)[indx] = math.NaN()
	case DTstring:
		v.data.([]string)[indx] = ""
	case DTbool:
		v.data.([]bool)[indx] = false
	}
}

func (v *Vector) clearNull(indx int) {
	if v.na != nil {
		v.na[indx] = false
	}
}

func (v *Vector) IsNull(indx int) bool {
	v.checkIndex(indx)
	return v.na != nil && v.na[indx]
}

func (v *Vector) NullCount() int {
	n := 0
	for _, isNA := range v.na {
		if isNA {
			n++
		}
	}

	return n
}

func (v *Vector) AsFloat() []float64 {
	if v.VectorType() != DTfloat {
		panic(fmt.Errorf("cannot convert %s to Vector.AsFloat", v.dt))
	}

	return v.data.([]float64)
}

func (v *Vector) AsString() []string {
	if v.VectorType() != DTstring {
		panic(fmt.Errorf("cannot convert %s to Vector.AsString", v.dt))
	}

	return v.data.([]string)
}

func (v *Vector) AsBool() []bool {
	if v.VectorType() != DTbool {
		panic(fmt.Errorf("cannot convert %s to Vector.AsBool", v.dt))
	}

	return v.data.([]bool)
}

// Element returns the value at indx, or nil if it is null.
func (v *Vector) Element(indx int) any {
	if v.IsNull(indx) {
		return nil
	}

	switch v.dt {
	case DTfloat:
		return v.data.([]float64)[indx]
	case DTstring:
		return v.data.([]string)[indx]
	case DTbool:
		return v.data.([]bool)[indx]
	default:
		panic(fmt.Errorf("error in Element"))
	}
}

// ElementFloat returns the value at indx and false if it is null.
func (v *Vector) ElementFloat(indx int) (float64, bool) {
	x := v.AsFloat()[indx]
	return x, !v.IsNull(indx)
}

func (v *Vector) ElementString(indx int) (string, bool) {
	x := v.AsString()[indx]
	return x, !v.IsNull(indx)
}

// Set assigns val (nil means null) to element indx.
func (v *Vector) Set(val any, indx int) error {
	if val == nil {
		v.SetNull(indx)
		return nil
	}

	switch x := val.(type) {
	case float64:
		if v.dt == DTfloat {
			v.SetFloat(x, indx)
			return nil
		}
	case int:
		if v.dt == DTfloat {
			v.SetFloat(float64(x), indx)
			return nil
		}
	case string:
		if v.dt == DTstring {
			v.SetString(x, indx)
			return nil
		}
	case bool:
		if v.dt == DTbool {
			v.SetBool(x, indx)
			return nil
		}
	}

	return fmt.Errorf("cannot assign %T to vector of type %s", val, v.dt)
}

// Where returns the elements for which keep is true.
func (v *Vector) Where(keep []bool) *Vector {
	if len(keep) != v.Len() {
		panic(fmt.Errorf("length mismatch in Where"))
	}

	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}

	out := MakeVector(v.dt, n)
	ind := 0
	for row, k := range keep {
		if !k {
			continue
		}

		// types agree, so Set cannot fail
		_ = out.Set(v.Element(row), ind)
		ind++
	}

	return out
}

// Take returns a vector with elements at rows. A negative row gives a null.
func (v *Vector) Take(rows []int) *Vector {
	out := MakeVector(v.dt, len(rows))
	for ind, row := range rows {
		if row < 0 {
			out.SetNull(ind)
			continue
		}

		_ = out.Set(v.Element(row), ind)
	}

	return out
}

// AppendVector returns a new vector with the elements of v followed by those of v2.
func (v *Vector) AppendVector(v2 *Vector) (*Vector, error) {
	if v.dt != v2.dt {
		return nil, fmt.Errorf("cannot append %s vector to %s vector", v2.dt, v.dt)
	}

	n1 := v.Len()
	out := MakeVector(v.dt, n1+v2.Len())
	for ind := 0; ind < n1; ind++ {
		_ = out.Set(v.Element(ind), ind)
	}

	for ind := 0; ind < v2.Len(); ind++ {
		_ = out.Set(v2.Element(ind), n1+ind)
	}

	return out, nil
}

func (v *Vector) Copy() *Vector {
	return v.Take(seq(v.Len()))
}

func seq(n int) []int {
	rows := make([]int, n)
	for ind := range rows {
		rows[ind] = ind
	}

	return rows
}
