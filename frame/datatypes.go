package frame

import "fmt"

// DataTypes are the types of data that the package supports
type DataTypes uint8

// values of DataTypes
const (
	DTunknown DataTypes = 0 + iota
	DTstring
	DTfloat
	DTbool
)

func (dt DataTypes) String() string {
	switch dt {
	case DTstring:
		return "DTstring"
	case DTfloat:
		return "DTfloat"
	case DTbool:
		return "DTbool"
	case DTunknown:
		return "DTunknown"
	default:
		return fmt.Sprintf("DataTypes(%d)", uint8(dt))
	}
}

func WhatAmI(val any) DataTypes {
	switch val.(type) {
	case float64, []float64:
		return DTfloat
	case string, []string:
		return DTstring
	case bool, []bool:
		return DTbool
	default:
		return DTunknown
	}
}
