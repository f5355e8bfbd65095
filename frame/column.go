package frame

import "fmt"

// *********** Col ***********

// Col is a named Vector.
type Col struct {
	*Vector

	name string
}

// ColOpt sets attributes of a Col in NewCol.
type ColOpt func(c *Col) error

func ColName(name string) ColOpt {
	return func(c *Col) error {
		if c == nil {
			return fmt.Errorf("nil column to ColName")
		}

		if c.name != "" {
			return fmt.Errorf("column already named -- use Rename method")
		}

		if !validName(name) {
			return fmt.Errorf("invalid column name: %q", name)
		}

		c.name = name

		return nil
	}
}

// NewCol makes a column from a *Vector or a slice of a supported type.
func NewCol(data any, opts ...ColOpt) (*Col, error) {
	var v *Vector
	if vx, ok := data.(*Vector); ok {
		v = vx
	}

	if v == nil {
		var e error
		if v, e = NewVector(data, WhatAmI(data)); e != nil {
			return nil, e
		}
	}

	col := &Col{Vector: v}
	for _, opt := range opts {
		if e := opt(col); e != nil {
			return nil, e
		}
	}

	return col, nil
}

// *********** Methods ***********

func (c *Col) Name() string {
	return c.name
}

func (c *Col) DataType() DataTypes {
	return c.VectorType()
}

func (c *Col) Rename(newName string) error {
	if !validName(newName) {
		return fmt.Errorf("invalid column name: %q", newName)
	}

	c.name = newName

	return nil
}

func (c *Col) Copy() *Col {
	return &Col{Vector: c.Vector.Copy(), name: c.name}
}
