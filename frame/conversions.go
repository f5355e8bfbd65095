package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// *********** Conversions ***********

// ToFloat parses s as a float. It fails on empty text and on NaN, which are both treated as missing.
func ToFloat(s string) (float64, bool) {
	f, e := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if e != nil || math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

// CleanNumber strips thousands separators, '$' and '+' from s before parsing it as a float,
// so "$42,500+" gives 42500.
func CleanNumber(s string) (float64, bool) {
	clean := strings.NewReplacer(",", "", "+", "", "$", "").Replace(s)

	return ToFloat(clean)
}

// StringsToFloat converts x to a DTfloat vector; elements that don't parse are null.
func StringsToFloat(x []string, parse func(string) (float64, bool)) *Vector {
	if parse == nil {
		parse = ToFloat
	}

	v := MakeVector(DTfloat, len(x))
	for ind, s := range x {
		if f, ok := parse(s); ok {
			v.SetFloat(f, ind)
			continue
		}

		v.SetNull(ind)
	}

	return v
}

// FormatOptions controls how elements are rendered as text.
type FormatOptions struct {
	NullString  string
	InfString   string
	TrueString  string
	FalseString string

	// Precision is the number of decimals for floats; -1 gives the shortest exact representation.
	Precision int
}

func (fo FormatOptions) Format(x any) string {
	switch d := x.(type) {
	case nil:
		return fo.NullString
	case float64:
		switch {
		case math.IsInf(d, 1):
			return fo.InfString
		case math.IsInf(d, -1):
			return "-" + fo.InfString
		case math.IsNaN(d):
			return fo.NullString
		}

		return strconv.FormatFloat(d, 'f', fo.Precision, 64)
	case string:
		return d
	case bool:
		if d {
			return fo.TrueString
		}

		return fo.FalseString
	default:
		return fmt.Sprintf("%v", d)
	}
}
