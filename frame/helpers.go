package frame

import (
	"math"
	"strings"
)

// *********** Other ***********

func has[C comparable](needle C, haystack []C) bool {
	return position(needle, haystack) >= 0
}

func position[C comparable](needle C, haystack []C) int {
	for ind, straw := range haystack {
		if needle == straw {
			return ind
		}
	}

	return -1
}

// validName rejects empty names and names with leading/trailing space or line breaks.
// Source files carry names such as "Alabama!!Households!!Estimate", so punctuation is allowed.
func validName(name string) bool {
	if name == "" || strings.TrimSpace(name) != name {
		return false
	}

	return !strings.ContainsAny(name, "\n\r")
}

// *********** Printing ***********

func prettyPrint(header []string, cols ...*Vector) string {
	var colsS [][]string

	for ind := 0; ind < len(cols); ind++ {
		colsS = append(colsS, stringSlice(header[ind], cols[ind]))
	}

	if len(colsS) == 0 {
		return ""
	}

	out := ""
	for row := 0; row < len(colsS[0]); row++ {
		for c := 0; c < len(colsS); c++ {
			out += colsS[c][row]
		}
		out += "\n"
	}

	return out
}

func stringSlice(header string, v *Vector) []string {
	const pad = 3
	c := []string{header}

	format := FormatOptions{NullString: "<nil>", InfString: "inf", TrueString: "true", FalseString: "false", Precision: -1}
	if v.VectorType() == DTfloat {
		format.Precision = selectPrecision(v.AsFloat())
	}

	maxLen := len(header)
	for ind := 0; ind < v.Len(); ind++ {
		el := format.Format(v.Element(ind))
		if l := len(el); l > maxLen {
			maxLen = l
		}

		c = append(c, el)
	}

	for ind, cx := range c {
		padded := cx + strings.Repeat(" ", maxLen-len(cx)+pad)
		if v.VectorType() == DTfloat {
			padded = strings.Repeat(" ", maxLen-len(cx)+pad) + cx
		}
		c[ind] = padded
	}

	return c
}

// selectPrecision picks the number of decimals to show based on the range of the finite values in x.
func selectPrecision(x []float64) int {
	var minX, maxX *float64
	for _, xv := range x {
		if math.IsNaN(xv) || math.IsInf(xv, 0) {
			continue
		}

		xva := math.Abs(xv)
		if minX == nil {
			minX, maxX = new(float64), new(float64)
			*minX, *maxX = xva, xva
		}

		*minX = math.Min(*minX, xva)
		*maxX = math.Max(*maxX, xva)
	}

	if minX == nil || *maxX == *minX {
		return 2
	}

	l := math.Log10(*maxX - *minX)
	switch {
	case l < -1:
		return int(math.Abs(l)+0.5) + 1
	case l > 1:
		return 0
	default:
		return 2
	}
}
