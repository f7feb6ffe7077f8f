// Package models defines the in-memory tables the converter reads and writes.
package models

import (
	"math"
	"strconv"
)

// Kind tags the scalar held by a Cell.
type Kind uint8

const (
	// KindEmpty is a blank or null cell.
	KindEmpty Kind = iota
	// KindString holds text.
	KindString
	// KindNumber holds a float64.
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "empty"
	}
}

// Cell is a loosely typed spreadsheet scalar.
type Cell struct {
	// Kind selects which of Str or Num is meaningful.
	Kind Kind
	// Str is the text value for KindString.
	Str string
	// Num is the numeric value for KindNumber.
	Num float64
}

// Empty returns a null cell.
func Empty() Cell { return Cell{} }

// String returns a text cell. An empty string is still a string cell, not a null one.
func String(s string) Cell { return Cell{Kind: KindString, Str: s} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: KindNumber, Num: f} }

// Int returns a numeric cell holding an integer.
func Int(i int64) Cell { return Cell{Kind: KindNumber, Num: float64(i)} }

// IsEmpty reports whether the cell is null.
func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// IsNaN reports whether the cell is a NaN number.
func (c Cell) IsNaN() bool { return c.Kind == KindNumber && math.IsNaN(c.Num) }

// IsIntegral reports whether the cell is a finite number without fractional part.
func (c Cell) IsIntegral() bool {
	if c.Kind != KindNumber || math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
		return false
	}
	return c.Num == math.Trunc(c.Num)
}

// Text renders the cell as display text. Integral numbers carry no fractional part,
// null and NaN render as "".
func (c Cell) Text() string {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindNumber:
		if math.IsNaN(c.Num) {
			return ""
		}
		if c.IsIntegral() && math.Abs(c.Num) < 1e15 {
			return strconv.FormatInt(int64(c.Num), 10)
		}
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// Value returns the cell as a value suitable for a spreadsheet writer:
// nil, string, int64 or float64.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindNumber:
		if math.IsNaN(c.Num) {
			return nil
		}
		if c.IsIntegral() && math.Abs(c.Num) < 1e15 {
			return int64(c.Num)
		}
		return c.Num
	default:
		return nil
	}
}
