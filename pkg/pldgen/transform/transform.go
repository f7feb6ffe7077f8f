// Package transform holds the per-column coercions applied to copied sheets.
// Every function is total: bad input coerces to an empty or null cell, never an error.
package transform

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/pldgen-go/pkg/pldgen/models"
	"gitlab.com/tozd/go/errors"
)

// Func converts one cell.
type Func func(models.Cell) models.Cell

// Names used by the sheet registry.
const (
	NameIdentity          = "identity"
	NameCoerceInteger     = "coerce_integer"
	NameTrim              = "trim"
	NameFlagFromPresence  = "flag_from_presence"
	NameCurrencyToInteger = "currency_to_integer"
)

var funcs = map[string]Func{
	NameIdentity:          Identity,
	NameCoerceInteger:     CoerceInteger,
	NameTrim:              TrimToStringOrEmpty,
	NameFlagFromPresence:  DeriveFlagFromPresence,
	NameCurrencyToInteger: CleanCurrencyToInteger,
}

// ErrUnknownFunc is returned by Lookup for an unregistered name.
var ErrUnknownFunc = errors.Base("unknown transform")

// Lookup resolves a transform by registry name.
func Lookup(name string) (Func, error) {
	fn, ok := funcs[name]
	if !ok {
		return nil, errors.Errorf("%w: %q", ErrUnknownFunc, name)
	}
	return fn, nil
}

// Identity returns the cell unchanged.
func Identity(c models.Cell) models.Cell { return c }

// CoerceInteger parses the cell as a number and truncates it to an integer.
// Empty, unparsable, NaN and infinite input yields a null cell.
func CoerceInteger(c models.Cell) models.Cell {
	var f float64
	switch c.Kind {
	case models.KindNumber:
		f = c.Num
	case models.KindString:
		s := strings.TrimSpace(c.Str)
		if s == "" {
			return models.Empty()
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Empty()
		}
		f = v
	default:
		return models.Empty()
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return models.Empty()
	}
	return models.Int(int64(f))
}

// TrimToStringOrEmpty renders the cell as text with surrounding whitespace removed.
// Null and NaN become "".
func TrimToStringOrEmpty(c models.Cell) models.Cell {
	return models.String(strings.TrimSpace(c.Text()))
}

// DeriveFlagFromPresence returns "1" when the key cell holds non-blank content, else "".
func DeriveFlagFromPresence(key models.Cell) models.Cell {
	if key.IsEmpty() || key.IsNaN() || strings.TrimSpace(key.Text()) == "" {
		return models.String("")
	}
	return models.String("1")
}

// CleanCurrencyToInteger strips thousands separators and currency marks, then
// coerces the rest like CoerceInteger. A "." is always the decimal point, so
// "Rp15.000" is 15. The sign may come before or after the currency prefix.
func CleanCurrencyToInteger(c models.Cell) models.Cell {
	if c.Kind != models.KindString {
		return CoerceInteger(c)
	}
	s := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\u00a0', '$', '€', '£', '¥', '₹':
			return -1
		}
		return r
	}, strings.TrimSpace(c.Str))
	var sign string
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	for _, prefix := range []string{"IDR", "Rp"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			s = rest
			break
		}
	}
	return CoerceInteger(models.String(sign + s))
}
