package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// isDateNumFmtID reports whether a built-in number format renders dates or times.
// 27-36 and 50-58 are the East Asian locale date formats.
func isDateNumFmtID(id int) bool {
	switch {
	case 14 <= id && id <= 22, 45 <= id && id <= 47:
		return true
	case 27 <= id && id <= 36, 50 <= id && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code contains a date or time token
// outside quoted literals, escapes and bracketed modifiers. Elapsed time sections
// such as [h] or [mm] count as time.
func isDateFormatCode(code string) bool {
	runes := []rune(code)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '"':
			for i++; i < len(runes) && runes[i] != '"'; i++ {
			}
		case '\\', '_', '*':
			i++
		case '[':
			end := i + 1
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			inner := strings.ToLower(string(runes[i+1 : min(end, len(runes))]))
			if inner != "" && strings.Trim(inner, "hms") == "" {
				return true
			}
			i = end
		default:
			switch r {
			case 'y', 'Y', 'm', 'M', 'd', 'D', 'h', 'H', 's', 'S':
				return true
			}
		}
	}
	return false
}

// dateStyles caches, per style index, whether the style's number format is a date.
type dateStyles struct {
	f     *excelize.File
	cache map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	return &dateStyles{f: f, cache: make(map[int]bool)}
}

func (d *dateStyles) isDate(idx int) bool {
	if v, ok := d.cache[idx]; ok {
		return v
	}
	var v bool
	// A style index with no cellXfs entry carries no number format.
	if style, err := d.f.GetStyle(idx); err == nil {
		v = isDateNumFmtID(style.NumFmt)
		if style.CustomNumFmt != nil {
			v = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	d.cache[idx] = v
	return v
}
