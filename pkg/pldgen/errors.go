package pldgen

import (
	"fmt"

	"github.com/ukaji3/pldgen-go/pkg/pldgen/parser"
	"github.com/ukaji3/pldgen-go/pkg/pldgen/rules"
	"gitlab.com/tozd/go/errors"
)

// ErrMissingInput indicates a request identifier is blank.
var ErrMissingInput = errors.Base("missing input")

// Re-exported so callers only need this package.
var (
	ErrMalformedWorkbook = parser.ErrMalformedWorkbook
	ErrSheetNotFound     = parser.ErrSheetNotFound
	ErrInvalidRegistry   = rules.ErrInvalidRegistry
)

// SheetError reports a failure producing one output sheet.
type SheetError struct {
	// Sheet is the output sheet name.
	Sheet string
	// Source is the input sheet name, if any.
	Source string
	Err    error
}

func (e *SheetError) Error() string {
	if e.Source != "" && e.Source != e.Sheet {
		return fmt.Sprintf("sheet %q (from %q): %v", e.Sheet, e.Source, e.Err)
	}
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheet, source string, err error) *SheetError {
	return &SheetError{
		Sheet:  sheet,
		Source: source,
		Err:    err,
	}
}
