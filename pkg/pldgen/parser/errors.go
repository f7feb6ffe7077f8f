package parser

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ErrMalformedWorkbook indicates the input bytes are not a readable xlsx container.
var ErrMalformedWorkbook = errors.Base("malformed workbook")

// ErrSheetNotFound is matched by every SheetNotFoundError.
var ErrSheetNotFound = errors.Base("sheet not found")

// SheetNotFoundError reports a sheet name missing from the input workbook.
type SheetNotFoundError struct {
	Sheet string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found", e.Sheet)
}

// Is makes errors.Is(err, ErrSheetNotFound) hold for any SheetNotFoundError.
func (e *SheetNotFoundError) Is(target error) bool {
	return target == ErrSheetNotFound
}
