package pldgen

import (
	"bytes"
	"io"
	"strings"

	"github.com/ukaji3/pldgen-go/pkg/pldgen/models"
	"github.com/ukaji3/pldgen-go/pkg/pldgen/parser"
)

// MIMEType is the media type of the generated artifact.
const MIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var pathSeparators = strings.NewReplacer("/", "-", `\`, "-")

// FileName returns the artifact name PLD_<id>_<poid>.xlsx. Path separators in the
// identifiers become "-" so the result is always a bare file name.
func FileName(id, poid string) string {
	return "PLD_" + pathSeparators.Replace(id) + "_" + pathSeparators.Replace(poid) + ".xlsx"
}

// Artifact is a serialized output workbook.
type Artifact struct {
	Name     string
	MIMEType string
	Data     []byte
}

// WriteTo writes the artifact bytes to w.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.Data)
	return int64(n), err
}

// Package serializes wb and names it after the request.
func Package(req Request, wb *models.Workbook) (*Artifact, error) {
	var buf bytes.Buffer
	if err := parser.Write(wb, &buf); err != nil {
		return nil, err
	}
	return &Artifact{
		Name:     FileName(req.ID, req.POID),
		MIMEType: MIMEType,
		Data:     buf.Bytes(),
	}, nil
}
