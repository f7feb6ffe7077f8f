// Package rules declares the output schema of a PLD workbook: one Rule per output
// sheet, in output order. The default registry is data (registry.yaml), so adding a
// sheet never touches transform code.
package rules

import (
	"github.com/ukaji3/pldgen-go/pkg/pldgen/models"
)

// Kind selects how a Rule produces its sheet.
type Kind string

const (
	// KindSynthesized builds a single row from request identifiers and constants.
	KindSynthesized Kind = "synthesized"
	// KindVerbatimCopy copies an input sheet under the same name.
	KindVerbatimCopy Kind = "verbatim_copy"
	// KindRenamedCopy copies an input sheet under a new name.
	KindRenamedCopy Kind = "renamed_copy"
	// KindTransformedCopy copies an input sheet and applies column transforms.
	KindTransformedCopy Kind = "transformed_copy"
	// KindStaticPlaceholder emits one fixed row without reading input.
	KindStaticPlaceholder Kind = "static_placeholder"
)

// MissingPolicy decides what happens when a rule's source sheet is absent.
type MissingPolicy string

const (
	// MissingFatal aborts the whole conversion.
	MissingFatal MissingPolicy = "fatal"
	// MissingSkip records a sheet error and leaves the sheet out.
	MissingSkip MissingPolicy = "skip"
	// MissingPlaceholder records a sheet error and emits the rule's placeholder row.
	MissingPlaceholder MissingPolicy = "placeholder"
)

// Recoverable reports whether a missing source lets the conversion continue.
func (p MissingPolicy) Recoverable() bool {
	return p == MissingSkip || p == MissingPlaceholder
}

// Input keys a synthesized column may reference.
const (
	InputPOID          = "po_id"
	InputID            = "id"
	InputPOName        = "po_name"
	InputMasterKeyword = "master_keyword"
)

// SentinelValue fills placeholder cells that have no declared default.
const SentinelValue = "sample"

// Rule describes one output sheet.
type Rule struct {
	// Name is the output sheet name.
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`
	// Source is the input sheet name; empty for synthesized and placeholder rules.
	Source string `yaml:"source,omitempty"`
	// OnMissing applies when Source is absent. Defaults to fatal.
	OnMissing MissingPolicy `yaml:"on_missing,omitempty"`
	// Transforms run in order on a transformed copy.
	Transforms []Transform `yaml:"transforms,omitempty"`
	// Fields are the synthesized columns.
	Fields []Field `yaml:"fields,omitempty"`
	// Columns is the placeholder header, used by placeholder rules and the
	// placeholder missing policy.
	Columns []string `yaml:"columns,omitempty"`
	// Defaults overrides the sentinel for individual placeholder columns.
	Defaults map[string]string `yaml:"defaults,omitempty"`
}

// Transform applies a named function to one column.
type Transform struct {
	// Column receives the result.
	Column string `yaml:"column"`
	// Func is a transform.Lookup name.
	Func string `yaml:"func"`
	// From reads the input from another column; Column is created if needed.
	From string `yaml:"from,omitempty"`
	// Required creates Column filled with Default when the input column is absent.
	Required bool `yaml:"required,omitempty"`
	// Default is the fill value for a required column; nil means null cells.
	Default *string `yaml:"default,omitempty"`
}

// InputColumn is the column the function reads.
func (t Transform) InputColumn() string {
	if t.From != "" {
		return t.From
	}
	return t.Column
}

// DefaultCell is the cell used to fill a missing required column.
func (t Transform) DefaultCell() models.Cell {
	if t.Default == nil {
		return models.Empty()
	}
	return models.String(*t.Default)
}

// Field is one synthesized column: either a request input or a constant.
type Field struct {
	Name  string `yaml:"name"`
	Input string `yaml:"input,omitempty"`
	Value string `yaml:"value,omitempty"`
}

// Policy returns the effective missing-source policy.
func (r Rule) Policy() MissingPolicy {
	if r.OnMissing == "" {
		return MissingFatal
	}
	return r.OnMissing
}

// PlaceholderTable builds the rule's single placeholder row.
func (r Rule) PlaceholderTable() *models.Table {
	t := models.NewTable(r.Columns...)
	row := make([]models.Cell, len(r.Columns))
	for i, col := range r.Columns {
		if v, ok := r.Defaults[col]; ok {
			row[i] = models.String(v)
			continue
		}
		row[i] = models.String(SentinelValue)
	}
	t.AppendRow(row...)
	return t
}

// Registry is the ordered list of output sheet rules.
type Registry struct {
	Sheets []Rule `yaml:"sheets"`
}

// Names returns the output sheet names in order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.Sheets))
	for i, s := range r.Sheets {
		out[i] = s.Name
	}
	return out
}
