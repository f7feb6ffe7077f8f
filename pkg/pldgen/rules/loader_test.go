package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pldgen-go/pkg/pldgen/models"
	"gitlab.com/tozd/go/errors"
)

func TestDefaultRegistry(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(reg.Sheets), 20)
	assert.Equal(t, "PO", reg.Sheets[0].Name)

	kinds := map[Kind]int{}
	for _, rule := range reg.Sheets {
		kinds[rule.Kind]++
	}
	assert.Equal(t, 1, kinds[KindSynthesized])
	assert.Equal(t, 1, kinds[KindRenamedCopy])
	assert.GreaterOrEqual(t, kinds[KindStaticPlaceholder], 11)

	pcrf, ok := ruleNamed(reg, "PCRF")
	require.True(t, ok)
	assert.Equal(t, "Rules-PCRF", pcrf.Source)
	assert.Equal(t, MissingFatal, pcrf.Policy())

	for _, name := range []string{"Rules-Cases-Condition", "Rules-Cases-Success"} {
		rule, ok := ruleNamed(reg, name)
		require.True(t, ok, name)
		assert.True(t, rule.Policy().Recoverable(), name)
	}

	recoverable := 0
	for _, rule := range reg.Sheets {
		if rule.Source != "" && rule.Policy().Recoverable() {
			recoverable++
		}
	}
	assert.Equal(t, 2, recoverable, "only the Cases sheets are optional")
}

func TestDefaultIsShared(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestPlaceholderTable(t *testing.T) {
	rule := Rule{
		Name:     "Blacklist-Gift-Promocodes",
		Kind:     KindStaticPlaceholder,
		Columns:  []string{"Ruleset ShortName", "Promo Codes", "Action"},
		Defaults: map[string]string{"Action": "NO_CHANGE"},
	}

	table := rule.PlaceholderTable()
	assert.Equal(t, rule.Columns, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []models.Cell{
		models.String("sample"), models.String("sample"), models.String("NO_CHANGE"),
	}, table.Rows[0])
}

func TestTransformDefaults(t *testing.T) {
	blank := ""
	assert.True(t, Transform{Column: "A"}.DefaultCell().IsEmpty())
	assert.Equal(t, models.String(""), Transform{Column: "A", Default: &blank}.DefaultCell())
	assert.Equal(t, "A", Transform{Column: "A"}.InputColumn())
	assert.Equal(t, "B", Transform{Column: "A", From: "B"}.InputColumn())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", `sheets: []`},
		{"unknown key", "sheets:\n  - {name: A, kind: static_placeholder, columns: [x], colour: red}"},
		{"unknown kind", "sheets:\n  - {name: A, kind: pivot}"},
		{"duplicate", "sheets:\n  - {name: A, kind: static_placeholder, columns: [x]}\n  - {name: a, kind: static_placeholder, columns: [y]}"},
		{"long name", "sheets:\n  - {name: ThisSheetNameIsWayTooLongForExcel, kind: static_placeholder, columns: [x]}"},
		{"bad char", "sheets:\n  - {name: \"A/B\", kind: static_placeholder, columns: [x]}"},
		{"no source", "sheets:\n  - {name: A, kind: renamed_copy}"},
		{"verbatim rename", "sheets:\n  - {name: A, kind: verbatim_copy, source: B}"},
		{"unknown func", "sheets:\n  - {name: A, kind: transformed_copy, source: A, transforms: [{column: x, func: round}]}"},
		{"no transforms", "sheets:\n  - {name: A, kind: transformed_copy, source: A}"},
		{"bad policy", "sheets:\n  - {name: A, kind: verbatim_copy, source: A, on_missing: retry}"},
		{"placeholder policy without columns", "sheets:\n  - {name: A, kind: verbatim_copy, source: A, on_missing: placeholder}"},
		{"bad default", "sheets:\n  - {name: A, kind: static_placeholder, columns: [x], defaults: {y: z}}"},
		{"dup column", "sheets:\n  - {name: A, kind: static_placeholder, columns: [x, x]}"},
		{"bad input", "sheets:\n  - {name: PO, kind: synthesized, fields: [{name: X, input: customer}]}"},
		{"input and value", "sheets:\n  - {name: PO, kind: synthesized, fields: [{name: X, input: id, value: y}]}"},
		{"placeholder source", "sheets:\n  - {name: A, kind: static_placeholder, source: B, columns: [x]}"},
		{"placeholder policy", "sheets:\n  - {name: A, kind: static_placeholder, columns: [x], on_missing: skip}"},
		{"placeholder transforms", "sheets:\n  - {name: A, kind: static_placeholder, columns: [x], transforms: [{column: x, func: trim}]}"},
		{"placeholder fields", "sheets:\n  - {name: A, kind: static_placeholder, columns: [x], fields: [{name: X, value: y}]}"},
		{"synthesized policy", "sheets:\n  - {name: PO, kind: synthesized, on_missing: fatal, fields: [{name: X, input: id}]}"},
		{"synthesized transforms", "sheets:\n  - {name: PO, kind: synthesized, transforms: [{column: X, func: trim}], fields: [{name: X, input: id}]}"},
		{"synthesized columns", "sheets:\n  - {name: PO, kind: synthesized, columns: [X], fields: [{name: X, input: id}]}"},
		{"synthesized defaults", "sheets:\n  - {name: PO, kind: synthesized, defaults: {X: y}, fields: [{name: X, input: id}]}"},
		{"copy fields", "sheets:\n  - {name: A, kind: verbatim_copy, source: A, fields: [{name: X, value: y}]}"},
		{"copy columns without placeholder policy", "sheets:\n  - {name: A, kind: verbatim_copy, source: A, columns: [x]}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRegistry), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	doc := `sheets:
  - name: PO
    kind: synthesized
    fields:
      - {name: PO ID, input: po_id}
  - name: Rules-Keyword
    kind: verbatim_copy
    source: Rules-Keyword
    on_missing: placeholder
    columns: [Keyword]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"PO", "Rules-Keyword"}, reg.Names())
	assert.Equal(t, MissingPlaceholder, reg.Sheets[1].Policy())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func ruleNamed(reg *Registry, name string) (Rule, bool) {
	for _, rule := range reg.Sheets {
		if rule.Name == name {
			return rule, true
		}
	}
	return Rule{}, false
}
