package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeRulesWorkbook(t *testing.T, sheets ...string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		require.NoError(t, f.SetCellValue(name, "A1", "Ruleset ShortName"))
		require.NoError(t, f.SetCellValue(name, "A2", "RS_1"))
	}

	path := filepath.Join(t.TempDir(), "rules.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

var requiredSheets = []string{
	"Rules-Keyword", "Rules-Alias", "Rules-Header", "Rules-PCRF",
	"Rules-Price-Mapping", "Rules-Renewal", "Rules-Library-Addon",
}

func TestRunWritesArtifact(t *testing.T) {
	input := writeRulesWorkbook(t, requiredSheets...)
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, input,
		"--poid", "PO_1", "--id", "42", "--po-name", "Roaming", "--master-keyword", "ROAM",
		"-o", outDir)
	require.NoError(t, err)

	assert.Contains(t, out, "File 'PLD_42_PO_1.xlsx' generated successfully!")
	assert.Contains(t, out, "Error processing 'Rules-Cases-Condition'")
	assert.Contains(t, out, "Error processing 'Rules-Cases-Success'")

	_, err = os.Stat(filepath.Join(outDir, "PLD_42_PO_1.xlsx"))
	assert.NoError(t, err)
}

func TestRunMissingInput(t *testing.T) {
	input := writeRulesWorkbook(t, requiredSheets...)

	out, err := execute(t, input, "--poid", "PO_1", "-o", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "Please fill in all required inputs")
}

func TestRunFatalSheet(t *testing.T) {
	input := writeRulesWorkbook(t, "Rules-Keyword")
	outDir := t.TempDir()

	out, err := execute(t, input,
		"--poid", "PO_1", "--id", "42", "--po-name", "Roaming", "--master-keyword", "ROAM",
		"-o", outDir)
	require.Error(t, err)
	assert.Contains(t, out, "Conversion failed")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no artifact on fatal error")
}

func TestRunInvalidLogLevel(t *testing.T) {
	input := writeRulesWorkbook(t, requiredSheets...)

	_, err := execute(t, input, "--log-level", "loud")
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PLDGEN_TEST_VALUE", "x")
	t.Setenv("PLDGEN_TEST_BOOL", "true")

	assert.Equal(t, "x", getEnv("PLDGEN_TEST_VALUE", "d"))
	assert.Equal(t, "d", getEnv("PLDGEN_TEST_UNSET", "d"))
	assert.True(t, getEnvBool("PLDGEN_TEST_BOOL", false))
	assert.False(t, getEnvBool("PLDGEN_TEST_UNSET", false))
}
