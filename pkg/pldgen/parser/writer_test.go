package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pldgen-go/pkg/pldgen/models"
	"github.com/xuri/excelize/v2"
)

func TestWrite(t *testing.T) {
	po := models.NewTable("PO ID", "Action")
	po.AppendRow(models.String("PO_1"), models.String("NO_CHANGE"))

	cases := models.NewTable("OpIndex", "Exit Value", "Note")
	cases.AppendRow(models.Int(1), models.String("1"), models.Empty())
	cases.AppendRow(models.Empty(), models.String(""), models.Number(2.5))

	wb := models.NewWorkbook()
	wb.Add("PO", po)
	wb.Add("Rules-Cases-Success", cases)
	wb.Add("Empty", models.NewTable())

	var buf bytes.Buffer
	require.NoError(t, Write(wb, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"PO", "Rules-Cases-Success", "Empty"}, f.GetSheetList())

	rows, err := f.GetRows("PO")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"PO ID", "Action"}, {"PO_1", "NO_CHANGE"}}, rows)

	rows, err = f.GetRows("Rules-Cases-Success")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"OpIndex", "Exit Value", "Note"}, rows[0])
	assert.Equal(t, []string{"1", "1"}, rows[1])
	assert.Equal(t, "2.5", rows[2][2])

	styleID, err := f.GetCellStyle("PO", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestWriteRoundTrip(t *testing.T) {
	table := models.NewTable("Ruleset ShortName", "Price")
	table.AppendRow(models.String("RS_A"), models.Int(15000))
	table.AppendRow(models.String("RS_B"), models.Empty())

	wb := models.NewWorkbook()
	wb.Add("Rules-Price-Mapping", table)

	var buf bytes.Buffer
	require.NoError(t, Write(wb, &buf))

	src, err := Open(&buf)
	require.NoError(t, err)
	defer src.Close()

	got, err := ReadSheet(testContext(t), src, "Rules-Price-Mapping")
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestWriteEmptyWorkbook(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(models.NewWorkbook(), &buf))
}
