package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"propmarket/internal/analysis"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "areas.xlsx")
	summaries := []analysis.AreaSummary{
		{Area: "FY", City: "BLACKPOOL", Count: 1, Mean: 1555507, Min: 1555507, Max: 1555507},
		{Area: "WS", City: "WALSALL", Count: 2, Mean: 431915, StdDev: 31915, Min: 400000, Max: 463830},
	}
	require.NoError(t, WriteWorkbook(path, "real", summaries))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Postcode Area", rows[0][0])
	assert.Equal(t, "Max Price", rows[0][6])
	assert.Equal(t, []string{"WS", "WALSALL", "2", "431915", "31915", "400000", "463830"}, rows[2])

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "real", props.Subject)
}

func TestWriteWorkbookEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteWorkbook(path, "synthetic", nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.2345))
	assert.Equal(t, 431914.5, round2(431914.5))
}
