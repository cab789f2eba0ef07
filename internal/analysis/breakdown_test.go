package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propmarket/internal/types"
)

func TestFilterAreas(t *testing.T) {
	tbl := &types.PropertyTable{HasCity: true, Records: []types.PropertyRecord{
		rec("SW", 900000), rec("WS", 200000), rec("E", 500000), rec("EC", 1200000),
	}}

	london := FilterAreas(tbl, LondonAreas)
	require.Equal(t, 3, london.Len())
	assert.True(t, london.HasCity)
	assert.Equal(t, []string{"E", "EC", "SW"}, Areas(london))
	assert.Equal(t, 4, tbl.Len(), "source table untouched")

	some := FilterAreas(tbl, []string{" ws "})
	assert.Equal(t, []string{"WS"}, Areas(some))

	none := FilterAreas(tbl, nil)
	_, err := MostAffordable(none)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestCompareNewBuild(t *testing.T) {
	tbl := table(
		types.PropertyRecord{PostcodeArea: "A", Price: 300, NewBuild: "Y"},
		types.PropertyRecord{PostcodeArea: "A", Price: 500, NewBuild: "Y"},
		types.PropertyRecord{PostcodeArea: "A", Price: 100, NewBuild: "N"},
		types.PropertyRecord{PostcodeArea: "A", Price: 999},
	)

	c := CompareNewBuild(tbl)
	assert.Equal(t, GroupMean{Label: "new builds", Mean: 400, Count: 2, OK: true}, c.Left)
	assert.Equal(t, GroupMean{Label: "existing properties", Mean: 100, Count: 1, OK: true}, c.Right)
}

func TestCompareTenureMissingSide(t *testing.T) {
	tbl := table(types.PropertyRecord{PostcodeArea: "A", Price: 250, Tenure: "F"})

	c := CompareTenure(tbl)
	assert.True(t, c.Left.OK)
	assert.Equal(t, 250.0, c.Left.Mean)
	assert.False(t, c.Right.OK)
	assert.Equal(t, "leasehold properties", c.Right.Label)
}
