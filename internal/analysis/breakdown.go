package analysis

import (
	"sort"
	"strings"

	"propmarket/internal/types"
)

// LondonAreas are the postcode areas treated as London: the central
// districts plus the Greater London outer areas.
var LondonAreas = []string{
	"EC", "WC", "E", "N", "NW", "SE", "SW", "W",
	"BR", "CR", "DA", "EN", "HA", "IG", "KT", "RM", "SM", "TW", "UB", "WD",
}

// FilterAreas returns a new table holding only records in the given areas.
// The input table is not modified.
func FilterAreas(t *types.PropertyTable, areas []string) *types.PropertyTable {
	keep := make(map[string]bool, len(areas))
	for _, a := range areas {
		keep[strings.ToUpper(strings.TrimSpace(a))] = true
	}
	out := &types.PropertyTable{HasCity: t.HasCity}
	for _, r := range t.Records {
		if keep[r.PostcodeArea] {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// GroupMean is the mean price of one side of a split. OK is false when the
// side has no records.
type GroupMean struct {
	Label string
	Mean  float64
	Count int
	OK    bool
}

// Comparison splits a table into two labelled groups by a single-letter code.
type Comparison struct {
	Left  GroupMean
	Right GroupMean
}

// CompareNewBuild compares the mean price of new builds (Y) against
// existing properties (N).
func CompareNewBuild(t *types.PropertyTable) Comparison {
	return compare(t, func(r types.PropertyRecord) string { return r.NewBuild },
		"Y", "new builds", "N", "existing properties")
}

// CompareTenure compares freehold (F) against leasehold (L) prices.
func CompareTenure(t *types.PropertyTable) Comparison {
	return compare(t, func(r types.PropertyRecord) string { return r.Tenure },
		"F", "freehold properties", "L", "leasehold properties")
}

func compare(t *types.PropertyTable, key func(types.PropertyRecord) string,
	leftCode, leftLabel, rightCode, rightLabel string) Comparison {
	var lSum, rSum float64
	var lN, rN int
	for _, r := range t.Records {
		switch key(r) {
		case leftCode:
			lSum += r.Price
			lN++
		case rightCode:
			rSum += r.Price
			rN++
		}
	}
	return Comparison{
		Left:  groupMean(leftLabel, lSum, lN),
		Right: groupMean(rightLabel, rSum, rN),
	}
}

func groupMean(label string, sum float64, n int) GroupMean {
	if n == 0 {
		return GroupMean{Label: label}
	}
	return GroupMean{Label: label, Mean: sum / float64(n), Count: n, OK: true}
}

// Areas returns the distinct postcode areas in the table, sorted.
func Areas(t *types.PropertyTable) []string {
	seen := make(map[string]struct{})
	for _, r := range t.Records {
		seen[r.PostcodeArea] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
