package analysis

import (
	"errors"
	"math"
	"sort"

	"propmarket/internal/types"
)

// ErrEmptyDataset is returned when a table has no records to aggregate.
var ErrEmptyDataset = errors.New("empty dataset: no valid property records")

// AreaPrice is a postcode area and its mean sale price.
type AreaPrice struct {
	Area  string
	City  string
	Mean  float64
	Count int
}

// AreaCount is a postcode area and its number of sales.
type AreaCount struct {
	Area  string
	City  string
	Count int
}

// InventoryResult holds the areas with the most and fewest sales.
type InventoryResult struct {
	Most  AreaCount
	Least AreaCount
	// LeastAreas lists every area tied at Least.Count, sorted by area.
	LeastAreas []AreaCount
}

// agg accumulates per-area totals.
type agg struct {
	sum   float64
	min   float64
	max   float64
	count int
}

// groupByArea builds per-area accumulators and returns the areas sorted so
// callers scanning in order get lexicographic tie-breaks for free.
func groupByArea(t *types.PropertyTable) (map[string]*agg, []string) {
	aggs := make(map[string]*agg)
	for _, r := range t.Records {
		a, ok := aggs[r.PostcodeArea]
		if !ok {
			a = &agg{min: r.Price, max: r.Price}
			aggs[r.PostcodeArea] = a
		}
		a.sum += r.Price
		if r.Price < a.min {
			a.min = r.Price
		}
		if r.Price > a.max {
			a.max = r.Price
		}
		a.count++
	}
	areas := make([]string, 0, len(aggs))
	for area := range aggs {
		areas = append(areas, area)
	}
	sort.Strings(areas)
	return aggs, areas
}

func (a *agg) mean() float64 {
	return a.sum / float64(a.count)
}

// MostAffordable returns the postcode area with the lowest mean price.
func MostAffordable(t *types.PropertyTable) (AreaPrice, error) {
	return extremeMean(t, func(candidate, best float64) bool { return candidate < best })
}

// HighestValue returns the postcode area with the highest mean price.
func HighestValue(t *types.PropertyTable) (AreaPrice, error) {
	return extremeMean(t, func(candidate, best float64) bool { return candidate > best })
}

func extremeMean(t *types.PropertyTable, better func(candidate, best float64) bool) (AreaPrice, error) {
	if t.Len() == 0 {
		return AreaPrice{}, ErrEmptyDataset
	}
	aggs, areas := groupByArea(t)

	best := areas[0]
	for _, area := range areas[1:] {
		if better(aggs[area].mean(), aggs[best].mean()) {
			best = area
		}
	}
	return AreaPrice{
		Area:  best,
		City:  CityFor(t, best),
		Mean:  aggs[best].mean(),
		Count: aggs[best].count,
	}, nil
}

// Inventory returns the areas with the most and the fewest sales.
func Inventory(t *types.PropertyTable) (InventoryResult, error) {
	if t.Len() == 0 {
		return InventoryResult{}, ErrEmptyDataset
	}
	aggs, areas := groupByArea(t)
	cities := citiesByArea(t)

	most, least := areas[0], areas[0]
	for _, area := range areas[1:] {
		if aggs[area].count > aggs[most].count {
			most = area
		}
		if aggs[area].count < aggs[least].count {
			least = area
		}
	}

	var tied []AreaCount
	for _, area := range areas {
		if aggs[area].count == aggs[least].count {
			tied = append(tied, AreaCount{Area: area, City: cities[area], Count: aggs[area].count})
		}
	}

	return InventoryResult{
		Most:       AreaCount{Area: most, City: cities[most], Count: aggs[most].count},
		Least:      tied[0],
		LeastAreas: tied,
	}, nil
}

// CityFor returns the most common city recorded for area, ties going to the
// alphabetically first name. It is empty when the table carries no cities.
func CityFor(t *types.PropertyTable, area string) string {
	if t == nil || !t.HasCity {
		return ""
	}
	counts := make(map[string]int)
	for _, r := range t.Records {
		if r.PostcodeArea == area && r.City != "" {
			counts[r.City]++
		}
	}
	return modeOf(counts)
}

// citiesByArea is CityFor for every area in a single scan.
func citiesByArea(t *types.PropertyTable) map[string]string {
	out := make(map[string]string)
	if !t.HasCity {
		return out
	}
	counts := make(map[string]map[string]int)
	for _, r := range t.Records {
		if r.City == "" {
			continue
		}
		c, ok := counts[r.PostcodeArea]
		if !ok {
			c = make(map[string]int)
			counts[r.PostcodeArea] = c
		}
		c[r.City]++
	}
	for area, c := range counts {
		out[area] = modeOf(c)
	}
	return out
}

func modeOf(counts map[string]int) string {
	best, bestN := "", 0
	for s, n := range counts {
		if n > bestN || (n == bestN && s < best) {
			best, bestN = s, n
		}
	}
	return best
}

// AreaSummary is the full set of per-area statistics.
type AreaSummary struct {
	Area   string
	City   string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// AreaSummaries returns statistics for every postcode area, sorted by area.
func AreaSummaries(t *types.PropertyTable) ([]AreaSummary, error) {
	if t.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	aggs, areas := groupByArea(t)
	cities := citiesByArea(t)

	// Second pass for the population standard deviation.
	sqDev := make(map[string]float64, len(aggs))
	for _, r := range t.Records {
		d := r.Price - aggs[r.PostcodeArea].mean()
		sqDev[r.PostcodeArea] += d * d
	}

	out := make([]AreaSummary, 0, len(areas))
	for _, area := range areas {
		a := aggs[area]
		out = append(out, AreaSummary{
			Area:   area,
			City:   cities[area],
			Count:  a.count,
			Mean:   a.mean(),
			StdDev: math.Sqrt(sqDev[area] / float64(a.count)),
			Min:    a.min,
			Max:    a.max,
		})
	}
	return out, nil
}
