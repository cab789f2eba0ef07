package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"propmarket/internal/analysis"
	"propmarket/internal/dataset"
)

const (
	colorGreen = "\033[32m"
	colorReset = "\033[0m"
)

// Report is everything a run prints.
type Report struct {
	Label      string
	Stats      dataset.LoadStats
	Affordable analysis.AreaPrice
	Highest    analysis.AreaPrice
	Inventory  analysis.InventoryResult
	// Scope names an area filter applied after loading, e.g. "London".
	Scope      string
	ScopeCount int
	// Breakdown is optional; nil comparisons are skipped.
	Breakdown []analysis.Comparison
}

// Options controls presentation only.
type Options struct {
	Color bool
}

// Print writes the fixed-layout report to w.
func Print(w io.Writer, r Report, opts Options) error {
	hl := func(s string) string {
		if opts.Color {
			return colorGreen + s + colorReset
		}
		return s
	}

	var b strings.Builder
	b.WriteString(" PROPERTY MARKET ANALYSIS\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Loaded %d %s properties from CSV\n", r.Stats.Loaded, r.Label)
	if n := r.Stats.Dropped(); n > 0 {
		fmt.Fprintf(&b, "Dropped %d rows (invalid price %d, missing postcode %d, below %s floor %d)\n",
			n, r.Stats.InvalidPrice, r.Stats.MissingArea, Currency(r.Stats.MinPriceFloor), r.Stats.BelowMinPrice)
	}

	if r.Scope != "" {
		fmt.Fprintf(&b, "Restricted to %d %s properties\n", r.ScopeCount, r.Scope)
	}

	fmt.Fprintf(&b, "Most affordable area: %s %s\n",
		hl(AreaName(r.Affordable.Area, r.Affordable.City)), Currency(r.Affordable.Mean))
	fmt.Fprintf(&b, "Highest value area: %s %s\n",
		hl(AreaName(r.Highest.Area, r.Highest.City)), Currency(r.Highest.Mean))

	inv := r.Inventory
	fmt.Fprintf(&b, "Area with most choices: %s (%d properties)\n",
		hl(AreaName(inv.Most.Area, inv.Most.City)), inv.Most.Count)
	if len(inv.LeastAreas) <= 1 {
		fmt.Fprintf(&b, "Area with least choices: %s (%d properties)\n",
			hl(AreaName(inv.Least.Area, inv.Least.City)), inv.Least.Count)
	} else {
		fmt.Fprintf(&b, "Areas with least choices: %s (%d properties each)\n",
			hl(tiedAreas(inv.LeastAreas, 3)), inv.Least.Count)
	}

	if len(r.Breakdown) > 0 {
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, c := range r.Breakdown {
			writeGroup(&b, c.Left)
			writeGroup(&b, c.Right)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeGroup(b *strings.Builder, g analysis.GroupMean) {
	if !g.OK {
		fmt.Fprintf(b, "Average price of %s: n/a\n", g.Label)
		return
	}
	fmt.Fprintf(b, "Average price of %s: %s\n", g.Label, Currency(g.Mean))
}

// tiedAreas lists the first max areas and summarises the rest.
func tiedAreas(areas []analysis.AreaCount, max int) string {
	shown := areas
	if len(shown) > max {
		shown = shown[:max]
	}
	names := make([]string, len(shown))
	for i, a := range shown {
		names[i] = AreaName(a.Area, a.City)
	}
	s := strings.Join(names, ", ")
	if extra := len(areas) - len(shown); extra > 0 {
		s += fmt.Sprintf(" and %d others", extra)
	}
	return s
}

// AreaName renders an area as "City (AREA)" when a city is known.
func AreaName(area, city string) string {
	if city == "" {
		return area
	}
	return fmt.Sprintf("%s (%s)", city, area)
}

// Currency formats v as pounds with thousands separators and two decimals.
func Currency(v float64) string {
	if v < 0 {
		return "-£" + humanize.FormatFloat("#,###.##", -v)
	}
	return "£" + humanize.FormatFloat("#,###.##", v)
}
