package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"propmarket/internal/types"
)

// DefaultMinPrice is the floor below which real sale prices are treated as
// data-entry errors.
const DefaultMinPrice = 30000

// LoadOptions tunes cleaning.
type LoadOptions struct {
	// MinPrice drops real and sample rows priced below it. Zero disables the floor.
	MinPrice float64
}

// LoadStats reports what happened to each data row.
type LoadStats struct {
	Read          int
	Loaded        int
	InvalidPrice  int
	MissingArea   int
	BelowMinPrice int
	MinPriceFloor float64
}

// Dropped is the total number of rows discarded during cleaning.
func (s LoadStats) Dropped() int {
	return s.InvalidPrice + s.MissingArea + s.BelowMinPrice
}

// Load reads the source CSV into a table. The price column and either a
// postcode or postcode_area column must be present.
func Load(src Source, opts LoadOptions) (*types.PropertyTable, LoadStats, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, LoadStats{}, fmt.Errorf("%w: %s", ErrFileNotFound, src.Path)
		}
		return nil, LoadStats{}, fmt.Errorf("open %s: %w", src.Path, err)
	}
	defer f.Close()

	floor := 0.0
	if src.Mode == ModeReal || src.Mode == ModeSample {
		floor = opts.MinPrice
	}
	table, stats, err := Read(f, floor)
	if err != nil {
		return nil, stats, fmt.Errorf("load %s: %w", src.Path, err)
	}
	return table, stats, nil
}

// Read parses CSV with a header row from r. Rows priced below minPrice are
// dropped; pass 0 to keep every positive price.
func Read(r io.Reader, minPrice float64) (*types.PropertyTable, LoadStats, error) {
	stats := LoadStats{MinPriceFloor: minPrice}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, stats, fmt.Errorf("%w: file is empty, no header row", ErrSchema)
	}
	if err != nil {
		return nil, stats, fmt.Errorf("read header: %w", err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, stats, err
	}

	table := &types.PropertyTable{HasCity: cols.city >= 0}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read row %d: %w", stats.Read+2, err)
		}
		stats.Read++

		price, ok := ParsePrice(field(row, cols.price))
		if !ok || price <= 0 {
			stats.InvalidPrice++
			continue
		}
		if minPrice > 0 && price < minPrice {
			stats.BelowMinPrice++
			continue
		}

		postcode := field(row, cols.postcode)
		area := PostcodeArea(postcode)
		if area == "" {
			area = PostcodeArea(field(row, cols.area))
		}
		if area == "" {
			stats.MissingArea++
			continue
		}

		table.Records = append(table.Records, types.PropertyRecord{
			PostcodeArea: area,
			Price:        price,
			Postcode:     postcode,
			Date:         field(row, cols.date),
			PropertyType: field(row, cols.propertyType),
			NewBuild:     strings.ToUpper(field(row, cols.newBuild)),
			Tenure:       strings.ToUpper(field(row, cols.tenure)),
			City:         field(row, cols.city),
		})
	}
	stats.Loaded = len(table.Records)
	return table, stats, nil
}

// columns maps known fields to header positions; -1 means absent.
type columns struct {
	price, postcode, area                      int
	date, propertyType, newBuild, tenure, city int
}

func resolveColumns(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	lookup := func(names ...string) int {
		for _, n := range names {
			if i, ok := idx[n]; ok {
				return i
			}
		}
		return -1
	}

	cols := columns{
		price:        lookup("price"),
		postcode:     lookup("postcode"),
		area:         lookup("postcode_area"),
		date:         lookup("date", "datetime"),
		propertyType: lookup("property_type"),
		newBuild:     lookup("new_built_indicator", "new_build"),
		tenure:       lookup("tenure_type", "tenure"),
		city:         lookup("city", "town_city", "town"),
	}
	if cols.price < 0 {
		return cols, fmt.Errorf("%w: missing price column", ErrSchema)
	}
	if cols.postcode < 0 && cols.area < 0 {
		return cols, fmt.Errorf("%w: missing postcode column", ErrSchema)
	}
	return cols, nil
}

// normalizeHeader folds "Property Type", "property_type" and " PROPERTY-TYPE"
// to the same key. A leading UTF-8 BOM is stripped.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_").Replace(h)
	return h
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParsePrice parses a currency value, tolerating a leading pound sign and
// thousands separators.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "£")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// PostcodeArea returns the leading run of letters of a UK postcode,
// upper-cased: "WS1 1AA" -> "WS", "b12 9xx" -> "B".
func PostcodeArea(postcode string) string {
	postcode = strings.TrimSpace(postcode)
	end := 0
	for end < len(postcode) {
		c := postcode[end]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			break
		}
		end++
	}
	return strings.ToUpper(postcode[:end])
}
