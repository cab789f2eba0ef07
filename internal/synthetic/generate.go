package synthetic

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultCount matches the size of the demo dataset.
const DefaultCount = 1000

const (
	minPrice = 100000
	maxPrice = 2000000
)

// Header is the synthetic dataset layout.
var Header = []string{"Price", "Date", "Postcode", "Property Type", "New built indicator", "Tenure Type"}

// PostcodeAreas is every UK postcode area.
var PostcodeAreas = []string{
	"AB", "AL", "B", "BA", "BB", "BD", "BH", "BL", "BN", "BR",
	"BS", "BT", "CA", "CB", "CF", "CH", "CM", "CO", "CR", "CT",
	"CV", "CW", "DA", "DD", "DE", "DG", "DH", "DL", "DN", "DT",
	"DY", "E", "EC", "EH", "EN", "EX", "FK", "FY", "G", "GL",
	"GU", "GY", "HA", "HD", "HG", "HP", "HR", "HS", "HU", "HX",
	"IG", "IM", "IP", "IV", "JE", "KA", "KT", "KW", "KY", "L",
	"LA", "LD", "LE", "LL", "LN", "LS", "LU", "M", "ME", "MK",
	"ML", "N", "NE", "NG", "NN", "NP", "NR", "NW", "OL", "OX",
	"PA", "PE", "PH", "PL", "PO", "PR", "RG", "RH", "RM", "S",
	"SA", "SE", "SG", "SK", "SL", "SM", "SN", "SO", "SP", "SR",
	"SS", "ST", "SW", "SY", "TA", "TD", "TF", "TN", "TQ", "TR",
	"TS", "TW", "UB", "W", "WA", "WC", "WD", "WF", "WN", "WR",
	"WS", "WV", "YO", "ZE",
}

var (
	propertyTypes = []string{"F", "D", "S", "T"}
	newBuilds     = []string{"Y", "N"}
	tenures       = []string{"F", "L"}
	yearStart     = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Generate writes count random 2024 sales as CSV to w. Output is
// deterministic for a given seed.
func Generate(w io.Writer, count int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	days := yearStart.AddDate(1, 0, 0).Sub(yearStart).Hours() / 24

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		date := yearStart.AddDate(0, 0, rng.Intn(int(days)))
		rec := []string{
			strconv.Itoa(minPrice + rng.Intn(maxPrice-minPrice)),
			date.Format("2006-01-02"),
			pick(rng, PostcodeAreas),
			pick(rng, propertyTypes),
			pick(rng, newBuilds),
			pick(rng, tenures),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile generates into path, creating parent directories.
func WriteFile(path string, count int, seed int64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Generate(f, count, seed); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.Intn(len(from))]
}
