// Package process turns raw HM Land Registry price-paid data into the
// processed CSV and sample the analysis reads.
package process

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"propmarket/internal/dataset"
)

// Raw price-paid column positions (the file has no header).
const (
	colPrice        = 1
	colDate         = 2
	colPostcode     = 3
	colPropertyType = 4
	colNewBuild     = 5
	colTenure       = 6
	colCity         = 11
)

// Header is the processed dataset layout.
var Header = []string{
	"Price", "Date", "Postcode", "Property_Type",
	"New_built_indicator", "Tenure_Type", "City", "Postcode_Area",
}

// Options locates the input and outputs.
type Options struct {
	RawPath    string
	OutPath    string
	SamplePath string
	SampleSize int
	Seed       int64
}

// OptionsFor fills the standard locations from paths.
func OptionsFor(paths dataset.Paths, sampleSize int, seed int64) Options {
	return Options{
		RawPath:    paths.Raw,
		OutPath:    paths.Real,
		SamplePath: paths.Sample,
		SampleSize: sampleSize,
		Seed:       seed,
	}
}

// Result summarises a run.
type Result struct {
	Rows    int
	Short   int
	Sampled int
}

// Run cleans the raw file into opts.OutPath and writes a random sample of
// opts.SampleSize rows (fewer if the data is smaller) to opts.SamplePath.
// The sample keeps the processed file's row order and is reproducible for a
// given seed.
func Run(opts Options) (Result, error) {
	var res Result

	f, err := os.Open(opts.RawPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return res, fmt.Errorf("%w: %s (download the price-paid data into data/raw first)", dataset.ErrFileNotFound, opts.RawPath)
		}
		return res, fmt.Errorf("open %s: %w", opts.RawPath, err)
	}
	defer f.Close()

	rows, short, err := readRaw(f)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", opts.RawPath, err)
	}
	res.Rows, res.Short = len(rows), short

	if err := writeCSV(opts.OutPath, rows); err != nil {
		return res, err
	}

	sample := sampleRows(rows, opts.SampleSize, opts.Seed)
	if err := writeCSV(opts.SamplePath, sample); err != nil {
		return res, err
	}
	res.Sampled = len(sample)
	return res, nil
}

// readRaw converts each raw record to the processed layout. Records too
// short to hold the city column are counted and skipped.
func readRaw(r io.Reader) ([][]string, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows [][]string
	short := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, short, err
		}
		if len(rec) <= colCity {
			short++
			continue
		}
		postcode := strings.TrimSpace(rec[colPostcode])
		rows = append(rows, []string{
			strings.TrimSpace(rec[colPrice]),
			dateOnly(rec[colDate]),
			postcode,
			strings.TrimSpace(rec[colPropertyType]),
			strings.TrimSpace(rec[colNewBuild]),
			strings.TrimSpace(rec[colTenure]),
			strings.TrimSpace(rec[colCity]),
			dataset.PostcodeArea(postcode),
		})
	}
	return rows, short, nil
}

// dateOnly drops the time part of "2024-01-05 00:00".
func dateOnly(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

func sampleRows(rows [][]string, n int, seed int64) [][]string {
	if n >= len(rows) {
		return rows
	}
	if n <= 0 {
		return nil
	}
	idx := rand.New(rand.NewSource(seed)).Perm(len(rows))[:n]
	sort.Ints(idx)
	out := make([][]string, n)
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
