package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects which dataset a run analyses.
type Mode string

const (
	ModeAuto      Mode = "auto"
	ModeReal      Mode = "real"
	ModeSynthetic Mode = "synthetic"
	ModeSample    Mode = "sample"
)

// Paths holds the dataset locations under a data directory.
type Paths struct {
	Raw       string
	Real      string
	Synthetic string
	Sample    string
}

// NewPaths lays out the well-known files under dataDir.
func NewPaths(dataDir string) Paths {
	return Paths{
		Raw:       filepath.Join(dataDir, "raw", "pp-2024.csv"),
		Real:      filepath.Join(dataDir, "processed", "property_data_real.csv"),
		Synthetic: filepath.Join(dataDir, "processed", "property_data_synthetic.csv"),
		Sample:    filepath.Join(dataDir, "samples", "property_data_real_sample.csv"),
	}
}

// Source is a resolved dataset: the concrete mode, its file, and the label
// used in the report.
type Source struct {
	Mode  Mode
	Path  string
	Label string
}

// ParseMode validates a mode token. An empty token means auto.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeReal, ModeSynthetic, ModeSample:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (want auto, real, synthetic or sample)", ErrUnknownMode, s)
}

// Select resolves mode to a dataset file. Auto prefers real data and falls
// back to synthetic; it never picks the sample.
func Select(mode Mode, paths Paths) (Source, error) {
	switch mode {
	case ModeReal:
		return existing(ModeReal, paths.Real)
	case ModeSynthetic:
		return existing(ModeSynthetic, paths.Synthetic)
	case ModeSample:
		return existing(ModeSample, paths.Sample)
	case ModeAuto, "":
		if fileExists(paths.Real) {
			return newSource(ModeReal, paths.Real), nil
		}
		if fileExists(paths.Synthetic) {
			return newSource(ModeSynthetic, paths.Synthetic), nil
		}
		return Source{}, fmt.Errorf("%w: neither %s nor %s exists (run `propmarket process` for real data or `propmarket generate` for synthetic data)",
			ErrFileNotFound, paths.Real, paths.Synthetic)
	}
	return Source{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

func existing(mode Mode, path string) (Source, error) {
	if !fileExists(path) {
		return Source{}, fmt.Errorf("%w: %s (run %s first)", ErrFileNotFound, path, prerequisite(mode))
	}
	return newSource(mode, path), nil
}

func newSource(mode Mode, path string) Source {
	return Source{Mode: mode, Path: path, Label: label(mode)}
}

func label(mode Mode) string {
	if mode == ModeSample {
		return "real sample"
	}
	return string(mode)
}

// prerequisite names the command that produces the file for mode.
func prerequisite(mode Mode) string {
	if mode == ModeSynthetic {
		return "`propmarket generate`"
	}
	return "`propmarket process`"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
