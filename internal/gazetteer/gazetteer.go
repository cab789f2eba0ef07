package gazetteer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	shp "github.com/jonas-p/go-shp"
)

// Gazetteer maps postcode area codes to display names.
type Gazetteer struct {
	names map[string]string
}

// Load reads the attribute table of the shapefile at path. codeField holds
// the area code and nameField its name; both match case-insensitively.
// Geometry is ignored.
func Load(path, codeField, nameField string) (*Gazetteer, error) {
	// The reader only opens the .dbf lazily and drops that error, which
	// would surface as missing fields.
	dbf := strings.TrimSuffix(path, filepath.Ext(path)) + ".dbf"
	if _, err := os.Stat(dbf); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("shapefile %s: attribute table %s: %w", path, dbf, os.ErrNotExist)
		}
		return nil, fmt.Errorf("shapefile %s: %w", path, err)
	}

	r, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	codeIdx, nameIdx := -1, -1
	for i, f := range r.Fields() {
		switch name := f.String(); {
		case strings.EqualFold(name, codeField):
			codeIdx = i
		case strings.EqualFold(name, nameField):
			nameIdx = i
		}
	}
	if codeIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("shapefile %s: fields %q and %q required", path, codeField, nameField)
	}

	g := &Gazetteer{names: make(map[string]string)}
	for r.Next() {
		idx, _ := r.Shape()
		code := strings.ToUpper(clean(r.ReadAttribute(idx, codeIdx)))
		name := clean(r.ReadAttribute(idx, nameIdx))
		if code == "" || name == "" {
			continue
		}
		if _, dup := g.names[code]; !dup {
			g.names[code] = name
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read shapefile %s: %w", path, err)
	}
	return g, nil
}

// clean strips DBF padding.
func clean(s string) string {
	return strings.Trim(s, " \x00")
}

// Name returns the display name for area, or "" when unknown. A nil
// Gazetteer knows nothing.
func (g *Gazetteer) Name(area string) string {
	if g == nil {
		return ""
	}
	return g.names[strings.ToUpper(area)]
}

// Len is the number of named areas.
func (g *Gazetteer) Len() int {
	if g == nil {
		return 0
	}
	return len(g.names)
}
