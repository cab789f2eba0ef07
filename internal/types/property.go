package types

// PropertyRecord is a single sale. Only PostcodeArea and Price feed the
// area analyses; the descriptive fields are carried when the source has them.
type PropertyRecord struct {
	PostcodeArea string
	Price        float64

	Postcode     string
	Date         string
	PropertyType string
	NewBuild     string
	Tenure       string
	City         string
}

// PropertyTable is the loaded dataset. It is built once by the loader and
// treated as read-only afterwards.
type PropertyTable struct {
	Records []PropertyRecord
	// HasCity reports whether the source carried a city/town column.
	HasCity bool
}

// Len returns the number of loaded records.
func (t *PropertyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
