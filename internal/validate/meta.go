package validate

import "slices"

// Metadata keys of a manifest record.
const (
	FieldDocID           = "doc_id"
	FieldYearPublished   = "year_published"
	FieldDateBuilt       = "date_built"
	FieldLocationName    = "location_name"
	FieldLocationLatLong = "location_latlong"
	FieldDateCollected   = "date_collected"
	FieldDatePublished   = "date_published"
	FieldURI             = "uri"
)

var (
	RequiredFields  = []string{FieldDocID}
	OptionalFields  = []string{FieldYearPublished, FieldDateBuilt, FieldLocationName, FieldLocationLatLong, FieldDateCollected}
	PreferredFields = []string{FieldDatePublished, FieldURI}

	// dateFields are checked with CheckDatetime, in this order.
	dateFields = []string{FieldDateBuilt, FieldDateCollected, FieldDatePublished}
)

// AllowedField reports whether key may appear in a record.
func AllowedField(key string) bool {
	return slices.Contains(RequiredFields, key) ||
		slices.Contains(OptionalFields, key) ||
		slices.Contains(PreferredFields, key)
}
