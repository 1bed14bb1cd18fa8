package domain

// RawEntry is a parsed feed record with optional, loosely typed fields.
// It is implemented once per feed parsing library, so the extractor doesn't
// depend on any particular record shape.
type RawEntry interface {
	// Field returns a string field and whether it is present
	Field(name string) (string, bool)
	// FieldList returns a list of nested records, like links or content blocks
	FieldList(name string) ([]RawEntry, bool)
}

// MapEntry is a RawEntry backed by a map. Values may be strings or lists of
// nested maps, everything else is treated as absent.
type MapEntry map[string]any

// Field returns string value for the name
func (m MapEntry) Field(name string) (string, bool) {
	v, ok := m[name].(string)
	return v, ok
}

// FieldList returns nested records for the name
func (m MapEntry) FieldList(name string) ([]RawEntry, bool) {
	switch v := m[name].(type) {
	case []RawEntry:
		return v, true
	case []MapEntry:
		res := make([]RawEntry, 0, len(v))
		for _, e := range v {
			res = append(res, e)
		}
		return res, true
	case []map[string]any:
		res := make([]RawEntry, 0, len(v))
		for _, e := range v {
			res = append(res, MapEntry(e))
		}
		return res, true
	case []any:
		res := make([]RawEntry, 0, len(v))
		for _, e := range v {
			switch nested := e.(type) {
			case MapEntry:
				res = append(res, nested)
			case map[string]any:
				res = append(res, MapEntry(nested))
			}
		}
		return res, true
	}
	return nil, false
}
