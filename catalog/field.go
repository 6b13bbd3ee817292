package catalog

import (
	"sort"
	"strings"
)

// Field is a projectable item attribute, named as it appears on the wire.
type Field string

const (
	FieldID             Field = "id"
	FieldName           Field = "name"
	FieldDescription    Field = "description"
	FieldPrice          Field = "price"
	FieldSize           Field = "size"
	FieldWeight         Field = "weight"
	FieldColor          Field = "color"
	FieldImageURL       Field = "imageUrl"
	FieldRating         Field = "rating"
	FieldProductType    Field = "productType"
	FieldSpecifications Field = "specifications"
)

// AllFields lists every projectable field in wire order.
var AllFields = []Field{
	FieldID,
	FieldName,
	FieldDescription,
	FieldPrice,
	FieldSize,
	FieldWeight,
	FieldColor,
	FieldImageURL,
	FieldRating,
	FieldProductType,
	FieldSpecifications,
}

// LookupField resolves a token case-insensitively.
func LookupField(token string) (Field, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	for _, f := range AllFields {
		if strings.EqualFold(string(f), token) {
			return f, true
		}
	}
	return "", false
}

// FieldSet is a set of requested fields. A nil or empty set selects every field.
type FieldSet map[Field]struct{}

// NewFieldSet builds a set from the given fields.
func NewFieldSet(fields ...Field) FieldSet {
	if len(fields) == 0 {
		return nil
	}
	set := make(FieldSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// ParseFields parses a comma separated list of field tokens. Blank and unknown
// tokens are ignored; nil is returned when nothing recognised remains.
func ParseFields(raw string) FieldSet {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var fields []Field
	for _, token := range strings.Split(raw, ",") {
		if f, ok := LookupField(token); ok {
			fields = append(fields, f)
		}
	}
	return NewFieldSet(fields...)
}

// IsEmpty reports whether the set selects every field.
func (s FieldSet) IsEmpty() bool {
	return len(s) == 0
}

// Includes reports whether f should be populated in a projection.
func (s FieldSet) Includes(f Field) bool {
	if s.IsEmpty() {
		return true
	}
	_, ok := s[f]
	return ok
}

// Strings returns the selected field names sorted, for logging.
func (s FieldSet) Strings() []string {
	out := make([]string, 0, len(s))
	for f := range s {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}
