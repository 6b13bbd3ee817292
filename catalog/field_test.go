package catalog

import (
	"reflect"
	"testing"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
		nil  bool
	}{
		{name: "empty", raw: "", nil: true},
		{name: "only unknown", raw: "foo,bar", nil: true},
		{name: "case insensitive", raw: "NAME,Price,imageurl", want: []string{"imageUrl", "name", "price"}},
		{name: "trim and skip blanks", raw: " name , ,rating", want: []string{"name", "rating"}},
		{name: "unknown dropped", raw: "name,nope", want: []string{"name"}},
		{name: "duplicates collapse", raw: "name,NAME", want: []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFields(tt.raw)
			if tt.nil {
				if got != nil {
					t.Fatalf("expected nil set, got %v", got.Strings())
				}
				return
			}
			if !reflect.DeepEqual(got.Strings(), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got.Strings())
			}
		})
	}
}

func TestFieldSet_Includes(t *testing.T) {
	var all FieldSet
	for _, f := range AllFields {
		if !all.Includes(f) {
			t.Errorf("empty set should include %s", f)
		}
	}

	set := NewFieldSet(FieldName)
	if !set.Includes(FieldName) {
		t.Error("expected name to be included")
	}
	if set.Includes(FieldPrice) {
		t.Error("expected price to be excluded")
	}
}

func TestParseItemType(t *testing.T) {
	tests := map[string]ItemType{
		"":            ItemTypeGeneric,
		"generic":     ItemTypeGeneric,
		"SMARTPHONE":  ItemTypeSmartphone,
		" smartphone": ItemTypeSmartphone,
		"TABLET":      ItemTypeGeneric,
	}
	for in, want := range tests {
		if got := ParseItemType(in); got != want {
			t.Errorf("ParseItemType(%q) = %s, want %s", in, got, want)
		}
	}
}
