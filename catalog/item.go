package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ItemType determines whether type specific specifications apply.
type ItemType string

const (
	ItemTypeGeneric    ItemType = "GENERIC"
	ItemTypeSmartphone ItemType = "SMARTPHONE"
)

// ParseItemType maps a stored or user supplied token to an ItemType.
// Empty and unknown values fall back to GENERIC.
func ParseItemType(s string) ItemType {
	switch ItemType(strings.ToUpper(strings.TrimSpace(s))) {
	case ItemTypeSmartphone:
		return ItemTypeSmartphone
	default:
		return ItemTypeGeneric
	}
}

func (t ItemType) String() string {
	if t == "" {
		return string(ItemTypeGeneric)
	}
	return string(t)
}

// Item is a catalog product as returned by the store.
type Item struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description,omitempty"`
	Price          decimal.Decimal     `json:"price"`
	Size           string              `json:"size,omitempty"`
	Weight         string              `json:"weight,omitempty"`
	Color          string              `json:"color,omitempty"`
	ImageURL       string              `json:"imageUrl,omitempty"`
	Rating         decimal.NullDecimal `json:"rating"`
	Type           ItemType            `json:"productType"`
	Specifications map[string]any      `json:"specifications,omitempty"`
}

// Normalize fills the defaults an item must carry once it leaves the store.
func (i Item) Normalize() Item {
	i.Type = ParseItemType(string(i.Type))
	if i.Specifications == nil {
		i.Specifications = map[string]any{}
	}
	return i
}

// Clone returns a copy of i that shares no mutable state with it. Nested
// specification maps and lists are copied as well.
func (i Item) Clone() Item {
	if i.Specifications != nil {
		i.Specifications = cloneMap(i.Specifications)
	}
	return i
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
