package catalog

import "encoding/json"

// DecimalScale is the number of fraction digits price and rating are rendered with,
// matching their numeric(_,2) columns.
const DecimalScale = 2

// ItemView is the outward representation of an Item. Nil fields are omitted when
// serialized, which covers both unrequested and absent values.
type ItemView struct {
	ID             *int64         `json:"id,omitempty"`
	Name           *string        `json:"name,omitempty"`
	Description    *string        `json:"description,omitempty"`
	Price          *json.Number   `json:"price,omitempty"`
	Size           *string        `json:"size,omitempty"`
	Weight         *string        `json:"weight,omitempty"`
	Color          *string        `json:"color,omitempty"`
	ImageURL       *string        `json:"imageUrl,omitempty"`
	Rating         *json.Number   `json:"rating,omitempty"`
	ProductType    *string        `json:"productType,omitempty"`
	Specifications map[string]any `json:"specifications,omitempty"`
}

// Project maps item into a view holding only the fields selected by fields.
func Project(item Item, fields FieldSet) ItemView {
	var v ItemView

	if fields.Includes(FieldID) {
		id := item.ID
		v.ID = &id
	}
	if fields.Includes(FieldName) {
		v.Name = optional(item.Name)
	}
	if fields.Includes(FieldDescription) {
		v.Description = optional(item.Description)
	}
	if fields.Includes(FieldPrice) {
		n := json.Number(item.Price.StringFixed(DecimalScale))
		v.Price = &n
	}
	if fields.Includes(FieldSize) {
		v.Size = optional(item.Size)
	}
	if fields.Includes(FieldWeight) {
		v.Weight = optional(item.Weight)
	}
	if fields.Includes(FieldColor) {
		v.Color = optional(item.Color)
	}
	if fields.Includes(FieldImageURL) {
		v.ImageURL = optional(item.ImageURL)
	}
	if fields.Includes(FieldRating) && item.Rating.Valid {
		n := json.Number(item.Rating.Decimal.StringFixed(DecimalScale))
		v.Rating = &n
	}
	if fields.Includes(FieldProductType) {
		t := item.Type.String()
		v.ProductType = &t
	}
	if fields.Includes(FieldSpecifications) && len(item.Specifications) > 0 {
		v.Specifications = item.Specifications
	}

	return v
}

// ProjectAll applies Project to every item, preserving order.
func ProjectAll(items []Item, fields FieldSet) []ItemView {
	views := make([]ItemView, len(items))
	for i, item := range items {
		views[i] = Project(item, fields)
	}
	return views
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
