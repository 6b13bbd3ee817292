package store

import (
	"database/sql"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goliatone/go-product-compare/catalog"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// productRow is the persisted shape of a catalog item.
type productRow struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID             int64               `bun:"id,pk,autoincrement"`
	Name           string              `bun:"name,type:varchar(255),notnull"`
	Description    sql.NullString      `bun:"description,type:varchar(2000)"`
	Price          decimal.Decimal     `bun:"price,type:numeric(12,2),notnull"`
	Size           sql.NullString      `bun:"size,type:varchar(50)"`
	Weight         sql.NullString      `bun:"weight,type:varchar(50)"`
	Color          sql.NullString      `bun:"color,type:varchar(50)"`
	ImageURL       sql.NullString      `bun:"image_url,type:varchar(500)"`
	Rating         decimal.NullDecimal `bun:"rating,type:numeric(3,2)"`
	ProductType    string              `bun:"product_type,type:varchar(50),notnull,default:'GENERIC'"`
	Specifications sql.NullString      `bun:"specifications,type:text"`
}

func (r productRow) toItem() (catalog.Item, error) {
	specs, err := decodeSpecifications(r.Specifications)
	if err != nil {
		return catalog.Item{}, err
	}
	return catalog.Item{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description.String,
		Price:          r.Price,
		Size:           r.Size.String,
		Weight:         r.Weight.String,
		Color:          r.Color.String,
		ImageURL:       r.ImageURL.String,
		Rating:         r.Rating,
		Type:           catalog.ParseItemType(r.ProductType),
		Specifications: specs,
	}, nil
}

func fromItem(item catalog.Item) (productRow, error) {
	specs, err := encodeSpecifications(item.Specifications)
	if err != nil {
		return productRow{}, err
	}
	return productRow{
		ID:             item.ID,
		Name:           item.Name,
		Description:    nullString(item.Description),
		Price:          item.Price,
		Size:           nullString(item.Size),
		Weight:         nullString(item.Weight),
		Color:          nullString(item.Color),
		ImageURL:       nullString(item.ImageURL),
		Rating:         item.Rating,
		ProductType:    catalog.ParseItemType(string(item.Type)).String(),
		Specifications: specs,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// encodeSpecifications stores an empty or nil map as NULL.
func encodeSpecifications(specs map[string]any) (sql.NullString, error) {
	if len(specs) == 0 {
		return sql.NullString{}, nil
	}
	data, err := sonic.ConfigStd.MarshalToString(specs)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: data, Valid: true}, nil
}

// decodeSpecifications reads NULL or blank text back as an empty map.
func decodeSpecifications(col sql.NullString) (map[string]any, error) {
	specs := map[string]any{}
	if !col.Valid || strings.TrimSpace(col.String) == "" {
		return specs, nil
	}
	if err := sonic.UnmarshalString(col.String, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}
