package store

import (
	"context"
	"os"

	"github.com/bytedance/sonic"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/catalog"
	"github.com/uptrace/bun"
)

// CreateSchema creates the products table if it does not exist.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*productRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "failed to create products table")
	}
	return nil
}

// Seed inserts items, leaving rows that already exist untouched.
func Seed(ctx context.Context, db *bun.DB, items []catalog.Item) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]*productRow, 0, len(items))
	for _, item := range items {
		row, err := fromItem(item)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to encode product specifications").
				WithMetadata(map[string]any{"id": item.ID})
		}
		rows = append(rows, &row)
	}

	if _, err := newProductRepository(db).CreateMany(ctx, rows, insertIgnoringExisting()); err != nil {
		return unavailable(err, "failed to seed products")
	}
	return nil
}

// LoadSeedFile reads a JSON array of items.
func LoadSeedFile(path string) ([]catalog.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryNotFound, "failed to read seed file").
			WithMetadata(map[string]any{"path": path})
	}

	var items []catalog.Item
	if err := sonic.Unmarshal(data, &items); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse seed file").
			WithMetadata(map[string]any{"path": path})
	}

	for i := range items {
		items[i] = items[i].Normalize()
	}
	return items, nil
}
