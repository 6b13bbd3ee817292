package store

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/catalog"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// TextCodeStoreUnavailable marks failures talking to the database.
const TextCodeStoreUnavailable = "STORE_UNAVAILABLE"

// Store is the bun backed item store.
type Store struct {
	db   *bun.DB
	repo repository.Repository[*productRow]
}

// New wraps an open bun database.
func New(db *bun.DB) *Store {
	return &Store{db: db, repo: newProductRepository(db)}
}

// FindByIDs loads the requested items in one query inside a read-only transaction.
// Unknown ids are omitted from the result.
func (s *Store) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return []catalog.Item{}, nil
	}

	var rows []*productRow
	err := s.db.RunInTx(ctx, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		rows, _, err = s.repo.ListTx(ctx, tx, selectByIDs(ids))
		return err
	})
	if err != nil {
		return nil, unavailable(err, "failed to load products").
			WithMetadata(map[string]any{"ids": ids})
	}

	items := make([]catalog.Item, 0, len(rows))
	for _, row := range rows {
		item, err := row.toItem()
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode product specifications").
				WithMetadata(map[string]any{"id": row.ID})
		}
		items = append(items, item)
	}
	return items, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "database ping failed").
			WithTextCode(TextCodeStoreUnavailable)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// unavailable reports a backend failure as external, replacing any category the
// repository layer assigned.
func unavailable(err error, message string) *goerrors.Error {
	rich := goerrors.Wrap(err, goerrors.CategoryExternal, message)
	rich.Category = goerrors.CategoryExternal
	return rich.WithTextCode(TextCodeStoreUnavailable)
}
