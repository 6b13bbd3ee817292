package store

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// newProductRepository builds the generic repository over the products table.
// Rows are keyed by an int64 identity column, so the uuid id handlers are inert
// and lookups go through criteria instead of GetByID.
func newProductRepository(db *bun.DB) repository.Repository[*productRow] {
	return repository.NewRepository[*productRow](db, repository.ModelHandlers[*productRow]{
		NewRecord: func() *productRow {
			return &productRow{}
		},
		GetID: func(*productRow) uuid.UUID {
			return uuid.Nil
		},
		SetID: func(*productRow, uuid.UUID) {},
		GetIdentifier: func() string {
			return "name"
		},
	})
}

// selectByIDs restricts a select to the given identities.
func selectByIDs(ids []int64) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("p.id IN (?)", bun.In(ids)).Limit(len(ids))
	}
}

// insertIgnoringExisting skips rows whose id is already present.
func insertIgnoringExisting() repository.InsertCriteria {
	return func(q *bun.InsertQuery) *bun.InsertQuery {
		return q.On("CONFLICT (id) DO NOTHING").Returning("NULL")
	}
}
