// Package store provides the catalog document store gateway: keyed lookup,
// insert and replace of per-product documents. The reconciliation pipeline
// only depends on the Gateway interface; the backing store is a detail.
package store

import (
	"context"

	"supermarket-prices/internal/model"
)

// Gateway defines the operations the reconciliation pipeline needs from the
// product document store. Identity is the (id, name) pair.
//
// Lookup and FindByID return model.ErrNotFound when no document exists.
// Insert returns model.ErrConflict when the identity is already present.
// Any other error is a transient store failure.
type Gateway interface {
	// Lookup retrieves the product stored under (id, name).
	Lookup(ctx context.Context, id, name string) (*model.Product, error)

	// FindByID retrieves a product by bare id regardless of name, used to
	// re-home products whose display name changed at the source.
	FindByID(ctx context.Context, id string) (*model.Product, error)

	// Insert creates a new product document.
	Insert(ctx context.Context, product model.Product) error

	// Upsert creates or replaces the product document for its identity.
	Upsert(ctx context.Context, product model.Product) error

	// Delete removes the document stored under (id, name).
	Delete(ctx context.Context, id, name string) error

	// List returns products ordered by name with pagination.
	List(ctx context.Context, limit, offset int) ([]model.Product, error)
}
