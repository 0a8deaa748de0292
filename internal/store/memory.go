package store

import (
	"context"
	"sort"
	"sync"

	"supermarket-prices/internal/model"
)

type identity struct {
	id   string
	name string
}

// memoryGateway implements Gateway with an in-process map. It backs dry runs
// and unit tests of the reconciliation pipeline; operations are safe for
// concurrent use.
type memoryGateway struct {
	mu       sync.RWMutex
	products map[identity]model.Product
}

// NewMemoryGateway creates an empty in-memory catalog store gateway.
func NewMemoryGateway() Gateway {
	return &memoryGateway{
		products: make(map[identity]model.Product),
	}
}

// Lookup retrieves the product stored under (id, name).
func (g *memoryGateway) Lookup(_ context.Context, id, name string) (*model.Product, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	p, ok := g.products[identity{id, name}]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := cloneProduct(p)
	return &copied, nil
}

// FindByID retrieves a product by bare id regardless of its stored name.
// The lowest name wins when several names share an id, matching the
// postgres gateway's ordering.
func (g *memoryGateway) FindByID(_ context.Context, id string) (*model.Product, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var found *model.Product
	for key, p := range g.products {
		if key.id != id {
			continue
		}
		if found == nil || p.Name < found.Name {
			copied := cloneProduct(p)
			found = &copied
		}
	}
	if found == nil {
		return nil, model.ErrNotFound
	}
	return found, nil
}

// Insert creates a new product document.
func (g *memoryGateway) Insert(_ context.Context, product model.Product) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := identity{product.ID, product.Name}
	if _, exists := g.products[key]; exists {
		return model.ErrConflict
	}
	g.products[key] = cloneProduct(product)
	return nil
}

// Upsert creates or replaces the product document for its identity.
func (g *memoryGateway) Upsert(_ context.Context, product model.Product) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.products[identity{product.ID, product.Name}] = cloneProduct(product)
	return nil
}

// Delete removes the document stored under (id, name).
func (g *memoryGateway) Delete(_ context.Context, id, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.products, identity{id, name})
	return nil
}

// List returns products ordered by name with pagination.
func (g *memoryGateway) List(_ context.Context, limit, offset int) ([]model.Product, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	all := make([]model.Product, 0, len(g.products))
	for _, p := range g.products {
		all = append(all, cloneProduct(p))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return []model.Product{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// cloneProduct copies the product deeply enough that callers cannot mutate
// stored state through shared slices.
func cloneProduct(p model.Product) model.Product {
	copied := p
	copied.PriceHistory = append([]model.DatedPrice(nil), p.PriceHistory...)
	copied.Category = append([]string(nil), p.Category...)
	return copied
}
