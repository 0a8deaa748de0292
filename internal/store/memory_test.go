package store

import (
	"context"
	"testing"
	"time"

	"supermarket-prices/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct(id, name string) model.Product {
	return model.Product{
		ID:           id,
		Name:         name,
		Size:         "500g",
		CurrentPrice: 4.50,
		SourceSite:   "countdown.co.nz",
		Category:     []string{"biscuits-crackers"},
		PriceHistory: []model.DatedPrice{
			{Date: time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), Price: 4.50},
		},
	}
}

func TestMemoryInsertAndLookup(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, g.Insert(ctx, sampleProduct("100", "Wheat Crackers")))

	got, err := g.Lookup(ctx, "100", "Wheat Crackers")
	require.NoError(t, err)
	assert.Equal(t, 4.50, got.CurrentPrice)

	_, err = g.Lookup(ctx, "100", "Other Name")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestMemoryInsertConflict(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, g.Insert(ctx, sampleProduct("100", "Wheat Crackers")))
	err := g.Insert(ctx, sampleProduct("100", "Wheat Crackers"))
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestMemoryUpsertReplaces(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	p := sampleProduct("100", "Wheat Crackers")
	require.NoError(t, g.Insert(ctx, p))

	p.CurrentPrice = 5.00
	require.NoError(t, g.Upsert(ctx, p))

	got, err := g.Lookup(ctx, "100", "Wheat Crackers")
	require.NoError(t, err)
	assert.Equal(t, 5.00, got.CurrentPrice)
}

func TestMemoryFindByID(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, g.Insert(ctx, sampleProduct("100", "Wheat Crackers")))

	got, err := g.FindByID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "Wheat Crackers", got.Name)

	_, err = g.FindByID(ctx, "200")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestMemoryFindByIDPicksLowestName(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, g.Insert(ctx, sampleProduct("100", "Wheat Crackers")))
	require.NoError(t, g.Insert(ctx, sampleProduct("100", "Rice Crackers")))

	got, err := g.FindByID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "Rice Crackers", got.Name)
}

func TestMemoryDelete(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, g.Insert(ctx, sampleProduct("100", "Wheat Crackers")))
	require.NoError(t, g.Delete(ctx, "100", "Wheat Crackers"))

	_, err := g.Lookup(ctx, "100", "Wheat Crackers")
	assert.ErrorIs(t, err, model.ErrNotFound)

	// Deleting an absent identity is a no-op.
	assert.NoError(t, g.Delete(ctx, "100", "Wheat Crackers"))
}

func TestMemoryListOrderingAndPagination(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, g.Insert(ctx, sampleProduct("300", "Cocoa Powder")))
	require.NoError(t, g.Insert(ctx, sampleProduct("100", "Apple Cider")))
	require.NoError(t, g.Insert(ctx, sampleProduct("200", "Barley Flour")))

	all, err := g.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Apple Cider", all[0].Name)
	assert.Equal(t, "Barley Flour", all[1].Name)
	assert.Equal(t, "Cocoa Powder", all[2].Name)

	page, err := g.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Barley Flour", page[0].Name)

	empty, err := g.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryLookupReturnsCopy(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, g.Insert(ctx, sampleProduct("100", "Wheat Crackers")))

	got, err := g.Lookup(ctx, "100", "Wheat Crackers")
	require.NoError(t, err)
	got.PriceHistory[0].Price = 99.99
	got.Category[0] = "mutated"

	again, err := g.Lookup(ctx, "100", "Wheat Crackers")
	require.NoError(t, err)
	assert.Equal(t, 4.50, again.PriceHistory[0].Price)
	assert.Equal(t, "biscuits-crackers", again.Category[0])
}
