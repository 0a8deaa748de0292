package catalog

import (
	"context"
	"errors"
	"fmt"

	"supermarket-prices/internal/model"
	"supermarket-prices/internal/store"

	"github.com/rs/zerolog"
)

// Service defines the read-side operations the catalog API exposes.
type Service interface {
	// List retrieves products ordered by name with pagination.
	List(ctx context.Context, limit, offset int) ([]model.Product, error)

	// Get retrieves a single product. When name is empty the lookup falls
	// back to the bare id.
	Get(ctx context.Context, id, name string) (*model.Product, error)
}

// service implements Service over the store gateway.
type service struct {
	gateway store.Gateway
	logger  zerolog.Logger
}

// NewService creates a read-side catalog service.
func NewService(gateway store.Gateway, logger zerolog.Logger) Service {
	return &service{
		gateway: gateway,
		logger:  logger.With().Str("service", "catalog").Logger(),
	}
}

// List retrieves products with pagination, clamping unreasonable inputs.
func (s *service) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.gateway.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("listed products")

	return products, nil
}

// Get retrieves a single product by identity, or by bare id when no name is
// given.
func (s *service) Get(ctx context.Context, id, name string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrNotFound
	}

	var (
		product *model.Product
		err     error
	)
	if name == "" {
		product, err = s.gateway.FindByID(ctx, id)
	} else {
		product, err = s.gateway.Lookup(ctx, id, name)
	}
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		}
		return nil, err
	}

	return product, nil
}
