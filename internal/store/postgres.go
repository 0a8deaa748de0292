package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"supermarket-prices/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for a duplicate key.
const uniqueViolation = "23505"

// postgresGateway implements Gateway on a PostgreSQL table holding one JSONB
// document per product, keyed by (id, name).
type postgresGateway struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresGateway creates a PostgreSQL-backed catalog store gateway.
func NewPostgresGateway(pool *pgxpool.Pool, logger zerolog.Logger) Gateway {
	return &postgresGateway{
		pool:   pool,
		logger: logger.With().Str("gateway", "postgres").Logger(),
	}
}

// EnsureSchema creates the products table if it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id   TEXT  NOT NULL,
			name TEXT  NOT NULL,
			doc  JSONB NOT NULL,
			PRIMARY KEY (id, name)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure products schema: %w", err)
	}
	return nil
}

// Lookup retrieves the product stored under (id, name).
func (g *postgresGateway) Lookup(ctx context.Context, id, name string) (*model.Product, error) {
	query := `
		SELECT doc
		FROM products
		WHERE id = $1 AND name = $2
	`

	var doc []byte
	err := g.pool.QueryRow(ctx, query, id, name).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		g.logger.Error().Err(err).Str("product_id", id).Msg("failed to look up product")
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	return decodeDoc(doc)
}

// FindByID retrieves a product by bare id regardless of its stored name.
// Ordering pins the result when several names share an id.
func (g *postgresGateway) FindByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT doc
		FROM products
		WHERE id = $1
		ORDER BY name
		LIMIT 1
	`

	var doc []byte
	err := g.pool.QueryRow(ctx, query, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		g.logger.Error().Err(err).Str("product_id", id).Msg("failed to find product by id")
		return nil, fmt.Errorf("failed to find product by id: %w", err)
	}

	return decodeDoc(doc)
}

// Insert creates a new product document, reporting model.ErrConflict when
// the identity already exists.
func (g *postgresGateway) Insert(ctx context.Context, product model.Product) error {
	doc, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}

	_, err = g.pool.Exec(ctx,
		`INSERT INTO products (id, name, doc) VALUES ($1, $2, $3)`,
		product.ID, product.Name, doc,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrConflict
		}
		g.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// Upsert creates or replaces the product document for its identity.
func (g *postgresGateway) Upsert(ctx context.Context, product model.Product) error {
	doc, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}

	_, err = g.pool.Exec(ctx, `
		INSERT INTO products (id, name, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (id, name) DO UPDATE SET doc = EXCLUDED.doc
	`, product.ID, product.Name, doc)
	if err != nil {
		g.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to upsert product")
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

// Delete removes the document stored under (id, name).
func (g *postgresGateway) Delete(ctx context.Context, id, name string) error {
	_, err := g.pool.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND name = $2`,
		id, name,
	)
	if err != nil {
		g.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// List returns products ordered by name with pagination.
func (g *postgresGateway) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT doc
		FROM products
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`

	rows, err := g.pool.Query(ctx, query, limit, offset)
	if err != nil {
		g.logger.Error().Err(err).Int("limit", limit).Int("offset", offset).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			g.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p, err := decodeDoc(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		g.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func decodeDoc(doc []byte) (*model.Product, error) {
	var p model.Product
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("failed to decode product document: %w", err)
	}
	return &p, nil
}
