package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"travel-booking-platform/internal/models"
)

// SeedCatalog inserts the given products when the products table is empty.
// It returns the number of rows inserted.
func SeedCatalog(ctx context.Context, db *sql.DB, products []*models.Product) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (sku, name, slug, category, description, price_in_cents, tags,
			maximum_guests, requires_waiver, available, in_season, packages_sold, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.SKU, p.Name, p.Slug, p.Category, p.Description, p.PriceInCents,
			pq.Array(p.Tags), p.MaximumGuests, p.RequiresWaiver, p.Available, p.InSeason, p.PackagesSold, p.Notes); err != nil {
			return 0, fmt.Errorf("failed to seed product %s: %w", p.SKU, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(products), nil
}
