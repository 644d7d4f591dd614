package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/lib/pq"

	"travel-booking-platform/internal/models"
)

// MemoryProductRepository keeps the catalog in process memory
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []*models.Product
}

// NewMemoryProductRepository creates a catalog holding copies of the given products
func NewMemoryProductRepository(products []*models.Product) *MemoryProductRepository {
	repo := &MemoryProductRepository{products: make([]*models.Product, 0, len(products))}
	for _, p := range products {
		repo.products = append(repo.products, p.Clone())
	}
	return repo
}

// Find returns every product matching the filter, in catalog order
func (r *MemoryProductRepository) Find(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Matches(p) {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}

// FindOne returns the first matching product, or nil when nothing matches
func (r *MemoryProductRepository) FindOne(ctx context.Context, filter models.ProductFilter) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if filter.Matches(p) {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

// IncrementPackagesSold adds one sale to the product and returns the new count
func (r *MemoryProductRepository) IncrementPackagesSold(ctx context.Context, sku string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.lookup(sku)
	if p == nil {
		return 0, models.ErrProductNotFound
	}
	p.PackagesSold++
	return p.PackagesSold, nil
}

func (r *MemoryProductRepository) SetInSeason(ctx context.Context, sku string, inSeason bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.lookup(sku)
	if p == nil {
		return models.ErrProductNotFound
	}
	p.InSeason = inSeason
	return nil
}

// lookup expects the caller to hold the lock
func (r *MemoryProductRepository) lookup(sku string) *models.Product {
	sku = strings.TrimSpace(sku)
	for _, p := range r.products {
		if p.SKU == sku {
			return p
		}
	}
	return nil
}

// PostgresProductRepository reads the catalog from the products table
type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `sku, name, slug, category, description, price_in_cents, tags,
	maximum_guests, requires_waiver, available, in_season, packages_sold, notes`

// Find builds the WHERE clause from the set filter fields
func (r *PostgresProductRepository) Find(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	return r.query(ctx, filter, 0)
}

func (r *PostgresProductRepository) FindOne(ctx context.Context, filter models.ProductFilter) (*models.Product, error) {
	products, err := r.query(ctx, filter, 1)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return products[0], nil
}

func (r *PostgresProductRepository) query(ctx context.Context, filter models.ProductFilter, limit int) ([]*models.Product, error) {
	query, args := buildProductQuery(filter, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("query products", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.SKU, &p.Name, &p.Slug, &p.Category, &p.Description, &p.PriceInCents,
			pq.Array(&p.Tags), &p.MaximumGuests, &p.RequiresWaiver, &p.Available, &p.InSeason,
			&p.PackagesSold, &p.Notes); err != nil {
			return nil, dbError("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("iterate products", err)
	}
	return products, nil
}

func buildProductQuery(filter models.ProductFilter, limit int) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, column+" = $"+strconv.Itoa(len(args)))
	}

	if filter.Category != "" {
		add("category", filter.Category)
	}
	if filter.Slug != "" {
		add("slug", filter.Slug)
	}
	if filter.SKU != "" {
		add("sku", strings.TrimSpace(filter.SKU))
	}
	if filter.Available != nil {
		add("available", *filter.Available)
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY position"
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}
	return query, args
}

// IncrementPackagesSold increments in a single statement so concurrent purchases never lose updates
func (r *PostgresProductRepository) IncrementPackagesSold(ctx context.Context, sku string) (int64, error) {
	var sold int64
	err := r.db.QueryRowContext(ctx,
		"UPDATE products SET packages_sold = packages_sold + 1 WHERE sku = $1 RETURNING packages_sold",
		strings.TrimSpace(sku)).Scan(&sold)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrProductNotFound
	}
	if err != nil {
		return 0, dbError("increment packages sold", err)
	}
	return sold, nil
}

func (r *PostgresProductRepository) SetInSeason(ctx context.Context, sku string, inSeason bool) error {
	result, err := r.db.ExecContext(ctx, "UPDATE products SET in_season = $1 WHERE sku = $2", inSeason, sku)
	if err != nil {
		return dbError("update product season", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return dbError("update product season", err)
	}
	if n == 0 {
		return models.ErrProductNotFound
	}
	return nil
}
