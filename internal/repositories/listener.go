package repositories

import (
	"context"
	"database/sql"
	"sync"

	"github.com/lib/pq"

	"travel-booking-platform/internal/models"
)

// MemoryListenerRepository keeps in-season listeners in insertion order
type MemoryListenerRepository struct {
	mu        sync.Mutex
	listeners []*models.InSeasonListener
}

func NewMemoryListenerRepository() *MemoryListenerRepository {
	return &MemoryListenerRepository{}
}

// Upsert creates the listener or appends the SKU when it is not already present
func (r *MemoryListenerRepository) Upsert(ctx context.Context, email, sku string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.listeners {
		if l.Email == email {
			if !l.HasSKU(sku) {
				l.SKUs = append(l.SKUs, sku)
			}
			return nil
		}
	}
	r.listeners = append(r.listeners, &models.InSeasonListener{Email: email, SKUs: []string{sku}})
	return nil
}

func (r *MemoryListenerRepository) List(ctx context.Context) ([]*models.InSeasonListener, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.InSeasonListener, 0, len(r.listeners))
	for _, l := range r.listeners {
		result = append(result, &models.InSeasonListener{Email: l.Email, SKUs: append([]string(nil), l.SKUs...)})
	}
	return result, nil
}

// RemoveSKU drops the SKU from the listener, and the listener once it waits on nothing
func (r *MemoryListenerRepository) RemoveSKU(ctx context.Context, email, sku string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, l := range r.listeners {
		if l.Email != email {
			continue
		}
		kept := l.SKUs[:0]
		for _, s := range l.SKUs {
			if s != sku {
				kept = append(kept, s)
			}
		}
		l.SKUs = kept
		if len(l.SKUs) == 0 {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
		}
		return nil
	}
	return nil
}

type PostgresListenerRepository struct {
	db *sql.DB
}

func NewPostgresListenerRepository(db *sql.DB) *PostgresListenerRepository {
	return &PostgresListenerRepository{db: db}
}

func (r *PostgresListenerRepository) Upsert(ctx context.Context, email, sku string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO in_season_listeners (email, skus) VALUES ($1, ARRAY[$2::text])
		ON CONFLICT (email) DO UPDATE
		SET skus = CASE
			WHEN $2 = ANY(in_season_listeners.skus) THEN in_season_listeners.skus
			ELSE array_append(in_season_listeners.skus, $2)
		END`, email, sku)
	if err != nil {
		return dbError("upsert in-season listener", err)
	}
	return nil
}

func (r *PostgresListenerRepository) List(ctx context.Context) ([]*models.InSeasonListener, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT email, skus FROM in_season_listeners ORDER BY email")
	if err != nil {
		return nil, dbError("list in-season listeners", err)
	}
	defer rows.Close()

	var listeners []*models.InSeasonListener
	for rows.Next() {
		l := &models.InSeasonListener{}
		if err := rows.Scan(&l.Email, pq.Array(&l.SKUs)); err != nil {
			return nil, dbError("scan in-season listener", err)
		}
		listeners = append(listeners, l)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("iterate in-season listeners", err)
	}
	return listeners, nil
}

func (r *PostgresListenerRepository) RemoveSKU(ctx context.Context, email, sku string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE in_season_listeners SET skus = array_remove(skus, $2) WHERE email = $1", email, sku); err != nil {
		return dbError("remove listener sku", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM in_season_listeners WHERE email = $1 AND cardinality(skus) = 0", email); err != nil {
		return dbError("delete empty listener", err)
	}
	if err := tx.Commit(); err != nil {
		return dbError("commit listener update", err)
	}
	return nil
}
