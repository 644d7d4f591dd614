package repositories

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"travel-booking-platform/internal/models"
)

type MemoryNewsletterRepository struct {
	mu      sync.Mutex
	nextID  int
	signups []*models.NewsletterSignup
}

func NewMemoryNewsletterRepository() *MemoryNewsletterRepository {
	return &MemoryNewsletterRepository{nextID: 1}
}

func (r *MemoryNewsletterRepository) Create(ctx context.Context, signup *models.NewsletterSignup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	signup.ID = r.nextID
	r.nextID++
	if signup.CreatedAt.IsZero() {
		signup.CreatedAt = time.Now()
	}
	stored := *signup
	r.signups = append(r.signups, &stored)
	return nil
}

func (r *MemoryNewsletterRepository) List(ctx context.Context) ([]*models.NewsletterSignup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.NewsletterSignup, 0, len(r.signups))
	for _, s := range r.signups {
		c := *s
		result = append(result, &c)
	}
	return result, nil
}

type PostgresNewsletterRepository struct {
	db *sql.DB
}

func NewPostgresNewsletterRepository(db *sql.DB) *PostgresNewsletterRepository {
	return &PostgresNewsletterRepository{db: db}
}

func (r *PostgresNewsletterRepository) Create(ctx context.Context, signup *models.NewsletterSignup) error {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO newsletter_signups (name, email) VALUES ($1, $2) RETURNING id, created_at",
		signup.Name, signup.Email).Scan(&signup.ID, &signup.CreatedAt)
	if err != nil {
		return dbError("create newsletter signup", err)
	}
	return nil
}

func (r *PostgresNewsletterRepository) List(ctx context.Context) ([]*models.NewsletterSignup, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, email, created_at FROM newsletter_signups ORDER BY id")
	if err != nil {
		return nil, dbError("list newsletter signups", err)
	}
	defer rows.Close()

	var signups []*models.NewsletterSignup
	for rows.Next() {
		s := &models.NewsletterSignup{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.CreatedAt); err != nil {
			return nil, dbError("scan newsletter signup", err)
		}
		signups = append(signups, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("iterate newsletter signups", err)
	}
	return signups, nil
}
