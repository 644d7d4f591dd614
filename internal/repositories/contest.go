package repositories

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"travel-booking-platform/internal/models"
)

type MemoryContestRepository struct {
	mu      sync.Mutex
	entries []*models.ContestEntry
}

func NewMemoryContestRepository() *MemoryContestRepository {
	return &MemoryContestRepository{}
}

func (r *MemoryContestRepository) Create(ctx context.Context, entry *models.ContestEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareEntry(entry)
	stored := *entry
	r.entries = append(r.entries, &stored)
	return nil
}

// ListByContest returns the contest's entries, newest first
func (r *MemoryContestRepository) ListByContest(ctx context.Context, contest string) ([]*models.ContestEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.ContestEntry
	for _, e := range r.entries {
		if e.Contest == contest {
			c := *e
			result = append(result, &c)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func prepareEntry(entry *models.ContestEntry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
}

type PostgresContestRepository struct {
	db *sql.DB
}

func NewPostgresContestRepository(db *sql.DB) *PostgresContestRepository {
	return &PostgresContestRepository{db: db}
}

func (r *PostgresContestRepository) Create(ctx context.Context, entry *models.ContestEntry) error {
	prepareEntry(entry)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contest_entries (id, contest, name, email, year, month, photo_url, thumbnail_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.Contest, entry.Name, entry.Email, entry.Year, entry.Month,
		entry.PhotoURL, entry.ThumbnailURL, entry.CreatedAt)
	if err != nil {
		return dbError("create contest entry", err)
	}
	return nil
}

func (r *PostgresContestRepository) ListByContest(ctx context.Context, contest string) ([]*models.ContestEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, contest, name, email, year, month, photo_url, thumbnail_url, created_at
		FROM contest_entries WHERE contest = $1 ORDER BY created_at DESC`, contest)
	if err != nil {
		return nil, dbError("list contest entries", err)
	}
	defer rows.Close()

	var entries []*models.ContestEntry
	for rows.Next() {
		e := &models.ContestEntry{}
		if err := rows.Scan(&e.ID, &e.Contest, &e.Name, &e.Email, &e.Year, &e.Month,
			&e.PhotoURL, &e.ThumbnailURL, &e.CreatedAt); err != nil {
			return nil, dbError("scan contest entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("iterate contest entries", err)
	}
	return entries, nil
}
