package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-booking-platform/internal/models"
)

func TestMemoryNewsletterRepository(t *testing.T) {
	repo := NewMemoryNewsletterRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.NewsletterSignup{Name: "Ann", Email: "ann@example.com"}))
	require.NoError(t, repo.Create(ctx, &models.NewsletterSignup{Name: "Bo", Email: "bo@example.com"}))

	signups, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, signups, 2)
	assert.Equal(t, 1, signups[0].ID)
	assert.Equal(t, "bo@example.com", signups[1].Email)
	assert.False(t, signups[0].CreatedAt.IsZero())
}

func TestMemoryListenerRepository(t *testing.T) {
	repo := NewMemoryListenerRepository()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "a@b.com", "OC39"))
	require.NoError(t, repo.Upsert(ctx, "a@b.com", "OC39"))
	require.NoError(t, repo.Upsert(ctx, "a@b.com", "B99"))
	require.NoError(t, repo.Upsert(ctx, "c@d.com", "OC39"))

	listeners, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listeners, 2)
	assert.Equal(t, []string{"OC39", "B99"}, listeners[0].SKUs)

	require.NoError(t, repo.RemoveSKU(ctx, "a@b.com", "OC39"))
	require.NoError(t, repo.RemoveSKU(ctx, "c@d.com", "OC39"))

	listeners, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listeners, 1)
	assert.Equal(t, "a@b.com", listeners[0].Email)
	assert.Equal(t, []string{"B99"}, listeners[0].SKUs)
}

func TestMemoryContestRepository(t *testing.T) {
	repo := NewMemoryContestRepository()
	ctx := context.Background()

	older := &models.ContestEntry{Contest: models.VacationPhotoContest, Email: "a@b.com", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.ContestEntry{Contest: models.VacationPhotoContest, Email: "c@d.com"}
	other := &models.ContestEntry{Contest: "other", Email: "e@f.com"}
	for _, e := range []*models.ContestEntry{older, newer, other} {
		require.NoError(t, repo.Create(ctx, e))
		assert.NotEmpty(t, e.ID)
	}

	entries, err := repo.ListByContest(ctx, models.VacationPhotoContest)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c@d.com", entries[0].Email)
	assert.Equal(t, "a@b.com", entries[1].Email)
}

func TestTourRepository(t *testing.T) {
	repo := NewTourRepository(models.DefaultTours())

	tours := repo.List()
	require.Len(t, tours, 2)

	updated, err := repo.Update(1, "Oregon Coast Deluxe", 199.5)
	require.NoError(t, err)
	assert.Equal(t, "Oregon Coast Deluxe", updated.Name)
	assert.Equal(t, 199.5, repo.List()[1].Price)

	_, err = repo.Update(42, "x", 1)
	assert.ErrorIs(t, err, models.ErrTourNotFound)

	require.NoError(t, repo.Delete(0))
	assert.Len(t, repo.List(), 1)
	assert.ErrorIs(t, repo.Delete(0), models.ErrNotFound)
}
