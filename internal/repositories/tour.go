package repositories

import (
	"sync"

	"travel-booking-platform/internal/models"
)

// TourRepository holds the tours served by the JSON API
type TourRepository struct {
	mu    sync.RWMutex
	tours []*models.Tour
}

func NewTourRepository(tours []*models.Tour) *TourRepository {
	repo := &TourRepository{}
	for _, t := range tours {
		c := *t
		repo.tours = append(repo.tours, &c)
	}
	return repo
}

func (r *TourRepository) List() []*models.Tour {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Tour, 0, len(r.tours))
	for _, t := range r.tours {
		c := *t
		result = append(result, &c)
	}
	return result
}

// Update overwrites the name and price of the tour with the given id
func (r *TourRepository) Update(id int, name string, price float64) (*models.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tours {
		if t.ID == id {
			t.Name = name
			t.Price = price
			c := *t
			return &c, nil
		}
	}
	return nil, models.ErrTourNotFound
}

func (r *TourRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tours {
		if t.ID == id {
			r.tours = append(r.tours[:i], r.tours[i+1:]...)
			return nil
		}
	}
	return models.ErrTourNotFound
}
