package models

import "time"

// VacationPhotoContest is the name of the running photo contest
const VacationPhotoContest = "vacation-photo"

// ContestEntry represents a photo submitted to a contest
type ContestEntry struct {
	ID           string    `json:"id" db:"id"`
	Contest      string    `json:"contest" db:"contest"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Year         int       `json:"year" db:"year"`
	Month        int       `json:"month" db:"month"`
	PhotoURL     string    `json:"photo_url" db:"photo_url"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Tour is the record served by the public JSON API
type Tour struct {
	ID    int     `json:"id" xml:"id,attr"`
	Name  string  `json:"name" xml:",chardata"`
	Price float64 `json:"price" xml:"price,attr"`
}

// DefaultTours returns the tours the API starts with
func DefaultTours() []*Tour {
	return []*Tour{
		{ID: 0, Name: "Hood River", Price: 99.99},
		{ID: 1, Name: "Oregon Coast", Price: 149.95},
	}
}
