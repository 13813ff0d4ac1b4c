package models

import (
	"sort"
	"time"
)

type Movie struct {
	ID          uint      `gorm:"primaryKey" json:"id" example:"1"`
	Title       string    `gorm:"not null;index" json:"title" example:"Inception"`
	ReleaseYear int       `gorm:"not null;index" json:"release_year" example:"2010"`
	Duration    int       `gorm:"not null" json:"duration" example:"148"`
	Genres      []Genre   `gorm:"many2many:movie_genres;" json:"genres"`
	Actors      []Actor   `gorm:"many2many:movie_actors;" json:"actors"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Movie) TableName() string {
	return "movies"
}

// GenreIDs returns the ids of the loaded genres in ascending order.
func (m *Movie) GenreIDs() []uint {
	ids := make([]uint, 0, len(m.Genres))
	for _, g := range m.Genres {
		ids = append(ids, g.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ActorIDs returns the ids of the loaded actors in ascending order.
func (m *Movie) ActorIDs() []uint {
	ids := make([]uint, 0, len(m.Actors))
	for _, a := range m.Actors {
		ids = append(ids, a.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MovieFilter selects at most one filter for a paginated listing. When more
// than one is set, genre wins over year and year wins over actor.
type MovieFilter struct {
	GenreID *uint
	Year    *int
	ActorID *uint
}

// PageRequest is a zero-based page index and a page size.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}
