package models

import "time"

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name" example:"Sci-Fi"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Genre) TableName() string {
	return "genres"
}

// MovieGenre is one edge of the movie/genre relation. The composite primary
// key keeps a pair from being stored twice.
type MovieGenre struct {
	MovieID uint `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	GenreID uint `gorm:"primaryKey;autoIncrement:false;index" json:"genre_id"`
}

func (MovieGenre) TableName() string {
	return "movie_genres"
}
