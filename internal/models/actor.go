package models

import "time"

type Actor struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	Name      string    `gorm:"not null;index" json:"name" example:"Leonardo DiCaprio"`
	BirthDate *Date     `json:"birth_date,omitempty" swaggertype:"string" example:"1974-11-11"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Actor) TableName() string {
	return "actors"
}

// MovieActor is one edge of the movie/actor relation.
type MovieActor struct {
	MovieID uint `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	ActorID uint `gorm:"primaryKey;autoIncrement:false;index" json:"actor_id"`
}

func (MovieActor) TableName() string {
	return "movie_actors"
}
